package mood

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/feelfree/ff/internal/api"
	"github.com/feelfree/ff/internal/models"
	"github.com/feelfree/ff/internal/store"
)

func setupService(t *testing.T, handler http.Handler) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	st, err := store.OpenConn(conn)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	client := api.New(srv.URL, func() (string, error) { return "tok", nil })
	return NewService(client, st), srv
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 15, 15, 0, 0, 0, time.Local)
}

func TestLogRejectsFutureDate(t *testing.T) {
	svc, _ := setupService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend should not be called for invalid input")
	}))

	_, err := svc.Log("2024-03-16", "happy", "", fixedNow())
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "date" {
		t.Fatalf("err: got %v, want date ValidationError", err)
	}
}

func TestLogRejectsMalformedDate(t *testing.T) {
	svc, _ := setupService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend should not be called for invalid input")
	}))

	var verr *ValidationError
	if _, err := svc.Log("15/03/2024", "happy", "", fixedNow()); !errors.As(err, &verr) {
		t.Fatalf("err: got %v, want ValidationError", err)
	}
	if _, err := svc.Log("2024-03-15", "", "", fixedNow()); !errors.As(err, &verr) {
		t.Fatalf("empty mood: got %v, want ValidationError", err)
	}
}

func TestLogScoresNoteAndPosts(t *testing.T) {
	var posted models.MoodEntry
	mux := http.NewServeMux()
	mux.HandleFunc("POST /moods", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&posted)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "mood": posted})
	})
	mux.HandleFunc("GET /moods", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"moods": []models.MoodEntry{posted}})
	})
	svc, _ := setupService(t, mux)

	saved, err := svc.Log("2024-03-15", "happy", "had a great day", fixedNow())
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if posted.Sentiment != 1 {
		t.Fatalf("posted sentiment: got %d, want 1", posted.Sentiment)
	}
	if saved.Mood != "happy" || saved.Date != "2024-03-15" {
		t.Fatalf("saved: %+v", saved)
	}
}

func TestListReplacesCacheRemoteWins(t *testing.T) {
	remote := []models.MoodEntry{
		{Date: "2024-03-15", Mood: "happy", Sentiment: 1},
		{Date: "2024-03-14", Mood: "sad", Sentiment: -1},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /moods", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"moods": remote})
	})
	svc, _ := setupService(t, mux)

	got, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("list: got %d entries", len(got))
	}

	cached, err := svc.Cached()
	if err != nil {
		t.Fatalf("cached: %v", err)
	}
	if len(cached) != 2 || cached[0].Mood != "happy" {
		t.Fatalf("cache: %v", cached)
	}
}

func TestAuthoritativeFailureSurfaces(t *testing.T) {
	svc, srv := setupService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // simulate backend down

	if _, err := svc.List(); !api.IsUnavailable(err) {
		t.Fatalf("err: got %v, want ErrRemoteUnavailable", err)
	}
}

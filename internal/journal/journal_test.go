package journal

import (
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/feelfree/ff/internal/records"
	"github.com/feelfree/ff/internal/store"
)

func setupBook(t *testing.T) *Book {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	st, err := store.OpenConn(conn)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewBook(st)
}

func TestAddTrimsTitleAndPrepends(t *testing.T) {
	b := setupBook(t)

	first, err := b.Add("  Rough day  ", "traffic was awful")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if first.Title != "Rough day" {
		t.Fatalf("title: got %q", first.Title)
	}
	if first.ID == "" || first.UpdatedAt.IsZero() {
		t.Fatalf("new entry: %+v", first)
	}

	second, _ := b.Add("Better", "")
	all := b.All()
	if len(all) != 2 || all[0].ID != second.ID || all[1].ID != first.ID {
		t.Fatalf("ordering: %v", all)
	}
}

func TestAddRejectsBlankTitle(t *testing.T) {
	b := setupBook(t)
	_, err := b.Add("   ", "body")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "title" {
		t.Fatalf("want title validation error, got %v", err)
	}
}

func TestEditUpdatesBodyAndKeepsTitleWhenBlank(t *testing.T) {
	b := setupBook(t)
	entry, _ := b.Add("Monday", "v1")

	edited, err := b.Edit(entry.ID, "", "v2")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Title != "Monday" || edited.Body != "v2" {
		t.Fatalf("edited: %+v", edited)
	}
	if !edited.UpdatedAt.After(entry.UpdatedAt) && !edited.UpdatedAt.Equal(entry.UpdatedAt) {
		t.Fatalf("updatedAt went backwards: %v -> %v", entry.UpdatedAt, edited.UpdatedAt)
	}

	retitled, err := b.Edit(entry.ID, "Monday, revised", "v3")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if retitled.Title != "Monday, revised" {
		t.Fatalf("title: got %q", retitled.Title)
	}
}

func TestEditUnknownIDReturnsNotFound(t *testing.T) {
	b := setupBook(t)
	if _, err := b.Edit("nope", "t", "b"); !errors.Is(err, records.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	b := setupBook(t)
	entry, _ := b.Add("Gone soon", "")
	if err := b.Remove(entry.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := b.Remove(entry.ID); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if len(b.All()) != 0 {
		t.Fatalf("entries left: %v", b.All())
	}
}

func TestEntriesSurviveReload(t *testing.T) {
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	st, err := store.OpenConn(conn)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	b := NewBook(st)
	if _, err := b.Add("Persist me", "body"); err != nil {
		t.Fatalf("add: %v", err)
	}

	fresh := NewBook(st)
	if err := fresh.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	all := fresh.All()
	if len(all) != 1 || all[0].Title != "Persist me" {
		t.Fatalf("reloaded: %v", all)
	}
}

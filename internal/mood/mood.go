// Package mood logs and reads mood entries. The backend is the
// source of truth: reads fetch remote state and replace the local
// cache wholesale (remote wins, no merge), and a failed authoritative
// call surfaces to the user instead of falling back to the cache.
package mood

import (
	"fmt"
	"time"

	"github.com/feelfree/ff/internal/api"
	"github.com/feelfree/ff/internal/models"
	"github.com/feelfree/ff/internal/records"
	"github.com/feelfree/ff/internal/sentiment"
	"github.com/feelfree/ff/internal/store"
)

// DateLayout is the calendar-date format moods are keyed by
const DateLayout = "2006-01-02"

// ValidationError reports invalid mood input
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Service coordinates the authoritative backend and the local cache
type Service struct {
	client *api.Client
	cache  *records.Collection[models.MoodEntry]
}

// NewService creates a mood service backed by client and st
func NewService(client *api.Client, st *store.Store) *Service {
	// no outbox entity: moods are written through, not mirrored
	return &Service{
		client: client,
		cache:  records.New[models.MoodEntry](st, store.KeyMoodCache, ""),
	}
}

// Log validates and saves a mood for a date. The note is scored
// client-side and the -1/0/+1 label score travels with the entry.
// Future dates are rejected.
func (s *Service) Log(date, moodName, note string, now time.Time) (*models.MoodEntry, error) {
	if moodName == "" {
		return nil, &ValidationError{Field: "mood", Msg: "must not be empty"}
	}
	d, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return nil, &ValidationError{Field: "date", Msg: fmt.Sprintf("%q is not a YYYY-MM-DD date", date)}
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.After(today) {
		return nil, &ValidationError{Field: "date", Msg: "cannot log a mood for a future date"}
	}

	entry := models.MoodEntry{
		Date:      date,
		Mood:      moodName,
		Note:      note,
		Sentiment: sentiment.LabelScore(sentiment.Analyze(note)),
	}
	saved, err := s.client.SaveMood(entry)
	if err != nil {
		return nil, err
	}
	s.refreshQuietly()
	return saved, nil
}

// List fetches all moods from the backend and replaces the cache
func (s *Service) List() ([]models.MoodEntry, error) {
	moods, err := s.client.ListMoods()
	if err != nil {
		return nil, err
	}
	if err := s.cache.ReplaceAll(moods); err != nil {
		// cache refresh failure is a local inconvenience, not a listing failure
		logCacheSkip(err)
	}
	return moods, nil
}

// ByDate fetches the mood logged for one date
func (s *Service) ByDate(date string) (*models.MoodEntry, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, &ValidationError{Field: "date", Msg: fmt.Sprintf("%q is not a YYYY-MM-DD date", date)}
	}
	return s.client.MoodByDate(date)
}

// Remove deletes the mood for a date on the backend
func (s *Service) Remove(date string) error {
	if err := s.client.DeleteMood(date); err != nil {
		return err
	}
	s.refreshQuietly()
	return nil
}

// Summary fetches aggregate statistics for the user
func (s *Service) Summary(userID string) (*api.MoodSummary, error) {
	return s.client.GetMoodSummary(userID)
}

// Cached returns the last-fetched moods without touching the network
func (s *Service) Cached() ([]models.MoodEntry, error) {
	if err := s.cache.Load(); err != nil {
		return nil, err
	}
	return s.cache.All(), nil
}

// refreshQuietly re-fetches the cache after a write; failure is
// logged, never surfaced, since the write itself already succeeded.
func (s *Service) refreshQuietly() {
	moods, err := s.client.ListMoods()
	if err != nil {
		logCacheSkip(err)
		return
	}
	if err := s.cache.ReplaceAll(moods); err != nil {
		logCacheSkip(err)
	}
}

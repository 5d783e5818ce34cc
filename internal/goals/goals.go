// Package goals owns the recurring-goal collection and its per-period
// completion tracking. Completion state is keyed by period keys from
// internal/period, so a daily goal toggled on Monday is independent of
// Tuesday, while a weekly goal toggled on Monday still reads done on
// Friday of the same ISO week.
package goals

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/feelfree/ff/internal/models"
	"github.com/feelfree/ff/internal/period"
	"github.com/feelfree/ff/internal/records"
	"github.com/feelfree/ff/internal/store"
)

// FilterAll selects every goal regardless of frequency
const FilterAll = "all"

// ValidationError reports invalid user input on goal operations
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Tracker manages the goal collection
type Tracker struct {
	col *records.Collection[models.Goal]
}

// NewTracker creates a tracker backed by st. Goal mutations are
// mirrored to the backend through the outbox.
func NewTracker(st *store.Store) *Tracker {
	return &Tracker{col: records.New[models.Goal](st, store.KeyGoals, "goals")}
}

// Load reads the persisted goals into memory
func (t *Tracker) Load() error {
	return t.col.Load()
}

// All returns the goals, most recent first
func (t *Tracker) All() []models.Goal {
	return t.col.All()
}

// Get returns the goal with the given id
func (t *Tracker) Get(id string) (models.Goal, error) {
	return t.col.Get(id)
}

// Add creates a goal. The title is trimmed and must be non-empty; the
// frequency must be daily, weekly, or monthly. New goals go to the
// head of the collection with an empty completion set.
func (t *Tracker) Add(title string, freq models.Frequency) (models.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Goal{}, &ValidationError{Field: "title", Msg: "must not be empty"}
	}
	if !models.IsValidFrequency(freq) {
		return models.Goal{}, &ValidationError{Field: "frequency", Msg: fmt.Sprintf("unknown frequency %q", freq)}
	}

	goal := models.Goal{
		ID:          uuid.NewString(),
		Title:       title,
		Frequency:   freq,
		CreatedAt:   time.Now().UTC(),
		Completions: map[string]bool{},
	}
	if err := t.col.Create(goal); err != nil {
		return models.Goal{}, err
	}
	return goal, nil
}

// Toggle flips the completion state of the goal's current period:
// present keys are removed (incomplete), absent keys inserted (done).
// Returns records.ErrNotFound for unknown ids.
func (t *Tracker) Toggle(id string, now time.Time) (models.Goal, error) {
	return t.col.Update(id, func(g *models.Goal) {
		key := period.Key(g.Frequency, now)
		comp := make(map[string]bool, len(g.Completions))
		for k, v := range g.Completions {
			comp[k] = v
		}
		if comp[key] {
			delete(comp, key)
		} else {
			comp[key] = true
		}
		g.Completions = comp
	})
}

// IsDone reports whether the goal is completed for the period
// containing now.
func IsDone(g models.Goal, now time.Time) bool {
	return g.Completions[period.Key(g.Frequency, now)]
}

// Remove deletes a goal. Removing an unknown id is a no-op.
func (t *Tracker) Remove(id string) error {
	return t.col.Remove(id)
}

// FilterByFrequency returns the goals matching filter, preserving
// order. FilterAll is the identity.
func FilterByFrequency(goals []models.Goal, filter string) []models.Goal {
	if filter == FilterAll || filter == "" {
		return goals
	}
	freq := models.NormalizeFrequency(filter)
	out := make([]models.Goal, 0, len(goals))
	for _, g := range goals {
		if g.Frequency == freq {
			out = append(out, g)
		}
	}
	return out
}

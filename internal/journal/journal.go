// Package journal owns the free-form journal entries. Entries live in
// the local store and mirror to the backend through the outbox.
package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/feelfree/ff/internal/models"
	"github.com/feelfree/ff/internal/records"
	"github.com/feelfree/ff/internal/store"
)

// ValidationError reports invalid user input on journal operations
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Book manages the journal collection
type Book struct {
	col *records.Collection[models.JournalEntry]
}

// NewBook creates a journal backed by st
func NewBook(st *store.Store) *Book {
	return &Book{col: records.New[models.JournalEntry](st, store.KeyJournal, "journal")}
}

// Load reads the persisted entries into memory
func (b *Book) Load() error {
	return b.col.Load()
}

// All returns the entries, most recent first
func (b *Book) All() []models.JournalEntry {
	return b.col.All()
}

// Get returns the entry with the given id
func (b *Book) Get(id string) (models.JournalEntry, error) {
	return b.col.Get(id)
}

// Add creates an entry. The title is trimmed and must be non-empty;
// the body may be blank.
func (b *Book) Add(title, body string) (models.JournalEntry, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.JournalEntry{}, &ValidationError{Field: "title", Msg: "must not be empty"}
	}

	now := time.Now().UTC()
	entry := models.JournalEntry{
		ID:        uuid.NewString(),
		Title:     title,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := b.col.Create(entry); err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

// Edit replaces the entry's title and/or body. Blank title keeps the
// existing one. Returns records.ErrNotFound for unknown ids.
func (b *Book) Edit(id, title, body string) (models.JournalEntry, error) {
	title = strings.TrimSpace(title)
	return b.col.Update(id, func(e *models.JournalEntry) {
		if title != "" {
			e.Title = title
		}
		e.Body = body
		e.UpdatedAt = time.Now().UTC()
	})
}

// Remove deletes an entry. Removing an unknown id is a no-op.
func (b *Book) Remove(id string) error {
	return b.col.Remove(id)
}

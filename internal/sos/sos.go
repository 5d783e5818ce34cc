// Package sos manages emergency contacts: a fixed set of seeded
// helplines merged with the user's own contacts. Only personal
// contacts are persisted or mirrored; helplines are hard-coded and
// cannot be removed.
package sos

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/feelfree/ff/internal/models"
	"github.com/feelfree/ff/internal/records"
	"github.com/feelfree/ff/internal/store"
)

// ValidationError reports invalid contact input
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Default helplines, always present.
//   - 112: national emergency number
//   - AASRA: 24x7 suicide prevention helpline
//   - KIRAN: government mental health helpline
var defaultContacts = []models.SosContact{
	{ID: "emergency-112", Name: "Emergency (112)", Phone: "112", Type: models.ContactHelpline},
	{ID: "aasra", Name: "AASRA Helpline", Phone: "+919820466726", Type: models.ContactHelpline},
	{ID: "kiran", Name: "KIRAN Mental Health", Phone: "18005990019", Type: models.ContactHelpline},
}

// Book is the merged contact list backed by the local store
type Book struct {
	personal *records.Collection[models.SosContact]
}

// NewBook creates a contact book backed by st. Personal contacts are
// mirrored to the backend through the outbox.
func NewBook(st *store.Store) *Book {
	return &Book{personal: records.New[models.SosContact](st, store.KeySosContacts, "sos-contacts")}
}

// Load reads the persisted personal contacts
func (b *Book) Load() error {
	return b.personal.Load()
}

// All returns helplines first, then personal contacts most-recent-first
func (b *Book) All() []models.SosContact {
	out := make([]models.SosContact, 0, len(defaultContacts)+b.personal.Len())
	out = append(out, defaultContacts...)
	out = append(out, b.personal.All()...)
	return out
}

// Add creates a personal contact. Name and phone are required.
func (b *Book) Add(name, phone string) (models.SosContact, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return models.SosContact{}, &ValidationError{Field: "name", Msg: "must not be empty"}
	}
	if phone == "" {
		return models.SosContact{}, &ValidationError{Field: "phone", Msg: "must not be empty"}
	}

	contact := models.SosContact{
		ID:    uuid.NewString(),
		Name:  name,
		Phone: phone,
		Type:  models.ContactPersonal,
	}
	if err := b.personal.Create(contact); err != nil {
		return models.SosContact{}, err
	}
	return contact, nil
}

// Remove deletes a personal contact. Helplines cannot be removed;
// removing an unknown id is a no-op.
func (b *Book) Remove(id string) error {
	for _, d := range defaultContacts {
		if d.ID == id {
			return &ValidationError{Field: "id", Msg: "helpline contacts cannot be removed"}
		}
	}
	return b.personal.Remove(id)
}

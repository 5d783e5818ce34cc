package sos

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/feelfree/ff/internal/models"
	"github.com/feelfree/ff/internal/store"
)

func setupBook(t *testing.T) (*Book, *store.Store) {
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
	return NewBook(st), st
}

func TestHelplinesAlwaysPresent(t *testing.T) {
	b, _ := setupBook(t)
	all := b.All()
	if len(all) != 3 {
		t.Fatalf("defaults: got %d contacts", len(all))
	}
	for _, c := range all {
		if c.Type != models.ContactHelpline {
			t.Fatalf("default contact %s has type %s", c.ID, c.Type)
		}
	}
}

func TestAddPersonalContactMergesAfterHelplines(t *testing.T) {
	b, _ := setupBook(t)

	c, err := b.Add("  Sam  ", " 555-0101 ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.Name != "Sam" || c.Phone != "555-0101" || c.Type != models.ContactPersonal {
		t.Fatalf("contact: %+v", c)
	}

	all := b.All()
	if len(all) != 4 || all[3].ID != c.ID {
		t.Fatalf("merged list: %v", all)
	}
}

func TestAddValidatesNameAndPhone(t *testing.T) {
	b, _ := setupBook(t)
	var verr *ValidationError
	if _, err := b.Add("  ", "555"); !errors.As(err, &verr) {
		t.Fatalf("blank name: got %v", err)
	}
	if _, err := b.Add("Sam", ""); !errors.As(err, &verr) {
		t.Fatalf("blank phone: got %v", err)
	}
}

func TestOnlyPersonalContactsPersist(t *testing.T) {
	b, st := setupBook(t)
	c, _ := b.Add("Sam", "555-0101")

	raw, ok, err := st.Get(store.KeySosContacts)
	if err != nil || !ok {
		t.Fatalf("stored payload: ok=%v err=%v", ok, err)
	}
	// only the personal contact is serialized, never the helplines
	reloaded := NewBook(st)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	all := reloaded.All()
	if len(all) != 4 || all[3].ID != c.ID {
		t.Fatalf("reloaded merge: %v", all)
	}
	for _, d := range defaultContacts {
		if strings.Contains(raw, d.ID) {
			t.Fatalf("helpline %s leaked into storage: %s", d.ID, raw)
		}
	}
}

func TestRemoveProtectsHelplines(t *testing.T) {
	b, _ := setupBook(t)
	c, _ := b.Add("Sam", "555-0101")

	var verr *ValidationError
	if err := b.Remove("kiran"); !errors.As(err, &verr) {
		t.Fatalf("helpline removal: got %v, want ValidationError", err)
	}

	if err := b.Remove(c.ID); err != nil {
		t.Fatalf("remove personal: %v", err)
	}
	if err := b.Remove(c.ID); err != nil {
		t.Fatalf("remove again: %v", err)
	}
	if len(b.All()) != 3 {
		t.Fatalf("contacts after removal: %v", b.All())
	}
}

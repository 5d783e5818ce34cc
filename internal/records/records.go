// Package records implements the local-first collection pattern every
// screen shares: an ordered in-memory slice of records mirrored to
// the durable store on every mutation, with optional enqueueing of
// best-effort remote mirror operations through the outbox. Mutations
// persist first and only then update the visible state, so a storage
// failure surfaces as an error and never leaves memory ahead of disk.
//
// A collection has exactly one logical writer (the active command or
// screen session); methods are not safe for concurrent use.
package records

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/feelfree/ff/internal/store"
)

// ErrNotFound is returned when an id is absent from the collection
var ErrNotFound = errors.New("record not found")

// Record is any value with a stable identity
type Record interface {
	RecordID() string
}

// Collection holds an ordered set of records (most-recent-first)
// persisted under a single store key.
type Collection[T Record] struct {
	st     *store.Store
	key    string
	entity string // outbox entity name; empty disables mirroring
	items  []T
}

// New creates a collection persisted under key. A non-empty entity
// name enables outbox mirroring of mutations to the remote backend.
func New[T Record](st *store.Store, key, entity string) *Collection[T] {
	return &Collection[T]{st: st, key: key, entity: entity}
}

// Load reads the persisted collection into memory. A missing key is
// an empty collection, not an error.
func (c *Collection[T]) Load() error {
	raw, ok, err := c.st.Get(c.key)
	if err != nil {
		return err
	}
	if !ok {
		c.items = nil
		return nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return fmt.Errorf("decode %s: %w", c.key, err)
	}
	c.items = items
	return nil
}

// All returns the in-memory records in order. The returned slice is
// shared; callers must not mutate it.
func (c *Collection[T]) All() []T {
	return c.items
}

// Len returns the number of records
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Get returns the record with the given id
func (c *Collection[T]) Get(id string) (T, error) {
	for _, it := range c.items {
		if it.RecordID() == id {
			return it, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Create prepends item (most-recent-first ordering), persists, and
// enqueues a mirror upsert. The caller is responsible for validation
// and for assigning the id.
func (c *Collection[T]) Create(item T) error {
	next := make([]T, 0, len(c.items)+1)
	next = append(next, item)
	next = append(next, c.items...)
	if err := c.persist(next); err != nil {
		return err
	}
	c.items = next
	c.mirror(store.ActionUpsert, item)
	return nil
}

// Update applies mutate to the record with the given id, persists,
// and enqueues a mirror upsert. Returns ErrNotFound for absent ids.
func (c *Collection[T]) Update(id string, mutate func(*T)) (T, error) {
	var zero T
	idx := -1
	for i, it := range c.items {
		if it.RecordID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	next := make([]T, len(c.items))
	copy(next, c.items)
	mutate(&next[idx])

	if err := c.persist(next); err != nil {
		return zero, err
	}
	c.items = next
	c.mirror(store.ActionUpsert, next[idx])
	return next[idx], nil
}

// Remove deletes the record with the given id. Removing an absent id
// is a no-op, not an error.
func (c *Collection[T]) Remove(id string) error {
	idx := -1
	for i, it := range c.items {
		if it.RecordID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	next := make([]T, 0, len(c.items)-1)
	next = append(next, c.items[:idx]...)
	next = append(next, c.items[idx+1:]...)

	if err := c.persist(next); err != nil {
		return err
	}
	removed := c.items[idx]
	c.items = next
	if c.entity != "" {
		if err := c.st.EnqueueOutbox(c.entity, store.ActionDelete, id, "{}"); err != nil {
			logMirrorSkip(c.entity, removed.RecordID(), err)
		}
	}
	return nil
}

// ReplaceAll swaps the whole collection, used when an authoritative
// remote is the source of truth: remote wins, no merge. No mirror
// operations are enqueued.
func (c *Collection[T]) ReplaceAll(items []T) error {
	if err := c.persist(items); err != nil {
		return err
	}
	c.items = items
	return nil
}

func (c *Collection[T]) persist(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	return c.st.Put(c.key, string(data))
}

// mirror enqueues a best-effort remote upsert. Enqueue failure is
// logged and swallowed: mirroring never blocks the local mutation.
func (c *Collection[T]) mirror(action string, item T) {
	if c.entity == "" {
		return
	}
	payload, err := json.Marshal(item)
	if err != nil {
		logMirrorSkip(c.entity, item.RecordID(), err)
		return
	}
	if err := c.st.EnqueueOutbox(c.entity, action, item.RecordID(), string(payload)); err != nil {
		logMirrorSkip(c.entity, item.RecordID(), err)
	}
}

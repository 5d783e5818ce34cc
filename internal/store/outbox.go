package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Outbox actions, mapped to mirror endpoints by the sync command.
const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
)

// Backoff schedule bounds for failed deliveries.
const (
	baseBackoff = time.Minute
	maxBackoff  = time.Hour
)

// OutboxEntry is one pending remote mirror operation
type OutboxEntry struct {
	ID        int64
	Entity    string // "goals", "journal", "sos-contacts"
	Action    string
	EntityID  string
	Payload   string // JSON snapshot of the record at enqueue time
	CreatedAt time.Time
	Attempts  int
	LastError string
}

// EnqueueOutbox records a pending mirror operation. A new upsert for
// an entity supersedes any undelivered one for the same record, so at
// most one pending row exists per (entity, action, entity_id).
func (s *Store) EnqueueOutbox(entity, action, entityID, payload string) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		DELETE FROM outbox
		WHERE entity = ? AND action = ? AND entity_id = ? AND delivered_at IS NULL`,
		entity, action, entityID)
	if err != nil {
		return fmt.Errorf("supersede pending: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO outbox (entity, action, entity_id, payload) VALUES (?, ?, ?, ?)`,
		entity, action, entityID, payload)
	if err != nil {
		return fmt.Errorf("enqueue %s %s: %w", action, entity, err)
	}
	return tx.Commit()
}

// PendingOutbox returns undelivered entries due at or before now, in
// enqueue order.
func (s *Store) PendingOutbox(now time.Time) ([]OutboxEntry, error) {
	rows, err := s.conn.Query(`
		SELECT id, entity, action, entity_id, payload, created_at, attempts, last_error
		FROM outbox
		WHERE delivered_at IS NULL AND next_attempt_at <= ?
		ORDER BY id ASC`,
		now.UTC().Format(time.DateTime))
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var entries []OutboxEntry
	for rows.Next() {
		var (
			e         OutboxEntry
			createdAt string
			lastError sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Entity, &e.Action, &e.EntityID, &e.Payload, &createdAt, &e.Attempts, &lastError); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		if t, err := time.Parse(time.DateTime, createdAt); err == nil {
			e.CreatedAt = t
		}
		e.LastError = lastError.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// OutboxDepth returns the number of undelivered entries
func (s *Store) OutboxDepth() (int, error) {
	var n int
	err := s.conn.QueryRow(`SELECT COUNT(*) FROM outbox WHERE delivered_at IS NULL`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count outbox: %w", err)
	}
	return n, nil
}

// MarkDelivered records a successful delivery
func (s *Store) MarkDelivered(id int64) error {
	_, err := s.conn.Exec(`
		UPDATE outbox SET delivered_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark delivered id=%d: %w", id, err)
	}
	return nil
}

// MarkFailed records a failed attempt and schedules the retry with
// exponential backoff: 1m, 2m, 4m ... capped at an hour.
func (s *Store) MarkFailed(id int64, attempt int, cause error) error {
	delay := baseBackoff << uint(attempt)
	if delay > maxBackoff || delay <= 0 {
		delay = maxBackoff
	}
	next := time.Now().Add(delay).UTC().Format(time.DateTime)

	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	_, err := s.conn.Exec(`
		UPDATE outbox
		SET attempts = attempts + 1, last_error = ?, next_attempt_at = ?
		WHERE id = ?`,
		msg, next, id)
	if err != nil {
		return fmt.Errorf("mark failed id=%d: %w", id, err)
	}
	return nil
}

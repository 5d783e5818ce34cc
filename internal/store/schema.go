package store

import "database/sql"

// SchemaVersion is the current database schema version
const SchemaVersion = 1

const schema = `
-- Serialized record collections, one row per store key
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Pending remote mirror operations awaiting delivery
CREATE TABLE IF NOT EXISTS outbox (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    entity TEXT NOT NULL,
    action TEXT NOT NULL,
    entity_id TEXT NOT NULL,
    payload TEXT NOT NULL DEFAULT '{}',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    attempts INTEGER NOT NULL DEFAULT 0,
    last_error TEXT DEFAULT '',
    next_attempt_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    delivered_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_outbox_pending
    ON outbox(next_attempt_at) WHERE delivered_at IS NULL;

-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
`

// migrate creates the schema and records the current version. Future
// incompatible changes bump SchemaVersion and add stepwise migrations
// here, the kv payload schema itself is versioned via key suffixes.
func (s *Store) migrate() error {
	if _, err := s.conn.Exec(schema); err != nil {
		return err
	}
	var v int
	err := s.conn.QueryRow(`SELECT version FROM schema_version LIMIT 1`).Scan(&v)
	if err == sql.ErrNoRows {
		_, err = s.conn.Exec(`INSERT INTO schema_version (version) VALUES (?)`, SchemaVersion)
	}
	return err
}

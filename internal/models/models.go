package models

import (
	"time"
)

// Frequency represents how often a goal recurs
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// IsValidFrequency reports whether f is a recognized goal frequency
func IsValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// NormalizeFrequency maps common aliases ("day", "w") to canonical values
func NormalizeFrequency(s string) Frequency {
	switch s {
	case "day", "d":
		return FrequencyDaily
	case "week", "w":
		return FrequencyWeekly
	case "month", "m":
		return FrequencyMonthly
	default:
		return Frequency(s)
	}
}

// ContactType discriminates SOS contacts
type ContactType string

const (
	ContactPersonal ContactType = "personal"
	ContactHelpline ContactType = "helpline"
)

// SentimentLabel is the human-readable sentiment bucket for a note
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNeutral  SentimentLabel = "Neutral"
	SentimentNegative SentimentLabel = "Negative"
)

// Goal is a recurring goal tracked per period.
// Completions maps period keys (see internal/period) to presence;
// a goal counts as done "now" iff the current period key is a member.
type Goal struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Frequency   Frequency       `json:"frequency"`
	CreatedAt   time.Time       `json:"created_at"`
	Completions map[string]bool `json:"completions"`
}

// RecordID implements records.Record
func (g Goal) RecordID() string { return g.ID }

// JournalEntry is a local-first free-text journal record
type JournalEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordID implements records.Record
func (e JournalEntry) RecordID() string { return e.ID }

// MoodEntry is one mood log for a calendar date. The backend is
// authoritative for moods; local copies are a refresh-only cache.
type MoodEntry struct {
	ID        string    `json:"id,omitempty"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Mood      string    `json:"mood"`
	Note      string    `json:"note,omitempty"`
	Sentiment int       `json:"sentiment,omitempty"` // -1, 0, +1
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// RecordID implements records.Record. The backend keys moods by date,
// so the date doubles as the cache identity when ID is empty.
func (m MoodEntry) RecordID() string {
	if m.ID != "" {
		return m.ID
	}
	return m.Date
}

// SosContact is an emergency contact. Helpline contacts are seeded
// defaults and are never persisted or deleted; personal contacts are.
type SosContact struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Phone string      `json:"phone"`
	Type  ContactType `json:"type"`
}

// RecordID implements records.Record
func (c SosContact) RecordID() string { return c.ID }

// ChatMessage is one message in a chat session
type ChatMessage struct {
	Sender    string    `json:"sender"` // "user" or "bot"
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Session is a chat session owned by the backend
type Session struct {
	ID        string     `json:"id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// RecordID implements records.Record
func (s Session) RecordID() string { return s.ID }

// User is the authenticated account
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

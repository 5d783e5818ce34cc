package api

import (
	"fmt"
	"net/url"

	"github.com/feelfree/ff/internal/models"
)

// --- Auth ---

// AuthResponse is the result of login and register
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login authenticates with email and password
func (c *Client) Login(email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.do("POST", "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account. Some backend versions omit the token
// from the register response; callers fall back to Login when empty.
func (c *Client) Register(name, email, password string) (*AuthResponse, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp AuthResponse
	if err := c.do("POST", "/auth/register", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Chat sessions ---

type startSessionResponse struct {
	SessionID string `json:"sessionId"`
}

// StartSession creates a new chat session and returns its id
func (c *Client) StartSession() (string, error) {
	var resp startSessionResponse
	if err := c.do("POST", "/sessions", nil, &resp); err != nil {
		return "", err
	}
	return resp.SessionID, nil
}

// ListSessions lists the account's chat sessions
func (c *Client) ListSessions() ([]models.Session, error) {
	var resp []models.Session
	if err := c.do("GET", "/sessions", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// EndSession marks a session as ended
func (c *Client) EndSession(sessionID string) error {
	body := map[string]any{"finalScores": map[string]any{}}
	return c.do("PATCH", fmt.Sprintf("/sessions/%s/end", url.PathEscape(sessionID)), body, nil)
}

type chatReply struct {
	Reply string `json:"reply"`
}

// SendMessage sends a user message in a session and returns the bot reply
func (c *Client) SendMessage(sessionID, message string) (string, error) {
	body := map[string]string{"sessionId": sessionID, "message": message}
	var resp chatReply
	if err := c.do("POST", "/chat/send", body, &resp); err != nil {
		return "", err
	}
	return resp.Reply, nil
}

// ChatHistory fetches the message history of a session
func (c *Client) ChatHistory(sessionID string) ([]models.ChatMessage, error) {
	var resp []models.ChatMessage
	if err := c.do("GET", "/chat/history/"+url.PathEscape(sessionID), nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// --- Moods (backend authoritative) ---

type moodsResponse struct {
	Moods []models.MoodEntry `json:"moods"`
}

// ListMoods fetches all mood entries
func (c *Client) ListMoods() ([]models.MoodEntry, error) {
	var resp moodsResponse
	if err := c.do("GET", "/moods", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Moods, nil
}

// MoodByDate fetches the mood logged for a YYYY-MM-DD date
func (c *Client) MoodByDate(date string) (*models.MoodEntry, error) {
	var resp models.MoodEntry
	if err := c.do("GET", "/moods/"+url.PathEscape(date), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveMood creates or replaces the mood for its date
func (c *Client) SaveMood(mood models.MoodEntry) (*models.MoodEntry, error) {
	var resp struct {
		Mood *models.MoodEntry `json:"mood"`
	}
	if err := c.do("POST", "/moods", mood, &resp); err != nil {
		return nil, err
	}
	if resp.Mood != nil {
		return resp.Mood, nil
	}
	return &mood, nil
}

// DeleteMood removes the mood logged for a date
func (c *Client) DeleteMood(date string) error {
	return c.do("DELETE", "/moods/"+url.PathEscape(date), nil, nil)
}

// MoodSummary holds aggregate mood statistics for an account
type MoodSummary struct {
	Total     int            `json:"total"`
	ByMood    map[string]int `json:"by_mood"`
	AvgScore  float64        `json:"avg_score"`
	FirstDate string         `json:"first_date,omitempty"`
	LastDate  string         `json:"last_date,omitempty"`
}

// GetMoodSummary fetches the aggregate summary for a user
func (c *Client) GetMoodSummary(userID string) (*MoodSummary, error) {
	var resp MoodSummary
	if err := c.do("GET", "/moods/summary/"+url.PathEscape(userID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Mirror endpoints (best-effort, driven by the outbox) ---

// MirrorUpsert pushes a local record snapshot to the backend mirror
// for its entity ("goals", "journal", "sos-contacts").
func (c *Client) MirrorUpsert(entity, id string, payload []byte) error {
	return c.do("PUT", fmt.Sprintf("/%s/%s", entity, url.PathEscape(id)), rawJSON(payload), nil)
}

// MirrorDelete removes a mirrored record. A missing mirror row means
// the delete already holds, so NotFound is success.
func (c *Client) MirrorDelete(entity, id string) error {
	err := c.do("DELETE", fmt.Sprintf("/%s/%s", entity, url.PathEscape(id)), nil, nil)
	if err != nil && isNotFound(err) {
		return nil
	}
	return err
}

// rawJSON lets a pre-marshaled payload pass through do's marshal step
type rawJSON []byte

func (r rawJSON) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("{}"), nil
	}
	return r, nil
}

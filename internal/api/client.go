// Package api is the typed HTTP client for the FeelFree backend. The
// backend is authoritative for auth, chat sessions, and moods; goals,
// journal entries, and SOS contacts are only mirrored best-effort.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Sentinel errors for common HTTP error classes.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("invalid request")
	ErrRemoteUnavailable = errors.New("backend unavailable")
)

// TokenFunc supplies the current bearer token; empty string sends the
// request unauthenticated.
type TokenFunc func() (string, error)

// Client is an HTTP client for the FeelFree backend
type Client struct {
	BaseURL string
	Token   TokenFunc
	HTTP    *http.Client
}

// New creates a client for the given base URL
func New(baseURL string, token TokenFunc) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// apiError is the standard error body from the server.
type apiError struct {
	Message string `json:"message"`
	Error_  string `json:"error"`
}

func (e *apiError) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error_
}

// do executes a request and decodes the response into result. The
// backend sometimes wraps payloads as {success, data} and sometimes
// returns them raw; decodeBody is the single place that normalizes
// both shapes, so the ambiguity never reaches callers.
func (c *Client) do(method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != nil {
		token, err := c.Token()
		if err != nil {
			return fmt.Errorf("load token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrRemoteUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		msg := ""
		if json.Unmarshal(respBody, &apiErr) == nil {
			msg = apiErr.text()
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		case resp.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, msg)
		case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
			return fmt.Errorf("%w: %s", ErrValidation, msg)
		case resp.StatusCode >= 500:
			return fmt.Errorf("%w: %s", ErrRemoteUnavailable, msg)
		default:
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, msg)
		}
	}

	if result != nil && len(respBody) > 0 {
		if err := decodeBody(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// envelope is the optional {success, data} wrapper some endpoints use
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// decodeBody normalizes enveloped and raw response bodies into one
// decoded result.
func decodeBody(body []byte, result any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Success != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, result)
	}
	return json.Unmarshal(body, result)
}

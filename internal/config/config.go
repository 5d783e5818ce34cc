// Package config manages the on-disk app configuration and auth
// credentials under ~/.config/feelfree: config.json (backend base
// URL) and auth.json (bearer token + account identity). Writes are
// atomic (temp file + rename) and serialized with a file lock.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configFile = "config.json"
	authFile   = "auth.json"
	lockFile   = "config.lock"

	// DefaultAPIURL is the development backend; production deployments
	// set api.url in config.json or FEELFREE_API_URL.
	DefaultAPIURL = "http://localhost:5000/api"
)

// APIConfig holds backend connection settings
type APIConfig struct {
	URL string `json:"url,omitempty"`
}

// Config is the app config stored at <dir>/config.json
type Config struct {
	API APIConfig `json:"api"`
}

// AuthCredentials stores authentication state at <dir>/auth.json
type AuthCredentials struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email"`
}

// Dir returns the data directory, creating it if necessary. An empty
// override selects ~/.config/feelfree.
func Dir(override string) (string, error) {
	if override != "" {
		if err := os.MkdirAll(override, 0755); err != nil {
			return "", fmt.Errorf("create data dir: %w", err)
		}
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	dir := filepath.Join(home, ".config", "feelfree")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}

// Load reads the config from dir; a missing file is an empty config
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to dir under the config lock
func Save(dir string, cfg *Config) error {
	return withLock(dir, func() error {
		return writeAtomic(filepath.Join(dir, configFile), cfg, 0644)
	})
}

// APIBaseURL resolves the backend base URL: FEELFREE_API_URL wins,
// then config.json, then the development default.
func APIBaseURL(dir string) string {
	if url := os.Getenv("FEELFREE_API_URL"); url != "" {
		return url
	}
	if cfg, err := Load(dir); err == nil && cfg.API.URL != "" {
		return cfg.API.URL
	}
	return DefaultAPIURL
}

// LoadAuth reads stored credentials; nil when not logged in
func LoadAuth(dir string) (*AuthCredentials, error) {
	data, err := os.ReadFile(filepath.Join(dir, authFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var creds AuthCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	if creds.Token == "" {
		return nil, nil
	}
	return &creds, nil
}

// SaveAuth persists credentials with owner-only permissions
func SaveAuth(dir string, creds *AuthCredentials) error {
	return withLock(dir, func() error {
		return writeAtomic(filepath.Join(dir, authFile), creds, 0600)
	})
}

// ClearAuth removes stored credentials; already-absent is a no-op
func ClearAuth(dir string) error {
	err := os.Remove(filepath.Join(dir, authFile))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// TokenProvider returns a func the API client calls per request to
// fetch the current bearer token; empty string means unauthenticated.
func TokenProvider(dir string) func() (string, error) {
	return func() (string, error) {
		creds, err := LoadAuth(dir)
		if err != nil {
			return "", err
		}
		if creds == nil {
			return "", nil
		}
		return creds.Token, nil
	}
}

// writeAtomic marshals v and writes it via temp file + rename
func writeAtomic(path string, v any, mode os.FileMode) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// withLock serializes config writes using a file lock
func withLock(dir string, fn func() error) error {
	lockPath := filepath.Join(dir, lockFile)
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := flockExclusive(f); err != nil {
		return err
	}
	defer flockRelease(f)

	return fn()
}

// Package state keeps small UI settings between runs.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const (
	stateFileName = "settings.json"
	logFileName   = "novdl.log"
)

// Settings is what the UIs remember between runs.
type Settings struct {
	LastURL string `json:"last_url,omitempty"`
}

// Store manages persistent settings.
type Store struct {
	path string
	data Settings
	mu   sync.RWMutex
}

// NewStore creates or loads settings from XDG_STATE_HOME/novdl/.
func NewStore() (*Store, error) {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	store := &Store{path: filepath.Join(dir, stateFileName)}
	if err := store.load(); err != nil {
		// Non-fatal - start with empty settings
		store.data = Settings{}
	}
	return store, nil
}

// Dir returns XDG_STATE_HOME/novdl or ~/.local/state/novdl
func Dir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "novdl")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "novdl")
}

// LogPath is where the interactive UIs write their log.
func LogPath() string {
	return filepath.Join(Dir(), logFileName)
}

// LastURL returns the last submitted URL, or "" if none.
func (s *Store) LastURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.LastURL
}

// SetLastURL remembers url for the next run.
func (s *Store) SetLastURL(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.LastURL = url
	return s.save()
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &s.data)
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

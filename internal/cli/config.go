package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"

	"github.com/mcoot/othello/internal/services/game"
)

const stateFileName = "othello/seats.json"

// Config holds CLI configuration
type Config struct {
	ServerURL string
	StateFile string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("OTHELLO_SERVER", "http://localhost:8080"),
		StateFile: os.Getenv("OTHELLO_STATE_FILE"),
		Output:    "text",
		Verbose:   false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// SavedSeats are the tokens this CLI holds for one game
type SavedSeats struct {
	Server string          `json:"server"`
	Tokens game.SeatTokens `json:"tokens"`
}

// SeatStore remembers seat tokens per game in a JSON state file
type SeatStore struct {
	mu    sync.Mutex
	path  string
	Games map[string]SavedSeats `json:"games"`
}

// LoadSeatStore reads the state file at path, or the XDG state location when path is empty.
// A missing file yields an empty store.
func LoadSeatStore(path string) (*SeatStore, error) {
	if path == "" {
		var err error
		if path, err = xdg.StateFile(stateFileName); err != nil {
			return nil, fmt.Errorf("locate state file: %w", err)
		}
	}

	store := &SeatStore{path: path, Games: make(map[string]SavedSeats)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return store, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, store); err != nil {
		return nil, fmt.Errorf("parse state file %s: %w", path, err)
	}
	if store.Games == nil {
		store.Games = make(map[string]SavedSeats)
	}
	return store, nil
}

// Path returns the backing file
func (s *SeatStore) Path() string {
	return s.path
}

// Get returns the saved seats for a game
func (s *SeatStore) Get(gameID string) (SavedSeats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved, ok := s.Games[gameID]
	return saved, ok
}

// Put records the tokens for a game and writes the file
func (s *SeatStore) Put(gameID string, saved SavedSeats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Games[gameID] = saved
	return s.save()
}

// Remove forgets a game and writes the file
func (s *SeatStore) Remove(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Games[gameID]; !ok {
		return nil
	}
	delete(s.Games, gameID)
	return s.save()
}

func (s *SeatStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

// tokenFor returns the saved token for a colour ("black" or "white")
func (s SavedSeats) tokenFor(player string) string {
	switch player {
	case "black":
		return s.Tokens.Black
	case "white":
		return s.Tokens.White
	default:
		return ""
	}
}

// anyToken returns one saved token, preferring Black
func (s SavedSeats) anyToken() string {
	if s.Tokens.Black != "" {
		return s.Tokens.Black
	}
	return s.Tokens.White
}

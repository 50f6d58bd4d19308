package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MaxEntries caps how many rounds are kept on disk.
const MaxEntries = 100

// Result stores one completed round
type Result struct {
	Finished time.Time     `json:"finished"`
	Elapsed  time.Duration `json:"elapsed"`
	WPM      float64       `json:"wpm"`
	Accuracy float64       `json:"accuracy"`
	Chars    int           `json:"chars"`
}

type History struct {
	Rounds    []Result  `json:"rounds"`
	LastSaved time.Time `json:"last_saved"`
}

// Manager handles history persistence
type Manager struct {
	mu      sync.RWMutex
	history History
	path    string
	dirty   bool
}

// NewManager opens the history file under the XDG state directory.
func NewManager() (*Manager, error) {
	path, err := historyPath()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(path), nil
}

func NewManagerAt(path string) *Manager {
	m := &Manager{path: path}
	m.load()
	return m
}

func historyPath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "jankey", "history.json"), nil
}

func (m *Manager) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return // no history yet
	}
	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return
	}
	m.history = h
}

// Record appends a round, dropping the oldest beyond MaxEntries.
func (m *Manager) Record(r Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history.Rounds = append(m.history.Rounds, r)
	if over := len(m.history.Rounds) - MaxEntries; over > 0 {
		m.history.Rounds = append([]Result(nil), m.history.Rounds[over:]...)
	}
	m.dirty = true
}

// Best returns the highest-WPM round.
func (m *Manager) Best() (Result, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var best Result
	found := false
	for _, r := range m.history.Rounds {
		if !found || r.WPM > best.WPM {
			best = r
			found = true
		}
	}
	return best, found
}

// Recent returns up to n rounds, newest first.
func (m *Manager) Recent(n int) []Result {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rounds := m.history.Rounds
	if n > len(rounds) {
		n = len(rounds)
	}
	out := make([]Result, 0, n)
	for i := len(rounds) - 1; i >= len(rounds)-n; i-- {
		out = append(out, rounds[i])
	}
	return out
}

// Save persists the history to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirty {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}

	m.history.LastSaved = time.Now()
	data, err := json.MarshalIndent(m.history, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return err
	}

	m.dirty = false
	return nil
}

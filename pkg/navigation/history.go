package navigation

import (
	"fmt"
	"sync"
)

// HistoryMode selects how navigable locations are represented.
type HistoryMode string

// History mode constants.
const (
	// HistoryWeb addresses views by real URL paths under the base path.
	HistoryWeb HistoryMode = "web"
	// HistoryMemory keeps locations in memory with no address bar.
	HistoryMemory HistoryMode = "memory"
)

// Validate checks if the mode is a supported history mode.
func (m HistoryMode) Validate() error {
	switch m {
	case HistoryWeb, HistoryMemory:
		return nil
	default:
		return &ConfigError{
			Index:  -1,
			Field:  "history",
			Value:  string(m),
			Reason: fmt.Sprintf("must be %s or %s", HistoryWeb, HistoryMemory),
		}
	}
}

// History records visited locations. It is the collaborator a Navigator
// writes to after a path has been resolved.
type History interface {
	Push(path string)
	Replace(path string)
	Location() string
}

// MemoryHistory is an in-memory History with back and forward traversal.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []string
	index   int
}

// NewMemoryHistory creates a history positioned at start.
func NewMemoryHistory(start string) *MemoryHistory {
	if start == "" {
		start = "/"
	}
	return &MemoryHistory{entries: []string{start}}
}

// Push appends path after the current entry, discarding any forward entries.
func (h *MemoryHistory) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], path)
	h.index = len(h.entries) - 1
}

// Replace overwrites the current entry.
func (h *MemoryHistory) Replace(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.index] = path
}

// Back moves one entry back. It reports false at the first entry.
func (h *MemoryHistory) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == 0 {
		return false
	}
	h.index--
	return true
}

// Forward moves one entry forward. It reports false at the last entry.
func (h *MemoryHistory) Forward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index >= len(h.entries)-1 {
		return false
	}
	h.index++
	return true
}

// Location returns the current entry.
func (h *MemoryHistory) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Len returns the number of entries, including forward entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

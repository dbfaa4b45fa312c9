package memory

import (
	"fmt"
	"slices"
	"sync"
	"unicode/utf8"
)

// InMemoryStore is a naive process‑local MemoryStore with the same session
// semantics as FileStore (ordered entries, MaxItems eviction, absent session
// is empty) but no persistence.
//
// Concurrency: protected by RWMutex.
type InMemoryStore struct {
	mu       sync.RWMutex
	maxItems int
	sessions map[string][]string // sessionID -> entries, oldest first
}

// NewInMemoryStore creates a new in-memory memory store. FileMode is ignored.
func NewInMemoryStore(optFns ...func(o *Options)) (*InMemoryStore, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxItems <= 0 {
		return nil, fmt.Errorf("max items must be positive, got %d", opts.MaxItems)
	}
	return &InMemoryStore{maxItems: opts.MaxItems, sessions: make(map[string][]string)}, nil
}

// Append adds text to the session log evicting the oldest entries beyond
// MaxItems. Text must be valid UTF-8.
func (m *InMemoryStore) Append(sessionID string, text string) error {
	if !utf8.ValidString(text) {
		return ErrInvalidEntry
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = keepLast(append(m.sessions[sessionID], text), m.maxItems)
	return nil
}

// Get returns a copy of the session log.
func (m *InMemoryStore) Get(sessionID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := m.sessions[sessionID]
	out := make([]string, len(entries))
	copy(out, entries)
	return out, nil
}

// Clear empties a known session; unknown sessions are ignored.
func (m *InMemoryStore) Clear(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; ok {
		m.sessions[sessionID] = []string{}
	}
	return nil
}

// Sessions returns the known session ids, sorted.
func (m *InMemoryStore) Sessions() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

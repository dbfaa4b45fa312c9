package core

import "strings"

// Turn is the snapshot an agent instruction is resolved against: the incoming
// user input plus the recent memory window of the session.
type Turn struct {
	SessionID string
	Input     string
	Memory    []string
}

// MemoryContext joins the memory window one entry per line.
func (t Turn) MemoryContext() string { return strings.Join(t.Memory, "\n") }

// State exposes the turn as a template data map.
func (t Turn) State() map[string]any {
	return map[string]any{
		"session_id": t.SessionID,
		"input":      t.Input,
		"memory":     t.MemoryContext(),
		"entries":    t.Memory,
	}
}

package core

// DefaultMaxItems is the number of entries a session log keeps before the
// oldest entries are evicted.
const DefaultMaxItems = 100

// MemoryStore keeps an ordered, size bounded log of text entries per session.
//
// Contract:
//   - Append adds text to the end of the session log, creating the log on
//     first use, and evicts the oldest entries beyond the store's capacity
//   - Get returns the entries oldest first; an unknown session yields an empty
//     slice, never an error
//   - Clear empties a known session's log and is a no-op for unknown sessions
//
// Implementations must be safe for concurrent use.
type MemoryStore interface {
	Append(sessionID string, text string) error
	Get(sessionID string) ([]string, error)
	Clear(sessionID string) error
}

package memory

import (
	"github.com/hupe1980/chatmem/core"
)

// Window returns a copy of the last n entries. n <= 0 returns every entry.
func Window(entries []string, n int) []string {
	if n <= 0 || n > len(entries) {
		n = len(entries)
	}
	out := make([]string, n)
	copy(out, entries[len(entries)-n:])
	return out
}

// Recent loads the session log from store and returns its last n entries.
func Recent(store core.MemoryStore, sessionID string, n int) ([]string, error) {
	entries, err := store.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return Window(entries, n), nil
}

// Open selects a store implementation: a FileStore when path is set,
// otherwise an InMemoryStore.
func Open(path string, optFns ...func(o *Options)) (core.MemoryStore, error) {
	if path == "" {
		return NewInMemoryStore(optFns...)
	}
	return NewFileStore(path, optFns...)
}

package memory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"unicode/utf8"

	"github.com/hupe1980/chatmem/core"
)

// Options configures a memory store.
type Options struct {
	// MaxItems bounds every session log; older entries are evicted first.
	MaxItems int
	// FileMode is applied when a FileStore creates its backing file. Later
	// writes keep the mode the file already has.
	FileMode os.FileMode
}

// renameFile replaces the backing file with the written temp file.
var renameFile = os.Rename

func defaultOptions() Options {
	return Options{MaxItems: core.DefaultMaxItems, FileMode: 0o644}
}

// FileStore is a MemoryStore persisted to a single JSON file mapping session
// ids to arrays of entries. There is no in-memory cache: every call loads the
// whole document, and mutating calls write it back in full.
//
// Concurrency: a mutex owned by the store serializes every operation, so
// concurrent Appends never lose updates. Two processes sharing the same file
// are not coordinated.
type FileStore struct {
	mu       sync.Mutex
	path     string
	maxItems int
	mode     os.FileMode
}

// NewFileStore opens the store at path, creating the file with an empty
// mapping when it does not exist. An existing file is not inspected until
// the first operation.
func NewFileStore(path string, optFns ...func(o *Options)) (*FileStore, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	if path == "" {
		return nil, fmt.Errorf("memory file path cannot be empty")
	}
	if opts.MaxItems <= 0 {
		return nil, fmt.Errorf("max items must be positive, got %d", opts.MaxItems)
	}

	s := &FileStore{path: path, maxItems: opts.MaxItems, mode: opts.FileMode}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, &StorageError{Op: "init", Path: path, Err: err}
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, &StorageError{Op: "init", Path: path, Err: err}
		}
		if err := s.writeLocked(map[string][]string{}); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// MaxItems returns the per-session capacity.
func (s *FileStore) MaxItems() int { return s.maxItems }

// Append adds text to the session log and evicts the oldest entries beyond
// MaxItems before writing the document back. Text must be valid UTF-8.
func (s *FileStore) Append(sessionID string, text string) error {
	if !utf8.ValidString(text) {
		return ErrInvalidEntry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readLocked()
	if err != nil {
		return err
	}

	data[sessionID] = keepLast(append(data[sessionID], text), s.maxItems)

	return s.writeLocked(data)
}

// Get returns a copy of the session log, or an empty slice for an unknown
// session.
func (s *FileStore) Get(sessionID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readLocked()
	if err != nil {
		return nil, err
	}

	entries := data[sessionID]
	out := make([]string, len(entries))
	copy(out, entries)

	return out, nil
}

// Clear empties a known session's log. Unknown sessions are left untouched
// and the file is not rewritten.
func (s *FileStore) Clear(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readLocked()
	if err != nil {
		return err
	}

	if _, ok := data[sessionID]; !ok {
		return nil
	}
	data[sessionID] = []string{}

	return s.writeLocked(data)
}

// Sessions returns the sorted ids present in the document, including
// emptied ones.
func (s *FileStore) Sessions() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readLocked()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(data))
	for id := range data {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids, nil
}

// readLocked loads and validates the document; caller must hold mu.
func (s *FileStore) readLocked() (map[string][]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &StorageError{Op: "read", Path: s.path, Err: err}
	}

	if err := validateDocument(raw); err != nil {
		return nil, &StorageError{Op: "decode", Path: s.path, Err: err}
	}

	data := map[string][]string{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &StorageError{Op: "decode", Path: s.path, Err: err}
	}

	return data, nil
}

// writeLocked replaces the file with the encoded document through a temp file
// next to the real file, so a failed write leaves the previous contents
// intact; caller must hold mu. A symlinked path is resolved first and the
// link itself is kept. An existing file keeps its permission bits.
func (s *FileStore) writeLocked(data map[string][]string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return &StorageError{Op: "encode", Path: s.path, Err: err}
	}

	target := s.path
	if resolved, err := filepath.EvalSymlinks(s.path); err == nil {
		target = resolved
	}

	mode := s.mode
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	dir, base := filepath.Split(target)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, base+".*.tmp")
	if err != nil {
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	tmpName := tmp.Name()

	if err := writeAndClose(tmp, buf.Bytes(), mode); err != nil {
		_ = os.Remove(tmpName)
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}

	if err := renameFile(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}

	return nil
}

func writeAndClose(f *os.File, data []byte, mode os.FileMode) error {
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// keepLast returns the newest limit entries. The result never aliases a
// discarded prefix.
func keepLast(entries []string, limit int) []string {
	if len(entries) <= limit {
		return entries
	}
	out := make([]string, limit)
	copy(out, entries[len(entries)-limit:])
	return out
}

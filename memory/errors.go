package memory

import "fmt"

var (
	// ErrStorage is matched (via errors.Is) by every failure to read, decode
	// or write the backing file of a FileStore.
	ErrStorage = fmt.Errorf("memory storage failure")
	// ErrInvalidEntry is returned by Append for text that is not valid UTF-8.
	ErrInvalidEntry = fmt.Errorf("memory entry must be valid UTF-8")
)

// StorageError describes a failed storage operation. Op is one of "init",
// "read", "decode", "encode" or "write".
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("memory %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error { return e.Err }

// Is reports ErrStorage as a match so callers need not know the concrete type.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

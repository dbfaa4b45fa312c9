// Package memory contains concrete MemoryStore implementations. The store
// interface resides in the core package. Import github.com/hupe1980/chatmem/core
// and depend on core.MemoryStore in your code; select an implementation at
// wiring time:
//
//   - FileStore persists every session log to a single JSON file and re-reads
//     it on every call, so the file is the only source of truth and survives
//     restarts.
//   - InMemoryStore keeps the same semantics in a process local map for tests
//     and ephemeral sessions.
//
// Both bound each session to MaxItems entries, dropping the oldest first.
package memory

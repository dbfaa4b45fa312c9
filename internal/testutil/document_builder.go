package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// DocumentBuilder helps construct memory documents with fluent chaining.
// Example:
//
//	path := NewDocumentBuilder().Session("demo_user", "User: hi", "Assistant: hello!").Write(t, dir)
type DocumentBuilder struct {
	sessions map[string][]string
}

// NewDocumentBuilder creates a builder for an empty document.
func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{sessions: map[string][]string{}}
}

// Session appends entries to the session, creating it if needed (chainable).
// A call without entries yields an empty session.
func (b *DocumentBuilder) Session(id string, entries ...string) *DocumentBuilder {
	b.sessions[id] = append(b.sessionOrEmpty(id), entries...)
	return b
}

// Build returns a copy of the document.
func (b *DocumentBuilder) Build() map[string][]string {
	out := make(map[string][]string, len(b.sessions))
	for id, entries := range b.sessions {
		out[id] = append([]string{}, entries...)
	}
	return out
}

// Write stores the document as memory.json inside dir and returns its path.
func (b *DocumentBuilder) Write(t testing.TB, dir string) string {
	t.Helper()

	raw, err := json.MarshalIndent(b.Build(), "", "  ")
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}

	path := filepath.Join(dir, "memory.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}

	return path
}

func (b *DocumentBuilder) sessionOrEmpty(id string) []string {
	if entries, ok := b.sessions[id]; ok {
		return entries
	}
	return []string{}
}

// ReadDocument decodes the memory document at path.
func ReadDocument(t testing.TB, path string) map[string][]string {
	t.Helper()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}

	doc := map[string][]string{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}

	return doc
}

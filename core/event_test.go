package core

import (
	"errors"
	"testing"
)

// Event constructor & helper method tests
func TestEvent_ConstructorsAndMethods(t *testing.T) {
	e := NewEvent("s-1", "authorA")
	if e.Author != "authorA" || e.SessionID != "s-1" || e.ID == "" || e.Timestamp.IsZero() {
		t.Fatalf("NewEvent did not initialize fields correctly: %+v", e)
	}
	if e.Text() != "" || e.Failed() {
		t.Fatalf("bare event should have no text and not be failed: %+v", e)
	}

	msg := NewMessageEvent("s-1", "agent1", "hello world")
	if msg.Content == nil || msg.Content.Role != "assistant" || len(msg.Content.Parts) != 1 {
		t.Fatalf("NewMessageEvent malformed: %+v", msg)
	}
	if msg.Text() != "hello world" {
		t.Fatalf("expected text 'hello world', got %q", msg.Text())
	}

	failed := NewErrorEvent("s-1", "agent1", "(error)", errors.New("boom"))
	if !failed.Failed() || *failed.ErrorMessage != "boom" {
		t.Fatalf("NewErrorEvent malformed: %+v", failed)
	}
	if failed.Text() != "(error)" {
		t.Fatalf("expected fallback text, got %q", failed.Text())
	}
}

func TestEvent_UniqueIDs(t *testing.T) {
	a := NewEvent("s", "x")
	b := NewEvent("s", "x")
	if a.ID == b.ID {
		t.Fatalf("expected unique ids, got %q twice", a.ID)
	}
}

func TestContent_TextSkipsNonTextParts(t *testing.T) {
	c := Content{Role: "user", Parts: []Part{
		TextPart{Text: "a"},
		DataPart{Data: map[string]any{"k": 1}},
		TextPart{Text: "b"},
	}}
	if got := c.Text(); got != "ab" {
		t.Fatalf("expected 'ab', got %q", got)
	}
}

func TestTurn_MemoryContext(t *testing.T) {
	turn := Turn{SessionID: "s", Input: "hi", Memory: []string{"User: a", "Assistant: b"}}
	if got := turn.MemoryContext(); got != "User: a\nAssistant: b" {
		t.Fatalf("unexpected memory context %q", got)
	}
	state := turn.State()
	if state["input"] != "hi" || state["session_id"] != "s" || state["memory"] != turn.MemoryContext() {
		t.Fatalf("unexpected state %#v", state)
	}
	if (Turn{}).MemoryContext() != "" {
		t.Fatalf("expected empty context for empty memory")
	}
}

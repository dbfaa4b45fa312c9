package agent

import (
	"errors"
	"testing"

	"github.com/hupe1980/chatmem/core"
)

type mockProvider struct {
	text string
	err  error
}

func (m mockProvider) Instruction(core.Turn) (string, error) { return m.text, m.err }

func newTestTurn() core.Turn {
	return core.Turn{SessionID: "test-session", Input: "hello", Memory: []string{"User: hello"}}
}

func TestInstruction_Static(t *testing.T) {
	inst := NewInstructionFromText("static instruction")
	if !inst.IsStatic() {
		t.Fatalf("expected static instruction")
	}
	got, err := inst.Resolve(newTestTurn())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "static instruction" {
		t.Fatalf("expected 'static instruction', got %q", got)
	}
}

func TestInstruction_Template(t *testing.T) {
	inst := NewInstructionFromText("Session {{.session_id}} remembers:\n{{.memory}}")
	got, err := inst.Resolve(newTestTurn())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Session test-session remembers:\nUser: hello" {
		t.Fatalf("unexpected render %q", got)
	}
}

func TestInstruction_NewInstructionFromFunc(t *testing.T) {
	inst := NewInstructionFromFunc(func(turn core.Turn) (string, error) { return "dynamic for " + turn.SessionID, nil })
	if inst.IsStatic() {
		t.Fatalf("expected dynamic instruction")
	}
	got, err := inst.Resolve(newTestTurn())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "dynamic for test-session" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestInstruction_ProviderError(t *testing.T) {
	inst := NewInstructionFromProvider(mockProvider{err: errors.New("boom")})
	if _, err := inst.Resolve(newTestTurn()); err == nil {
		t.Fatalf("expected provider error")
	}
}

func TestInstruction_IsZero(t *testing.T) {
	if !(Instruction{}).IsZero() {
		t.Fatalf("expected zero instruction")
	}
	if NewInstructionFromProvider(mockProvider{text: "x"}).IsZero() {
		t.Fatalf("provider backed instruction is not zero")
	}
}

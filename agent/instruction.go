package agent

import (
	"github.com/hupe1980/chatmem/core"
	"github.com/hupe1980/chatmem/internal/util"
)

// DefaultInstruction is the system prompt used when none is configured.
const DefaultInstruction = "You are a helpful assistant that uses the user's memory to be consistent. " +
	"Use the memory context when relevant and avoid repeating irrelevant history."

// Provider supplies dynamic instruction text at runtime.
// Implementations can derive instructions from the turn, environment, etc.
type Provider interface {
	Instruction(core.Turn) (string, error)
}

// Func is a functional adapter to allow ordinary functions to be used as Providers.
type Func func(core.Turn) (string, error)

// Instruction implements Provider.
func (f Func) Instruction(t core.Turn) (string, error) { return f(t) }

// Instruction represents either a static instruction template or a dynamic provider.
// This mirrors a union of string | provider in a Go-idiomatic way.
type Instruction struct {
	text     string
	provider Provider
}

// NewInstructionFromText creates an Instruction from a static string. The
// text may reference .session_id, .input, .memory and .entries as
// text/template fields.
func NewInstructionFromText(text string) Instruction { return Instruction{text: text} }

// NewInstructionFromProvider creates an Instruction from a dynamic provider.
func NewInstructionFromProvider(p Provider) Instruction { return Instruction{provider: p} }

// NewInstructionFromFunc creates an Instruction from a function.
func NewInstructionFromFunc(f func(core.Turn) (string, error)) Instruction {
	return Instruction{provider: Func(f)}
}

// IsStatic returns true if the instruction is backed by a static string.
func (i Instruction) IsStatic() bool { return i.provider == nil }

// IsZero reports whether the instruction was never set.
func (i Instruction) IsZero() bool { return i.provider == nil && i.text == "" }

// Resolve returns the instruction text, invoking the provider or rendering
// the static template against the turn.
func (i Instruction) Resolve(t core.Turn) (string, error) {
	if i.provider != nil {
		return i.provider.Instruction(t)
	}
	return util.RenderTemplate(i.text, t.State())
}

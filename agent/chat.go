package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/chatmem/core"
	"github.com/hupe1980/chatmem/logging"
	"github.com/hupe1980/chatmem/memory"
	"github.com/hupe1980/chatmem/model"
)

var (
	// ErrEmptyInput is returned by Reply for blank user input.
	ErrEmptyInput = fmt.Errorf("user input cannot be empty")
	// ErrNoModels is returned by NewChatAgent when no model is supplied.
	ErrNoModels = fmt.Errorf("at least one model is required")
)

// ChatAgentOptions configures a ChatAgent instance.
//
// Use functional options with NewChatAgent to override defaults.
type ChatAgentOptions struct {
	Instruction     Instruction
	MemoryWindow    int // number of recent entries sent to the model
	UserPrefix      string
	AssistantPrefix string
	Logger          logging.Logger
}

// ChatAgent answers user input with the help of a session memory. Models are
// tried in order; the first one producing a non-empty reply wins and later
// models are only consulted when earlier ones fail.
//
// Both the user input and the reply are appended to the memory store, so the
// store always holds the conversation as "User: ..." / "Assistant: ..."
// entries.
type ChatAgent struct {
	name            string
	store           core.MemoryStore
	models          []model.Model
	instruction     Instruction
	window          int
	userPrefix      string
	assistantPrefix string
	logger          logging.Logger
}

// NewChatAgent creates a chat agent backed by store and the ordered models.
func NewChatAgent(name string, store core.MemoryStore, models []model.Model, optFns ...func(o *ChatAgentOptions)) (*ChatAgent, error) {
	if store == nil {
		return nil, fmt.Errorf("memory store is required")
	}
	if len(models) == 0 {
		return nil, ErrNoModels
	}

	opts := ChatAgentOptions{
		Instruction:     NewInstructionFromText(DefaultInstruction),
		MemoryWindow:    5,
		UserPrefix:      "User: ",
		AssistantPrefix: "Assistant: ",
		Logger:          logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Instruction.IsZero() {
		opts.Instruction = NewInstructionFromText(DefaultInstruction)
	}

	ms := make([]model.Model, len(models))
	copy(ms, models)

	return &ChatAgent{
		name:            name,
		store:           store,
		models:          ms,
		instruction:     opts.Instruction,
		window:          opts.MemoryWindow,
		userPrefix:      opts.UserPrefix,
		assistantPrefix: opts.AssistantPrefix,
		logger:          opts.Logger,
	}, nil
}

// Name returns the agent name used as event author.
func (a *ChatAgent) Name() string { return a.name }

// Models returns the provider chain in the order it is tried.
func (a *ChatAgent) Models() []model.Model {
	out := make([]model.Model, len(a.models))
	copy(out, a.models)
	return out
}

// Reply records the user input, asks the model chain for an answer and
// records the answer.
//
// When every model fails the returned event carries a fallback text and
// ErrorMessage, and that text is recorded like any other reply. Memory store
// errors are returned unmodified. A cancelled context is returned as an error
// after the user entry has been recorded, without an assistant entry.
func (a *ChatAgent) Reply(ctx context.Context, sessionID, input string) (core.Event, error) {
	if strings.TrimSpace(input) == "" {
		return core.Event{}, ErrEmptyInput
	}

	if err := a.store.Append(sessionID, a.userPrefix+input); err != nil {
		return core.Event{}, err
	}

	recent, err := memory.Recent(a.store, sessionID, a.window)
	if err != nil {
		return core.Event{}, err
	}

	turn := core.Turn{SessionID: sessionID, Input: input, Memory: recent}

	instructions, err := a.instruction.Resolve(turn)
	if err != nil {
		return core.Event{}, fmt.Errorf("failed to resolve instruction: %w", err)
	}

	req := model.Request{
		Instructions: instructions,
		Contents: []core.Content{
			core.NewTextContent("user", fmt.Sprintf("Memory:\n%s\n\n%s%s", turn.MemoryContext(), a.userPrefix, input)),
		},
	}

	ev, err := a.generate(ctx, sessionID, req)
	if err != nil {
		return core.Event{}, err
	}

	if err := a.store.Append(sessionID, a.assistantPrefix+ev.Text()); err != nil {
		return core.Event{}, err
	}

	return ev, nil
}

// generate walks the model chain. It only returns an error for context
// cancellation; provider failures turn into a fallback event.
func (a *ChatAgent) generate(ctx context.Context, sessionID string, req model.Request) (core.Event, error) {
	failures := make([]string, 0, len(a.models))

	for _, m := range a.models {
		info := m.Info()
		start := time.Now()

		resp, err := model.Collect(ctx, m, req)
		if err == nil && strings.TrimSpace(resp.Content.Text()) == "" {
			err = fmt.Errorf("empty reply")
		}

		logging.LogModelCall(a.logger, info.Provider, info.Name, time.Since(start), err)

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return core.Event{}, ctxErr
			}
			failures = append(failures, fmt.Sprintf("%s/%s: %v", info.Provider, info.Name, err))
			continue
		}

		ev := core.NewMessageEvent(sessionID, a.name, strings.TrimSpace(resp.Content.Text()))
		ev.Provider = info.Provider
		ev.Model = info.Name
		return ev, nil
	}

	cause := fmt.Errorf("all models failed: %s", strings.Join(failures, "; "))
	a.logger.Error("No model produced a reply", "session_id", sessionID, "error", cause.Error())

	return core.NewErrorEvent(sessionID, a.name, fmt.Sprintf("(error running agent: %v)", cause), cause), nil
}

// History returns the full memory log of the session.
func (a *ChatAgent) History(sessionID string) ([]string, error) {
	return a.store.Get(sessionID)
}

// Recent returns the entries the agent would send as memory context.
func (a *ChatAgent) Recent(sessionID string) ([]string, error) {
	return memory.Recent(a.store, sessionID, a.window)
}

// Reset clears the session memory.
func (a *ChatAgent) Reset(sessionID string) error {
	a.logger.Info("Clearing session memory", "session_id", sessionID)
	return a.store.Clear(sessionID)
}

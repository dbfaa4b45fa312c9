package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/chatmem/agent"
	"github.com/hupe1980/chatmem/memory"
)

// maxLineSize bounds a single chat input line.
const maxLineSize = 1 << 20

const chatHelp = `Commands:
  /memory  show the recent memory window
  /clear   clear memory for this session
  /help    show this help
  /quit    leave the chat`

func newChatCmd(opts *globalOptions) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat on stdin/stdout.
Every message and reply is appended to the session memory, and the most recent
entries are sent to the model as context.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, opts, session)
		},
	}

	cmd.Flags().StringVarP(&session, "session", "s", "", "session id (default from config)")

	return cmd
}

func runChat(cmd *cobra.Command, opts *globalOptions, sessionFlag string) error {
	a, err := opts.loadApp(cmd)
	if err != nil {
		return err
	}

	models, err := buildModels(a.cfg.Models, a.logger)
	if err != nil {
		return err
	}

	var instruction agent.Instruction
	if a.cfg.Instruction != "" {
		instruction = agent.NewInstructionFromText(a.cfg.Instruction)
	}

	chat, err := agent.NewChatAgent("assistant", a.store, models, func(o *agent.ChatAgentOptions) {
		o.MemoryWindow = a.cfg.Memory.Window
		o.Logger = a.logger
		o.Instruction = instruction
	})
	if err != nil {
		return err
	}

	session := a.sessionOrDefault(sessionFlag)
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "chatmem %s, session %q (/help for commands)\n", version, session)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/help":
			fmt.Fprintln(out, chatHelp)
			continue
		case "/clear":
			if err := chat.Reset(session); err != nil {
				return err
			}
			fmt.Fprintf(out, "Cleared memory for %s\n", session)
			continue
		case "/memory":
			recent, err := chat.Recent(session)
			if err != nil {
				return err
			}
			printEntries(out, recent)
			continue
		}

		ev, err := chat.Reply(ctx, session, line)
		if err != nil {
			if errors.Is(err, agent.ErrEmptyInput) {
				continue
			}
			if errors.Is(err, memory.ErrInvalidEntry) {
				fmt.Fprintln(out, "Input must be valid UTF-8.")
				continue
			}
			return err
		}

		fmt.Fprintf(out, "Assistant: %s\n", ev.Text())
	}

	return scanner.Err()
}

func printEntries(w io.Writer, entries []string) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No memory yet for this session.")
		return
	}
	for i, e := range entries {
		fmt.Fprintf(w, "%d. %s\n", i+1, e)
	}
}

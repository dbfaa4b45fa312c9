package cli

import (
	"context"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// globalOptions hold the persistent flags shared by every subcommand.
type globalOptions struct {
	cfgFile  string
	logLevel string
}

// NewRootCmd builds the chatmem command tree. Each call returns a fresh tree
// so flag state does not leak between executions.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "chatmem",
		Short: "chatmem - chatbot with per-session memory",
		Long: `chatmem is a command line chatbot that remembers each session.
Conversations are kept in a size-bounded JSON memory file and replies are
produced by an ordered chain of LLM providers (OpenAI, Groq, Anthropic).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (JSON or YAML; defaults apply when absent)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	// Version template
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)

	rootCmd.AddCommand(newChatCmd(opts), newMemoryCmd(opts))

	return rootCmd
}

// Execute runs the command tree with ctx. This is called by main.main().
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// GetVersion returns the current version
func GetVersion() string {
	return version
}

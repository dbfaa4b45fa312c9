package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/chatmem/memory"
)

// sessionLister is implemented by stores that can enumerate their sessions.
type sessionLister interface {
	Sessions() ([]string, error)
}

func newMemoryCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect or clear stored session memory",
	}

	cmd.AddCommand(newMemoryShowCmd(opts), newMemoryClearCmd(opts), newMemorySessionsCmd(opts))

	return cmd
}

func newMemoryShowCmd(opts *globalOptions) *cobra.Command {
	var (
		session string
		last    int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the memory of a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.loadApp(cmd)
			if err != nil {
				return err
			}

			entries, err := memory.Recent(a.store, a.sessionOrDefault(session), last)
			if err != nil {
				return err
			}

			printEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().StringVarP(&session, "session", "s", "", "session id (default from config)")
	cmd.Flags().IntVarP(&last, "last", "n", 0, "only print the last n entries (0 prints all)")

	return cmd
}

func newMemoryClearCmd(opts *globalOptions) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all memory of a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.loadApp(cmd)
			if err != nil {
				return err
			}

			id := a.sessionOrDefault(session)
			if err := a.store.Clear(id); err != nil {
				return err
			}

			a.logger.Info("Session memory cleared", "session_id", id)
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared memory for %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&session, "session", "s", "", "session id (default from config)")

	return cmd
}

func newMemorySessionsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List sessions that have memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.loadApp(cmd)
			if err != nil {
				return err
			}

			lister, ok := a.store.(sessionLister)
			if !ok {
				return fmt.Errorf("memory store cannot list sessions")
			}

			ids, err := lister.Sessions()
			if err != nil {
				return err
			}

			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

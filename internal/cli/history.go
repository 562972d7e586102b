package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"storecheck/internal/history"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "Show recorded scenario outcomes",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite history database (required)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum entries to show")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func showHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	store, err := history.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history database", err)
	}
	defer store.Close()

	entries, err := store.Recent(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{Status: "ok", Data: entries})
	}

	w := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No recorded runs.")
		return nil
	}
	for _, e := range entries {
		mark := "✓"
		if !e.Pass {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %-32s %s", mark, e.Scenario, e.StartedAt.Format("2006-01-02 15:04:05"))
		if e.Branch != "" {
			fmt.Fprintf(w, " [%s]", e.Branch)
		}
		if e.Errors != "" {
			fmt.Fprintf(w, "  %s", e.Errors)
		}
		fmt.Fprintln(w)
	}
	return nil
}

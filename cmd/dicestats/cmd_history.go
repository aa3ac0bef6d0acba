package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/dicestats/internal/render"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit int
		clear bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear the roll history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.openStore()
			if store == nil {
				// Unreadable history is an empty history, not a failure.
				render.History(cmd.OutOrStdout(), nil, 0)
				return nil
			}
			defer store.Close()

			if clear {
				if err := store.Clear(); err != nil {
					return fmt.Errorf("clearing history: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
				return nil
			}

			total, err := store.Len()
			if err != nil {
				return fmt.Errorf("reading history: %w", err)
			}
			sessions, err := store.RecentSessions(limit)
			if err != nil {
				return fmt.Errorf("reading history: %w", err)
			}

			if a.jsonOutput() {
				return render.JSON(cmd.OutOrStdout(), render.NewHistoryPayload(sessions, total))
			}
			render.History(cmd.OutOrStdout(), sessions, total)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "number of recent sessions to show")
	cmd.Flags().BoolVarP(&clear, "clear", "c", false, "clear all history")

	return cmd
}

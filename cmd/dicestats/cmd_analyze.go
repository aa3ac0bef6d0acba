package main

import (
	"github.com/spf13/cobra"

	"github.com/cory-johannsen/dicestats/internal/dice"
	"github.com/cory-johannsen/dicestats/internal/prob"
	"github.com/cory-johannsen/dicestats/internal/render"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var extended bool

	cmd := &cobra.Command{
		Use:   "analyze <expression>",
		Short: "Compute the exact probability distribution of an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := dice.Parse(args[0])
			if err != nil {
				return err
			}

			stats := a.engine.Statistics(expr)
			var ext *prob.Extended
			if extended {
				e := a.engine.ExtendedStatistics(expr)
				ext = &e
			}

			if a.jsonOutput() {
				return render.JSON(cmd.OutOrStdout(), render.NewAnalyzePayload(stats, ext))
			}
			render.Statistics(cmd.OutOrStdout(), stats)
			if ext != nil {
				render.Extended(cmd.OutOrStdout(), *ext)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&extended, "extended", "e", false, "include moments and percentiles")

	return cmd
}

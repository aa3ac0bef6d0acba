package main

import (
	"github.com/spf13/cobra"

	"github.com/cory-johannsen/dicestats/internal/dice"
	"github.com/cory-johannsen/dicestats/internal/render"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <expression>",
		Short: "Describe the structure and bounds of an expression without rolling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := dice.Parse(args[0])
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return render.JSON(cmd.OutOrStdout(), render.NewInfoPayload(expr))
			}
			render.Info(cmd.OutOrStdout(), expr)
			return nil
		},
	}
}

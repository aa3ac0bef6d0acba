package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/dicestats/internal/render"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonOutput() {
				return render.JSON(cmd.OutOrStdout(), configPayload{
					Iterations:   a.cfg.Roll.Iterations,
					Seed:         a.cfg.Roll.DefaultSeed(),
					OutputFormat: a.cfg.Output.Format,
					Verbose:      a.cfg.Output.Verbose,
					ShowStats:    a.cfg.Output.ShowStats,
					HistoryLimit: a.cfg.History.Limit,
					HistoryPath:  a.cfg.History.Path,
					LogLevel:     a.cfg.Logging.Level,
					LogFormat:    a.cfg.Logging.Format,
				})
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "roll.iterations\t%d\n", a.cfg.Roll.Iterations)
			if seed := a.cfg.Roll.DefaultSeed(); seed != nil {
				fmt.Fprintf(tw, "roll.seed\t%d\n", *seed)
			} else {
				fmt.Fprintf(tw, "roll.seed\tunset\n")
			}
			fmt.Fprintf(tw, "output.format\t%s\n", a.cfg.Output.Format)
			fmt.Fprintf(tw, "output.verbose\t%t\n", a.cfg.Output.Verbose)
			fmt.Fprintf(tw, "output.show_stats\t%t\n", a.cfg.Output.ShowStats)
			fmt.Fprintf(tw, "history.limit\t%d\n", a.cfg.History.Limit)
			fmt.Fprintf(tw, "history.path\t%s\n", a.cfg.History.Path)
			fmt.Fprintf(tw, "logging.level\t%s\n", a.cfg.Logging.Level)
			fmt.Fprintf(tw, "logging.format\t%s\n", a.cfg.Logging.Format)
			return tw.Flush()
		},
	}
}

type configPayload struct {
	Iterations   int    `json:"default_iterations"`
	Seed         *int64 `json:"default_seed"`
	OutputFormat string `json:"output_format"`
	Verbose      bool   `json:"verbose"`
	ShowStats    bool   `json:"show_stats"`
	HistoryLimit int    `json:"history_limit"`
	HistoryPath  string `json:"history_path"`
	LogLevel     string `json:"log_level"`
	LogFormat    string `json:"log_format"`
}

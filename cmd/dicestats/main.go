// Package main provides the dicestats binary: a dice notation roller
// and probability calculator with persistent roll history.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dicestats/internal/config"
	"github.com/cory-johannsen/dicestats/internal/dice"
	"github.com/cory-johannsen/dicestats/internal/observability"
	"github.com/cory-johannsen/dicestats/internal/prob"
	"github.com/cory-johannsen/dicestats/internal/storage/bolt"
)

func main() {
	a := &app{}
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, translateError(err))
		os.Exit(1)
	}
}

// app carries the configuration, logger, and shared probability cache
// built once per invocation. No package-level mutable state.
type app struct {
	cfgPath string
	cfg     config.Config
	logger  *zap.Logger
	engine  *prob.Engine
}

// init loads configuration and builds the logger. Called from the
// root command's PersistentPreRunE so every subcommand sees a ready
// app.
func (a *app) init() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	a.logger = logger
	a.engine = prob.NewEngine(prob.NewCache())
	return nil
}

// openStore opens the history database. Persistence failures are the
// collaborator's to contain: a nil Store with a warning log means the
// command proceeds without history.
func (a *app) openStore() *bolt.Store {
	store, err := bolt.Open(a.cfg.History.Path, a.cfg.History.Limit, a.logger)
	if err != nil {
		a.logger.Warn("history unavailable",
			zap.String("path", a.cfg.History.Path),
			zap.Error(err),
		)
		return nil
	}
	return store
}

func (a *app) jsonOutput() bool {
	return a.cfg.Output.Format == "json"
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dicestats",
		Short: "Roll dice expressions and compute their exact statistics",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&a.cfgPath, "config", "", "path to configuration file")

	rootCmd.AddCommand(newRollCmd(a))
	rootCmd.AddCommand(newAnalyzeCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))
	rootCmd.AddCommand(newInfoCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// translateError is the single error boundary between the core and
// the terminal: typed core errors render as clean user messages, and
// everything else keeps its wrapped context.
func translateError(err error) string {
	var parseErr *dice.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Sprintf("invalid dice expression %q: %s", parseErr.Input, parseErr.Reason)
	}
	var validationErr *dice.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Reason
	}
	return err.Error()
}

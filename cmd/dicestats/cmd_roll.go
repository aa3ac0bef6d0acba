package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dicestats/internal/analyze"
	"github.com/cory-johannsen/dicestats/internal/dice"
	"github.com/cory-johannsen/dicestats/internal/render"
)

func newRollCmd(a *app) *cobra.Command {
	var (
		iterations  int
		seed        int64
		target      int
		maxAttempts int
		verbose     bool
		noSave      bool
		showStats   bool
	)

	cmd := &cobra.Command{
		Use:   "roll <expression>",
		Short: "Roll a dice expression",
		Long: `Roll a dice expression one or more times.

With --seed the sequence of rolls is fully reproducible. With --target
the roller searches for a roll matching the target total instead of
rolling a fixed number of times.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := dice.Parse(args[0])
			if err != nil {
				return err
			}

			seedPtr := a.cfg.Roll.DefaultSeed()
			if cmd.Flags().Changed("seed") {
				seedPtr = &seed
			}
			roller := dice.NewLoggedRoller(dice.NewRoller(seedPtr), a.logger)

			if cmd.Flags().Changed("target") {
				return runTargetRoll(cmd, roller, expr, target, maxAttempts)
			}

			if !cmd.Flags().Changed("iterations") {
				iterations = a.cfg.Roll.Iterations
			}
			session, err := roller.RollMany(expr, iterations)
			if err != nil {
				return err
			}

			if !noSave {
				saveSession(a, session)
			}

			if a.jsonOutput() {
				return render.JSON(cmd.OutOrStdout(),
					render.NewRollPayload(session, showStats || a.cfg.Output.ShowStats))
			}
			render.Session(cmd.OutOrStdout(), session, verbose || a.cfg.Output.Verbose)
			if showStats || a.cfg.Output.ShowStats {
				if sum, ok := analyze.Session(session); ok {
					render.Analysis(cmd.OutOrStdout(), sum)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 1, "number of rolls")
	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "random seed for reproducible rolls")
	cmd.Flags().IntVarP(&target, "target", "t", 0, "roll until this total is hit")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", dice.DefaultMaxAttempts, "attempt limit for --target")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show individual die values")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not record this session in history")
	cmd.Flags().BoolVar(&showStats, "stats", false, "show empirical statistics for the session")

	return cmd
}

func runTargetRoll(cmd *cobra.Command, roller *dice.LoggedRoller, expr dice.Expression, target, maxAttempts int) error {
	result, attempts, err := roller.RollUntilTarget(expr, target, maxAttempts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "hit %d after %d attempt", target, attempts)
	if attempts != 1 {
		fmt.Fprint(cmd.OutOrStdout(), "s")
	}
	fmt.Fprintf(cmd.OutOrStdout(), ": %s\n", result.String())
	return nil
}

// saveSession records the session in history. Storage failures are
// logged and swallowed; they never fail the roll.
func saveSession(a *app, session dice.RollSession) {
	store := a.openStore()
	if store == nil {
		return
	}
	defer store.Close()
	if err := store.SaveSession(session); err != nil {
		a.logger.Warn("saving session to history",
			zap.String("session_id", session.ID.String()),
			zap.Error(err),
		)
	}
}

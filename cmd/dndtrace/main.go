// SPDX-License-Identifier: Unlicense OR MIT

// Command dndtrace replays drag and drop scenarios and reports the
// notifications they raise.
//
// Usage:
//
//	dndtrace run [-v] [--json] [--moves] [--png dir] scenario.toml...
//	dndtrace validate scenario.toml...
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"gioui.org/x/dnd/internal/trace"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var verbose bool
	logger := newLogger(log.InfoLevel)
	root := &cobra.Command{
		Use:           "dndtrace",
		Short:         "Replay drag and drop scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine decisions")
	root.AddCommand(runCommand(logger), validateCommand(logger))
	return root
}

func newLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func runCommand(logger *log.Logger) *cobra.Command {
	var (
		asJSON bool
		opts   trace.Options
	)
	cmd := &cobra.Command{
		Use:   "run scenario.toml...",
		Short: "Replay scenarios and print their reports",
		Long: `Replay scenarios and print their reports.

Every scenario is replayed on its own scene, concurrently with the
others. Animations still running after the last step are played to
their end before the final placement of every source is reported.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := loadAll(args)
			if err != nil {
				return err
			}
			if opts.PNGDir != "" {
				if err := os.MkdirAll(opts.PNGDir, 0o755); err != nil {
					return err
				}
			}
			opts.Logger = logger
			reports, err := trace.RunAll(cmd.Context(), scenarios, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return trace.WriteJSON(out, reports)
			}
			for _, r := range reports {
				if err := r.WriteText(out); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print reports as JSON")
	cmd.Flags().BoolVar(&opts.Moves, "moves", false, "report every drag move")
	cmd.Flags().StringVar(&opts.PNGDir, "png", "", "write a snapshot of every final scene to `dir`")
	return cmd
}

func validateCommand(logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "validate scenario.toml...",
		Short: "Check that scenarios parse and build",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := loadAll(args)
			if err != nil {
				return err
			}
			for _, sc := range scenarios {
				if _, err := trace.Build(sc, nil); err != nil {
					return fmt.Errorf("%s: %w", sc.Name, err)
				}
				logger.Info("scenario ok", "name", sc.Name, "steps", len(sc.Steps))
			}
			return nil
		},
	}
}

func loadAll(paths []string) ([]*trace.Scenario, error) {
	var scenarios []*trace.Scenario
	for _, p := range paths {
		sc, err := trace.Load(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

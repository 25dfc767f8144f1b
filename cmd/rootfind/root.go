package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// app carries the state shared by all subcommands.
type app struct {
	logLevel  string
	logFormat string
	logger    *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "rootfind",
		Short: "Find roots of polynomials and nonlinear systems",
		Long: `rootfind locates zeros of scalar polynomials on a bracket (bisection, Brent,
Newton-Raphson) and of built-in nonlinear systems (globally convergent Newton, Broyden).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), a.logLevel, a.logFormat)
			if err != nil {
				return err
			}
			a.logger = logger

			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "Log format (text, json)")

	cmd.AddCommand(
		newSolveCommand(a),
		newBracketCommand(a),
		newSystemCommand(a),
		newVersionCommand(),
	)

	return cmd
}

// newLogger builds the slog handler selected by --log-level and --log-format.
// Solver iterations are logged at debug level.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q (want text or json)", format)
	}
}

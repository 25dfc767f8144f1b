package main

import (
	"fmt"

	"github.com/katalvlaran/lvroot/roots"
	"github.com/spf13/cobra"
)

func newBracketCommand(a *app) *cobra.Command {
	var (
		poly     polynomialFlags
		inward   bool
		segments int
	)
	cmd := &cobra.Command{
		Use:   "bracket",
		Short: "Search for brackets around roots of a polynomial",
		Long: `By default the bracket is widened until it straddles a sign change.
With --inward the interval is split into --segments pieces and every piece
containing a sign change is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := poly.polynomial()
			if err != nil {
				return err
			}
			b := roots.Bracket{Min: poly.min, Max: poly.max}
			out := cmd.OutOrStdout()

			if !inward {
				found, ok, err := roots.BracketOutward(p, b)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no sign change found, widest bracket tried %v: %w", found, roots.ErrNotBracketed)
				}
				fmt.Fprintf(out, "bracket: %v\n", found)

				return nil
			}

			pieces, err := roots.BracketInward(p, b, segments)
			if err != nil {
				return err
			}
			n := 0
			for piece := range pieces {
				fmt.Fprintf(out, "bracket: %v\n", piece)
				n++
			}
			a.logger.Info("inward scan done", "segments", segments, "brackets", n)
			if n == 0 {
				fmt.Fprintln(out, "no sign change found")
			}

			return nil
		},
	}
	poly.register(cmd)
	cmd.Flags().BoolVar(&inward, "inward", false, "Split the interval instead of widening it")
	cmd.Flags().IntVar(&segments, "segments", 10, "Number of pieces for --inward")

	return cmd
}

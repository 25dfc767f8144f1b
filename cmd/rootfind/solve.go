package main

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvroot/function"
	"github.com/katalvlaran/lvroot/roots"
	"github.com/spf13/cobra"
)

type scalarSolver func(f function.DifferentiableFunc, b roots.Bracket, opts ...roots.Option) (float64, error)

var scalarMethods = map[string]scalarSolver{
	"subdivide": func(f function.DifferentiableFunc, b roots.Bracket, opts ...roots.Option) (float64, error) {
		return roots.Subdivide(f, b, opts...)
	},
	"brent": func(f function.DifferentiableFunc, b roots.Bracket, opts ...roots.Option) (float64, error) {
		return roots.Brent(f, b, opts...)
	},
	"newton":         roots.UnboundedNewtonRaphson,
	"bounded-newton": roots.BoundedNewtonRaphson,
}

// polynomialFlags are the flags shared by solve and bracket.
type polynomialFlags struct {
	coeffs   []float64
	min, max float64
}

func (p *polynomialFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64SliceVar(&p.coeffs, "coeffs", nil, "Polynomial coefficients in ascending order: c0,c1,c2,...")
	cmd.Flags().Float64Var(&p.min, "min", 0, "Lower end of the bracket")
	cmd.Flags().Float64Var(&p.max, "max", 1, "Upper end of the bracket")
	_ = cmd.MarkFlagRequired("coeffs")
}

func (p *polynomialFlags) polynomial() (function.Polynomial, error) {
	if len(p.coeffs) == 0 {
		return nil, fmt.Errorf("--coeffs must list at least one coefficient")
	}

	return function.Polynomial(p.coeffs), nil
}

func newSolveCommand(a *app) *cobra.Command {
	var (
		poly    polynomialFlags
		method  string
		tol     float64
		maxIter int
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find a root of a polynomial inside a bracket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			solve, ok := scalarMethods[method]
			if !ok {
				return fmt.Errorf("unknown --method %q (want one of %v)", method, methodNames(scalarMethods))
			}
			p, err := poly.polynomial()
			if err != nil {
				return err
			}

			opts := []roots.Option{roots.WithLogger(a.logger)}
			if cmd.Flags().Changed("tol") {
				opts = append(opts, roots.WithTolerance(tol))
			}
			if cmd.Flags().Changed("max-iter") {
				opts = append(opts, roots.WithMaxIterations(maxIter))
			}

			a.logger.Info("solving", "polynomial", p.String(), "method", method, "min", poly.min, "max", poly.max)
			x, err := solve(p, roots.Bracket{Min: poly.min, Max: poly.max}, opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "root: %.15g\n", x)
			fmt.Fprintf(out, "f(root): %g\n", p.Evaluate(x))

			return nil
		},
	}
	poly.register(cmd)
	cmd.Flags().StringVar(&method, "method", "brent", "Solver: subdivide, brent, newton, bounded-newton")
	cmd.Flags().Float64Var(&tol, "tol", 0, "Absolute x tolerance (default derived from the bracket)")
	cmd.Flags().IntVar(&maxIter, "max-iter", roots.DefaultMaxIterations1D, "Iteration budget")

	return cmd
}

func methodNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	return names
}

package main

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvroot/roots"
	"github.com/spf13/cobra"
)

func newSystemCommand(a *app) *cobra.Command {
	var (
		name     string
		start    []float64
		method   string
		solver   string
		ftol     float64
		maxIter  int
		numerics bool
	)
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Solve a built-in nonlinear system F(x) = 0",
		Long: fmt.Sprintf(`Solves one of the built-in systems %v from --start
with the globally convergent Newton method or Broyden's method.`, methodNames(systems)),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, ok := systems[name]
			if !ok {
				return fmt.Errorf("unknown --name %q (want one of %v)", name, methodNames(systems))
			}
			if len(start) != sys.Arity {
				return fmt.Errorf("--start needs %d values for %s, got %d", sys.Arity, name, len(start))
			}
			newSolver, ok := linearSolvers[solver]
			if !ok {
				return fmt.Errorf("unknown --solver %q (want one of %v)", solver, methodNames(linearSolvers))
			}
			if numerics {
				sys.J = nil
			}

			opts := []roots.Option{roots.WithLogger(a.logger)}
			if cmd.Flags().Changed("ftol") {
				opts = append(opts, roots.WithFunctionTolerance(ftol))
			}
			if cmd.Flags().Changed("max-iter") {
				opts = append(opts, roots.WithMaxIterations(maxIter))
			}

			a.logger.Info("solving system", "name", name, "method", method, "start", start)
			var (
				res roots.Result
				err error
			)
			switch method {
			case "newton":
				res, err = roots.GlobalNewton(sys, start, append(opts, roots.WithLinearSolver(newSolver()))...)
			case "broyden":
				res, err = roots.Broyden(sys, start, opts...)
			default:
				return fmt.Errorf("unknown --method %q (want newton or broyden)", method)
			}
			if err != nil && !errors.Is(err, roots.ErrRootNotFound) {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "x: %v\n", formatVector(res.X))
			fmt.Fprintf(out, "status: %v\n", res.Status)
			fmt.Fprintf(out, "iterations: %d\n", res.Iterations)
			fmt.Fprintf(out, "residual: %g\n", res.Residual)
			if res.Status == roots.StalledAtMinimum {
				fmt.Fprintln(out, "note: stalled at a minimum of ½‖F‖², try another --start")
			}

			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "circle-line", "Built-in system")
	cmd.Flags().Float64SliceVar(&start, "start", nil, "Starting point x0,x1,...")
	cmd.Flags().StringVar(&method, "method", "newton", "Solver: newton, broyden")
	cmd.Flags().StringVar(&solver, "solver", "lu", "Linear solver for newton: lu, qr, svd")
	cmd.Flags().Float64Var(&ftol, "ftol", roots.DefaultFunctionTolerance, "Convergence threshold on max|F|")
	cmd.Flags().IntVar(&maxIter, "max-iter", roots.DefaultMaxIterationsND, "Iteration budget")
	cmd.Flags().BoolVar(&numerics, "numeric-jacobian", false, "Ignore the analytic Jacobian and use forward differences")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func formatVector(x []float64) string {
	s := "["
	for i, v := range x {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%.12g", v)
	}

	return s + "]"
}

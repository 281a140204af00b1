package driver

import (
	"fmt"
	"time"

	"github.com/mattetrop/fluidhcen/simerrors"
)

// Reporter prints fixed-format run status to stdout, the way
// Euler.PrintInitialization/PrintUpdate/PrintFinal do - no logging
// library, just fmt.Printf, consistent across the ambient stack.
type Reporter struct{}

// PrintInitialization prints the run header.
func (r *Reporter) PrintInitialization(tEnd float64) {
	fmt.Printf("Solving until t_end = %8.5f\n", tEnd)
	fmt.Printf("    step      time        dt    residual   iters\n")
}

// PrintUpdate prints one step's status line.
func (r *Reporter) PrintUpdate(step int, t, dt, residual float64, iters int) {
	fmt.Printf("%8d  %8.5f  %8.5f  %10.4e  %5d\n", step, t, dt, residual, iters)
}

// PrintNonConvergence logs a non-fatal Poisson non-convergence.
func (r *Reporter) PrintNonConvergence(e *simerrors.PoissonNonConvergence) {
	fmt.Printf("warning: %v\n", e)
}

// PrintFinal prints the run summary.
func (r *Reporter) PrintFinal(elapsed time.Duration, steps int) {
	fmt.Printf("\nfinished after %d steps in %s (%s/step)\n", steps, elapsed, elapsed/time.Duration(max(steps, 1)))
}

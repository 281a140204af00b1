// Package driver orchestrates one simulation step using fields,
// boundary, pressure, turbulence, and comm, the way Euler2D.Euler.Solve
// drives a Runge-Kutta step: a for-loop around a single Step call,
// with Reporter printing fixed-format progress lines the same way
// Euler.PrintInitialization/PrintUpdate/PrintFinal do.
package driver

import (
	"math"
	"time"

	"github.com/mattetrop/fluidhcen/boundary"
	"github.com/mattetrop/fluidhcen/comm"
	"github.com/mattetrop/fluidhcen/fields"
	"github.com/mattetrop/fluidhcen/grid"
	"github.com/mattetrop/fluidhcen/numerics"
	"github.com/mattetrop/fluidhcen/pressure"
	"github.com/mattetrop/fluidhcen/simerrors"
	"github.com/mattetrop/fluidhcen/turbulence"
)

// Driver owns every per-rank component TimeStepDriver sequences
// through in one step.
type Driver struct {
	Grid       *grid.Grid
	Fields     *fields.Fields
	BC         *boundary.Collection
	Pressure   pressure.Solver
	Turbulence *turbulence.Solver // nil when turbulence is disabled
	Comm       *comm.Context      // nil for a single-rank run

	Gamma   float64
	EpsTol  float64
	IterMax int

	Time  float64
	Steps int
}

// New builds a Driver. turb may be nil (turbulence disabled); rank may
// be nil (single-process run).
func New(g *grid.Grid, f *fields.Fields, bc *boundary.Collection, ps pressure.Solver,
	turb *turbulence.Solver, rank *comm.Context, gamma, epsTol float64, iterMax int) *Driver {
	return &Driver{
		Grid: g, Fields: f, BC: bc, Pressure: ps, Turbulence: turb, Comm: rank,
		Gamma: gamma, EpsTol: epsTol, IterMax: iterMax,
	}
}

// StepResult reports what one Step call did, for Reporter and the
// output cadence.
type StepResult struct {
	Dt        float64
	Residual  float64
	Iters     int
	Converged bool
}

// Step performs the ten-step sequence: adaptive dt, velocity BCs,
// optional temperature transport, optional turbulence update, fluxes
// and flux BCs, RHS assembly, the pressure Poisson loop, velocity
// correction, and the matching halo exchanges.
func (d *Driver) Step() (StepResult, error) {
	dt := d.Fields.CalculateDt(d.Grid)
	if d.Comm != nil {
		dt = d.Comm.ReduceMin(dt)
	}
	d.Fields.Dt = dt

	d.BC.ApplyVelocity(d.Fields, d.Grid)

	if d.Fields.EnergyOn {
		d.Fields.CalculateTemperature(d.Grid, d.Gamma)
		if d.Comm != nil {
			d.Comm.Communicate(d.Fields.T)
		}
		d.BC.ApplyTemperature(d.Fields, d.Grid)
	}

	if d.Fields.TurbulenceOn && d.Turbulence != nil {
		if d.Turbulence.LowReDamping {
			d.Fields.CalculateDamping(d.Grid)
		}
		if err := d.Turbulence.Solve(d.Fields, d.Grid, d.Gamma, d.Steps); err != nil {
			return StepResult{}, err
		}
		if d.Comm != nil {
			d.Comm.Communicate(d.Fields.K)
			d.Comm.Communicate(d.Fields.E)
			d.Comm.Communicate(d.Fields.NuT)
		}
		d.BC.ApplyTurbulence(d.Fields, d.Grid)
	}

	d.Fields.CalculateFluxes(d.Grid, d.Gamma)
	d.BC.ApplyFlux(d.Fields, d.Grid)

	d.Fields.CalculateRS(d.Grid)

	res, iters, converged := d.solvePressure()

	d.Fields.CalculateVelocities(d.Grid)
	if d.Comm != nil {
		d.Comm.Communicate(d.Fields.U)
		d.Comm.Communicate(d.Fields.V)
	}

	if err := d.checkFinite(); err != nil {
		return StepResult{}, err
	}

	d.Time += dt
	d.Steps++
	return StepResult{Dt: dt, Residual: res, Iters: iters, Converged: converged}, nil
}

// solvePressure repeats a pressure sweep until the residual drops
// below EpsTol or IterMax sweeps have run. In a decomposed run the
// residual is recombined via a global reduce_sum over the raw
// per-rank sum of squares, not the per-rank normalized value each
// Solver.Solve call returns.
func (d *Driver) solvePressure() (res float64, iters int, converged bool) {
	for iters = 1; iters <= d.IterMax; iters++ {
		localRes := d.Pressure.Solve(d.Fields, d.Grid, d.BC)
		if d.Comm == nil {
			res = localRes
		} else {
			d.Comm.Communicate(d.Fields.P)
			localSumSq := pressure.LocalResidualSquaredSum(d.Fields, d.Grid)
			globalSumSq := d.Comm.ReduceSum(localSumSq)
			globalN := d.Comm.ReduceSum(float64(len(d.Grid.FluidCells())))
			res = math.Sqrt(globalSumSq / globalN)
		}
		if res < d.EpsTol {
			return res, iters, true
		}
	}
	return res, iters - 1, false
}

func (d *Driver) checkFinite() error {
	for _, ref := range d.Grid.FluidCells() {
		i, j := ref.I, ref.J
		if err := checkField("U", d.Fields.U, d.Steps, i, j); err != nil {
			return err
		}
		if err := checkField("V", d.Fields.V, d.Steps, i, j); err != nil {
			return err
		}
		if err := checkField("P", d.Fields.P, d.Steps, i, j); err != nil {
			return err
		}
		if err := checkField("F", d.Fields.F, d.Steps, i, j); err != nil {
			return err
		}
		if err := checkField("G", d.Fields.G, d.Steps, i, j); err != nil {
			return err
		}
		if err := checkField("RS", d.Fields.RS, d.Steps, i, j); err != nil {
			return err
		}
		if d.Fields.EnergyOn {
			if err := checkField("T", d.Fields.T, d.Steps, i, j); err != nil {
				return err
			}
		}
		if d.Fields.TurbulenceOn {
			if err := checkField("K", d.Fields.K, d.Steps, i, j); err != nil {
				return err
			}
			if err := checkField("E", d.Fields.E, d.Steps, i, j); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkField(name string, m numerics.FieldMatrix, step, i, j int) error {
	v := m.At(i, j)
	if nonFinite(v) {
		return &simerrors.NonFiniteState{Field: name, Step: step, I: i, J: j, Value: v}
	}
	return nil
}

func nonFinite(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

// Run loops Step until Time reaches tEnd, reporting progress through
// reporter and writing an output snapshot every outputEvery steps
// through emit (nil to disable output). emit is never called for step
// 0 is not a special case here - the caller calls it once before Run
// for the initial state if desired.
func (d *Driver) Run(tEnd float64, reporter *Reporter, outputEvery int, emit func(step int, t float64)) error {
	reporter.PrintInitialization(tEnd)
	start := time.Now()
	for d.Time < tEnd {
		result, err := d.Step()
		if err != nil {
			return err
		}
		if !result.Converged {
			reporter.PrintNonConvergence(&simerrors.PoissonNonConvergence{Residual: result.Residual, Iter: result.Iters})
		}
		reporter.PrintUpdate(d.Steps, d.Time, result.Dt, result.Residual, result.Iters)
		if emit != nil && outputEvery > 0 && d.Steps%outputEvery == 0 {
			emit(d.Steps, d.Time)
		}
	}
	reporter.PrintFinal(time.Since(start), d.Steps)
	return nil
}

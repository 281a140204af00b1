// Package turbulence implements a k-epsilon viscosity solver,
// grounded on src/ViscositySolver.cpp's K_EPS_model::solve, plus the
// optional low-Reynolds damping functions the original source
// declares (field.damp1/damp2 comments, commented out) but never
// wires in - supplemented here and made a real, switchable path.
package turbulence

import (
	"math"

	"github.com/mattetrop/fluidhcen/discretization"
	"github.com/mattetrop/fluidhcen/fields"
	"github.com/mattetrop/fluidhcen/grid"
	"github.com/mattetrop/fluidhcen/simerrors"
)

const minClamp = 1e-4

// Constants collects the k-epsilon model's closure coefficients.
type Constants struct {
	SigmaK, SigmaE float64
	C1, C2, C0     float64
}

// DefaultConstants returns the standard k-epsilon coefficient set.
func DefaultConstants() Constants {
	return Constants{SigmaK: 1.0, SigmaE: 1.3, C1: 1.44, C2: 1.92, C0: 0.09}
}

// Solver advances K, E, and NuT by one explicit Euler step.
type Solver struct {
	Constants Constants
	// LowReDamping enables the optional near-wall damping functions,
	// computed from ReT alone (YPlus is not read), which
	// Fields.CalculateDamping must have filled beforehand; Driver.Step
	// does so before each update.
	LowReDamping bool
}

// NewSolver builds a Solver with the standard closure coefficients.
func NewSolver() *Solver { return &Solver{Constants: DefaultConstants()} }

// dampingFactors returns (viscosity damping, production damping,
// dissipation damping) for cell (i,j), all 1 when low-Re damping is
// disabled. The functional forms follow the Jones-Launder low-Re
// closure: f_mu = exp(-3.4/(1+ReT/50)^2), f1 = 1, f2 = 1-0.3*exp(-ReT^2).
func (s *Solver) dampingFactors(f *fields.Fields, i, j int) (fMu, f1, f2 float64) {
	if !s.LowReDamping {
		return 1, 1, 1
	}
	reT := f.ReT.At(i, j)
	fMu = math.Exp(-3.4 / math.Pow(1+reT/50, 2))
	f1 = 1.0
	f2 = 1 - 0.3*math.Exp(-reT*reT)
	return fMu, f1, f2
}

// Solve performs one explicit update of K, E, and NuT over every
// fluid cell, clamping K and E to minClamp and returning a
// simerrors.NonFiniteState error at the first non-finite value found,
// named by field and step.
func (s *Solver) Solve(f *fields.Fields, g *grid.Grid, gamma float64, step int) error {
	dom := g.Domain()
	dx, dy := dom.Dx, dom.Dy
	nu := f.Nu

	nextK := f.K.Copy()
	nextE := f.E.Copy()
	nextNuT := f.NuT.Copy()

	for _, ref := range g.FluidCells() {
		i, j := ref.I, ref.J
		fMu, f1, f2 := s.dampingFactors(f, i, j)

		convK := discretization.ConvectionScalar(f.U, f.V, f.K, i, j, dx, dy, gamma)
		diffK := discretization.TurbulentLaplacian(f.K, f.NuT, nu, s.Constants.SigmaK, i, j, dx, dy)
		strainSq := discretization.StrainRateSquared(f.U, f.V, i, j, dx, dy)
		prod := (nu + f.NuT.At(i, j)) * strainSq

		convE := discretization.ConvectionScalar(f.U, f.V, f.E, i, j, dx, dy, gamma)
		diffE := discretization.TurbulentLaplacian(f.E, f.NuT, nu, s.Constants.SigmaE, i, j, dx, dy)

		k0, e0 := f.K.At(i, j), f.E.At(i, j)

		kNext := k0 + f.Dt*(-convK+diffK+prod-e0)
		eProd := f1 * s.Constants.C1 * (e0 * prod) / k0
		eDiss := f2 * s.Constants.C2 * e0 * e0 / k0
		eNext := e0 + f.Dt*(-convE+diffE+eProd-eDiss)

		kNext = math.Max(kNext, minClamp)
		eNext = math.Max(eNext, minClamp)

		if math.IsNaN(kNext) || math.IsInf(kNext, 0) {
			return &simerrors.NonFiniteState{Field: "K", Step: step, I: i, J: j, Value: kNext}
		}
		if math.IsNaN(eNext) || math.IsInf(eNext, 0) {
			return &simerrors.NonFiniteState{Field: "E", Step: step, I: i, J: j, Value: eNext}
		}

		nuT := fMu * s.Constants.C0 * kNext * kNext / eNext
		if math.IsNaN(nuT) || math.IsInf(nuT, 0) {
			return &simerrors.NonFiniteState{Field: "NuT", Step: step, I: i, J: j, Value: nuT}
		}

		nextK.Set(i, j, kNext)
		nextE.Set(i, j, eNext)
		nextNuT.Set(i, j, nuT)
	}

	nextK.CopyInto(f.K)
	nextE.CopyInto(f.E)
	nextNuT.CopyInto(f.NuT)
	return nil
}

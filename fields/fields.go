// Package fields holds the staggered-grid physical state and the
// explicit update operators that advance it one fractional step:
// fluxes, the Poisson right-hand side, velocity correction,
// temperature advection-diffusion, and the adaptive timestep. Uses an
// index-accessor style (u(i,j)/v(i,j)/p(i,j)) over numerics.FieldMatrix.
package fields

import (
	"math"

	"github.com/mattetrop/fluidhcen/discretization"
	"github.com/mattetrop/fluidhcen/grid"
	"github.com/mattetrop/fluidhcen/numerics"
)

// Fields is the container and modifier for every physical field the
// solver advances. Matrices are sized (size_x+2, size_y+2) to carry
// the ghost ring.
type Fields struct {
	U, V, P  numerics.FieldMatrix
	F, G, RS numerics.FieldMatrix
	T        numerics.FieldMatrix
	K, E     numerics.FieldMatrix
	NuT      numerics.FieldMatrix

	// ReT, YPlus, DistX, DistY back calculate_damping/calculate_yplus/
	// calculate_walldist. ReT is filled by CalculateDamping, which
	// Driver.Step calls when low-Re damping is enabled; YPlus, DistX and
	// DistY are filled only by explicit CalculateYPlus/CalculateWallDist
	// calls.
	ReT, YPlus   numerics.FieldMatrix
	DistX, DistY numerics.FieldMatrix

	Nu    float64
	Dt    float64
	Tau   float64
	Alpha float64
	Beta  float64
	Gx, Gy float64
	Cnu   float64

	LengthX, LengthY float64

	EnergyOn     bool
	TurbulenceOn bool
	LowReDamping bool
}

// New allocates every field at (sizeX+2, sizeY+2) and fills the
// initial uniform values, mirroring the constructor signature of
// src/Fields.cpp extended with temperature/turbulence initial values.
func New(sizeX, sizeY int, nu, dt, tau, lengthX, lengthY, ui, vi, pi, alpha, beta, gx, gy, ti, ki, ei float64) *Fields {
	cols, rows := sizeX+2, sizeY+2
	f := &Fields{
		U:   numerics.NewFieldMatrix(cols, rows, ui),
		V:   numerics.NewFieldMatrix(cols, rows, vi),
		P:   numerics.NewFieldMatrix(cols, rows, pi),
		F:   numerics.NewFieldMatrix(cols, rows, 0),
		G:   numerics.NewFieldMatrix(cols, rows, 0),
		RS:  numerics.NewFieldMatrix(cols, rows, 0),
		T:   numerics.NewFieldMatrix(cols, rows, ti),
		K:   numerics.NewFieldMatrix(cols, rows, ki),
		E:   numerics.NewFieldMatrix(cols, rows, ei),
		NuT: numerics.NewFieldMatrix(cols, rows, 0),

		ReT:   numerics.NewFieldMatrix(cols, rows, 0),
		YPlus: numerics.NewFieldMatrix(cols, rows, 0),
		DistX: numerics.NewFieldMatrix(cols, rows, 0),
		DistY: numerics.NewFieldMatrix(cols, rows, 0),

		Nu: nu, Dt: dt, Tau: tau,
		Alpha: alpha, Beta: beta,
		Gx: gx, Gy: gy,
		Cnu: 0.09,

		LengthX: lengthX, LengthY: lengthY,
	}
	return f
}

// nuEffFace returns nu, or nu + a face-interpolation of NuT when
// turbulence is active.
func (f *Fields) nuEffFace(i, j, di, dj int) float64 {
	if !f.TurbulenceOn {
		return f.Nu
	}
	return f.Nu + 0.5*(f.NuT.At(i, j)+f.NuT.At(i+di, j+dj))
}

// CalculateFluxes computes F on east faces (1<=i<=size_x-1, 1<=j<=size_y)
// and G on north faces (1<=i<=size_x, 1<=j<=size_y-1).
func (f *Fields) CalculateFluxes(g *grid.Grid, gamma float64) {
	dom := g.Domain()
	dx, dy := dom.Dx, dom.Dy

	for j := 1; j <= dom.SizeY; j++ {
		for i := 1; i <= dom.SizeX-1; i++ {
			nuEff := f.nuEffFace(i, j, 1, 0)
			buoy := 0.0
			if f.EnergyOn {
				buoy = -f.Beta * f.Gx * (f.T.At(i, j) + f.T.At(i+1, j)) / 2
			}
			val := f.U.At(i, j) + f.Dt*(nuEff*discretization.Laplacian(f.U, i, j, dx, dy)-
				discretization.ConvectionU(f.U, f.V, i, j, dx, dy, gamma)+f.Gx+buoy)
			f.F.Set(i, j, val)
		}
	}

	for j := 1; j <= dom.SizeY-1; j++ {
		for i := 1; i <= dom.SizeX; i++ {
			nuEff := f.nuEffFace(i, j, 0, 1)
			buoy := 0.0
			if f.EnergyOn {
				buoy = -f.Beta * f.Gy * (f.T.At(i, j) + f.T.At(i, j+1)) / 2
			}
			val := f.V.At(i, j) + f.Dt*(nuEff*discretization.Laplacian(f.V, i, j, dx, dy)-
				discretization.ConvectionV(f.U, f.V, i, j, dx, dy, gamma)+f.Gy+buoy)
			f.G.Set(i, j, val)
		}
	}
}

// CalculateRS assembles the pressure Poisson right-hand side from the
// flux divergence over every fluid cell.
func (f *Fields) CalculateRS(g *grid.Grid) {
	dom := g.Domain()
	dx, dy := dom.Dx, dom.Dy
	for _, ref := range g.FluidCells() {
		i, j := ref.I, ref.J
		rs := 1 / f.Dt * ((f.F.At(i, j) - f.F.At(i-1, j)) / dx + (f.G.At(i, j) - f.G.At(i, j-1)) / dy)
		f.RS.Set(i, j, rs)
	}
}

// CalculateVelocities corrects U, V with the pressure gradient after
// the Poisson solve.
func (f *Fields) CalculateVelocities(g *grid.Grid) {
	dom := g.Domain()
	dx, dy := dom.Dx, dom.Dy

	for j := 1; j <= dom.SizeY; j++ {
		for i := 1; i <= dom.SizeX-1; i++ {
			f.U.Set(i, j, f.F.At(i, j)-f.Dt/dx*(f.P.At(i+1, j)-f.P.At(i, j)))
		}
	}
	for j := 1; j <= dom.SizeY-1; j++ {
		for i := 1; i <= dom.SizeX; i++ {
			f.V.Set(i, j, f.G.At(i, j)-f.Dt/dy*(f.P.At(i, j+1)-f.P.At(i, j)))
		}
	}
}

// CalculateTemperature advances T by one explicit Euler step of
// advection-diffusion, only over fluid cells.
func (f *Fields) CalculateTemperature(g *grid.Grid, gamma float64) {
	dom := g.Domain()
	dx, dy := dom.Dx, dom.Dy
	next := f.T.Copy()
	for _, ref := range g.FluidCells() {
		i, j := ref.I, ref.J
		val := f.T.At(i, j) + f.Dt*(f.Alpha*discretization.Laplacian(f.T, i, j, dx, dy)-
			discretization.ConvectionScalar(f.U, f.V, f.T, i, j, dx, dy, gamma))
		next.Set(i, j, val)
	}
	next.CopyInto(f.T)
}

// CalculateDt computes the adaptive timestep: the minimum of the
// viscous and the two convective CFL limits, scaled by tau. A
// non-positive tau leaves Dt unchanged (adaptation disabled). Returns
// the local (per-shard) candidate; callers in a decomposed run must
// reduce-min across shards before assigning it back to Dt.
func (f *Fields) CalculateDt(g *grid.Grid) float64 {
	if f.Tau <= 0 {
		return f.Dt
	}
	dom := g.Domain()
	dx, dy := dom.Dx, dom.Dy
	dx2, dy2 := dx*dx, dy*dy

	nuEffMax := f.Nu
	if f.TurbulenceOn {
		nuEffMax = f.Nu + f.NuT.Max()
	}

	viscous := 0.5 * (dx2 * dy2) / ((dx2 + dy2) * nuEffMax)
	convU := dx / math.Max(f.U.MaxAbs(), 1e-12)
	convV := dy / math.Max(f.V.MaxAbs(), 1e-12)

	limit := math.Min(viscous, math.Min(convU, convV))
	return f.Tau * limit
}

// CalculateNuT updates the eddy viscosity field nu_T = C_mu * K^2 / E.
func (f *Fields) CalculateNuT(g *grid.Grid) {
	for _, ref := range g.FluidCells() {
		i, j := ref.I, ref.J
		k, e := f.K.At(i, j), f.E.At(i, j)
		f.NuT.Set(i, j, f.Cnu*k*k/e)
	}
}

// CalculateWallDist populates DistX/DistY with the Manhattan distance
// (in cells, scaled by dx/dy) from each fluid cell to the nearest
// wall-like cell, a supplemental feature declared but unimplemented in
// the original source's Fields.hpp.
func (f *Fields) CalculateWallDist(g *grid.Grid) {
	dom := g.Domain()
	wallRefs := append(append([]grid.CellRef{}, g.FixedWallCells()...), g.MovingWallCells()...)
	wallRefs = append(wallRefs, g.HotWallCells()...)
	wallRefs = append(wallRefs, g.ColdWallCells()...)
	wallRefs = append(wallRefs, g.InnerObstacleCells()...)

	for _, ref := range g.FluidCells() {
		i, j := ref.I, ref.J
		bestX, bestY := math.Inf(1), math.Inf(1)
		for _, w := range wallRefs {
			dxCells := math.Abs(float64(i - w.I))
			dyCells := math.Abs(float64(j - w.J))
			if dxCells*dom.Dx < bestX {
				bestX = dxCells * dom.Dx
			}
			if dyCells*dom.Dy < bestY {
				bestY = dyCells * dom.Dy
			}
		}
		f.DistX.Set(i, j, bestX)
		f.DistY.Set(i, j, bestY)
	}
}

// CalculateYPlus computes the wall-unit distance y+ = dist_y *
// sqrt(nu * |S|) / nu used by the low-Reynolds damping functions.
func (f *Fields) CalculateYPlus(g *grid.Grid) {
	dom := g.Domain()
	dx, dy := dom.Dx, dom.Dy
	for _, ref := range g.FluidCells() {
		i, j := ref.I, ref.J
		sMag := math.Sqrt(math.Max(discretization.StrainRateSquared(f.U, f.V, i, j, dx, dy), 0))
		uTau := math.Sqrt(f.Nu * sMag)
		f.YPlus.Set(i, j, f.DistY.At(i, j)*uTau/f.Nu)
	}
}

// CalculateDamping computes the turbulent Reynolds number ReT = K^2 /
// (nu * E) used to gate low-Reynolds damping functions in the
// turbulence package.
func (f *Fields) CalculateDamping(g *grid.Grid) {
	for _, ref := range g.FluidCells() {
		i, j := ref.I, ref.J
		k, e := f.K.At(i, j), f.E.At(i, j)
		f.ReT.Set(i, j, k*k/(f.Nu*e))
	}
}

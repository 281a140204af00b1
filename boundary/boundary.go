// Package boundary implements the polymorphic boundary-condition
// updaters, grounded on src/Boundary.cpp's per-face dispatch. Every
// concrete type owns the non-owning CellRef list for
// its role (built once by grid.Grid); the types that take per-wall
// values keep them in a table keyed by the cell's own grid.Tag,
// resolving the moving-wall / per-tag
// temperature and velocity ambiguity the original source left open.
package boundary

import (
	"github.com/mattetrop/fluidhcen/fields"
	"github.com/mattetrop/fluidhcen/grid"
)

// Boundary is the capability set every boundary-condition variant
// implements. A variant that has nothing to do for a given method
// implements it as a no-op (e.g. Outflow.ApplyFlux).
type Boundary interface {
	ApplyVelocity(f *fields.Fields, g *grid.Grid)
	ApplyPressure(f *fields.Fields, g *grid.Grid)
	ApplyFlux(f *fields.Fields, g *grid.Grid)
	ApplyTemperature(f *fields.Fields, g *grid.Grid)
	ApplyTurbulence(f *fields.Fields, g *grid.Grid)
}

type target struct{ i, j int }

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// applyNoSlip implements the FixedWall/MovingWall velocity rule:
// normal component zero, tangential component mirrored as
// 2*wallVel - U(interior neighbor), so the moving-wall value enters
// only through the tangential mirror. When a
// corner cell has two orthogonal border faces set, both candidates
// computed for the same staggered target are averaged, rather than
// letting the later face silently overwrite the earlier one.
func applyNoSlip(f *fields.Fields, i, j int, b grid.Border, wallVel float64) {
	uCand := map[target][]float64{}
	vCand := map[target][]float64{}
	addU := func(ti, tj int, v float64) { uCand[target{ti, tj}] = append(uCand[target{ti, tj}], v) }
	addV := func(ti, tj int, v float64) { vCand[target{ti, tj}] = append(vCand[target{ti, tj}], v) }

	if b.Has(grid.Right) {
		addU(i, j, 0)
		addV(i, j, 2*wallVel-f.V.At(i+1, j))
	}
	if b.Has(grid.Left) {
		addU(i-1, j, 0)
		addV(i, j, 2*wallVel-f.V.At(i-1, j))
	}
	if b.Has(grid.Top) {
		addV(i, j, 0)
		addU(i, j, 2*wallVel-f.U.At(i, j+1))
	}
	if b.Has(grid.Bottom) {
		addV(i, j-1, 0)
		addU(i, j, 2*wallVel-f.U.At(i, j-1))
	}
	for t, vals := range uCand {
		f.U.Set(t.i, t.j, mean(vals))
	}
	for t, vals := range vCand {
		f.V.Set(t.i, t.j, mean(vals))
	}
}

// applyNeumannZero sets the wall cell's own pressure to the mean of
// its fluid-adjacent neighbors' pressures - the corner-cell mean-of-
// both-faces resolution for the Neumann-zero pressure rule.
func applyNeumannZero(f *fields.Fields, i, j int, b grid.Border) {
	var sum float64
	var n int
	if b.Has(grid.Right) {
		sum += f.P.At(i+1, j)
		n++
	}
	if b.Has(grid.Left) {
		sum += f.P.At(i-1, j)
		n++
	}
	if b.Has(grid.Top) {
		sum += f.P.At(i, j+1)
		n++
	}
	if b.Has(grid.Bottom) {
		sum += f.P.At(i, j-1)
		n++
	}
	if n > 0 {
		f.P.Set(i, j, sum/float64(n))
	}
}

// applyFluxClamp enforces F=U / G=V on every set face, per
// Boundary::applyFlux in the original source.
func applyFluxClamp(f *fields.Fields, i, j int, b grid.Border) {
	if b.Has(grid.Right) {
		f.F.Set(i, j, f.U.At(i, j))
	}
	if b.Has(grid.Left) {
		f.F.Set(i-1, j, f.U.At(i-1, j))
	}
	if b.Has(grid.Top) {
		f.G.Set(i, j, f.V.At(i, j))
	}
	if b.Has(grid.Bottom) {
		f.G.Set(i, j-1, f.V.At(i, j-1))
	}
}

// applyDirichletTemperature sets the cell's own temperature to value.
func applyDirichletTemperature(f *fields.Fields, i, j int, value float64) {
	f.T.Set(i, j, value)
}

// applyNeumannZeroTemperature mirrors applyNeumannZero for T.
func applyNeumannZeroTemperature(f *fields.Fields, i, j int, b grid.Border) {
	var sum float64
	var n int
	if b.Has(grid.Right) {
		sum += f.T.At(i+1, j)
		n++
	}
	if b.Has(grid.Left) {
		sum += f.T.At(i-1, j)
		n++
	}
	if b.Has(grid.Top) {
		sum += f.T.At(i, j+1)
		n++
	}
	if b.Has(grid.Bottom) {
		sum += f.T.At(i, j-1)
		n++
	}
	if n > 0 {
		f.T.Set(i, j, sum/float64(n))
	}
}

// zeroWallTurbulence implements the high-Reynolds near-wall law:
// K = 0 at the wall. Low-Reynolds damping is applied separately, to
// the interior production/dissipation/nuT terms, by the turbulence
// package.
func zeroWallTurbulence(f *fields.Fields, i, j int) {
	f.K.Set(i, j, 0)
	f.E.Set(i, j, 1e-4)
}

// copyFromNeighbors implements the zero-gradient velocity rule shared
// by Outflow and ZeroGradient: the cell's own U, V mirror the mean of
// its fluid-adjacent neighbors' values.
func copyFromNeighbors(f *fields.Fields, i, j int, b grid.Border) {
	var uSum, vSum float64
	var n int
	add := func(ni, nj int) {
		uSum += f.U.At(ni, nj)
		vSum += f.V.At(ni, nj)
		n++
	}
	if b.Has(grid.Right) {
		add(i+1, j)
	}
	if b.Has(grid.Left) {
		add(i-1, j)
	}
	if b.Has(grid.Top) {
		add(i, j+1)
	}
	if b.Has(grid.Bottom) {
		add(i, j-1)
	}
	if n == 0 {
		return
	}
	f.U.Set(i, j, uSum/float64(n))
	f.V.Set(i, j, vSum/float64(n))
}

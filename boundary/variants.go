package boundary

import (
	"github.com/mattetrop/fluidhcen/fields"
	"github.com/mattetrop/fluidhcen/grid"
)

// FixedWallBoundary implements the no-slip wall with Neumann-zero
// pressure and Neumann-zero temperature. WallTemp is stored but not
// read by any Apply method; hot and cold walls have their own types.
type FixedWallBoundary struct {
	g        *grid.Grid
	Cells    []grid.CellRef
	WallTemp map[grid.Tag]float64
}

// NewFixedWallBoundary builds a FixedWallBoundary over g's fixed-wall
// cell list.
func NewFixedWallBoundary(g *grid.Grid, wallTemp map[grid.Tag]float64) *FixedWallBoundary {
	return &FixedWallBoundary{g: g, Cells: g.FixedWallCells(), WallTemp: wallTemp}
}

func (b *FixedWallBoundary) ApplyVelocity(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNoSlip(f, ref.I, ref.J, c.Border, 0)
	}
}

func (b *FixedWallBoundary) ApplyPressure(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNeumannZero(f, ref.I, ref.J, c.Border)
	}
}

func (b *FixedWallBoundary) ApplyFlux(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyFluxClamp(f, ref.I, ref.J, c.Border)
	}
}

func (b *FixedWallBoundary) ApplyTemperature(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNeumannZeroTemperature(f, ref.I, ref.J, c.Border)
	}
}

func (b *FixedWallBoundary) ApplyTurbulence(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		zeroWallTurbulence(f, ref.I, ref.J)
	}
}

// MovingWallBoundary generalizes FixedWallBoundary with a non-zero
// tangential wall velocity, looked up per cell by its own grid.Tag -
// the resolution of the original source's hardcoded tag-8 lookup.
type MovingWallBoundary struct {
	g          *grid.Grid
	Cells      []grid.CellRef
	WallVel    map[grid.Tag]float64
	WallTemp   map[grid.Tag]float64
}

func NewMovingWallBoundary(g *grid.Grid, wallVel, wallTemp map[grid.Tag]float64) *MovingWallBoundary {
	return &MovingWallBoundary{g: g, Cells: g.MovingWallCells(), WallVel: wallVel, WallTemp: wallTemp}
}

func (b *MovingWallBoundary) velocityFor(tag grid.Tag) float64 {
	if v, ok := b.WallVel[tag]; ok {
		return v
	}
	return 0
}

func (b *MovingWallBoundary) ApplyVelocity(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNoSlip(f, ref.I, ref.J, c.Border, b.velocityFor(c.Tag))
	}
}

func (b *MovingWallBoundary) ApplyPressure(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNeumannZero(f, ref.I, ref.J, c.Border)
	}
}

func (b *MovingWallBoundary) ApplyFlux(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyFluxClamp(f, ref.I, ref.J, c.Border)
	}
}

func (b *MovingWallBoundary) ApplyTemperature(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNeumannZeroTemperature(f, ref.I, ref.J, c.Border)
	}
}

func (b *MovingWallBoundary) ApplyTurbulence(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		zeroWallTurbulence(f, ref.I, ref.J)
	}
}

// InflowBoundary fixes U, V to a per-tag prescribed vector on every
// set border face; corner cells average the candidate contributed by
// each face, same as applyNoSlip.
type InflowBoundary struct {
	g       *grid.Grid
	Cells   []grid.CellRef
	U, V    map[grid.Tag]float64
	Temp    map[grid.Tag]float64
}

func NewInflowBoundary(g *grid.Grid, u, v, temp map[grid.Tag]float64) *InflowBoundary {
	return &InflowBoundary{g: g, Cells: g.InflowCells(), U: u, V: v, Temp: temp}
}

func (b *InflowBoundary) ApplyVelocity(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyPrescribed(f, ref.I, ref.J, c.Border, b.U[c.Tag], b.V[c.Tag])
	}
}

func (b *InflowBoundary) ApplyPressure(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNeumannZero(f, ref.I, ref.J, c.Border)
	}
}

func (b *InflowBoundary) ApplyFlux(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyFluxClamp(f, ref.I, ref.J, c.Border)
	}
}

func (b *InflowBoundary) ApplyTemperature(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		if v, ok := b.Temp[c.Tag]; ok {
			applyDirichletTemperature(f, ref.I, ref.J, v)
		}
	}
}

func (b *InflowBoundary) ApplyTurbulence(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		zeroWallTurbulence(f, ref.I, ref.J)
	}
}

// applyPrescribed sets both velocity components to the prescribed
// (u, v) vector on every target implied by the set border faces,
// averaging duplicate targets on corner cells exactly as applyNoSlip.
func applyPrescribed(f *fields.Fields, i, j int, b grid.Border, u, v float64) {
	uCand := map[target][]float64{}
	vCand := map[target][]float64{}
	addU := func(ti, tj int) { uCand[target{ti, tj}] = append(uCand[target{ti, tj}], u) }
	addV := func(ti, tj int) { vCand[target{ti, tj}] = append(vCand[target{ti, tj}], v) }

	if b.Has(grid.Right) {
		addU(i, j)
		addV(i, j)
	}
	if b.Has(grid.Left) {
		addU(i-1, j)
		addV(i, j)
	}
	if b.Has(grid.Top) {
		addV(i, j)
		addU(i, j)
	}
	if b.Has(grid.Bottom) {
		addV(i, j-1)
		addU(i, j)
	}
	for t, vals := range uCand {
		f.U.Set(t.i, t.j, mean(vals))
	}
	for t, vals := range vCand {
		f.V.Set(t.i, t.j, mean(vals))
	}
}

// FixedVelocityBoundary is the generalized-inflow variant: identical
// rule to InflowBoundary, distinct cell-role list.
type FixedVelocityBoundary struct {
	g     *grid.Grid
	Cells []grid.CellRef
	U, V  map[grid.Tag]float64
}

func NewFixedVelocityBoundary(g *grid.Grid, u, v map[grid.Tag]float64) *FixedVelocityBoundary {
	return &FixedVelocityBoundary{g: g, Cells: g.FixedVelocityCells(), U: u, V: v}
}

func (b *FixedVelocityBoundary) ApplyVelocity(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyPrescribed(f, ref.I, ref.J, c.Border, b.U[c.Tag], b.V[c.Tag])
	}
}

func (b *FixedVelocityBoundary) ApplyPressure(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNeumannZero(f, ref.I, ref.J, c.Border)
	}
}

func (b *FixedVelocityBoundary) ApplyFlux(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyFluxClamp(f, ref.I, ref.J, c.Border)
	}
}

func (b *FixedVelocityBoundary) ApplyTemperature(f *fields.Fields, g *grid.Grid) {}

func (b *FixedVelocityBoundary) ApplyTurbulence(f *fields.Fields, g *grid.Grid) {}

// OutflowBoundary copies velocity from the fluid-adjacent neighbors
// (zero-gradient) and fixes pressure to a reference value - Dirichlet
// by default, Neumann-zero whenever UseNeumann is set (RefPressure is
// then ignored).
type OutflowBoundary struct {
	g           *grid.Grid
	Cells       []grid.CellRef
	RefPressure float64
	UseNeumann  bool
}

func NewOutflowBoundary(g *grid.Grid, refPressure float64, useNeumann bool) *OutflowBoundary {
	return &OutflowBoundary{g: g, Cells: g.OutflowCells(), RefPressure: refPressure, UseNeumann: useNeumann}
}

func (b *OutflowBoundary) ApplyVelocity(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		copyFromNeighbors(f, ref.I, ref.J, c.Border)
	}
}

func (b *OutflowBoundary) ApplyPressure(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		if b.UseNeumann {
			applyNeumannZero(f, ref.I, ref.J, c.Border)
			continue
		}
		f.P.Set(ref.I, ref.J, b.RefPressure)
	}
}

func (b *OutflowBoundary) ApplyFlux(f *fields.Fields, g *grid.Grid) {}

func (b *OutflowBoundary) ApplyTemperature(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNeumannZeroTemperature(f, ref.I, ref.J, c.Border)
	}
}

func (b *OutflowBoundary) ApplyTurbulence(f *fields.Fields, g *grid.Grid) {}

// ZeroGradientBoundary copies both velocity components and pressure
// from the fluid-adjacent neighbors.
type ZeroGradientBoundary struct {
	g     *grid.Grid
	Cells []grid.CellRef
}

func NewZeroGradientBoundary(g *grid.Grid) *ZeroGradientBoundary {
	return &ZeroGradientBoundary{g: g, Cells: g.ZeroGradientCells()}
}

func (b *ZeroGradientBoundary) ApplyVelocity(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		copyFromNeighbors(f, ref.I, ref.J, c.Border)
	}
}

func (b *ZeroGradientBoundary) ApplyPressure(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNeumannZero(f, ref.I, ref.J, c.Border)
	}
}

func (b *ZeroGradientBoundary) ApplyFlux(f *fields.Fields, g *grid.Grid) {}

func (b *ZeroGradientBoundary) ApplyTemperature(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNeumannZeroTemperature(f, ref.I, ref.J, c.Border)
	}
}

func (b *ZeroGradientBoundary) ApplyTurbulence(f *fields.Fields, g *grid.Grid) {}

// HotWallBoundary is a no-slip wall whose temperature is fixed
// (Dirichlet) to a per-tag hot temperature.
type HotWallBoundary struct {
	g     *grid.Grid
	Cells []grid.CellRef
	Temp  map[grid.Tag]float64
}

func NewHotWallBoundary(g *grid.Grid, temp map[grid.Tag]float64) *HotWallBoundary {
	return &HotWallBoundary{g: g, Cells: g.HotWallCells(), Temp: temp}
}

func (b *HotWallBoundary) ApplyVelocity(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNoSlip(f, ref.I, ref.J, c.Border, 0)
	}
}

func (b *HotWallBoundary) ApplyPressure(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNeumannZero(f, ref.I, ref.J, c.Border)
	}
}

func (b *HotWallBoundary) ApplyFlux(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyFluxClamp(f, ref.I, ref.J, c.Border)
	}
}

func (b *HotWallBoundary) ApplyTemperature(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyDirichletTemperature(f, ref.I, ref.J, b.Temp[c.Tag])
	}
}

func (b *HotWallBoundary) ApplyTurbulence(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		zeroWallTurbulence(f, ref.I, ref.J)
	}
}

// ColdWallBoundary mirrors HotWallBoundary with a cold per-tag
// temperature table.
type ColdWallBoundary struct {
	g     *grid.Grid
	Cells []grid.CellRef
	Temp  map[grid.Tag]float64
}

func NewColdWallBoundary(g *grid.Grid, temp map[grid.Tag]float64) *ColdWallBoundary {
	return &ColdWallBoundary{g: g, Cells: g.ColdWallCells(), Temp: temp}
}

func (b *ColdWallBoundary) ApplyVelocity(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNoSlip(f, ref.I, ref.J, c.Border, 0)
	}
}

func (b *ColdWallBoundary) ApplyPressure(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNeumannZero(f, ref.I, ref.J, c.Border)
	}
}

func (b *ColdWallBoundary) ApplyFlux(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyFluxClamp(f, ref.I, ref.J, c.Border)
	}
}

func (b *ColdWallBoundary) ApplyTemperature(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyDirichletTemperature(f, ref.I, ref.J, b.Temp[c.Tag])
	}
}

func (b *ColdWallBoundary) ApplyTurbulence(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		zeroWallTurbulence(f, ref.I, ref.J)
	}
}

// InnerObstacleBoundary is a fixed no-slip, Neumann-zero wall in the
// interior of the domain (an obstacle rather than a domain-edge wall);
// it shares FixedWallBoundary's rule set exactly.
type InnerObstacleBoundary struct {
	g     *grid.Grid
	Cells []grid.CellRef
}

func NewInnerObstacleBoundary(g *grid.Grid) *InnerObstacleBoundary {
	return &InnerObstacleBoundary{g: g, Cells: g.InnerObstacleCells()}
}

func (b *InnerObstacleBoundary) ApplyVelocity(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNoSlip(f, ref.I, ref.J, c.Border, 0)
	}
}

func (b *InnerObstacleBoundary) ApplyPressure(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNeumannZero(f, ref.I, ref.J, c.Border)
	}
}

func (b *InnerObstacleBoundary) ApplyFlux(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyFluxClamp(f, ref.I, ref.J, c.Border)
	}
}

func (b *InnerObstacleBoundary) ApplyTemperature(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		c := g.Cell(ref.I, ref.J)
		applyNeumannZeroTemperature(f, ref.I, ref.J, c.Border)
	}
}

func (b *InnerObstacleBoundary) ApplyTurbulence(f *fields.Fields, g *grid.Grid) {
	for _, ref := range b.Cells {
		zeroWallTurbulence(f, ref.I, ref.J)
	}
}

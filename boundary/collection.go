package boundary

import (
	"github.com/mattetrop/fluidhcen/fields"
	"github.com/mattetrop/fluidhcen/grid"
)

// Collection is the ordered set of boundary-condition groups active
// for a run; TimeStepDriver calls its methods instead of iterating
// individual Boundary variants.
type Collection struct {
	Members []Boundary
}

// NewCollection builds every non-empty boundary group for g, wiring
// the per-tag parameter tables from cfg.
func NewCollection(g *grid.Grid, cfg Params) *Collection {
	c := &Collection{}
	add := func(cells []grid.CellRef, b Boundary) {
		if len(cells) != 0 {
			c.Members = append(c.Members, b)
		}
	}
	add(g.FixedWallCells(), NewFixedWallBoundary(g, cfg.WallTemp))
	add(g.MovingWallCells(), NewMovingWallBoundary(g, cfg.WallVel, cfg.WallTemp))
	add(g.InflowCells(), NewInflowBoundary(g, cfg.InflowU, cfg.InflowV, cfg.InflowTemp))
	add(g.FixedVelocityCells(), NewFixedVelocityBoundary(g, cfg.InflowU, cfg.InflowV))
	add(g.OutflowCells(), NewOutflowBoundary(g, cfg.OutflowRefPressure, cfg.OutflowNeumann))
	add(g.ZeroGradientCells(), NewZeroGradientBoundary(g))
	add(g.HotWallCells(), NewHotWallBoundary(g, cfg.WallTemp))
	add(g.ColdWallCells(), NewColdWallBoundary(g, cfg.WallTemp))
	add(g.InnerObstacleCells(), NewInnerObstacleBoundary(g))
	return c
}

// Params collects every per-tag table a Collection's members consult.
type Params struct {
	WallVel            map[grid.Tag]float64
	WallTemp           map[grid.Tag]float64
	InflowU, InflowV   map[grid.Tag]float64
	InflowTemp         map[grid.Tag]float64
	OutflowRefPressure float64
	OutflowNeumann     bool
}

func (c *Collection) ApplyVelocity(f *fields.Fields, g *grid.Grid) {
	for _, m := range c.Members {
		m.ApplyVelocity(f, g)
	}
}

func (c *Collection) ApplyPressure(f *fields.Fields, g *grid.Grid) {
	for _, m := range c.Members {
		m.ApplyPressure(f, g)
	}
}

func (c *Collection) ApplyFlux(f *fields.Fields, g *grid.Grid) {
	for _, m := range c.Members {
		m.ApplyFlux(f, g)
	}
}

func (c *Collection) ApplyTemperature(f *fields.Fields, g *grid.Grid) {
	for _, m := range c.Members {
		m.ApplyTemperature(f, g)
	}
}

func (c *Collection) ApplyTurbulence(f *fields.Fields, g *grid.Grid) {
	for _, m := range c.Members {
		m.ApplyTurbulence(f, g)
	}
}

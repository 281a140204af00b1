package boundary

import (
	"testing"

	"github.com/mattetrop/fluidhcen/fields"
	"github.com/mattetrop/fluidhcen/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCavity(t *testing.T) (*grid.Grid, *fields.Fields) {
	g, err := grid.NewLidDrivenCavity(4, 4, 1.0, 1.0)
	require.NoError(t, err)
	f := fields.New(4, 4, 0.01, 0.1, 0.5, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	return g, f
}

func TestFixedWallNoSlipBottomEdge(t *testing.T) {
	g, f := newCavity(t)
	// cell (2,1) on the bottom wall row, interior column: its only fluid
	// neighbor is above, so border should be Top only.
	c := g.Cell(2, 1)
	require.Equal(t, grid.FixedWall, c.Type)
	require.True(t, c.Border.Has(grid.Top))
	require.False(t, c.Border.Has(grid.Left))
	require.False(t, c.Border.Has(grid.Right))

	f.U.Set(2, 2, 3.0) // neighbor above, used by the tangential mirror formula.
	fw := NewFixedWallBoundary(g, nil)
	fw.ApplyVelocity(f, g)

	assert.InDelta(t, 0.0, f.V.At(2, 1), 1e-9)
	assert.InDelta(t, -3.0, f.U.At(2, 1), 1e-9)
}

func TestFixedWallPressureNeumannCorner(t *testing.T) {
	g, err := grid.NewFromTags([][]int{
		{3, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}, 1, 1, -1)
	require.NoError(t, err)
	f := fields.New(3, 3, 0.01, 0.1, 0.5, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	c := g.Cell(1, 1)
	require.Equal(t, 2, c.Border.Count())
	f.P.Set(2, 1, 4.0)
	f.P.Set(1, 2, 8.0)
	fw := NewFixedWallBoundary(g, nil)
	fw.ApplyPressure(f, g)
	assert.InDelta(t, 6.0, f.P.At(1, 1), 1e-9)
}

func TestMovingWallTangentialVelocity(t *testing.T) {
	g, f := newCavity(t)
	c := g.Cell(2, 4)
	require.Equal(t, grid.MovingWall, c.Type)
	require.True(t, c.Border.Has(grid.Bottom))
	f.U.Set(2, 3, 1.0)
	mw := NewMovingWallBoundary(g, map[grid.Tag]float64{c.Tag: 2.0}, nil)
	mw.ApplyVelocity(f, g)
	assert.InDelta(t, 2*2.0-1.0, f.U.At(2, 4), 1e-9)
	assert.InDelta(t, 0.0, f.V.At(2, 3), 1e-9)
}

func TestFluxClampMatchesVelocity(t *testing.T) {
	g, f := newCavity(t)
	c := g.Cell(2, 1)
	require.True(t, c.Border.Has(grid.Top))
	f.V.Set(2, 1, 7.0)
	fw := NewFixedWallBoundary(g, nil)
	fw.ApplyFlux(f, g)
	assert.InDelta(t, f.V.At(2, 1), f.G.At(2, 1), 1e-9)
}

func TestHotWallSetsDirichletTemperature(t *testing.T) {
	g, err := grid.NewFromTags([][]int{
		{4, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}, 1, 1, -1)
	require.NoError(t, err)
	f := fields.New(3, 3, 0.01, 0.1, 0.5, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	c := g.Cell(1, 1)
	require.Equal(t, grid.HotWall, c.Type)
	hw := NewHotWallBoundary(g, map[grid.Tag]float64{c.Tag: 80.0})
	hw.ApplyTemperature(f, g)
	assert.InDelta(t, 80.0, f.T.At(1, 1), 1e-9)
}

func TestZeroGradientCopiesFromNeighbor(t *testing.T) {
	g, err := grid.NewFromTags([][]int{
		{9, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}, 1, 1, -1)
	require.NoError(t, err)
	f := fields.New(3, 3, 0.01, 0.1, 0.5, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	c := g.Cell(1, 1)
	require.Equal(t, 2, c.Border.Count())
	f.U.Set(1, 2, 3.0)
	f.V.Set(1, 2, -1.0)
	f.U.Set(2, 1, 5.0)
	f.V.Set(2, 1, 1.0)
	zg := NewZeroGradientBoundary(g)
	zg.ApplyVelocity(f, g)
	assert.InDelta(t, 4.0, f.U.At(1, 1), 1e-9)
	assert.InDelta(t, 0.0, f.V.At(1, 1), 1e-9)
}

func TestInflowPrescribesVelocity(t *testing.T) {
	g, err := grid.NewFromTags([][]int{
		{1, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}, 1, 1, -1)
	require.NoError(t, err)
	f := fields.New(3, 3, 0.01, 0.1, 0.5, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	c := g.Cell(1, 1)
	inb := NewInflowBoundary(g, map[grid.Tag]float64{c.Tag: 2.5}, map[grid.Tag]float64{c.Tag: 0.0}, nil)
	inb.ApplyVelocity(f, g)
	assert.InDelta(t, 2.5, f.U.At(1, 1), 1e-9)
}

func TestCollectionBuildsOnlyNonEmptyGroups(t *testing.T) {
	g, _ := newCavity(t)
	col := NewCollection(g, Params{})
	assert.NotEmpty(t, col.Members)
	for _, m := range col.Members {
		switch m.(type) {
		case *InflowBoundary, *OutflowBoundary, *FixedVelocityBoundary, *ZeroGradientBoundary,
			*HotWallBoundary, *ColdWallBoundary, *InnerObstacleBoundary:
			t.Fatalf("lid-driven cavity has no cells of type %T", m)
		}
	}
}

package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLidDrivenCavityClassification(t *testing.T) {
	g, err := NewLidDrivenCavity(5, 5, 1.0, 1.0)
	require.NoError(t, err)

	assert.Equal(t, Ghost, g.Cell(0, 0).Type)
	assert.Equal(t, Ghost, g.Cell(6, 6).Type)
	assert.Equal(t, Fluid, g.Cell(3, 3).Type)
	assert.Equal(t, MovingWall, g.Cell(3, 5).Type)
	assert.Equal(t, FixedWall, g.Cell(1, 1).Type)

	assert.NotEmpty(t, g.FluidCells())
	assert.NotEmpty(t, g.MovingWallCells())
	assert.NotEmpty(t, g.GhostCells())
}

func TestOuterRingIsAlwaysGhost(t *testing.T) {
	g, err := NewLidDrivenCavity(4, 4, 1.0, 1.0)
	require.NoError(t, err)
	cols, rows := g.cells.Dims()
	for i := 0; i < cols; i++ {
		assert.Equal(t, Ghost, g.Cell(i, 0).Type)
		assert.Equal(t, Ghost, g.Cell(i, rows-1).Type)
	}
	for j := 0; j < rows; j++ {
		assert.Equal(t, Ghost, g.Cell(0, j).Type)
		assert.Equal(t, Ghost, g.Cell(cols-1, j).Type)
	}
}

func TestBorderMaskAbutsFluidOnly(t *testing.T) {
	// A single fixed-wall cell at (1,1) in a 3x3 interior has fluid
	// neighbors to the Top and Right only.
	tags := [][]int{
		{3, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}
	g, err := NewFromTags(tags, 1, 1, -1)
	require.NoError(t, err)
	c := g.Cell(1, 1)
	require.Equal(t, FixedWall, c.Type)
	assert.True(t, c.Border.Has(Top))
	assert.True(t, c.Border.Has(Right))
	assert.False(t, c.Border.Has(Bottom))
	assert.False(t, c.Border.Has(Left))
}

func TestConcaveObstacleRejected(t *testing.T) {
	// A wall cell surrounded by fluid on all four sides is concave and
	// must be rejected during geometry assignment.
	tags := [][]int{
		{0, 0, 0},
		{0, 3, 0},
		{0, 0, 0},
	}
	_, err := NewFromTags(tags, 1, 1, -1)
	require.Error(t, err)
}

func TestUnrecognizedTagRejected(t *testing.T) {
	tags := [][]int{{99}}
	_, err := NewFromTags(tags, 1, 1, -1)
	require.Error(t, err)
}

func TestRaggedGeometryRejected(t *testing.T) {
	tags := [][]int{{0, 0}, {0}}
	_, err := NewFromTags(tags, 1, 1, -1)
	require.Error(t, err)
}

func TestDomainInvariant(t *testing.T) {
	g, err := NewLidDrivenCavity(10, 6, 2.0, 1.2)
	require.NoError(t, err)
	d := g.Domain()
	assert.True(t, d.Valid())
	assert.InDelta(t, 0.2, d.Dx, 1e-12)
	assert.InDelta(t, 0.2, d.Dy, 1e-12)
}

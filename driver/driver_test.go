package driver

import (
	"testing"

	"github.com/mattetrop/fluidhcen/boundary"
	"github.com/mattetrop/fluidhcen/fields"
	"github.com/mattetrop/fluidhcen/grid"
	"github.com/mattetrop/fluidhcen/pressure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *Driver {
	g, err := grid.NewLidDrivenCavity(8, 8, 1.0, 1.0)
	require.NoError(t, err)
	f := fields.New(8, 8, 0.01, 0.0, 0.5, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	bc := boundary.NewCollection(g, boundary.Params{WallVel: map[grid.Tag]float64{8: 1.0}})
	sor := pressure.NewSORSolver(1.7)
	return New(g, f, bc, sor, nil, nil, 0.9, 1e-3, 50)
}

func TestStepAdvancesTimeAndProducesFiniteState(t *testing.T) {
	d := setup(t)
	result, err := d.Step()
	require.NoError(t, err)
	assert.Greater(t, result.Dt, 0.0)
	assert.Equal(t, result.Dt, d.Time)
	assert.Equal(t, 1, d.Steps)
}

func TestStepAppliesLidVelocityToInteriorFlow(t *testing.T) {
	d := setup(t)
	for i := 0; i < 20; i++ {
		_, err := d.Step()
		require.NoError(t, err)
	}
	// Some interior cell should now have nonzero horizontal velocity,
	// driven in from the moving lid.
	var anyNonzero bool
	for _, ref := range d.Grid.FluidCells() {
		if d.Fields.U.At(ref.I, ref.J) != 0 {
			anyNonzero = true
			break
		}
	}
	assert.True(t, anyNonzero)
}

func TestRunStopsAtTEnd(t *testing.T) {
	d := setup(t)
	reporter := &Reporter{}
	err := d.Run(0.05, reporter, 0, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, d.Time, 0.05)
}

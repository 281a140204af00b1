package turbulence

import (
	"testing"

	"github.com/mattetrop/fluidhcen/fields"
	"github.com/mattetrop/fluidhcen/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*grid.Grid, *fields.Fields) {
	g, err := grid.NewLidDrivenCavity(5, 5, 1.0, 1.0)
	require.NoError(t, err)
	f := fields.New(5, 5, 0.01, 0.05, 0.5, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1.0, 1.0)
	return g, f
}

func TestSolveKeepsKAndEAboveClamp(t *testing.T) {
	g, f := setup(t)
	s := NewSolver()
	for i := 0; i < 20; i++ {
		require.NoError(t, s.Solve(f, g, 0.5, i))
	}
	for _, ref := range g.FluidCells() {
		assert.GreaterOrEqual(t, f.K.At(ref.I, ref.J), minClamp)
		assert.GreaterOrEqual(t, f.E.At(ref.I, ref.J), minClamp)
	}
}

func TestSolveUpdatesNuTFromClosure(t *testing.T) {
	g, f := setup(t)
	s := NewSolver()
	require.NoError(t, s.Solve(f, g, 0.5, 0))
	ref := g.FluidCells()[0]
	k, e := f.K.At(ref.I, ref.J), f.E.At(ref.I, ref.J)
	want := s.Constants.C0 * k * k / e
	assert.InDelta(t, want, f.NuT.At(ref.I, ref.J), 1e-9)
}

func TestLowReDampingReducesNuTNearWall(t *testing.T) {
	g, f := setup(t)
	f.CalculateDamping(g)

	plain := NewSolver()
	damped := NewSolver()
	damped.LowReDamping = true

	ref := g.FluidCells()[0]
	f.ReT.Set(ref.I, ref.J, 1.0) // small ReT => strong damping (f_mu << 1)

	fMuPlain, _, _ := plain.dampingFactors(f, ref.I, ref.J)
	fMuDamped, _, _ := damped.dampingFactors(f, ref.I, ref.J)
	assert.Equal(t, 1.0, fMuPlain)
	assert.Less(t, fMuDamped, fMuPlain)
}

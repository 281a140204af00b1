package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mattetrop/fluidhcen/fields"
	"github.com/mattetrop/fluidhcen/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSnapshotWritesExpectedScalars(t *testing.T) {
	g, err := grid.NewLidDrivenCavity(3, 3, 1.0, 1.0)
	require.NoError(t, err)
	f := fields.New(3, 3, 0.01, 0.05, 0.5, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1.0, 1.0)
	f.EnergyOn = true
	f.TurbulenceOn = true

	dir := t.TempDir()
	w, err := NewVTKWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteSnapshot(f, g, 7, 0.35))

	content, err := os.ReadFile(filepath.Join(dir, "field.000007.vtk"))
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "DATASET STRUCTURED_POINTS")
	assert.Contains(t, text, "DIMENSIONS 3 3 1")
	assert.Contains(t, text, "VECTORS velocity float")
	assert.Contains(t, text, "SCALARS pressure float 1")
	assert.Contains(t, text, "SCALARS temperature float 1")
	assert.Contains(t, text, "SCALARS k float 1")
	assert.Contains(t, text, "SCALARS epsilon float 1")
	assert.Contains(t, text, "SCALARS nu_t float 1")
	assert.True(t, strings.HasPrefix(text, "# vtk DataFile Version 3.0"))
}

func TestWriteSnapshotOmitsDisabledScalars(t *testing.T) {
	g, err := grid.NewLidDrivenCavity(3, 3, 1.0, 1.0)
	require.NoError(t, err)
	f := fields.New(3, 3, 0.01, 0.05, 0.5, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0)

	dir := t.TempDir()
	w, err := NewVTKWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteSnapshot(f, g, 0, 0.0))

	content, err := os.ReadFile(filepath.Join(dir, "field.000000.vtk"))
	require.NoError(t, err)
	text := string(content)
	assert.NotContains(t, text, "temperature")
	assert.NotContains(t, text, "SCALARS k")
}

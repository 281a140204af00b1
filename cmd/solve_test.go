package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeCavityConfig(t *testing.T) string {
	content := `
nu = 0.01
dt = 0.01
tau = 0.5
t_end = 0.02
imax = 6
jmax = 6
x_length = 1.0
y_length = 1.0
u_i = 0
v_i = 0
p_i = 0
`
	path := filepath.Join(t.TempDir(), "cavity.dat")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunSolverCompletesShortCavityRun(t *testing.T) {
	path := writeCavityConfig(t)
	rootCmd.SetArgs([]string{path})
	err := rootCmd.Execute()
	require.NoError(t, err)
}

func TestRunSolverRejectsMismatchedProcArgs(t *testing.T) {
	path := writeCavityConfig(t)
	rootCmd.SetArgs([]string{path, "2"})
	err := rootCmd.Execute()
	require.Error(t, err)
}

func TestRunSolverRejectsMultiRankDecomposition(t *testing.T) {
	path := writeCavityConfig(t)
	rootCmd.SetArgs([]string{path, "2", "1"})
	err := rootCmd.Execute()
	require.Error(t, err)
}

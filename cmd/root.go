/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/mattetrop/fluidhcen/simerrors"
)

var rootCmd = &cobra.Command{
	Use:   "solver <config.dat> [i_proc j_proc]",
	Short: "2-D incompressible staggered-grid flow solver",
	Long:  `A fractional-step projection-method solver over a staggered Cartesian grid, optionally decomposed across a 2-D process topology.`,
	Args:  cobra.RangeArgs(1, 3),
	RunE:  runSolver,
}

func init() {
	rootCmd.Flags().Bool("profile", false, "enable CPU profiling via pkg/profile")
	rootCmd.Flags().Bool("graph", false, "display a live field view while solving")
	rootCmd.Flags().String("graph-field", "P", "field shown by --graph: U, V, P, T, K, or E")
	rootCmd.Flags().String("output", "", "directory for VTK snapshots; overrides output_path from the config file")
}

// Execute runs the root command, mapping a returned error to a process
// exit code via each error's simerrors.Fatal.ExitCode, or 2 for any
// other error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	var fatal simerrors.Fatal
	if errors.As(err, &fatal) {
		return fatal.ExitCode()
	}
	return 2
}

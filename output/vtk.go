// Package output writes VTK snapshots and wires an optional live
// viewer. No VTK-writing library is available, so VTKWriter is a
// hand-rolled legacy ASCII "STRUCTURED_POINTS" writer built on
// bufio/fmt: plain stdlib I/O, no templating or binary-framework
// dependency.
package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattetrop/fluidhcen/fields"
	"github.com/mattetrop/fluidhcen/grid"
	"github.com/mattetrop/fluidhcen/simerrors"
)

// VTKWriter writes one legacy ASCII VTK structured-points file per
// snapshot into Dir, named by step.
type VTKWriter struct {
	Dir string
}

// NewVTKWriter ensures Dir exists and returns a writer rooted there.
func NewVTKWriter(dir string) (*VTKWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &simerrors.IOError{Op: "create output directory", Err: err}
	}
	return &VTKWriter{Dir: dir}, nil
}

// WriteSnapshot writes U, V, P (cell-center interpolated from the
// staggered faces) and, when energyOn/turbulenceOn, T and K/E/NuT,
// for step at simulated time t.
func (w *VTKWriter) WriteSnapshot(f *fields.Fields, g *grid.Grid, step int, t float64) error {
	path := filepath.Join(w.Dir, fmt.Sprintf("field.%06d.vtk", step))
	out, err := os.Create(path)
	if err != nil {
		return &simerrors.IOError{Op: "create VTK file", Err: err}
	}
	defer out.Close()

	bw := bufio.NewWriter(out)
	dom := g.Domain()
	sizeX, sizeY := dom.SizeX, dom.SizeY
	numPoints := sizeX * sizeY

	fmt.Fprintf(bw, "# vtk DataFile Version 3.0\n")
	fmt.Fprintf(bw, "step %d time %g\n", step, t)
	fmt.Fprintf(bw, "ASCII\n")
	fmt.Fprintf(bw, "DATASET STRUCTURED_POINTS\n")
	fmt.Fprintf(bw, "DIMENSIONS %d %d 1\n", sizeX, sizeY)
	fmt.Fprintf(bw, "ORIGIN %g %g 0\n", dom.Dx/2, dom.Dy/2)
	fmt.Fprintf(bw, "SPACING %g %g 1\n", dom.Dx, dom.Dy)
	fmt.Fprintf(bw, "POINT_DATA %d\n", numPoints)

	writeScalar := func(name string, at func(i, j int) float64) {
		fmt.Fprintf(bw, "SCALARS %s float 1\n", name)
		fmt.Fprintf(bw, "LOOKUP_TABLE default\n")
		for j := 1; j <= sizeY; j++ {
			for i := 1; i <= sizeX; i++ {
				fmt.Fprintf(bw, "%g\n", at(i, j))
			}
		}
	}
	centerU := func(i, j int) float64 { return (f.U.At(i-1, j) + f.U.At(i, j)) / 2 }
	centerV := func(i, j int) float64 { return (f.V.At(i, j-1) + f.V.At(i, j)) / 2 }

	fmt.Fprintf(bw, "VECTORS velocity float\n")
	for j := 1; j <= sizeY; j++ {
		for i := 1; i <= sizeX; i++ {
			fmt.Fprintf(bw, "%g %g 0\n", centerU(i, j), centerV(i, j))
		}
	}
	writeScalar("pressure", f.P.At)
	if f.EnergyOn {
		writeScalar("temperature", f.T.At)
	}
	if f.TurbulenceOn {
		writeScalar("k", f.K.At)
		writeScalar("epsilon", f.E.At)
		writeScalar("nu_t", f.NuT.At)
	}

	if err := bw.Flush(); err != nil {
		return &simerrors.IOError{Op: "flush VTK file", Err: err}
	}
	return nil
}

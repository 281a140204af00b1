package pressure

import (
	"github.com/james-bowman/sparse"
	"github.com/mattetrop/fluidhcen/grid"
)

// AssembleLaplacianDOK builds the five-point Poisson operator over g's
// fluid cells as a sparse.DOK matrix, indexed by each fluid cell's
// position in g.FluidCells(). A non-fluid neighbor is folded into the
// diagonal as a Neumann-zero wall (P at the wall equal to P(i,j)), the
// value the pressure boundary pass gives a wall cell with a single
// fluid face; a wall cell bordering two fluid cells takes their mean
// in that pass, which this operator does not model. Used by pressure_test.go as an
// independent cross-check of SORSolver's stencil-local residual
// against a sparse matrix-vector residual, following the DOK
// assembly pattern used elsewhere in this module for assembled
// operators.
func AssembleLaplacianDOK(g *grid.Grid) *sparse.DOK {
	dom := g.Domain()
	dx2, dy2 := dom.Dx*dom.Dx, dom.Dy*dom.Dy

	fluid := g.FluidCells()
	index := make(map[grid.CellRef]int, len(fluid))
	for k, ref := range fluid {
		index[ref] = k
	}

	n := len(fluid)
	m := sparse.NewDOK(n, n)
	for k, ref := range fluid {
		diag := -2/dx2 - 2/dy2
		neighbors := []grid.CellRef{
			{I: ref.I + 1, J: ref.J},
			{I: ref.I - 1, J: ref.J},
			{I: ref.I, J: ref.J + 1},
			{I: ref.I, J: ref.J - 1},
		}
		weights := []float64{1 / dx2, 1 / dx2, 1 / dy2, 1 / dy2}
		for n2, nb := range neighbors {
			if col, ok := index[nb]; ok {
				m.Set(k, col, weights[n2])
			} else {
				diag += weights[n2]
			}
		}
		m.Set(k, k, diag)
	}
	return m
}

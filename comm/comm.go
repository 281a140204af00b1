// Package comm implements a 2-D Cartesian process decomposition, halo
// exchange, and collective reductions. No MPI binding is available, so
// this follows a goroutine/channel sharding idiom instead
// (model_problems/Euler2D/parallelism.go's ShardByK family shows the
// same preference for explicit, index-based data partitioning over
// shared-memory locking, and an ExaScience-pargo example fans work out
// over goroutines the same way) - Context is an in-process analogue:
// each rank is a *Context instead of an MPI process, Communicate
// exchanges one-cell halos through buffered channels with up to four
// neighbor Contexts (a nil neighbor is skipped exactly like
// MPI_PROC_NULL), and Reducer implements ReduceMin/ReduceSum as a
// channel-based all-reduce barrier across every rank in the topology.
package comm

import (
	"fmt"

	"github.com/mattetrop/fluidhcen/numerics"
	"github.com/mattetrop/fluidhcen/simerrors"
)

// Direction indexes a Context's four neighbor slots.
type Direction int

const (
	Left Direction = iota
	Right
	Bottom
	Top
)

// opposite returns the direction a neighbor regards this link as -
// what we send as Right arrives at the neighbor's Left inbox.
func opposite(d Direction) Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Top:
		return Bottom
	case Bottom:
		return Top
	default:
		panic(fmt.Sprintf("comm: invalid direction %d", d))
	}
}

// Context is one rank's handle into the 2-D Cartesian topology: its
// own rank and coordinates, its four (possibly nil) neighbors, and
// the shared Reducer used for collectives.
type Context struct {
	Rank         int
	Coords       [2]int
	IProc, JProc int

	neighbors [4]*Context
	inbox     [4]chan []float64

	reducer *Reducer
}

// Topology owns every Context of a decomposition and the Reducer they
// share.
type Topology struct {
	Contexts []*Context
	IProc    int
	JProc    int
}

// NewTopology builds a non-periodic iProc x jProc 2-D Cartesian
// decomposition: rank = coordY*iProc + coordX, matching
// Communication::init_parallel's row-major MPI_Cart_create layout.
func NewTopology(iProc, jProc int) (*Topology, error) {
	if iProc <= 0 || jProc <= 0 {
		return nil, &simerrors.DecompositionMismatch{IProc: iProc, JProc: jProc, Total: iProc * jProc}
	}
	total := iProc * jProc
	ctxs := make([]*Context, total)
	reducer := NewReducer(total)

	for rank := 0; rank < total; rank++ {
		cx, cy := rank%iProc, rank/iProc
		c := &Context{Rank: rank, Coords: [2]int{cx, cy}, IProc: iProc, JProc: jProc, reducer: reducer}
		for d := 0; d < 4; d++ {
			c.inbox[d] = make(chan []float64, 1)
		}
		ctxs[rank] = c
	}
	for _, c := range ctxs {
		cx, cy := c.Coords[0], c.Coords[1]
		c.neighbors[Left] = neighborAt(ctxs, iProc, jProc, cx-1, cy)
		c.neighbors[Right] = neighborAt(ctxs, iProc, jProc, cx+1, cy)
		c.neighbors[Bottom] = neighborAt(ctxs, iProc, jProc, cx, cy-1)
		c.neighbors[Top] = neighborAt(ctxs, iProc, jProc, cx, cy+1)
	}
	return &Topology{Contexts: ctxs, IProc: iProc, JProc: jProc}, nil
}

func neighborAt(ctxs []*Context, iProc, jProc, cx, cy int) *Context {
	if cx < 0 || cx >= iProc || cy < 0 || cy >= jProc {
		return nil
	}
	return ctxs[cy*iProc+cx]
}

// HasNeighbor reports whether this rank has a live neighbor in
// direction d (false at the physical boundary, mirroring
// MPI_PROC_NULL).
func (c *Context) HasNeighbor(d Direction) bool { return c.neighbors[d] != nil }

// Communicate exchanges the one-cell-thick halo of m with each of the
// four neighbors: the column at num_cols-2 is sent right and received
// into num_cols-1, column 1 sent left and received into 0, and the
// analogous rows up/down. Any direction whose neighbor is nil is
// skipped.
func (c *Context) Communicate(m numerics.FieldMatrix) {
	cols, rows := m.Dims()

	if c.neighbors[Right] != nil {
		col := make([]float64, rows)
		for j := 0; j < rows; j++ {
			col[j] = m.At(cols-2, j)
		}
		c.neighbors[Right].inbox[opposite(Right)] <- col
	}
	if c.neighbors[Left] != nil {
		col := make([]float64, rows)
		for j := 0; j < rows; j++ {
			col[j] = m.At(1, j)
		}
		c.neighbors[Left].inbox[opposite(Left)] <- col
	}
	if c.neighbors[Top] != nil {
		row := make([]float64, cols)
		for i := 0; i < cols; i++ {
			row[i] = m.At(i, rows-2)
		}
		c.neighbors[Top].inbox[opposite(Top)] <- row
	}
	if c.neighbors[Bottom] != nil {
		row := make([]float64, cols)
		for i := 0; i < cols; i++ {
			row[i] = m.At(i, 1)
		}
		c.neighbors[Bottom].inbox[opposite(Bottom)] <- row
	}

	if c.neighbors[Right] != nil {
		col := <-c.inbox[Right]
		for j := 0; j < rows; j++ {
			m.Set(cols-1, j, col[j])
		}
	}
	if c.neighbors[Left] != nil {
		col := <-c.inbox[Left]
		for j := 0; j < rows; j++ {
			m.Set(0, j, col[j])
		}
	}
	if c.neighbors[Top] != nil {
		row := <-c.inbox[Top]
		for i := 0; i < cols; i++ {
			m.Set(i, rows-1, row[i])
		}
	}
	if c.neighbors[Bottom] != nil {
		row := <-c.inbox[Bottom]
		for i := 0; i < cols; i++ {
			m.Set(i, 0, row[i])
		}
	}
}

// ReduceMin returns the minimum of value across every rank in the
// topology, blocking until all have contributed.
func (c *Context) ReduceMin(value float64) float64 { return c.reducer.reduce(opMin, value) }

// ReduceSum returns the sum of value across every rank in the
// topology, blocking until all have contributed.
func (c *Context) ReduceSum(value float64) float64 { return c.reducer.reduce(opSum, value) }

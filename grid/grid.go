package grid

import (
	"fmt"

	"github.com/mattetrop/fluidhcen/numerics"
	"github.com/mattetrop/fluidhcen/simerrors"
)

// CellRef is a non-owning (i,j) back-reference into Grid's Cell
// arena. Groups hold index pairs rather than pointers - an
// arena-plus-indices formulation that removes any aliasing hazard and
// stays trivially copyable across a decomposed build.
type CellRef struct{ I, J int }

// Grid owns the Cell arena and the non-owning role lists built once
// at construction time and never mutated afterward.
type Grid struct {
	cells *numerics.Matrix[Cell]
	dom   Domain

	fluid         []CellRef
	fixedWall     []CellRef
	movingWall    []CellRef
	inflow        []CellRef
	outflow       []CellRef
	fixedVelocity []CellRef
	zeroGradient  []CellRef
	innerObstacle []CellRef
	hotWall       []CellRef
	coldWall      []CellRef
	ghost         []CellRef
}

// Domain returns the geometric descriptor.
func (g *Grid) Domain() Domain { return g.dom }

// Cell returns the cell at (i, j), including ghost indices 0 and
// size+1.
func (g *Grid) Cell(i, j int) Cell { return g.cells.At(i, j) }

// setCell overwrites the cell at (i, j). Used only during
// construction.
func (g *Grid) setCell(i, j int, c Cell) { g.cells.Set(i, j, c) }

func (g *Grid) FluidCells() []CellRef         { return g.fluid }
func (g *Grid) FixedWallCells() []CellRef     { return g.fixedWall }
func (g *Grid) MovingWallCells() []CellRef    { return g.movingWall }
func (g *Grid) InflowCells() []CellRef        { return g.inflow }
func (g *Grid) OutflowCells() []CellRef       { return g.outflow }
func (g *Grid) FixedVelocityCells() []CellRef { return g.fixedVelocity }
func (g *Grid) ZeroGradientCells() []CellRef  { return g.zeroGradient }
func (g *Grid) InnerObstacleCells() []CellRef { return g.innerObstacle }
func (g *Grid) HotWallCells() []CellRef       { return g.hotWall }
func (g *Grid) ColdWallCells() []CellRef      { return g.coldWall }
func (g *Grid) GhostCells() []CellRef         { return g.ghost }

// NewFromTags builds a Grid from a (sizeX x sizeY) interior tag map
// (tags[j][i], row-major by y then x, no ghost ring included) using
// a fixed PGM tag table, plus dx/dy cell sizes. movingWallID is
// accepted but not read: the tag table always maps tags 6 and 8 to
// the moving wall.
func NewFromTags(tags [][]int, dx, dy float64, movingWallID int) (*Grid, error) {
	sizeY := len(tags)
	if sizeY == 0 {
		return nil, &simerrors.InvalidGeometry{Reason: "empty geometry map"}
	}
	sizeX := len(tags[0])
	for j, row := range tags {
		if len(row) != sizeX {
			return nil, &simerrors.InvalidGeometry{Reason: fmt.Sprintf("ragged geometry row %d", j)}
		}
	}

	g := &Grid{
		cells: numerics.NewMatrix[Cell](sizeX+2, sizeY+2),
		dom: Domain{
			Dx: dx, Dy: dy,
			SizeX: sizeX, SizeY: sizeY,
			ItermaxX: sizeX, ItermaxY: sizeY,
			DomainImax: sizeX, DomainJmax: sizeY,
		},
	}

	// First pass: classify interior cells by tag, ghost ring around
	// the outside. i,j are 1-based into the (sizeX+2, sizeY+2) arena.
	for j := 0; j <= sizeY+1; j++ {
		for i := 0; i <= sizeX+1; i++ {
			if i == 0 || i == sizeX+1 || j == 0 || j == sizeY+1 {
				g.setCell(i, j, Cell{I: i, J: j, Type: Ghost})
				continue
			}
			tag := tags[j-1][i-1]
			ct, ok := cellTypeForTag(tag)
			if !ok {
				return nil, &simerrors.InvalidGeometry{Reason: fmt.Sprintf("unrecognized geometry tag %d", tag), I: i, J: j}
			}
			g.setCell(i, j, Cell{I: i, J: j, Type: ct, Tag: Tag(tag)})
		}
	}

	// Second pass: border masks for non-fluid, non-ghost cells, by
	// inspecting the four orthogonal neighbors - a face abuts fluid
	// iff the neighbor is Fluid.
	for j := 1; j <= sizeY; j++ {
		for i := 1; i <= sizeX; i++ {
			c := g.Cell(i, j)
			if c.Type == Fluid {
				continue
			}
			var b Border
			if g.Cell(i, j+1).Type == Fluid {
				b |= Top
			}
			if g.Cell(i, j-1).Type == Fluid {
				b |= Bottom
			}
			if g.Cell(i-1, j).Type == Fluid {
				b |= Left
			}
			if g.Cell(i+1, j).Type == Fluid {
				b |= Right
			}
			if !b.Orthogonal() {
				return nil, &simerrors.InvalidGeometry{
					Reason: fmt.Sprintf("concave obstacle cell: border mask has %d faces set", b.Count()),
					I: i, J: j,
				}
			}
			c.Border = b
			g.setCell(i, j, c)
		}
	}

	g.buildLists(movingWallID)
	return g, nil
}

func (g *Grid) buildLists(movingWallID int) {
	cols, rows := g.cells.Dims()
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			c := g.Cell(i, j)
			ref := CellRef{I: i, J: j}
			switch c.Type {
			case Fluid:
				g.fluid = append(g.fluid, ref)
			case FixedWall:
				g.fixedWall = append(g.fixedWall, ref)
			case MovingWall:
				g.movingWall = append(g.movingWall, ref)
			case Inflow:
				g.inflow = append(g.inflow, ref)
			case Outflow:
				g.outflow = append(g.outflow, ref)
			case FixedVelocity:
				g.fixedVelocity = append(g.fixedVelocity, ref)
			case ZeroGradient:
				g.zeroGradient = append(g.zeroGradient, ref)
			case HotWall:
				g.hotWall = append(g.hotWall, ref)
			case ColdWall:
				g.coldWall = append(g.coldWall, ref)
			case InnerObstacle:
				g.innerObstacle = append(g.innerObstacle, ref)
			case Ghost:
				g.ghost = append(g.ghost, ref)
			}
		}
	}
	_ = movingWallID // reserved: callers key wall-velocity tables by Cell.Tag, not this id
}

// cellTypeForTag implements the fixed PGM tag table:
// 0 fluid, 1 inflow, 2 outflow, 3 fixed wall (adiabatic), 4 fixed wall
// (hot), 5 fixed wall (cold), 6 moving wall, 8 moving-wall id for the
// lid-driven cavity. 7 and 9 are reserved for FixedVelocity/
// ZeroGradient generalizations used outside the PGM table.
func cellTypeForTag(tag int) (CellType, bool) {
	switch tag {
	case 0:
		return Fluid, true
	case 1:
		return Inflow, true
	case 2:
		return Outflow, true
	case 3:
		return FixedWall, true
	case 4:
		return HotWall, true
	case 5:
		return ColdWall, true
	case 6, 8:
		return MovingWall, true
	case 7:
		return FixedVelocity, true
	case 9:
		return ZeroGradient, true
	case 10:
		return InnerObstacle, true
	default:
		return Fluid, false
	}
}

// NewLidDrivenCavity builds the canonical benchmark geometry: an open
// box of (sizeX x sizeY) fluid cells with a moving wall (tag 8) along
// the top and fixed walls elsewhere, matching Grid::build_lid_driven_cavity
// in the original source.
func NewLidDrivenCavity(sizeX, sizeY int, lengthX, lengthY float64) (*Grid, error) {
	dx, dy := lengthX/float64(sizeX), lengthY/float64(sizeY)
	tags := make([][]int, sizeY)
	for j := range tags {
		tags[j] = make([]int, sizeX)
	}
	for j := 0; j < sizeY; j++ {
		for i := 0; i < sizeX; i++ {
			switch {
			case j == sizeY-1:
				tags[j][i] = 8 // moving wall (lid) along the top row
			case j == 0 || i == 0 || i == sizeX-1:
				tags[j][i] = 3 // fixed adiabatic wall on the other three sides
			default:
				tags[j][i] = 0 // fluid interior
			}
		}
	}
	return NewFromTags(tags, dx, dy, 8)
}

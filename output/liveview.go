package output

import (
	"image/color"

	"github.com/notargets/avs/chart2d"
	graphics2D "github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"

	"github.com/mattetrop/fluidhcen/fields"
	"github.com/mattetrop/fluidhcen/grid"
)

// LiveView wraps notargets/avs/chart2d as an optional live field
// display, mirroring Euler2D's ChartState/PlotMesh: a structured
// quad grid triangulated two-triangles-per-cell (the same
// TriMesh{Triangles, Attributes, Geometry} shape readfiles.PlotMesh
// builds for an unstructured mesh), colored by one scalar field.
type LiveView struct {
	chart  *chart2d.Chart2D
	mesh   graphics2D.TriMesh
	sizeX  int
	sizeY  int
	width  int
	height int
}

// NewLiveView builds the static triangulated mesh for g (cell corners
// as vertices, two triangles per cell) and opens a chart2d window of
// the given pixel size.
func NewLiveView(g *grid.Grid, width, height int) *LiveView {
	dom := g.Domain()
	sizeX, sizeY := dom.SizeX, dom.SizeY
	dx, dy := dom.Dx, dom.Dy

	points := make([]graphics2D.Point, (sizeX+1)*(sizeY+1))
	vertexIndex := func(i, j int) int32 { return int32(j*(sizeX+1) + i) }
	for j := 0; j <= sizeY; j++ {
		for i := 0; i <= sizeX; i++ {
			points[vertexIndex(i, j)].X[0] = float32(float64(i) * dx)
			points[vertexIndex(i, j)].X[1] = float32(float64(j) * dy)
		}
	}

	numCells := sizeX * sizeY
	mesh := graphics2D.TriMesh{
		Geometry:   points,
		Triangles:  make([]graphics2D.Triangle, 2*numCells),
		Attributes: make([][]float32, 2*numCells),
	}
	k := 0
	for j := 0; j < sizeY; j++ {
		for i := 0; i < sizeX; i++ {
			bl, br := vertexIndex(i, j), vertexIndex(i+1, j)
			tl, tr := vertexIndex(i, j+1), vertexIndex(i+1, j+1)

			mesh.Triangles[k].Nodes = [3]int32{bl, br, tr}
			mesh.Attributes[k] = make([]float32, 3)
			k++
			mesh.Triangles[k].Nodes = [3]int32{bl, tr, tl}
			mesh.Attributes[k] = make([]float32, 3)
			k++
		}
	}

	box := graphics2D.NewBoundingBox(mesh.GetGeometry())
	box = box.Scale(1.05)
	chart := chart2d.NewChart2D(width, height, box.XMin[0], box.XMax[0], box.XMin[1], box.XMax[1])
	go chart.Plot()

	return &LiveView{chart: chart, mesh: mesh, sizeX: sizeX, sizeY: sizeY, width: width, height: height}
}

// ShowField paints f's field (selected by name: "P", "U", "V", "T",
// "K", "E") onto the mesh and redraws. Cell (i,j)'s value is broadcast
// to both triangles covering that cell, matching PlotMesh's
// one-attribute-per-face convention.
func (lv *LiveView) ShowField(f *fields.Fields, name string) error {
	field := lv.pick(f, name)

	minV, maxV := field.At(1, 1), field.At(1, 1)
	for j := 1; j <= lv.sizeY; j++ {
		for i := 1; i <= lv.sizeX; i++ {
			v := field.At(i, j)
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}
	if maxV == minV {
		maxV = minV + 1
	}

	k := 0
	for j := 0; j < lv.sizeY; j++ {
		for i := 0; i < lv.sizeX; i++ {
			v := float32(field.At(i+1, j+1))
			for t := 0; t < 2; t++ {
				for n := 0; n < 3; n++ {
					lv.mesh.Attributes[k+t][n] = v
				}
			}
			k += 2
		}
	}

	colorMap := utils2.NewColorMap(float32(minV), float32(maxV), 1.0)
	lv.chart.AddColorMap(colorMap)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if err := lv.chart.AddTriMesh(name, lv.mesh, chart2d.NoGlyph, chart2d.Solid, white); err != nil {
		return err
	}
	return nil
}

func (lv *LiveView) pick(f *fields.Fields, name string) fieldAt {
	switch name {
	case "U":
		return f.U
	case "V":
		return f.V
	case "T":
		return f.T
	case "K":
		return f.K
	case "E":
		return f.E
	default:
		return f.P
	}
}

// fieldAt is the minimal read interface LiveView needs from a
// numerics.FieldMatrix.
type fieldAt interface {
	At(i, j int) float64
}

package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max r3.Vec
}

// Contains reports whether p lies strictly inside the box after insetting
// the box faces by eps. A negative eps grows the box.
func (b Box) Contains(p r3.Vec, eps float64) bool {
	return p.X > b.Min.X+eps && p.X < b.Max.X-eps &&
		p.Y > b.Min.Y+eps && p.Y < b.Max.Y-eps &&
		p.Z > b.Min.Z+eps && p.Z < b.Max.Z-eps
}

// Size returns the box extents along each axis.
func (b Box) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// Center returns the box centroid.
func (b Box) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// Mesh is an unstructured hexahedral mesh with the cell and point attributes
// the model pipeline operates on. Cells hold 8 point indices in VTK
// hexahedron order: the four bottom corners counterclockwise, then the four
// top corners.
//
// Core 0 means unpartitioned; AbsorbingRegion 0 means interior.
type Mesh struct {
	Points []r3.Vec
	Cells  [][]int

	// Cell data
	MaterialTag     []int
	ElementTag      []int
	Region          []int
	Core            []int
	AbsorbingRegion []int

	// Point data
	NDF []int

	// ActiveScalars names the cell array downstream viewers color by.
	ActiveScalars string
}

// NewMesh returns an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{}
}

func (m *Mesh) NumPoints() int { return len(m.Points) }
func (m *Mesh) NumCells() int  { return len(m.Cells) }

// initCellData sizes every cell attribute array to n zeros.
func (m *Mesh) initCellData(n int) {
	m.MaterialTag = make([]int, n)
	m.ElementTag = make([]int, n)
	m.Region = make([]int, n)
	m.Core = make([]int, n)
	m.AbsorbingRegion = make([]int, n)
}

// FillCellData sets every cell's attributes to the given uniform values.
func (m *Mesh) FillCellData(materialTag, elementTag, region, core int) {
	m.initCellData(m.NumCells())
	for i := range m.Cells {
		m.MaterialTag[i] = materialTag
		m.ElementTag[i] = elementTag
		m.Region[i] = region
		m.Core[i] = core
	}
}

// FillNDF sets every point's degree-of-freedom count.
func (m *Mesh) FillNDF(ndf int) {
	m.NDF = make([]int, m.NumPoints())
	for i := range m.NDF {
		m.NDF[i] = ndf
	}
}

// HasAttributes reports whether the full attribute set the pipeline needs is
// populated.
func (m *Mesh) HasAttributes() bool {
	n, p := m.NumCells(), m.NumPoints()
	return len(m.MaterialTag) == n && len(m.ElementTag) == n &&
		len(m.Region) == n && len(m.Core) == n && len(m.NDF) == p
}

// Bounds returns the mesh bounding box.
func (m *Mesh) Bounds() Box {
	if len(m.Points) == 0 {
		return Box{}
	}
	b := Box{Min: m.Points[0], Max: m.Points[0]}
	for _, p := range m.Points[1:] {
		b.Min.X = min(b.Min.X, p.X)
		b.Min.Y = min(b.Min.Y, p.Y)
		b.Min.Z = min(b.Min.Z, p.Z)
		b.Max.X = max(b.Max.X, p.X)
		b.Max.Y = max(b.Max.Y, p.Y)
		b.Max.Z = max(b.Max.Z, p.Z)
	}
	return b
}

// CellBounds returns the bounding box of cell i.
func (m *Mesh) CellBounds(i int) Box {
	cell := m.Cells[i]
	b := Box{Min: m.Points[cell[0]], Max: m.Points[cell[0]]}
	for _, pid := range cell[1:] {
		p := m.Points[pid]
		b.Min.X = min(b.Min.X, p.X)
		b.Min.Y = min(b.Min.Y, p.Y)
		b.Min.Z = min(b.Min.Z, p.Z)
		b.Max.X = max(b.Max.X, p.X)
		b.Max.Y = max(b.Max.Y, p.Y)
		b.Max.Z = max(b.Max.Z, p.Z)
	}
	return b
}

// CellCenter returns the vertex-averaged centroid of cell i.
func (m *Mesh) CellCenter(i int) r3.Vec {
	var c r3.Vec
	for _, pid := range m.Cells[i] {
		c = r3.Add(c, m.Points[pid])
	}
	return r3.Scale(1/float64(len(m.Cells[i])), c)
}

// CellCenters returns the centroids of all cells.
func (m *Mesh) CellCenters() []r3.Vec {
	centers := make([]r3.Vec, m.NumCells())
	for i := range m.Cells {
		centers[i] = m.CellCenter(i)
	}
	return centers
}

// CellsWithinBounds returns the indices of cells whose centroid lies inside
// box, inset by eps.
func (m *Mesh) CellsWithinBounds(box Box, eps float64) []int {
	var ids []int
	for i := range m.Cells {
		if box.Contains(m.CellCenter(i), eps) {
			ids = append(ids, i)
		}
	}
	return ids
}

// Copy returns a deep copy of the mesh.
func (m *Mesh) Copy() *Mesh {
	out := &Mesh{
		Points:          append([]r3.Vec(nil), m.Points...),
		Cells:           make([][]int, len(m.Cells)),
		MaterialTag:     append([]int(nil), m.MaterialTag...),
		ElementTag:      append([]int(nil), m.ElementTag...),
		Region:          append([]int(nil), m.Region...),
		Core:            append([]int(nil), m.Core...),
		AbsorbingRegion: append([]int(nil), m.AbsorbingRegion...),
		NDF:             append([]int(nil), m.NDF...),
		ActiveScalars:   m.ActiveScalars,
	}
	for i, cell := range m.Cells {
		out.Cells[i] = append([]int(nil), cell...)
	}
	return out
}

// ExtractCells returns a new mesh containing only the cells where keep[i] is
// true. Unreferenced points are dropped and cells are remapped.
func (m *Mesh) ExtractCells(keep []bool) *Mesh {
	out := NewMesh()
	pointMap := make([]int, len(m.Points))
	for i := range pointMap {
		pointMap[i] = -1
	}
	for i, cell := range m.Cells {
		if !keep[i] {
			continue
		}
		newCell := make([]int, len(cell))
		for j, pid := range cell {
			if pointMap[pid] < 0 {
				pointMap[pid] = len(out.Points)
				out.Points = append(out.Points, m.Points[pid])
				if m.NDF != nil {
					out.NDF = append(out.NDF, m.NDF[pid])
				}
			}
			newCell[j] = pointMap[pid]
		}
		out.Cells = append(out.Cells, newCell)
		out.MaterialTag = append(out.MaterialTag, at(m.MaterialTag, i))
		out.ElementTag = append(out.ElementTag, at(m.ElementTag, i))
		out.Region = append(out.Region, at(m.Region, i))
		out.Core = append(out.Core, at(m.Core, i))
		out.AbsorbingRegion = append(out.AbsorbingRegion, at(m.AbsorbingRegion, i))
	}
	out.ActiveScalars = m.ActiveScalars
	return out
}

// at reads a cell attribute tolerating an unsized array.
func at(a []int, i int) int {
	if i < len(a) {
		return a[i]
	}
	return 0
}

// StructuredGrid builds a hexahedral grid from the given monotonically
// increasing coordinate lines. Each axis needs at least two coordinates.
func StructuredGrid(xs, ys, zs []float64) (*Mesh, error) {
	nx, ny, nz := len(xs), len(ys), len(zs)
	if nx < 2 || ny < 2 || nz < 2 {
		return nil, fmt.Errorf("structured grid needs at least 2 coordinates per axis, got %dx%dx%d", nx, ny, nz)
	}
	m := NewMesh()
	m.Points = make([]r3.Vec, 0, nx*ny*nz)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				m.Points = append(m.Points, r3.Vec{X: xs[i], Y: ys[j], Z: zs[k]})
			}
		}
	}
	pid := func(i, j, k int) int { return i + nx*(j+ny*k) }
	m.Cells = make([][]int, 0, (nx-1)*(ny-1)*(nz-1))
	for k := 0; k < nz-1; k++ {
		for j := 0; j < ny-1; j++ {
			for i := 0; i < nx-1; i++ {
				m.Cells = append(m.Cells, []int{
					pid(i, j, k), pid(i+1, j, k), pid(i+1, j+1, k), pid(i, j+1, k),
					pid(i, j, k+1), pid(i+1, j, k+1), pid(i+1, j+1, k+1), pid(i, j+1, k+1),
				})
			}
		}
	}
	m.initCellData(m.NumCells())
	return m, nil
}

// LinSpace returns n+1 evenly spaced coordinates spanning [lo, hi].
func LinSpace(lo, hi float64, n int) []float64 {
	out := make([]float64, n+1)
	d := (hi - lo) / float64(n)
	for i := 0; i <= n; i++ {
		out[i] = lo + float64(i)*d
	}
	out[n] = hi
	return out
}

// ARange returns coordinates lo, lo+step, ... for every value below hi.
// Values are generated by index multiplication so long runs do not
// accumulate drift.
func ARange(lo, hi, step float64) []float64 {
	var out []float64
	for i := 0; ; i++ {
		v := lo + float64(i)*step
		if v >= hi {
			break
		}
		out = append(out, v)
	}
	return out
}

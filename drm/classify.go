package drm

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/amnp95/godrm/mesh"
)

// classifyEps is the geometric tolerance used when matching cells and
// points to the domain boundary.
const classifyEps = 1e-6

// Absorbing region codes. A cell touching several boundary faces gets the
// code of the richest combination, triples over pairs over singles; the
// assignment order below reproduces that precedence exactly.
//
//	 1..5   left, right, front, back, bottom
//	 6..13  vertical edges and horizontal x/y edges
//	14..17  bottom corners
//
// The top face never classifies: the shell is open above the domain.
var absorbingNormals = [17]r3.Vec{
	{X: -1, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: -1, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: -1},
	{X: -1, Y: -1, Z: 0},
	{X: -1, Y: 1, Z: 0},
	{X: 1, Y: -1, Z: 0},
	{X: 1, Y: 1, Z: 0},
	{X: -1, Y: 0, Z: -1},
	{X: 1, Y: 0, Z: -1},
	{X: 0, Y: -1, Z: -1},
	{X: 0, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: -1},
}

// regionFaces lists, per region code, which of the five boundary faces
// (left, right, front, back, bottom) the code's extrusion direction leaves
// through.
var regionFaces = [17][5]bool{
	{true, false, false, false, false},
	{false, true, false, false, false},
	{false, false, true, false, false},
	{false, false, false, true, false},
	{false, false, false, false, true},
	{true, false, true, false, false},
	{true, false, false, true, false},
	{false, true, true, false, false},
	{false, true, false, true, false},
	{true, false, false, false, true},
	{false, true, false, false, true},
	{false, false, true, false, true},
	{false, false, false, true, true},
	{true, false, true, false, true},
	{true, false, false, true, true},
	{false, true, true, false, true},
	{false, true, false, true, true},
}

// boundaryCell is one classified cell of the assembled mesh.
type boundaryCell struct {
	id     int     // cell index in the assembled mesh
	region int     // absorbing region code, 0 for unmatched
	faces  [5]bool // left, right, front, back, bottom membership
}

// classifyBoundary selects the cells of m touching the domain boundary and
// assigns each its absorbing region code. The returned slice preserves cell
// index order.
func classifyBoundary(m *mesh.Mesh) []boundaryCell {
	bounds := m.Bounds()

	// Cells whose bounding box reaches a boundary face. The top face is
	// excluded: the absorbing shell only extends sideways and down.
	var ids []int
	for i := range m.Cells {
		cb := m.CellBounds(i)
		if cb.Min.X-bounds.Min.X < classifyEps ||
			bounds.Max.X-cb.Max.X < classifyEps ||
			cb.Min.Y-bounds.Min.Y < classifyEps ||
			bounds.Max.Y-cb.Max.Y < classifyEps ||
			cb.Min.Z-bounds.Min.Z < classifyEps {
			ids = append(ids, i)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	// Face membership compares cell centers against the bounds of the
	// boundary-cell centers, so cells of differing depth classify by
	// their own ring.
	xs := make([]float64, len(ids))
	ys := make([]float64, len(ids))
	zs := make([]float64, len(ids))
	centers := make([]r3.Vec, len(ids))
	for n, id := range ids {
		c := m.CellCenter(id)
		centers[n] = c
		xs[n], ys[n], zs[n] = c.X, c.Y, c.Z
	}
	xmin, xmax := floats.Min(xs), floats.Max(xs)
	ymin, ymax := floats.Min(ys), floats.Max(ys)
	zmin := floats.Min(zs)

	cells := make([]boundaryCell, len(ids))
	for n, id := range ids {
		c := centers[n]
		faces := [5]bool{
			c.X-xmin < classifyEps,
			xmax-c.X < classifyEps,
			c.Y-ymin < classifyEps,
			ymax-c.Y < classifyEps,
			c.Z-zmin < classifyEps,
		}
		cells[n] = boundaryCell{id: id, region: regionCode(faces), faces: faces}
	}
	return cells
}

// regionCode folds face membership into one of the 17 codes, later
// assignments overriding earlier ones exactly as richer combinations take
// precedence.
func regionCode(f [5]bool) int {
	left, right, front, back, bottom := f[0], f[1], f[2], f[3], f[4]
	code := 0
	if left {
		code = 1
	}
	if right {
		code = 2
	}
	if front {
		code = 3
	}
	if back {
		code = 4
	}
	if bottom {
		code = 5
	}
	if left && front {
		code = 6
	}
	if left && back {
		code = 7
	}
	if right && front {
		code = 8
	}
	if right && back {
		code = 9
	}
	if left && bottom {
		code = 10
	}
	if right && bottom {
		code = 11
	}
	if front && bottom {
		code = 12
	}
	if back && bottom {
		code = 13
	}
	if left && front && bottom {
		code = 14
	}
	if left && back && bottom {
		code = 15
	}
	if right && front && bottom {
		code = 16
	}
	if right && back && bottom {
		code = 17
	}
	return code
}

// extrusionRegions returns the region codes cell b extrudes along. For
// regular meshes this is just b.region. A cell spanning a pair of opposite
// faces (a domain a single cell wide) is outside the 17-combination model;
// it extrudes along every code whose faces it touches so the shell still
// encloses it on all matched sides.
func extrusionRegions(b boundaryCell) []int {
	if b.region == 0 {
		return nil
	}
	opposite := (b.faces[0] && b.faces[1]) || (b.faces[2] && b.faces[3])
	if !opposite {
		return []int{b.region}
	}
	var codes []int
	for code := 1; code <= 17; code++ {
		sub := true
		for f := 0; f < 5; f++ {
			if regionFaces[code-1][f] && !b.faces[f] {
				sub = false
				break
			}
		}
		if sub {
			codes = append(codes, code)
		}
	}
	return codes
}

package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestLinSpace(t *testing.T) {
	xs := LinSpace(0, 1, 4)
	assert.Len(t, xs, 5)
	assert.Equal(t, 0., xs[0])
	assert.Equal(t, 0.25, xs[1])
	assert.Equal(t, 1., xs[4])
}

func TestARange(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2}, ARange(0, 2.5, 0.5))
	// hi is exclusive
	assert.Equal(t, []float64{0, 0.5}, ARange(0, 1, 0.5))
	// a small epsilon on hi keeps the exact upper coordinate
	assert.Equal(t, []float64{0, 0.5, 1}, ARange(0, 1+1e-6, 0.5))
}

func TestStructuredGrid(t *testing.T) {
	m, err := StructuredGrid(LinSpace(0, 2, 2), LinSpace(0, 1, 1), LinSpace(0, 1, 1))
	assert.NoError(t, err)
	assert.Equal(t, 12, m.NumPoints())
	assert.Equal(t, 2, m.NumCells())
	// cell attribute arrays are sized with the grid
	assert.Len(t, m.MaterialTag, 2)
	assert.Len(t, m.AbsorbingRegion, 2)

	// first point runs along x fastest
	assert.Equal(t, r3.Vec{X: 0, Y: 0, Z: 0}, m.Points[0])
	assert.Equal(t, r3.Vec{X: 1, Y: 0, Z: 0}, m.Points[1])

	// hexahedron ordering: bottom quad then top quad
	cell := m.Cells[0]
	assert.Len(t, cell, 8)
	for _, pid := range cell[:4] {
		assert.Equal(t, 0., m.Points[pid].Z)
	}
	for _, pid := range cell[4:] {
		assert.Equal(t, 1., m.Points[pid].Z)
	}

	_, err = StructuredGrid([]float64{0}, LinSpace(0, 1, 1), LinSpace(0, 1, 1))
	assert.Error(t, err)
}

func TestBoxContains(t *testing.T) {
	b := Box{Min: r3.Vec{}, Max: r3.Vec{X: 1, Y: 1, Z: 1}}
	assert.True(t, b.Contains(r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, 1e-6))
	// boundary points are outside
	assert.False(t, b.Contains(r3.Vec{X: 0, Y: 0.5, Z: 0.5}, 1e-6))
	// negative eps grows the box
	assert.True(t, b.Contains(r3.Vec{X: 0, Y: 0.5, Z: 0.5}, -1e-3))
	assert.Equal(t, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, b.Center())
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, b.Size())
}

func TestBoundsAndCenters(t *testing.T) {
	m, _ := StructuredGrid(LinSpace(0, 2, 2), LinSpace(0, 2, 2), LinSpace(0, 1, 1))
	b := m.Bounds()
	assert.Equal(t, r3.Vec{}, b.Min)
	assert.Equal(t, r3.Vec{X: 2, Y: 2, Z: 1}, b.Max)

	assert.Equal(t, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, m.CellCenter(0))
	cb := m.CellBounds(0)
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, cb.Max)

	ids := m.CellsWithinBounds(Box{Min: r3.Vec{}, Max: r3.Vec{X: 1.1, Y: 1.1, Z: 1.1}}, 1e-6)
	assert.Equal(t, []int{0}, ids)
}

func TestFillAndAttributes(t *testing.T) {
	m, _ := StructuredGrid(LinSpace(0, 2, 2), LinSpace(0, 1, 1), LinSpace(0, 1, 1))
	assert.False(t, m.HasAttributes())
	m.FillCellData(3, 5, 1, 2)
	m.FillNDF(9)
	assert.True(t, m.HasAttributes())
	assert.Equal(t, []int{3, 3}, m.MaterialTag)
	assert.Equal(t, []int{5, 5}, m.ElementTag)
	assert.Equal(t, []int{1, 1}, m.Region)
	assert.Equal(t, []int{2, 2}, m.Core)
	assert.Equal(t, 9, m.NDF[0])
}

func TestCopyIsDeep(t *testing.T) {
	m, _ := StructuredGrid(LinSpace(0, 1, 1), LinSpace(0, 1, 1), LinSpace(0, 1, 1))
	m.FillCellData(1, 1, 0, 0)
	m.FillNDF(3)
	c := m.Copy()
	c.Points[0].X = 99
	c.MaterialTag[0] = 99
	c.Cells[0][0] = 7
	assert.Equal(t, 0., m.Points[0].X)
	assert.Equal(t, 1, m.MaterialTag[0])
	assert.Equal(t, 0, m.Cells[0][0])
}

func TestExtractCells(t *testing.T) {
	m, _ := StructuredGrid(LinSpace(0, 2, 2), LinSpace(0, 1, 1), LinSpace(0, 1, 1))
	m.FillCellData(1, 1, 0, 0)
	m.FillNDF(3)
	m.MaterialTag[1] = 4

	out := m.ExtractCells([]bool{false, true})
	assert.Equal(t, 1, out.NumCells())
	// points of the dropped cell are gone
	assert.Equal(t, 8, out.NumPoints())
	assert.Equal(t, []int{4}, out.MaterialTag)
	assert.Len(t, out.NDF, 8)
	for _, pid := range out.Cells[0] {
		assert.Less(t, pid, out.NumPoints())
		assert.GreaterOrEqual(t, out.Points[pid].X, 1.)
	}
}

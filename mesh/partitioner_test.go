package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAlgorithm(t *testing.T) {
	a, err := ParseAlgorithm("kd-tree")
	assert.NoError(t, err)
	assert.Equal(t, KDTree, a)
	a, err = ParseAlgorithm("metis")
	assert.NoError(t, err)
	assert.Equal(t, Metis, a)
	_, err = ParseAlgorithm("scotch")
	assert.Error(t, err)
	assert.Equal(t, "kd-tree", KDTree.String())
}

func TestPartitionExactCounts(t *testing.T) {
	m, _ := StructuredGrid(LinSpace(0, 4, 4), LinSpace(0, 4, 4), LinSpace(0, 1, 1))
	assert.Equal(t, 16, m.NumCells())

	for _, nparts := range []int{1, 2, 3, 4, 5, 16} {
		part, err := NewSpatialPartitioner(m, nparts).Partition()
		assert.NoError(t, err)
		assert.Len(t, part, 16)

		counts := make([]int, nparts)
		for _, p := range part {
			assert.GreaterOrEqual(t, p, 0)
			assert.Less(t, p, nparts)
			counts[p]++
		}
		// proportional bisection: every group is populated and cell
		// counts differ by at most one
		lo, hi := counts[0], counts[0]
		for _, c := range counts {
			lo = min(lo, c)
			hi = max(hi, c)
		}
		assert.Greater(t, lo, 0, "nparts=%d", nparts)
		assert.LessOrEqual(t, hi-lo, 1, "nparts=%d", nparts)
	}
}

func TestPartitionIsSpatiallyCompact(t *testing.T) {
	// a 4x1x1 strip bisected in two splits along x
	m, _ := StructuredGrid(LinSpace(0, 4, 4), LinSpace(0, 1, 1), LinSpace(0, 1, 1))
	part, err := NewSpatialPartitioner(m, 2).Partition()
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 1}, part)
}

func TestPartitionErrors(t *testing.T) {
	m, _ := StructuredGrid(LinSpace(0, 1, 1), LinSpace(0, 1, 1), LinSpace(0, 1, 1))
	_, err := NewSpatialPartitioner(m, 0).Partition()
	assert.Error(t, err)
	_, err = NewSpatialPartitioner(NewMesh(), 2).Partition()
	assert.Error(t, err)
}

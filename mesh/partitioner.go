package mesh

import (
	"fmt"
	"log"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Algorithm selects a partitioning strategy.
type Algorithm int

const (
	// KDTree recursively bisects cell centroids along the longest axis.
	KDTree Algorithm = iota
	// Metis graph partitioning is a recognized but unimplemented
	// alternative.
	Metis
)

func (a Algorithm) String() string {
	switch a {
	case KDTree:
		return "kd-tree"
	case Metis:
		return "metis"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm maps the external algorithm names onto the closed set.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "kd-tree":
		return KDTree, nil
	case "metis":
		return Metis, nil
	}
	return 0, fmt.Errorf("partition algorithm should be one of ['kd-tree', 'metis'], got %q", s)
}

// SpatialPartitioner divides a mesh's cells into spatially compact groups by
// recursive coordinate bisection: at each level the cell set splits at the
// median of the longest centroid-bounds axis, with part counts distributed
// proportionally so any group count is honored exactly.
type SpatialPartitioner struct {
	mesh   *Mesh
	nparts int
}

// NewSpatialPartitioner creates a partitioner for the given mesh.
func NewSpatialPartitioner(m *Mesh, nparts int) *SpatialPartitioner {
	return &SpatialPartitioner{mesh: m, nparts: nparts}
}

// Partition returns a per-cell group index in [0, nparts).
func (sp *SpatialPartitioner) Partition() ([]int, error) {
	if sp.nparts < 1 {
		return nil, fmt.Errorf("number of partitions should be at least 1, got %d", sp.nparts)
	}
	n := sp.mesh.NumCells()
	if n == 0 {
		return nil, fmt.Errorf("cannot partition a mesh with no cells")
	}
	log.Printf("Partitioning mesh with %d cells into %d parts", n, sp.nparts)

	centers := sp.mesh.CellCenters()
	part := make([]int, n)
	ids := identity(n)
	sp.bisect(ids, centers, 0, sp.nparts, part)
	sp.reportBalance(part)
	return part, nil
}

// bisect assigns part ids [base, base+nparts) to the cells in ids.
func (sp *SpatialPartitioner) bisect(ids []int, centers []r3.Vec, base, nparts int, part []int) {
	if nparts == 1 {
		for _, id := range ids {
			part[id] = base
		}
		return
	}

	axis := longestAxis(ids, centers)
	sort.Slice(ids, func(i, j int) bool {
		return axisCoord(centers[ids[i]], axis) < axisCoord(centers[ids[j]], axis)
	})

	// Split the cells in proportion to the part counts on each side.
	nl := nparts / 2
	nr := nparts - nl
	cut := len(ids) * nl / nparts
	sp.bisect(ids[:cut], centers, base, nl, part)
	sp.bisect(ids[cut:], centers, base+nl, nr, part)
}

func axisCoord(p r3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

func longestAxis(ids []int, centers []r3.Vec) int {
	lo := centers[ids[0]]
	hi := lo
	for _, id := range ids[1:] {
		c := centers[id]
		lo.X, hi.X = min(lo.X, c.X), max(hi.X, c.X)
		lo.Y, hi.Y = min(lo.Y, c.Y), max(hi.Y, c.Y)
		lo.Z, hi.Z = min(lo.Z, c.Z), max(hi.Z, c.Z)
	}
	ext := r3.Sub(hi, lo)
	axis := 0
	best := ext.X
	if ext.Y > best {
		axis, best = 1, ext.Y
	}
	if ext.Z > best {
		axis = 2
	}
	return axis
}

func (sp *SpatialPartitioner) reportBalance(part []int) {
	counts := make([]int, sp.nparts)
	for _, p := range part {
		counts[p]++
	}
	minC, maxC := counts[0], counts[0]
	for _, c := range counts[1:] {
		minC = min(minC, c)
		maxC = max(maxC, c)
	}
	log.Printf("Partition balance: min=%d max=%d cells per part", minC, maxC)
}

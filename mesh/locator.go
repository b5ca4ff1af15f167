package mesh

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// locNode is a mesh point with its index, satisfying kdtree.Comparable.
type locNode struct {
	pos r3.Vec
	id  int
}

func (n locNode) coord(d kdtree.Dim) float64 {
	switch d {
	case 0:
		return n.pos.X
	case 1:
		return n.pos.Y
	default:
		return n.pos.Z
	}
}

func (n locNode) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(locNode)
	return n.coord(d) - q.coord(d)
}

func (n locNode) Dims() int { return 3 }

// Distance returns the squared Euclidean distance, per the kdtree contract.
func (n locNode) Distance(c kdtree.Comparable) float64 {
	q := c.(locNode)
	d := r3.Sub(n.pos, q.pos)
	return d.X*d.X + d.Y*d.Y + d.Z*d.Z
}

type locNodes []locNode

func (p locNodes) Index(i int) kdtree.Comparable { return p[i] }
func (p locNodes) Len() int                      { return len(p) }
func (p locNodes) Pivot(d kdtree.Dim) int        { return locPlane{Dim: d, locNodes: p}.Pivot() }
func (p locNodes) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}

// locPlane sorts locNodes on a single dimension.
type locPlane struct {
	kdtree.Dim
	locNodes
}

func (p locPlane) Less(i, j int) bool {
	return p.locNodes[i].coord(p.Dim) < p.locNodes[j].coord(p.Dim)
}
func (p locPlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p locPlane) Slice(start, end int) kdtree.SortSlicer {
	p.locNodes = p.locNodes[start:end]
	return p
}
func (p locPlane) Swap(i, j int) {
	p.locNodes[i], p.locNodes[j] = p.locNodes[j], p.locNodes[i]
}

// PointLocator answers nearest-neighbor queries over a fixed set of points.
type PointLocator struct {
	tree *kdtree.Tree
}

// NewPointLocator indexes the given points.
func NewPointLocator(points []r3.Vec) *PointLocator {
	nodes := make(locNodes, len(points))
	for i, p := range points {
		nodes[i] = locNode{pos: p, id: i}
	}
	return &PointLocator{tree: kdtree.New(nodes, false)}
}

// Neighbor is a query result: a point index and its Euclidean distance from
// the query location.
type Neighbor struct {
	ID       int
	Distance float64
}

// Nearest returns the k nearest indexed points to q, closest first.
func (l *PointLocator) Nearest(q r3.Vec, k int) []Neighbor {
	keeper := kdtree.NewNKeeper(k)
	l.tree.NearestSet(keeper, locNode{pos: q, id: -1})
	out := make([]Neighbor, 0, k)
	for _, cd := range keeper.Heap {
		if cd.Comparable == nil {
			continue
		}
		n := cd.Comparable.(locNode)
		out = append(out, Neighbor{ID: n.id, Distance: math.Sqrt(cd.Dist)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

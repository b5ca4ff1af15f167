package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// pointMerger deduplicates points within a tolerance. Points are hashed on a
// grid of spacing tol; a lookup probes the 27 neighboring buckets so two
// points closer than tol never land in distinct entries because of bucket
// boundaries.
type pointMerger struct {
	tol     float64
	buckets map[[3]int64][]int
	points  []r3.Vec
}

func newPointMerger(tol float64) *pointMerger {
	return &pointMerger{
		tol:     tol,
		buckets: make(map[[3]int64][]int),
	}
}

func (pm *pointMerger) key(p r3.Vec) [3]int64 {
	return [3]int64{
		int64(math.Floor(p.X / pm.tol)),
		int64(math.Floor(p.Y / pm.tol)),
		int64(math.Floor(p.Z / pm.tol)),
	}
}

// add returns the merged index for p, inserting it when no existing point is
// within tol.
func (pm *pointMerger) add(p r3.Vec) int {
	k := pm.key(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				nk := [3]int64{k[0] + dx, k[1] + dy, k[2] + dz}
				for _, id := range pm.buckets[nk] {
					q := pm.points[id]
					if math.Abs(q.X-p.X) <= pm.tol &&
						math.Abs(q.Y-p.Y) <= pm.tol &&
						math.Abs(q.Z-p.Z) <= pm.tol {
						return id
					}
				}
			}
		}
	}
	id := len(pm.points)
	pm.points = append(pm.points, p)
	pm.buckets[k] = append(pm.buckets[k], id)
	return id
}

// Merge combines m and other into a new mesh. Cell attributes are
// concatenated in order: all of m's cells first, then other's. When
// mergePoints is true, coincident points (within tol) collapse to a single
// point and the first occurrence's point data wins; otherwise the point sets
// stay distinct, which keeps meshes with differing degrees of freedom apart.
func (m *Mesh) Merge(other *Mesh, mergePoints bool, tol float64) *Mesh {
	out := NewMesh()
	out.ActiveScalars = m.ActiveScalars

	var mapA, mapB []int
	if mergePoints {
		pm := newPointMerger(tol)
		mapA = make([]int, len(m.Points))
		ndf := []int{}
		for i, p := range m.Points {
			id := pm.add(p)
			mapA[i] = id
			if id == len(ndf) {
				ndf = append(ndf, pointNDF(m, i))
			}
		}
		mapB = make([]int, len(other.Points))
		for i, p := range other.Points {
			id := pm.add(p)
			mapB[i] = id
			if id == len(ndf) {
				ndf = append(ndf, pointNDF(other, i))
			}
		}
		out.Points = pm.points
		out.NDF = ndf
	} else {
		out.Points = make([]r3.Vec, 0, len(m.Points)+len(other.Points))
		out.Points = append(out.Points, m.Points...)
		out.Points = append(out.Points, other.Points...)
		out.NDF = make([]int, 0, len(out.Points))
		for i := range m.Points {
			out.NDF = append(out.NDF, pointNDF(m, i))
		}
		for i := range other.Points {
			out.NDF = append(out.NDF, pointNDF(other, i))
		}
		mapA = identity(len(m.Points))
		mapB = make([]int, len(other.Points))
		for i := range mapB {
			mapB[i] = i + len(m.Points)
		}
	}

	appendCells(out, m, mapA)
	appendCells(out, other, mapB)
	return out
}

// Clean merges coincident points within tol and drops unreferenced points.
// Integer point data is carried over from the first point of each merged
// group, never averaged, so attribute values stay exact.
func (m *Mesh) Clean(tol float64) *Mesh {
	pm := newPointMerger(tol)
	pointMap := make([]int, len(m.Points))
	ndf := []int{}
	for i, p := range m.Points {
		id := pm.add(p)
		pointMap[i] = id
		if id == len(ndf) {
			ndf = append(ndf, pointNDF(m, i))
		}
	}

	merged := &Mesh{
		Points:          pm.points,
		NDF:             ndf,
		ActiveScalars:   m.ActiveScalars,
		MaterialTag:     append([]int(nil), m.MaterialTag...),
		ElementTag:      append([]int(nil), m.ElementTag...),
		Region:          append([]int(nil), m.Region...),
		Core:            append([]int(nil), m.Core...),
		AbsorbingRegion: append([]int(nil), m.AbsorbingRegion...),
	}
	merged.Cells = make([][]int, len(m.Cells))
	for i, cell := range m.Cells {
		newCell := make([]int, len(cell))
		for j, pid := range cell {
			newCell[j] = pointMap[pid]
		}
		merged.Cells[i] = newCell
	}

	// Drop points no cell references.
	keep := make([]bool, len(merged.Cells))
	for i := range keep {
		keep[i] = true
	}
	return merged.ExtractCells(keep)
}

// AppendAll combines the given meshes into one, merging coincident points
// within tol. Cell and point attributes are concatenated in block order.
func AppendAll(blocks []*Mesh, tol float64) *Mesh {
	out := NewMesh()
	if len(blocks) == 0 {
		return out
	}
	pm := newPointMerger(tol)
	for _, b := range blocks {
		pmap := make([]int, len(b.Points))
		for i, p := range b.Points {
			id := pm.add(p)
			pmap[i] = id
			if id == len(out.NDF) {
				out.NDF = append(out.NDF, pointNDF(b, i))
			}
		}
		out.Points = pm.points
		appendCells(out, b, pmap)
	}
	return out
}

func appendCells(dst, src *Mesh, pointMap []int) {
	for i, cell := range src.Cells {
		newCell := make([]int, len(cell))
		for j, pid := range cell {
			newCell[j] = pointMap[pid]
		}
		dst.Cells = append(dst.Cells, newCell)
		dst.MaterialTag = append(dst.MaterialTag, at(src.MaterialTag, i))
		dst.ElementTag = append(dst.ElementTag, at(src.ElementTag, i))
		dst.Region = append(dst.Region, at(src.Region, i))
		dst.Core = append(dst.Core, at(src.Core, i))
		dst.AbsorbingRegion = append(dst.AbsorbingRegion, at(src.AbsorbingRegion, i))
	}
}

func pointNDF(m *Mesh, i int) int {
	if i < len(m.NDF) {
		return m.NDF[i]
	}
	return 0
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

package drm

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/amnp95/godrm/mesh"
)

// stitchInterface ties the interior mesh to the absorbing shell with
// equal-DOF constraints. Interface points are the interior points outside a
// shrunk bounding box (epsilon inset on the sides and bottom, +10 margin
// above the surface so top-face points are exempt). Every interface point
// must coincide, within tolerance, with exactly one shell point: of its two
// nearest neighbors in the merged mesh, the 9-DOF absorbing node becomes
// the master and the 3-DOF interior node the slave of an equal-DOF
// constraint on DOFs 1-3. Constraint creation follows point index order.
// Returns the number of constraints created.
func stitchInterface(ctx Context, merged, interior *mesh.Mesh) (int, error) {
	bounds := interior.Bounds()
	inside := func(p r3.Vec) bool {
		return p.X > bounds.Min.X+classifyEps && p.X < bounds.Max.X-classifyEps &&
			p.Y > bounds.Min.Y+classifyEps && p.Y < bounds.Max.Y-classifyEps &&
			p.Z > bounds.Min.Z+classifyEps && p.Z < bounds.Max.Z+10
	}

	var interfacePoints []r3.Vec
	for _, p := range interior.Points {
		if !inside(p) {
			interfacePoints = append(interfacePoints, p)
		}
	}
	if len(interfacePoints) == 0 {
		return 0, nil
	}

	locator := mesh.NewPointLocator(merged.Points)

	type pair struct {
		a, b int
	}
	pairs := make([]pair, len(interfacePoints))
	maxDist := 0.0
	for i, p := range interfacePoints {
		nb := locator.Nearest(p, 2)
		if len(nb) < 2 {
			return 0, fmt.Errorf("%w: merged mesh has fewer than 2 points near interface point %v", ErrInconsistent, p)
		}
		for _, n := range nb {
			if n.Distance > maxDist {
				maxDist = n.Distance
			}
		}
		pairs[i] = pair{a: nb[0].ID, b: nb[1].ID}
	}
	if maxDist > shellTol {
		return 0, fmt.Errorf("%w: absorbing layer mesh points do not match the interior mesh points (max distance %g)", ErrInconsistent, maxDist)
	}

	for _, pr := range pairs {
		ndfA, ndfB := merged.NDF[pr.a], merged.NDF[pr.b]
		var master, slave int
		switch {
		case ndfA == 9 && ndfB == 3:
			master, slave = pr.a+1, pr.b+1
		case ndfA == 3 && ndfB == 9:
			master, slave = pr.b+1, pr.a+1
		default:
			return 0, fmt.Errorf("%w: interface nodes should pair 9 DOF with 3 DOF, got %d and %d", ErrInconsistent, ndfA, ndfB)
		}
		ctx.CreateEqualDOF(master, []int{slave}, []int{1, 2, 3})
	}
	return len(pairs), nil
}

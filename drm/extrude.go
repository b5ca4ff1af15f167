package drm

import (
	"fmt"

	"github.com/amnp95/godrm/mesh"
)

// extrudeCell builds the structured block extending cell id of m outward
// along the given region code's normal, numLayers cells deep. The block
// spans the source cell's own volume plus the extrusion, gridded at the
// source cell's spacing; cells falling back inside the interior are
// stripped later by the shell assembler. Cell attributes are broadcast from
// the source cell.
func extrudeCell(m *mesh.Mesh, id, code, numLayers int) (*mesh.Mesh, error) {
	cb := m.CellBounds(id)
	size := cb.Size()
	dx, dy, dz := size.X, size.Y, size.Z
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return nil, fmt.Errorf("%w: boundary cell %d is degenerate (%g x %g x %g)", ErrInconsistent, id, dx, dy, dz)
	}

	n := absorbingNormals[code-1]
	lo, hi := cb.Min, cb.Max
	if n.X < 0 {
		lo.X += n.X * float64(numLayers) * dx
	} else {
		hi.X += n.X * float64(numLayers) * dx
	}
	if n.Y < 0 {
		lo.Y += n.Y * float64(numLayers) * dy
	} else {
		hi.Y += n.Y * float64(numLayers) * dy
	}
	if n.Z < 0 {
		lo.Z += n.Z * float64(numLayers) * dz
	} else {
		hi.Z += n.Z * float64(numLayers) * dz
	}

	// The epsilon keeps the upper bound on the grid when the division
	// lands within rounding of an exact multiple.
	xs := mesh.ARange(lo.X, hi.X+classifyEps, dx)
	ys := mesh.ARange(lo.Y, hi.Y+classifyEps, dy)
	zs := mesh.ARange(lo.Z, hi.Z+classifyEps, dz)

	grid, err := mesh.StructuredGrid(xs, ys, zs)
	if err != nil {
		return nil, fmt.Errorf("extruding boundary cell %d: %w", id, err)
	}
	grid.FillCellData(m.MaterialTag[id], m.ElementTag[id], m.Region[id], 0)
	for i := range grid.AbsorbingRegion {
		grid.AbsorbingRegion[i] = code
	}
	return grid, nil
}

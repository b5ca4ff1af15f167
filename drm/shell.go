package drm

import (
	"fmt"

	"github.com/amnp95/godrm/mesh"
)

// shellTol is the point-coincidence tolerance inside the shell mesh.
const shellTol = 1e-6

// assembleShell combines the per-cell extrusion blocks into one shell mesh:
// points are merged within tolerance, cells whose centroid falls inside the
// interior mesh's bounding box are stripped, and the result is cleaned of
// unreferenced points. Cell attribute arrays survive the clean untouched;
// integer tags are carried over exactly, never averaged.
func assembleShell(blocks []*mesh.Mesh, interior mesh.Box, progress *progressReporter) (*mesh.Mesh, error) {
	combined := mesh.AppendAll(blocks, shellTol)
	progress.report(90, "stripping interior cells")

	keep := make([]bool, combined.NumCells())
	kept := 0
	for i := range keep {
		if !interior.Contains(combined.CellCenter(i), classifyEps) {
			keep[i] = true
			kept++
		}
	}
	if kept == 0 {
		return nil, fmt.Errorf("%w: absorbing shell is empty after stripping interior cells", ErrInconsistent)
	}
	stripped := combined.ExtractCells(keep)

	progress.report(95, "cleaning shell mesh")
	return stripped.Clean(shellTol), nil
}

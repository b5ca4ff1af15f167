package drm

import (
	"fmt"

	"github.com/amnp95/godrm/mesh"
)

// partitionShell assigns Core ids to the shell cells, offset past the
// interior mesh's highest partition id.
//
//	numPartitions == 0: the shell stays unpartitioned (Core 0). The
//	    caller has already rejected this when the interior is partitioned.
//	numPartitions == 1: every shell cell gets maxInteriorCore + 1.
//	numPartitions  > 1: spatial bisection into disjoint groups, group i
//	    becoming partition i + maxInteriorCore + 1.
func partitionShell(shell *mesh.Mesh, numPartitions, maxInteriorCore int, algo mesh.Algorithm) error {
	if algo == mesh.Metis {
		return fmt.Errorf("%w: metis partitioning algorithm", ErrNotImplemented)
	}

	switch {
	case numPartitions == 0:
		// Core stays 0.
	case numPartitions == 1:
		for i := range shell.Core {
			shell.Core[i] = maxInteriorCore + 1
		}
	default:
		sp := mesh.NewSpatialPartitioner(shell, numPartitions)
		part, err := sp.Partition()
		if err != nil {
			return err
		}
		for i, group := range part {
			shell.Core[i] = group + maxInteriorCore + 1
		}
	}
	return nil
}

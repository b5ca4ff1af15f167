package drm

import (
	"fmt"
	"log"

	"github.com/amnp95/godrm/mesh"
)

// AddAbsorbingLayer wraps the assembled mesh in an absorbing boundary
// layer: boundary cells are classified into 17 directional regions,
// extruded outward opts.NumLayers cells deep, combined into a shell,
// retagged (PML), partitioned, merged back into the assembled mesh and, for
// PML layers, stitched to the interior with equal-DOF constraints.
//
// Validation failures and unimplemented selections leave the assembled mesh
// untouched. Once merging starts, a failure leaves it undefined.
func (b *Builder) AddAbsorbingLayer(opts AbsorbingLayerOptions) error {
	if b.Assembler.Mesh == nil {
		return fmt.Errorf("%w: no mesh found, please assemble the mesh first", ErrValidation)
	}
	if !b.Assembler.Mesh.HasAttributes() {
		return fmt.Errorf("%w: assembled mesh is missing cell or point attributes", ErrValidation)
	}
	if err := opts.validate(); err != nil {
		return err
	}

	var ndf int
	var mergePoints bool
	switch opts.Type {
	case PML:
		ndf, mergePoints = 9, false
	case Rayleigh:
		ndf, mergePoints = 3, true
	}

	interior := b.Assembler.Mesh.Copy()
	maxCore := 0
	for _, c := range interior.Core {
		maxCore = max(maxCore, c)
	}
	if opts.NumPartitions == 0 && maxCore > 0 {
		return fmt.Errorf("%w: the number of partitions should be greater than 0 if your model has partitions", ErrValidation)
	}

	progress := &progressReporter{fn: opts.Progress}

	cells := classifyBoundary(interior)
	if len(cells) == 0 {
		return fmt.Errorf("%w: no boundary cells found, please assemble the mesh first", ErrValidation)
	}

	// Extrude each boundary cell along its region normal. The last
	// boundary cell's x spacing sizes the PML thickness parameter.
	var blocks []*mesh.Mesh
	lastDX := 0.0
	matched := 0
	for n, bc := range cells {
		for _, code := range extrusionRegions(bc) {
			grid, err := extrudeCell(interior, bc.id, code, opts.NumLayers)
			if err != nil {
				return err
			}
			blocks = append(blocks, grid)
		}
		if bc.region != 0 {
			matched++
			lastDX = interior.CellBounds(bc.id).Size().X
		}
		progress.report(float64(n+1)/float64(len(cells))*80, "extruding boundary cells")
	}
	if matched == 0 {
		return fmt.Errorf("%w: no boundary cells matched an absorbing region", ErrValidation)
	}
	log.Printf("Extruded %d boundary cells into %d shell blocks", matched, len(blocks))

	progress.report(85, "combining shell blocks")
	shell, err := assembleShell(blocks, interior.Bounds(), progress)
	if err != nil {
		return err
	}
	shell.FillNDF(ndf)
	for i := range shell.Core {
		shell.Core[i] = 0
	}

	if opts.Type == PML {
		thickness := float64(opts.NumLayers) * lastDX
		if _, err := retagShell(b.ctx, shell, interior.Bounds(), thickness, ndf); err != nil {
			return err
		}
	}

	if err := partitionShell(shell, opts.NumPartitions, maxCore, opts.PartitionAlgorithm); err != nil {
		return err
	}

	if !opts.MatchDamping {
		damping := b.ctx.CreateFrequencyRayleigh(opts.RayleighDamping)
		region := b.ctx.CreateElementRegion(damping)
		for i := range shell.Region {
			shell.Region[i] = region.Tag
		}
	}

	// The interior keeps absorbing-region code 0 everywhere.
	interior.AbsorbingRegion = make([]int, interior.NumCells())

	merged := interior.Merge(shell, mergePoints, shellTol)
	merged.ActiveScalars = "AbsorbingRegion"
	b.Assembler.Mesh = merged

	if opts.Type == PML {
		n, err := stitchInterface(b.ctx, merged, interior)
		if err != nil {
			return err
		}
		log.Printf("Stitched absorbing layer with %d equal-DOF constraints", n)
	}
	progress.report(100, "absorbing layer added")
	return nil
}

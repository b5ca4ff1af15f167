package drm

import (
	"fmt"
	"log"

	"github.com/amnp95/godrm/mesh"
)

// sectionTol is the point-merge tolerance between assembled mesh parts.
const sectionTol = 1e-5

// AssemblySection is a group of mesh parts assembled and partitioned
// together. Sections carry contiguous tags from 1; removing one retags the
// rest.
type AssemblySection struct {
	Tag           int
	Parts         []string
	NumPartitions int

	mesh *mesh.Mesh
}

// Mesh returns the section's assembled mesh.
func (s *AssemblySection) Mesh() *mesh.Mesh { return s.mesh }

// Assembler registers mesh parts, groups them into sections and produces
// the single persistent assembled mesh the rest of the pipeline works on.
type Assembler struct {
	parts     map[string]*MeshPart
	partOrder []string
	sections  []*AssemblySection

	// Mesh is the persistent assembled mesh, nil until Assemble runs.
	Mesh *mesh.Mesh
}

func NewAssembler() *Assembler {
	return &Assembler{parts: make(map[string]*MeshPart)}
}

// AddPart registers a mesh part under its unique name.
func (a *Assembler) AddPart(p *MeshPart) error {
	if _, ok := a.parts[p.Name]; ok {
		return fmt.Errorf("%w: mesh part with name %q already exists", ErrValidation, p.Name)
	}
	a.parts[p.Name] = p
	a.partOrder = append(a.partOrder, p.Name)
	return nil
}

// Part returns the registered mesh part with the given name.
func (a *Assembler) Part(name string) (*MeshPart, error) {
	p, ok := a.parts[name]
	if !ok {
		return nil, fmt.Errorf("%w: mesh part with name %q does not exist", ErrValidation, name)
	}
	return p, nil
}

// CreateSection assembles the named mesh parts into a section: each part's
// grid gets the part's element, material, region and DOF attributes, the
// grids merge (optionally collapsing coincident points within 1e-5), and
// the section partitions into numPartitions spatially compact groups with
// 0-based Core ids. Section Core ids are offset against earlier sections at
// Assemble time.
func (a *Assembler) CreateSection(partNames []string, numPartitions int, algo mesh.Algorithm, mergePoints bool) (*AssemblySection, error) {
	if len(partNames) == 0 {
		return nil, fmt.Errorf("%w: no mesh parts were provided", ErrValidation)
	}
	if numPartitions < 1 {
		return nil, fmt.Errorf("%w: number of partitions should be at least 1, got %d", ErrValidation, numPartitions)
	}
	if algo == mesh.Metis {
		return nil, fmt.Errorf("%w: metis partitioning algorithm", ErrNotImplemented)
	}

	parts := make([]*MeshPart, len(partNames))
	for i, name := range partNames {
		p, err := a.Part(name)
		if err != nil {
			return nil, err
		}
		parts[i] = p
	}

	// Mixed DOF counts only matter when points collapse together.
	if mergePoints {
		ndf := parts[0].Element.NDF
		for _, p := range parts[1:] {
			if p.Element.NDF != ndf {
				log.Printf("warning: mesh parts have different numbers of degrees of freedom")
				break
			}
		}
	}

	var combined *mesh.Mesh
	for _, p := range parts {
		grid := p.Grid.Copy()
		grid.FillCellData(p.Element.MaterialTag, p.Element.Tag, p.regionTag(), 0)
		grid.FillNDF(p.Element.NDF)
		if combined == nil {
			combined = grid
		} else {
			combined = combined.Merge(grid, mergePoints, sectionTol)
		}
	}

	if numPartitions > 1 {
		sp := mesh.NewSpatialPartitioner(combined, numPartitions)
		part, err := sp.Partition()
		if err != nil {
			return nil, err
		}
		copy(combined.Core, part)
	}

	s := &AssemblySection{
		Tag:           len(a.sections) + 1,
		Parts:         append([]string(nil), partNames...),
		NumPartitions: numPartitions,
		mesh:          combined,
	}
	a.sections = append(a.sections, s)
	return s, nil
}

// Section returns the section with the given tag.
func (a *Assembler) Section(tag int) (*AssemblySection, error) {
	if tag < 1 || tag > len(a.sections) {
		return nil, fmt.Errorf("%w: no assembly section with tag %d exists", ErrValidation, tag)
	}
	return a.sections[tag-1], nil
}

// Sections returns all sections in tag order.
func (a *Assembler) Sections() []*AssemblySection {
	return a.sections
}

// RemoveSection deletes a section and retags the remaining ones so tags
// stay contiguous from 1.
func (a *Assembler) RemoveSection(tag int) error {
	if _, err := a.Section(tag); err != nil {
		return err
	}
	a.sections = append(a.sections[:tag-1], a.sections[tag:]...)
	for i, s := range a.sections {
		s.Tag = i + 1
	}
	return nil
}

// Assemble merges all sections, in tag order, into the persistent mesh.
// Each section's Core ids shift past the partitions of the sections before
// it, so partition ids stay globally unique.
func (a *Assembler) Assemble(mergePoints bool) error {
	if len(a.sections) == 0 {
		return fmt.Errorf("%w: no assembly sections have been created", ErrValidation)
	}

	assembled := a.sections[0].mesh.Copy()
	numPartitions := a.sections[0].NumPartitions
	for _, s := range a.sections[1:] {
		next := s.mesh.Copy()
		for i := range next.Core {
			next.Core[i] += numPartitions
		}
		numPartitions += s.NumPartitions
		assembled = assembled.Merge(next, mergePoints, sectionTol)
	}
	a.Mesh = assembled
	log.Printf("Assembled %d sections: %d cells, %d points", len(a.sections), assembled.NumCells(), assembled.NumPoints())
	return nil
}

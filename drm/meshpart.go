package drm

import (
	"fmt"

	"github.com/amnp95/godrm/mesh"
	"github.com/amnp95/godrm/model"
)

// StructuredRectangularParams defines a uniform 3D rectangular grid.
type StructuredRectangularParams struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
	NX, NY, NZ int
}

func (p StructuredRectangularParams) validate() error {
	if p.XMin >= p.XMax {
		return fmt.Errorf("%w: X Min must be less than X Max", ErrValidation)
	}
	if p.YMin >= p.YMax {
		return fmt.Errorf("%w: Y Min must be less than Y Max", ErrValidation)
	}
	if p.ZMin >= p.ZMax {
		return fmt.Errorf("%w: Z Min must be less than Z Max", ErrValidation)
	}
	if p.NX <= 0 || p.NY <= 0 || p.NZ <= 0 {
		return fmt.Errorf("%w: cell counts must be greater than 0", ErrValidation)
	}
	return nil
}

// MeshPart is a named grid bound to an element and a region, ready for
// assembly.
type MeshPart struct {
	Name    string
	Element *model.Element
	Region  *model.Region
	Grid    *mesh.Mesh
}

// NewStructuredRectangular3D generates a structured rectangular mesh part.
// A nil region binds the part to the default global region.
func NewStructuredRectangular3D(name string, elem *model.Element, region *model.Region, p StructuredRectangularParams) (*MeshPart, error) {
	if elem == nil {
		return nil, fmt.Errorf("%w: mesh part %q needs an element", ErrValidation, name)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	grid, err := mesh.StructuredGrid(
		mesh.LinSpace(p.XMin, p.XMax, p.NX),
		mesh.LinSpace(p.YMin, p.YMax, p.NY),
		mesh.LinSpace(p.ZMin, p.ZMax, p.NZ),
	)
	if err != nil {
		return nil, err
	}
	return &MeshPart{
		Name:    name,
		Element: elem,
		Region:  region,
		Grid:    grid,
	}, nil
}

func (p *MeshPart) regionTag() int {
	if p.Region == nil {
		return 0
	}
	return p.Region.Tag
}

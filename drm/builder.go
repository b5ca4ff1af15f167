// Package drm builds Domain Reduction Method models: it assembles
// structured mesh parts into a single partitioned mesh and wraps it in an
// absorbing boundary layer stitched to the interior with equal-DOF
// constraints.
package drm

import (
	"github.com/amnp95/godrm/model"
)

// Context is the narrow registry surface the pipeline depends on. The
// model.Model context satisfies it; tests substitute doubles.
type Context interface {
	// Element returns the element registered under tag.
	Element(tag int) (*model.Element, error)
	// Material returns the material registered under tag.
	Material(tag int) (*model.Material, error)
	// CreatePML registers a new PML3D element wrapping mat.
	CreatePML(ndf int, mat *model.Material, params model.PMLParams) *model.Element
	// CreateFrequencyRayleigh registers a new frequency-Rayleigh damping.
	CreateFrequencyRayleigh(factor float64) *model.Damping
	// CreateElementRegion registers a new element region damped by d.
	CreateElementRegion(d *model.Damping) *model.Region
	// CreateEqualDOF registers a new equal-DOF constraint.
	CreateEqualDOF(master int, slaves, dofs []int) *model.EqualDOF
}

// modelContext adapts a model.Model to the Context interface.
type modelContext struct {
	m *model.Model
}

func (c modelContext) Element(tag int) (*model.Element, error) {
	return c.m.Elements.Get(tag)
}

func (c modelContext) Material(tag int) (*model.Material, error) {
	return c.m.Materials.Get(tag)
}

func (c modelContext) CreatePML(ndf int, mat *model.Material, params model.PMLParams) *model.Element {
	return c.m.Elements.CreatePML(ndf, mat, params)
}

func (c modelContext) CreateFrequencyRayleigh(factor float64) *model.Damping {
	return c.m.Dampings.CreateFrequencyRayleigh(factor)
}

func (c modelContext) CreateElementRegion(d *model.Damping) *model.Region {
	return c.m.Regions.CreateElementRegion(d)
}

func (c modelContext) CreateEqualDOF(master int, slaves, dofs []int) *model.EqualDOF {
	return c.m.Constraints.CreateEqualDOF(master, slaves, dofs)
}

// NewContext wraps a model context for the pipeline.
func NewContext(m *model.Model) Context {
	return modelContext{m: m}
}

// Builder owns the persistent assembled mesh and drives the absorbing-layer
// pipeline against the registries behind ctx.
type Builder struct {
	ctx       Context
	Assembler *Assembler
}

// NewBuilder creates a builder over the given model context.
func NewBuilder(m *model.Model) *Builder {
	return &Builder{
		ctx:       NewContext(m),
		Assembler: NewAssembler(),
	}
}

// NewBuilderWithContext creates a builder over an arbitrary Context.
func NewBuilderWithContext(ctx Context) *Builder {
	return &Builder{
		ctx:       ctx,
		Assembler: NewAssembler(),
	}
}

package model

import (
	"fmt"
	"sort"
	"strings"
)

// ElementKind is the closed set of element formulations the pipeline knows.
type ElementKind int

const (
	StdBrick ElementKind = iota
	BBarBrick
	SSPBrick
	PML3D
)

func (k ElementKind) String() string {
	return [...]string{"stdBrick", "bbarBrick", "SSPbrick", "PML3D"}[k]
}

// ParseElementKind maps the external element type names onto the closed set.
func ParseElementKind(s string) (ElementKind, error) {
	switch s {
	case "stdBrick":
		return StdBrick, nil
	case "bbarBrick":
		return BBarBrick, nil
	case "SSPbrick":
		return SSPBrick, nil
	case "PML3D":
		return PML3D, nil
	}
	return 0, fmt.Errorf("unknown element type %q", s)
}

// IsBrick reports whether the kind is one of the solid brick formulations an
// absorbing layer can wrap.
func (k ElementKind) IsBrick() bool {
	return k == StdBrick || k == BBarBrick || k == SSPBrick
}

// PMLParams parameterizes a PML3D absorbing element. MeshTypeParameters
// describes the enclosed regular domain; for the Box mesh type it is
// (centerX, centerY, centerZ, widthX, widthY, depth).
type PMLParams struct {
	Gamma              float64
	Beta               float64
	Eta                float64
	Ksi                float64
	Thickness          float64
	M                  int
	R                  float64
	MeshType           string
	MeshTypeParameters []float64
}

// Element is a registered element entry tying a formulation to a material.
type Element struct {
	Tag         int
	Kind        ElementKind
	NDF         int
	MaterialTag int

	// Body force components for the brick formulations.
	BodyForces [3]float64

	// PML carries the absorbing parameters for PML3D elements, nil
	// otherwise.
	PML *PMLParams
}

// Tcl renders the element declaration for one mesh cell.
func (e *Element) Tcl(eleTag int, nodeTags []int) (string, error) {
	if len(nodeTags) != 8 {
		return "", fmt.Errorf("%s element requires 8 nodes, got %d", e.Kind, len(nodeTags))
	}
	nodes := joinInts(nodeTags)
	switch e.Kind {
	case StdBrick, BBarBrick, SSPBrick:
		return fmt.Sprintf("element %s %d %s %d %g %g %g",
			e.Kind, eleTag, nodes, e.MaterialTag,
			e.BodyForces[0], e.BodyForces[1], e.BodyForces[2]), nil
	case PML3D:
		p := e.PML
		params := make([]string, 0, len(p.MeshTypeParameters))
		for _, v := range p.MeshTypeParameters {
			params = append(params, fmt.Sprintf("%g", v))
		}
		return fmt.Sprintf("element PML %d %s %d %g %g %g %g %g %d %g -%s %s",
			eleTag, nodes, e.MaterialTag,
			p.Gamma, p.Beta, p.Eta, p.Ksi, p.Thickness, p.M, p.R,
			p.MeshType, strings.Join(params, " ")), nil
	}
	return "", fmt.Errorf("unknown element kind %d", int(e.Kind))
}

func joinInts(a []int) string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, " ")
}

// ElementRegistry is an arena of tagged elements.
type ElementRegistry struct {
	elements map[int]*Element
}

func NewElementRegistry() *ElementRegistry {
	return &ElementRegistry{elements: make(map[int]*Element)}
}

// CreateBrick registers a solid brick element of the given kind.
func (r *ElementRegistry) CreateBrick(kind ElementKind, ndf int, mat *Material, bodyForces [3]float64) (*Element, error) {
	if !kind.IsBrick() {
		return nil, fmt.Errorf("element kind %s is not a brick formulation", kind)
	}
	e := &Element{
		Tag:         nextFreeTag(r.elements),
		Kind:        kind,
		NDF:         ndf,
		MaterialTag: mat.Tag,
		BodyForces:  bodyForces,
	}
	r.elements[e.Tag] = e
	return e, nil
}

// CreatePML registers a PML3D absorbing element wrapping the given material.
func (r *ElementRegistry) CreatePML(ndf int, mat *Material, params PMLParams) *Element {
	e := &Element{
		Tag:         nextFreeTag(r.elements),
		Kind:        PML3D,
		NDF:         ndf,
		MaterialTag: mat.Tag,
		PML:         &params,
	}
	r.elements[e.Tag] = e
	return e
}

// Get returns the element registered under tag.
func (r *ElementRegistry) Get(tag int) (*Element, error) {
	e, ok := r.elements[tag]
	if !ok {
		return nil, fmt.Errorf("no element with tag %d exists", tag)
	}
	return e, nil
}

// Remove deletes the element registered under tag.
func (r *ElementRegistry) Remove(tag int) {
	delete(r.elements, tag)
}

// Compact renumbers element tags contiguously from 1 and returns the old tag
// to new tag mapping. Callers owning meshes must rewrite their ElementTag
// arrays with the mapping.
func (r *ElementRegistry) Compact() map[int]int {
	remap := compactTags(r.elements)
	for old, e := range r.elements {
		e.Tag = remap[old]
	}
	rebuild := make(map[int]*Element, len(r.elements))
	for _, e := range r.elements {
		rebuild[e.Tag] = e
	}
	r.elements = rebuild
	return remap
}

// All returns the registered elements in ascending tag order.
func (r *ElementRegistry) All() []*Element {
	out := make([]*Element, 0, len(r.elements))
	for _, e := range r.elements {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

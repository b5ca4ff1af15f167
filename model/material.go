package model

import (
	"fmt"
	"sort"
)

// Material is a registered material entry. Name and Type mirror the target
// scripting format's vocabulary: an elastic isotropic solid is Name
// "ElasticIsotropic" with Type "nDMaterial".
type Material struct {
	Tag  int
	Type string
	Name string

	// ElasticIsotropic parameters.
	E   float64
	Nu  float64
	Rho float64
}

// Tcl renders the material declaration.
func (m *Material) Tcl() string {
	return fmt.Sprintf("nDMaterial %s %d %g %g %g", m.Name, m.Tag, m.E, m.Nu, m.Rho)
}

// MaterialRegistry is an arena of tagged materials. Tags are stable handles;
// Compact renumbers them contiguously and reports the mapping.
type MaterialRegistry struct {
	materials map[int]*Material
}

func NewMaterialRegistry() *MaterialRegistry {
	return &MaterialRegistry{materials: make(map[int]*Material)}
}

// CreateElasticIsotropic registers an elastic isotropic nDMaterial and
// returns it.
func (r *MaterialRegistry) CreateElasticIsotropic(e, nu, rho float64) *Material {
	m := &Material{
		Tag:  nextFreeTag(r.materials),
		Type: "nDMaterial",
		Name: "ElasticIsotropic",
		E:    e,
		Nu:   nu,
		Rho:  rho,
	}
	r.materials[m.Tag] = m
	return m
}

// Get returns the material registered under tag.
func (r *MaterialRegistry) Get(tag int) (*Material, error) {
	m, ok := r.materials[tag]
	if !ok {
		return nil, fmt.Errorf("no material with tag %d exists", tag)
	}
	return m, nil
}

// Remove deletes the material registered under tag.
func (r *MaterialRegistry) Remove(tag int) {
	delete(r.materials, tag)
}

// Compact renumbers material tags contiguously from 1, preserving order, and
// returns the old tag to new tag mapping.
func (r *MaterialRegistry) Compact() map[int]int {
	remap := compactTags(r.materials)
	for old, m := range r.materials {
		m.Tag = remap[old]
	}
	rebuild := make(map[int]*Material, len(r.materials))
	for _, m := range r.materials {
		rebuild[m.Tag] = m
	}
	r.materials = rebuild
	return remap
}

// All returns the registered materials in ascending tag order.
func (r *MaterialRegistry) All() []*Material {
	out := make([]*Material, 0, len(r.materials))
	for _, m := range r.materials {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// nextFreeTag finds the first unused tag starting from 1.
func nextFreeTag[T any](m map[int]T) int {
	tag := 1
	for {
		if _, ok := m[tag]; !ok {
			return tag
		}
		tag++
	}
}

// compactTags maps the existing tags of m, in ascending order, onto 1..n.
func compactTags[T any](m map[int]T) map[int]int {
	tags := make([]int, 0, len(m))
	for tag := range m {
		tags = append(tags, tag)
	}
	sort.Ints(tags)
	remap := make(map[int]int, len(tags))
	for i, tag := range tags {
		remap[tag] = i + 1
	}
	return remap
}

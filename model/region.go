package model

import (
	"fmt"
	"sort"
	"strings"
)

// RegionKind distinguishes element regions from node regions. The exporter
// only handles element regions; node regions are rejected there.
type RegionKind int

const (
	ElementRegion RegionKind = iota
	NodeRegion
)

func (k RegionKind) String() string {
	return [...]string{"elementRegion", "nodeRegion"}[k]
}

// Region is a registered region entry, optionally bound to a damping.
// Element ids are attached at export time once the final mesh is known.
type Region struct {
	Tag        int
	Kind       RegionKind
	DampingTag int // 0 means undamped

	elements []int
}

// SetElements attaches the element tags belonging to the region.
func (r *Region) SetElements(ids []int) {
	r.elements = ids
}

// Tcl renders the region declaration.
func (r *Region) Tcl() string {
	parts := make([]string, len(r.elements))
	for i, id := range r.elements {
		parts[i] = fmt.Sprintf("%d", id)
	}
	s := fmt.Sprintf("region %d -ele %s", r.Tag, strings.Join(parts, " "))
	if r.DampingTag != 0 {
		s += fmt.Sprintf(" -damp %d", r.DampingTag)
	}
	return s
}

// RegionRegistry is an arena of tagged regions with a default global
// element region at tag 0.
type RegionRegistry struct {
	regions map[int]*Region
}

func NewRegionRegistry() *RegionRegistry {
	r := &RegionRegistry{regions: make(map[int]*Region)}
	r.regions[0] = &Region{Tag: 0, Kind: ElementRegion}
	return r
}

// Default returns the global element region.
func (r *RegionRegistry) Default() *Region {
	return r.regions[0]
}

// CreateElementRegion registers an element region damped by d. A nil
// damping leaves the region undamped.
func (r *RegionRegistry) CreateElementRegion(d *Damping) *Region {
	reg := &Region{
		Tag:  nextFreeTag(r.regions),
		Kind: ElementRegion,
	}
	if d != nil {
		reg.DampingTag = d.Tag
	}
	r.regions[reg.Tag] = reg
	return reg
}

// Get returns the region registered under tag.
func (r *RegionRegistry) Get(tag int) (*Region, error) {
	reg, ok := r.regions[tag]
	if !ok {
		return nil, fmt.Errorf("no region with tag %d exists", tag)
	}
	return reg, nil
}

// All returns the registered regions in ascending tag order.
func (r *RegionRegistry) All() []*Region {
	out := make([]*Region, 0, len(r.regions))
	for _, reg := range r.regions {
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

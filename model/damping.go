package model

import (
	"fmt"
	"sort"
)

// Damping is a registered damping entry. Only the frequency-Rayleigh
// formulation is produced by the absorbing-layer path.
type Damping struct {
	Tag    int
	Name   string
	Factor float64
}

// Tcl renders the damping declaration.
func (d *Damping) Tcl() string {
	return fmt.Sprintf("damping %s %d -dampingFactor %g", d.Name, d.Tag, d.Factor)
}

// DampingRegistry is an arena of tagged dampings.
type DampingRegistry struct {
	dampings map[int]*Damping
}

func NewDampingRegistry() *DampingRegistry {
	return &DampingRegistry{dampings: make(map[int]*Damping)}
}

// CreateFrequencyRayleigh registers a frequency-Rayleigh damping with the
// given damping factor.
func (r *DampingRegistry) CreateFrequencyRayleigh(factor float64) *Damping {
	d := &Damping{
		Tag:    nextFreeTag(r.dampings),
		Name:   "Frequency Rayleigh",
		Factor: factor,
	}
	r.dampings[d.Tag] = d
	return d
}

// Get returns the damping registered under tag.
func (r *DampingRegistry) Get(tag int) (*Damping, error) {
	d, ok := r.dampings[tag]
	if !ok {
		return nil, fmt.Errorf("no damping with tag %d exists", tag)
	}
	return d, nil
}

// All returns the registered dampings in ascending tag order.
func (r *DampingRegistry) All() []*Damping {
	out := make([]*Damping, 0, len(r.dampings))
	for _, d := range r.dampings {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

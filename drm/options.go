package drm

import (
	"fmt"

	"github.com/amnp95/godrm/mesh"
)

// LayerType selects the absorbing-layer formulation.
type LayerType int

const (
	// PML wraps the domain in perfectly-matched-layer elements with 9
	// DOF per node, stitched to the interior with equal-DOF constraints.
	PML LayerType = iota
	// Rayleigh reuses the interior element formulation with heavy
	// Rayleigh damping; shell points merge into the interior mesh.
	Rayleigh
	// ASDA is recognized but not implemented.
	ASDA
)

func (t LayerType) String() string {
	return [...]string{"PML", "Rayleigh", "ASDA"}[t]
}

// ParseLayerType maps the external names onto the closed set.
func ParseLayerType(s string) (LayerType, error) {
	switch s {
	case "PML":
		return PML, nil
	case "Rayleigh":
		return Rayleigh, nil
	case "ASDA":
		return ASDA, nil
	}
	return 0, fmt.Errorf("%w: type of the absorbing layer should be one of ['PML', 'Rayleigh', 'ASDA'], got %q", ErrValidation, s)
}

// Geometry selects the absorbing-layer shape.
type Geometry int

const (
	Rectangular Geometry = iota
	// Cylindrical is recognized but not implemented.
	Cylindrical
)

func (g Geometry) String() string {
	return [...]string{"Rectangular", "Cylindrical"}[g]
}

// ParseGeometry maps the external names onto the closed set.
func ParseGeometry(s string) (Geometry, error) {
	switch s {
	case "Rectangular":
		return Rectangular, nil
	case "Cylindrical":
		return Cylindrical, nil
	}
	return 0, fmt.Errorf("%w: geometry should be one of ['Rectangular', 'Cylindrical'], got %q", ErrValidation, s)
}

// ProgressFunc receives fractional progress in [0, 100] with a phase label.
// It is advisory: a nil callback, or one that panics, never affects the
// operation.
type ProgressFunc func(pct float64, phase string)

// progressReporter guards a ProgressFunc: percentages are clamped to be
// monotonically non-decreasing and callback panics are swallowed.
type progressReporter struct {
	fn   ProgressFunc
	last float64
}

func (p *progressReporter) report(pct float64, phase string) {
	if p.fn == nil {
		return
	}
	if pct < p.last {
		pct = p.last
	}
	if pct > 100 {
		pct = 100
	}
	p.last = pct
	defer func() { _ = recover() }()
	p.fn(pct, phase)
}

// AbsorbingLayerOptions configures AddAbsorbingLayer.
type AbsorbingLayerOptions struct {
	NumLayers          int
	NumPartitions      int
	PartitionAlgorithm mesh.Algorithm
	Geometry           Geometry
	Type               LayerType

	// RayleighDamping is the damping factor attached to the new shell
	// region when MatchDamping is false.
	RayleighDamping float64

	// MatchDamping keeps the shell in the interior mesh's regions
	// instead of creating a damped region of its own.
	MatchDamping bool

	Progress ProgressFunc
}

// DefaultAbsorbingLayerOptions returns a rectangular kd-tree-partitioned
// request with the default damping factor.
func DefaultAbsorbingLayerOptions(numLayers, numPartitions int, t LayerType) AbsorbingLayerOptions {
	return AbsorbingLayerOptions{
		NumLayers:          numLayers,
		NumPartitions:      numPartitions,
		PartitionAlgorithm: mesh.KDTree,
		Geometry:           Rectangular,
		Type:               t,
		RayleighDamping:    0.95,
	}
}

func (o *AbsorbingLayerOptions) validate() error {
	if o.NumLayers < 1 {
		return fmt.Errorf("%w: number of layers should be greater than 0, got %d", ErrValidation, o.NumLayers)
	}
	if o.NumPartitions < 0 {
		return fmt.Errorf("%w: number of partitions should be greater or equal to 0, got %d", ErrValidation, o.NumPartitions)
	}
	switch o.Geometry {
	case Rectangular:
	case Cylindrical:
		return fmt.Errorf("%w: cylindrical absorbing layer", ErrNotImplemented)
	default:
		return fmt.Errorf("%w: unknown geometry %d", ErrValidation, int(o.Geometry))
	}
	switch o.PartitionAlgorithm {
	case mesh.KDTree:
	case mesh.Metis:
		return fmt.Errorf("%w: metis partitioning algorithm", ErrNotImplemented)
	default:
		return fmt.Errorf("%w: unknown partition algorithm %d", ErrValidation, int(o.PartitionAlgorithm))
	}
	switch o.Type {
	case PML, Rayleigh:
	case ASDA:
		return fmt.Errorf("%w: ASDA absorbing layer", ErrNotImplemented)
	default:
		return fmt.Errorf("%w: unknown absorbing layer type %d", ErrValidation, int(o.Type))
	}
	return nil
}

// Package model holds the tag registries the mesh pipeline reads and
// extends: materials, elements, dampings, element regions and multi-point
// constraints. One Model value replaces the original per-type singletons so
// independent models (and test doubles) can coexist.
package model

// Model is the registry context threaded through assembly, absorbing-layer
// construction and export.
type Model struct {
	Materials   *MaterialRegistry
	Elements    *ElementRegistry
	Dampings    *DampingRegistry
	Regions     *RegionRegistry
	Constraints *ConstraintSet
}

// New returns an empty model context with a default global region
// registered at tag 0.
func New() *Model {
	return &Model{
		Materials:   NewMaterialRegistry(),
		Elements:    NewElementRegistry(),
		Dampings:    NewDampingRegistry(),
		Regions:     NewRegionRegistry(),
		Constraints: NewConstraintSet(),
	}
}

package drm

import (
	"fmt"
	"sort"

	"github.com/amnp95/godrm/mesh"
	"github.com/amnp95/godrm/model"
)

// retagShell replaces every element class referenced by the shell with a
// purpose-built PML3D element: one new absorbing element per distinct
// interior boundary element, not per shell cell. The boundary elements must
// be solid bricks over an elastic isotropic material; anything else is a
// fatal input error. Returns the old tag to new tag mapping after rewriting
// the shell's ElementTag array.
func retagShell(ctx Context, shell *mesh.Mesh, interior mesh.Box, thickness float64, ndf int) (map[int]int, error) {
	tags := uniqueInts(shell.ElementTag)

	// Box descriptor of the regular domain the layer encloses, anchored
	// at the ground surface.
	size := interior.Size()
	center := interior.Center()
	meshParams := []float64{
		center.X, center.Y, interior.Max.Z,
		size.X, size.Y, size.Z,
	}

	remap := make(map[int]int, len(tags))
	for _, tag := range tags {
		ele, err := ctx.Element(tag)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInconsistent, err)
		}
		if !ele.Kind.IsBrick() {
			return nil, fmt.Errorf("%w: boundary elements should be of type stdBrick or bbarBrick or SSPbrick, not %s", ErrInconsistent, ele.Kind)
		}
		mat, err := ctx.Material(ele.MaterialTag)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInconsistent, err)
		}
		if mat.Name != "ElasticIsotropic" || mat.Type != "nDMaterial" {
			return nil, fmt.Errorf("%w: boundary elements should have an ElasticIsotropic nDMaterial, not %s %s", ErrInconsistent, mat.Name, mat.Type)
		}

		pml := ctx.CreatePML(ndf, mat, model.PMLParams{
			Gamma:              0.5,
			Beta:               0.25,
			Eta:                1.0 / 12.0,
			Ksi:                1.0 / 48.0,
			Thickness:          thickness,
			M:                  2,
			R:                  1.0e-8,
			MeshType:           "Box",
			MeshTypeParameters: meshParams,
		})
		remap[tag] = pml.Tag
	}

	for i, tag := range shell.ElementTag {
		shell.ElementTag[i] = remap[tag]
	}
	return remap, nil
}

func uniqueInts(a []int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, v := range a {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

package drm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amnp95/godrm/mesh"
	"github.com/amnp95/godrm/model"
)

// twoPartAssembler builds two adjacent single-cell mesh parts sharing the
// x=1 face, the second with its own element and material.
func twoPartAssembler(t *testing.T) (*Assembler, *model.Model) {
	mdl := model.New()
	matA := mdl.Materials.CreateElasticIsotropic(200, 0.3, 2000)
	matB := mdl.Materials.CreateElasticIsotropic(400, 0.25, 1800)
	eleA, err := mdl.Elements.CreateBrick(model.StdBrick, 3, matA, [3]float64{})
	assert.NoError(t, err)
	eleB, err := mdl.Elements.CreateBrick(model.SSPBrick, 3, matB, [3]float64{})
	assert.NoError(t, err)

	a := NewAssembler()
	left, err := NewStructuredRectangular3D("left", eleA, nil, StructuredRectangularParams{
		XMin: 0, XMax: 1, YMin: 0, YMax: 1, ZMin: 0, ZMax: 1, NX: 1, NY: 1, NZ: 1,
	})
	assert.NoError(t, err)
	right, err := NewStructuredRectangular3D("right", eleB, nil, StructuredRectangularParams{
		XMin: 1, XMax: 2, YMin: 0, YMax: 1, ZMin: 0, ZMax: 1, NX: 1, NY: 1, NZ: 1,
	})
	assert.NoError(t, err)
	assert.NoError(t, a.AddPart(left))
	assert.NoError(t, a.AddPart(right))
	return a, mdl
}

func TestMeshPartValidation(t *testing.T) {
	mdl := model.New()
	mat := mdl.Materials.CreateElasticIsotropic(200, 0.3, 2000)
	ele, _ := mdl.Elements.CreateBrick(model.StdBrick, 3, mat, [3]float64{})

	_, err := NewStructuredRectangular3D("bad", ele, nil, StructuredRectangularParams{
		XMin: 1, XMax: 0, YMin: 0, YMax: 1, ZMin: 0, ZMax: 1, NX: 1, NY: 1, NZ: 1,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewStructuredRectangular3D("bad", ele, nil, StructuredRectangularParams{
		XMin: 0, XMax: 1, YMin: 0, YMax: 1, ZMin: 0, ZMax: 1, NX: 0, NY: 1, NZ: 1,
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewStructuredRectangular3D("bad", nil, nil, StructuredRectangularParams{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddPartRejectsDuplicates(t *testing.T) {
	a, mdl := twoPartAssembler(t)
	mat := mdl.Materials.CreateElasticIsotropic(1, 0.1, 1)
	ele, _ := mdl.Elements.CreateBrick(model.StdBrick, 3, mat, [3]float64{})
	dup, err := NewStructuredRectangular3D("left", ele, nil, StructuredRectangularParams{
		XMin: 0, XMax: 1, YMin: 0, YMax: 1, ZMin: 0, ZMax: 1, NX: 1, NY: 1, NZ: 1,
	})
	assert.NoError(t, err)
	assert.ErrorIs(t, a.AddPart(dup), ErrValidation)

	_, err = a.Part("left")
	assert.NoError(t, err)
	_, err = a.Part("missing")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateSection(t *testing.T) {
	a, _ := twoPartAssembler(t)

	s, err := a.CreateSection([]string{"left", "right"}, 1, mesh.KDTree, true)
	assert.NoError(t, err)
	assert.Equal(t, 1, s.Tag)

	m := s.Mesh()
	assert.Equal(t, 2, m.NumCells())
	// shared face points merge within tolerance
	assert.Equal(t, 12, m.NumPoints())
	assert.Equal(t, []int{1, 2}, m.MaterialTag)
	assert.Equal(t, []int{1, 2}, m.ElementTag)
	assert.Equal(t, []int{0, 0}, m.Core)
}

func TestCreateSectionErrors(t *testing.T) {
	a, _ := twoPartAssembler(t)

	_, err := a.CreateSection(nil, 1, mesh.KDTree, true)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = a.CreateSection([]string{"left"}, 0, mesh.KDTree, true)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = a.CreateSection([]string{"left"}, 1, mesh.Metis, true)
	assert.ErrorIs(t, err, ErrNotImplemented)
	_, err = a.CreateSection([]string{"nope"}, 1, mesh.KDTree, true)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRemoveSectionRetags(t *testing.T) {
	a, _ := twoPartAssembler(t)
	_, err := a.CreateSection([]string{"left"}, 1, mesh.KDTree, true)
	assert.NoError(t, err)
	s2, err := a.CreateSection([]string{"right"}, 1, mesh.KDTree, true)
	assert.NoError(t, err)
	assert.Equal(t, 2, s2.Tag)

	assert.NoError(t, a.RemoveSection(1))
	assert.Equal(t, 1, s2.Tag)
	got, err := a.Section(1)
	assert.NoError(t, err)
	assert.Equal(t, s2, got)
	assert.ErrorIs(t, a.RemoveSection(5), ErrValidation)
}

func TestAssembleOffsetsCores(t *testing.T) {
	mdl := model.New()
	mat := mdl.Materials.CreateElasticIsotropic(200, 0.3, 2000)
	ele, _ := mdl.Elements.CreateBrick(model.StdBrick, 3, mat, [3]float64{})

	a := NewAssembler()
	for _, p := range []struct {
		name       string
		xmin, xmax float64
	}{{"soil", 0, 2}, {"basin", 2, 4}} {
		part, err := NewStructuredRectangular3D(p.name, ele, nil, StructuredRectangularParams{
			XMin: p.xmin, XMax: p.xmax, YMin: 0, YMax: 1, ZMin: 0, ZMax: 1, NX: 2, NY: 1, NZ: 1,
		})
		assert.NoError(t, err)
		assert.NoError(t, a.AddPart(part))
	}
	_, err := a.CreateSection([]string{"soil"}, 2, mesh.KDTree, true)
	assert.NoError(t, err)
	_, err = a.CreateSection([]string{"basin"}, 1, mesh.KDTree, true)
	assert.NoError(t, err)

	assert.NoError(t, a.Assemble(true))
	m := a.Mesh
	assert.Equal(t, 4, m.NumCells())
	// the second section's cores shift past the first section's two
	// partition slots
	assert.ElementsMatch(t, []int{0, 1, 2, 2}, m.Core)
}

func TestAssembleWithoutSections(t *testing.T) {
	a := NewAssembler()
	assert.ErrorIs(t, a.Assemble(true), ErrValidation)
}

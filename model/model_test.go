package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialRegistry(t *testing.T) {
	m := New()
	mat := m.Materials.CreateElasticIsotropic(200, 0.3, 2000)
	assert.Equal(t, 1, mat.Tag)
	assert.Equal(t, "nDMaterial ElasticIsotropic 1 200 0.3 2000", mat.Tcl())

	got, err := m.Materials.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, mat, got)
	_, err = m.Materials.Get(7)
	assert.Error(t, err)
}

func TestMaterialCompact(t *testing.T) {
	r := NewMaterialRegistry()
	r.CreateElasticIsotropic(1, 0.1, 1)
	r.CreateElasticIsotropic(2, 0.2, 2)
	third := r.CreateElasticIsotropic(3, 0.3, 3)
	r.Remove(2)

	remap := r.Compact()
	assert.Equal(t, map[int]int{1: 1, 3: 2}, remap)
	assert.Equal(t, 2, third.Tag)
	got, err := r.Get(2)
	assert.NoError(t, err)
	assert.Equal(t, 3., got.E)
	// freed tags are reused
	fourth := r.CreateElasticIsotropic(4, 0.4, 4)
	assert.Equal(t, 3, fourth.Tag)
}

func TestParseElementKind(t *testing.T) {
	for s, want := range map[string]ElementKind{
		"stdBrick": StdBrick, "bbarBrick": BBarBrick, "SSPbrick": SSPBrick, "PML3D": PML3D,
	} {
		k, err := ParseElementKind(s)
		assert.NoError(t, err)
		assert.Equal(t, want, k)
		assert.Equal(t, s, k.String())
	}
	_, err := ParseElementKind("tetra")
	assert.Error(t, err)

	assert.True(t, StdBrick.IsBrick())
	assert.True(t, SSPBrick.IsBrick())
	assert.False(t, PML3D.IsBrick())
}

func TestBrickElementTcl(t *testing.T) {
	m := New()
	mat := m.Materials.CreateElasticIsotropic(200, 0.3, 2000)
	ele, err := m.Elements.CreateBrick(StdBrick, 3, mat, [3]float64{0, 0, -9.81})
	assert.NoError(t, err)
	assert.Equal(t, 1, ele.Tag)
	assert.Equal(t, 3, ele.NDF)

	line, err := ele.Tcl(4, []int{1, 2, 3, 4, 5, 6, 7, 8})
	assert.NoError(t, err)
	assert.Equal(t, "element stdBrick 4 1 2 3 4 5 6 7 8 1 0 0 -9.81", line)

	_, err = ele.Tcl(4, []int{1, 2, 3})
	assert.Error(t, err)

	_, err = m.Elements.CreateBrick(PML3D, 9, mat, [3]float64{})
	assert.Error(t, err)
}

func TestPMLElementTcl(t *testing.T) {
	m := New()
	mat := m.Materials.CreateElasticIsotropic(200, 0.3, 2000)
	ele := m.Elements.CreatePML(9, mat, PMLParams{
		Gamma:              0.5,
		Beta:               0.25,
		Eta:                1.0 / 12.0,
		Ksi:                1.0 / 48.0,
		Thickness:          2.5,
		M:                  2,
		R:                  1e-8,
		MeshType:           "Box",
		MeshTypeParameters: []float64{0, 0, 1, 10, 10, 5},
	})
	assert.Equal(t, PML3D, ele.Kind)

	line, err := ele.Tcl(9, []int{1, 2, 3, 4, 5, 6, 7, 8})
	assert.NoError(t, err)
	assert.Contains(t, line, "element PML 9 1 2 3 4 5 6 7 8 1 ")
	assert.Contains(t, line, "-Box 0 0 1 10 10 5")
	assert.Contains(t, line, " 2.5 2 1e-08 ")
}

func TestDampingAndRegion(t *testing.T) {
	m := New()
	d := m.Dampings.CreateFrequencyRayleigh(0.95)
	assert.Equal(t, 1, d.Tag)
	assert.Equal(t, "damping Frequency Rayleigh 1 -dampingFactor 0.95", d.Tcl())

	// the default global region holds tag 0
	assert.Equal(t, 0, m.Regions.Default().Tag)
	reg := m.Regions.CreateElementRegion(d)
	assert.Equal(t, 1, reg.Tag)
	assert.Equal(t, 1, reg.DampingTag)
	reg.SetElements([]int{3, 7})
	assert.Equal(t, "region 1 -ele 3 7 -damp 1", reg.Tcl())

	undamped := m.Regions.CreateElementRegion(nil)
	undamped.SetElements([]int{1})
	assert.Equal(t, "region 2 -ele 1", undamped.Tcl())
}

func TestEqualDOF(t *testing.T) {
	s := NewConstraintSet()
	c := s.CreateEqualDOF(5, []int{6}, []int{1, 2, 3})
	assert.Equal(t, 1, c.Tag)
	assert.Equal(t, "equalDOF 5 6 1 2 3", c.Tcl())

	c2 := s.CreateEqualDOF(1, []int{2, 3}, []int{1, 2, 3})
	assert.Equal(t, 2, c2.Tag)
	assert.Equal(t, "equalDOF 1 2 1 2 3\nequalDOF 1 3 1 2 3", c2.Tcl())
	assert.Len(t, s.MP, 2)
}

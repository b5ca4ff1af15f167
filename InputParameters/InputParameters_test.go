package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var modelYAML = `
Title: "Soil Box"
Materials:
  - {Name: Dense Ottawa, E: 2.0e7, Nu: 0.3, Rho: 2000.}
  - {Name: Loose Ottawa, E: 1.0e7, Nu: 0.3, Rho: 1900.}
Elements:
  - {Name: Dense Ottawa, Type: stdBrick, NDF: 3, Material: Dense Ottawa, BodyForces: [0., 0., -9.81]}
MeshParts:
  - {Name: Soil Block, Element: Dense Ottawa,
     XMin: -50., XMax: 50., YMin: -50., YMax: 50., ZMin: -30., ZMax: 0.,
     NxCells: 40, NyCells: 40, NzCells: 12}
Sections:
  - {MeshParts: [Soil Block], NumPartitions: 4, Algorithm: kd-tree, MergePoints: true}
AbsorbingLayer:
  {NumLayers: 5, NumPartitions: 2, Algorithm: kd-tree, Geometry: Rectangular, Type: PML}
Output: model
`

func TestParse(t *testing.T) {
	mp := &ModelParameters{}
	assert.NoError(t, mp.Parse([]byte(modelYAML)))

	assert.Equal(t, "Soil Box", mp.Title)
	assert.Len(t, mp.Materials, 2)
	assert.Equal(t, 2.0e7, mp.Materials[0].E)
	assert.Equal(t, 1900., mp.Materials[1].Rho)

	assert.Len(t, mp.Elements, 1)
	assert.Equal(t, "stdBrick", mp.Elements[0].Type)
	assert.Equal(t, [3]float64{0, 0, -9.81}, mp.Elements[0].BodyForces)

	assert.Len(t, mp.MeshParts, 1)
	p := mp.MeshParts[0]
	assert.Equal(t, "Soil Block", p.Name)
	assert.Equal(t, -50., p.XMin)
	assert.Equal(t, 40, p.NxCells)
	assert.Equal(t, 12, p.NzCells)

	assert.Len(t, mp.Sections, 1)
	assert.Equal(t, []string{"Soil Block"}, mp.Sections[0].MeshParts)
	assert.True(t, mp.Sections[0].MergePoints)

	assert.NotNil(t, mp.AbsorbingLayer)
	assert.Equal(t, 5, mp.AbsorbingLayer.NumLayers)
	assert.Equal(t, "PML", mp.AbsorbingLayer.Type)
	// damping factor defaults when the file omits it
	assert.Equal(t, 0.95, mp.AbsorbingLayer.RayleighDamping)

	assert.Equal(t, "model", mp.Output)
}

func TestParseKeepsExplicitDamping(t *testing.T) {
	mp := &ModelParameters{}
	assert.NoError(t, mp.Parse([]byte(`
AbsorbingLayer:
  {NumLayers: 3, Type: Rayleigh, RayleighDamping: 0.7}
`)))
	assert.Equal(t, 0.7, mp.AbsorbingLayer.RayleighDamping)
}

func TestParseWithoutAbsorbingLayer(t *testing.T) {
	mp := &ModelParameters{}
	assert.NoError(t, mp.Parse([]byte(`Title: "Bare"`)))
	assert.Nil(t, mp.AbsorbingLayer)
	assert.Error(t, mp.Parse([]byte("Title: [unclosed")))
}

package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML model definition file
type ModelParameters struct {
	Title          string         `yaml:"Title"`
	Materials      []MaterialSpec `yaml:"Materials"`
	Elements       []ElementSpec  `yaml:"Elements"`
	MeshParts      []MeshPartSpec `yaml:"MeshParts"`
	Sections       []SectionSpec  `yaml:"Sections"`
	AbsorbingLayer *AbsorbingSpec `yaml:"AbsorbingLayer"`
	Output         string         `yaml:"Output"`
}

// MaterialSpec declares an elastic isotropic nDMaterial.
type MaterialSpec struct {
	Name string  `yaml:"Name"`
	E    float64 `yaml:"E"`
	Nu   float64 `yaml:"Nu"`
	Rho  float64 `yaml:"Rho"`
}

// ElementSpec binds an element formulation to a named material.
type ElementSpec struct {
	Name       string     `yaml:"Name"`
	Type       string     `yaml:"Type"` // stdBrick, bbarBrick, SSPbrick
	NDF        int        `yaml:"NDF"`
	Material   string     `yaml:"Material"`
	BodyForces [3]float64 `yaml:"BodyForces"`
}

// MeshPartSpec declares a structured rectangular grid bound to an element.
type MeshPartSpec struct {
	Name    string  `yaml:"Name"`
	Element string  `yaml:"Element"`
	XMin    float64 `yaml:"XMin"`
	XMax    float64 `yaml:"XMax"`
	YMin    float64 `yaml:"YMin"`
	YMax    float64 `yaml:"YMax"`
	ZMin    float64 `yaml:"ZMin"`
	ZMax    float64 `yaml:"ZMax"`
	NxCells int     `yaml:"NxCells"`
	NyCells int     `yaml:"NyCells"`
	NzCells int     `yaml:"NzCells"`
}

// SectionSpec groups mesh parts into one assembly section.
type SectionSpec struct {
	MeshParts     []string `yaml:"MeshParts"`
	NumPartitions int      `yaml:"NumPartitions"`
	Algorithm     string   `yaml:"Algorithm"` // kd-tree or metis
	MergePoints   bool     `yaml:"MergePoints"`
}

// AbsorbingSpec requests an absorbing boundary layer around the assembled
// mesh.
type AbsorbingSpec struct {
	NumLayers       int     `yaml:"NumLayers"`
	NumPartitions   int     `yaml:"NumPartitions"`
	Algorithm       string  `yaml:"Algorithm"` // kd-tree or metis
	Geometry        string  `yaml:"Geometry"`  // Rectangular or Cylindrical
	Type            string  `yaml:"Type"`      // PML, Rayleigh or ASDA
	RayleighDamping float64 `yaml:"RayleighDamping"`
	MatchDamping    bool    `yaml:"MatchDamping"`
}

func (mp *ModelParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, mp); err != nil {
		return err
	}
	if mp.AbsorbingLayer != nil && mp.AbsorbingLayer.RayleighDamping == 0 {
		mp.AbsorbingLayer.RayleighDamping = 0.95
	}
	return nil
}

func (mp *ModelParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", mp.Title)
	fmt.Printf("[%d]\t\t\t= Materials\n", len(mp.Materials))
	fmt.Printf("[%d]\t\t\t= Elements\n", len(mp.Elements))
	names := make([]string, len(mp.MeshParts))
	for i, p := range mp.MeshParts {
		names[i] = p.Name
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("MeshPart[%s]\n", name)
	}
	fmt.Printf("[%d]\t\t\t= Sections\n", len(mp.Sections))
	if mp.AbsorbingLayer != nil {
		fmt.Printf("[%s/%s]\t= Absorbing Layer (%d layers, %d partitions)\n",
			mp.AbsorbingLayer.Type, mp.AbsorbingLayer.Geometry,
			mp.AbsorbingLayer.NumLayers, mp.AbsorbingLayer.NumPartitions)
	}
}

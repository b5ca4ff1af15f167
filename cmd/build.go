/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/amnp95/godrm/InputParameters"
	"github.com/amnp95/godrm/drm"
	"github.com/amnp95/godrm/export"
	"github.com/amnp95/godrm/mesh"
	"github.com/amnp95/godrm/model"
)

type BuildOptions struct {
	ModelFile  string
	Output     string
	VTK        bool
	CPUProfile bool
}

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds a DRM model from a YAML definition and exports OpenSees Tcl",
	Long: `Builds a DRM model from a YAML definition file: registers materials and
elements, generates and assembles the structured mesh parts, optionally wraps
the assembly in an absorbing boundary layer, and exports the partitioned
model as an OpenSees Tcl script.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("build called")
		bo := &BuildOptions{}
		if bo.ModelFile, err = cmd.Flags().GetString("modelFile"); err != nil {
			panic(err)
		}
		bo.Output, _ = cmd.Flags().GetString("output")
		bo.VTK, _ = cmd.Flags().GetBool("vtk")
		bo.CPUProfile, _ = cmd.Flags().GetBool("cpuprofile")
		mp := processModelInput(bo)
		if bo.CPUProfile {
			defer profile.Start().Stop()
		}
		RunBuild(bo, mp)
	},
}

func processModelInput(bo *BuildOptions) (mp *InputParameters.ModelParameters) {
	var (
		err error
	)
	if len(bo.ModelFile) == 0 {
		err := fmt.Errorf("must supply a model definition file (-F, --modelFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Soil Box"
Materials:
  - {Name: Dense Ottawa, E: 2.0e7, Nu: 0.3, Rho: 2000.}
Elements:
  - {Name: Dense Ottawa, Type: stdBrick, NDF: 3, Material: Dense Ottawa, BodyForces: [0., 0., -9.81]}
MeshParts:
  - {Name: Soil Block, Element: Dense Ottawa,
     XMin: -50., XMax: 50., YMin: -50., YMax: 50., ZMin: -30., ZMax: 0.,
     NxCells: 40, NyCells: 40, NzCells: 12}
Sections:
  - {MeshParts: [Soil Block], NumPartitions: 4, Algorithm: kd-tree, MergePoints: true}
AbsorbingLayer:
  {NumLayers: 5, NumPartitions: 2, Algorithm: kd-tree,
   Geometry: Rectangular, Type: PML}
Output: model
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(bo.ModelFile); err != nil {
		panic(err)
	}
	mp = &InputParameters.ModelParameters{}
	if err = mp.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringP("modelFile", "F", "", "YAML model definition file with materials, elements, mesh parts and sections")
	buildCmd.Flags().StringP("output", "o", "", "output basename for the Tcl script, overrides the Output field of the model file")
	buildCmd.Flags().BoolP("vtk", "k", false, "also export the assembled mesh as a legacy VTK file")
	buildCmd.Flags().Bool("cpuprofile", false, "generate a runtime CPU profile of the build")
}

func RunBuild(bo *BuildOptions, mp *InputParameters.ModelParameters) {
	mp.Print()
	mdl := model.New()
	b := drm.NewBuilder(mdl)

	materials := make(map[string]*model.Material)
	for _, ms := range mp.Materials {
		materials[ms.Name] = mdl.Materials.CreateElasticIsotropic(ms.E, ms.Nu, ms.Rho)
	}
	elements := make(map[string]*model.Element)
	for _, es := range mp.Elements {
		kind, err := model.ParseElementKind(es.Type)
		if err != nil {
			panic(err)
		}
		mat, ok := materials[es.Material]
		if !ok {
			panic(fmt.Errorf("element %q references unknown material %q", es.Name, es.Material))
		}
		ndf := es.NDF
		if ndf == 0 {
			ndf = 3
		}
		ele, err := mdl.Elements.CreateBrick(kind, ndf, mat, es.BodyForces)
		if err != nil {
			panic(err)
		}
		elements[es.Name] = ele
	}

	for _, ps := range mp.MeshParts {
		ele, ok := elements[ps.Element]
		if !ok {
			panic(fmt.Errorf("mesh part %q references unknown element %q", ps.Name, ps.Element))
		}
		part, err := drm.NewStructuredRectangular3D(ps.Name, ele, nil, drm.StructuredRectangularParams{
			XMin: ps.XMin, XMax: ps.XMax,
			YMin: ps.YMin, YMax: ps.YMax,
			ZMin: ps.ZMin, ZMax: ps.ZMax,
			NX: ps.NxCells, NY: ps.NyCells, NZ: ps.NzCells,
		})
		if err != nil {
			panic(err)
		}
		if err = b.Assembler.AddPart(part); err != nil {
			panic(err)
		}
	}

	mergeAll := false
	for _, ss := range mp.Sections {
		algo, err := mesh.ParseAlgorithm(ss.Algorithm)
		if err != nil {
			panic(err)
		}
		np := ss.NumPartitions
		if np < 1 {
			np = 1
		}
		if _, err = b.Assembler.CreateSection(ss.MeshParts, np, algo, ss.MergePoints); err != nil {
			panic(err)
		}
		mergeAll = mergeAll || ss.MergePoints
	}
	if err := b.Assembler.Assemble(mergeAll); err != nil {
		panic(err)
	}

	if mp.AbsorbingLayer != nil {
		as := mp.AbsorbingLayer
		layerType, err := drm.ParseLayerType(as.Type)
		if err != nil {
			panic(err)
		}
		opts := drm.DefaultAbsorbingLayerOptions(as.NumLayers, as.NumPartitions, layerType)
		if as.Geometry != "" {
			if opts.Geometry, err = drm.ParseGeometry(as.Geometry); err != nil {
				panic(err)
			}
		}
		if as.Algorithm != "" {
			if opts.PartitionAlgorithm, err = mesh.ParseAlgorithm(as.Algorithm); err != nil {
				panic(err)
			}
		}
		opts.RayleighDamping = as.RayleighDamping
		opts.MatchDamping = as.MatchDamping
		opts.Progress = func(pct float64, phase string) {
			fmt.Printf("absorbing layer %5.1f%% %s\n", pct, phase)
		}
		if err = b.AddAbsorbingLayer(opts); err != nil {
			panic(err)
		}
	}

	output := mp.Output
	if len(bo.Output) != 0 {
		output = bo.Output
	}
	if len(output) == 0 {
		output = "model"
	}
	e := &export.Exporter{Mesh: b.Assembler.Mesh, Model: mdl}
	if err := e.ExportTcl(output); err != nil {
		panic(err)
	}
	fmt.Printf("wrote %s.tcl\n", output)
	if bo.VTK {
		if err := e.ExportVTK(output); err != nil {
			panic(err)
		}
		fmt.Printf("wrote %s.vtk\n", output)
	}
}

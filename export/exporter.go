// Package export serializes an assembled model to the OpenSees Tcl
// scripting format, emitting nodes and elements inside per-rank conditional
// blocks, and to a legacy VTK dump for inspection.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/amnp95/godrm/mesh"
	"github.com/amnp95/godrm/model"
)

// ProgressFunc receives fractional progress in [0, 100] with a phase label.
type ProgressFunc func(pct float64, phase string)

// Exporter writes the assembled mesh and its registries.
type Exporter struct {
	Mesh  *mesh.Mesh
	Model *model.Model

	Progress ProgressFunc
}

func (e *Exporter) progress(pct float64, phase string) {
	if e.Progress != nil {
		e.Progress(pct, phase)
	}
}

// ExportTcl writes the model to filename, appending the .tcl extension when
// missing.
func (e *Exporter) ExportTcl(filename string) error {
	if !strings.HasSuffix(filename, ".tcl") {
		filename += ".tcl"
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := e.WriteTcl(w); err != nil {
		return err
	}
	return w.Flush()
}

// WriteTcl writes the full model script to w.
func (e *Exporter) WriteTcl(w io.Writer) error {
	if e.Mesh == nil {
		return fmt.Errorf("no mesh found, please assemble the mesh first")
	}
	m := e.Mesh

	fmt.Fprintf(w, "wipe\n")
	fmt.Fprintf(w, "model BasicBuilder -ndm 3\n")
	fmt.Fprintf(w, "set pid [getPID]\n")
	fmt.Fprintf(w, "set np [getNP]\n")

	bounds := m.Bounds()
	fmt.Fprintf(w, "\n# Mesh Bounds ======================================\n")
	fmt.Fprintf(w, "set X_MIN %g\n", bounds.Min.X)
	fmt.Fprintf(w, "set X_MAX %g\n", bounds.Max.X)
	fmt.Fprintf(w, "set Y_MIN %g\n", bounds.Min.Y)
	fmt.Fprintf(w, "set Y_MAX %g\n", bounds.Max.Y)
	fmt.Fprintf(w, "set Z_MIN %g\n", bounds.Min.Z)
	fmt.Fprintf(w, "set Z_MAX %g\n", bounds.Max.Z)

	e.progress(0, "writing materials")
	fmt.Fprintf(w, "\n# Materials ======================================\n")
	for _, mat := range e.Model.Materials.All() {
		fmt.Fprintf(w, "%s\n", mat.Tcl())
	}

	e.progress(5, "writing nodes and elements")
	if err := e.writeNodesAndElements(w); err != nil {
		return err
	}

	e.progress(50, "writing dampings")
	fmt.Fprintf(w, "\n# Dampings ======================================\n")
	dampings := e.Model.Dampings.All()
	if len(dampings) == 0 {
		fmt.Fprintf(w, "# No dampings found\n")
	}
	for _, d := range dampings {
		fmt.Fprintf(w, "%s\n", d.Tcl())
	}

	e.progress(55, "writing regions")
	if err := e.writeRegions(w); err != nil {
		return err
	}

	e.progress(65, "writing constraints")
	if err := e.writeConstraints(w); err != nil {
		return err
	}

	e.progress(100, "finished writing")
	return nil
}

// writeNodesAndElements emits each cell inside an if {$pid == core} block,
// declaring every node once per (node, core) pair before its first use.
func (e *Exporter) writeNodesAndElements(w io.Writer) error {
	m := e.Mesh

	fmt.Fprintf(w, "\n# Nodes & Elements ======================================\n")
	written := make([]map[int]bool, len(m.Points))
	for i := range written {
		written[i] = make(map[int]bool)
	}

	for i, cell := range m.Cells {
		core := m.Core[i]
		fmt.Fprintf(w, "if {$pid == %d} {\n", core)
		for _, pid := range cell {
			if !written[pid][core] {
				p := m.Points[pid]
				fmt.Fprintf(w, "\tnode %d %g %g %g -ndf %d\n", pid+1, p.X, p.Y, p.Z, m.NDF[pid])
				written[pid][core] = true
			}
		}
		ele, err := e.Model.Elements.Get(m.ElementTag[i])
		if err != nil {
			return fmt.Errorf("cell %d: %w", i, err)
		}
		nodeTags := make([]int, len(cell))
		for j, pid := range cell {
			nodeTags[j] = pid + 1
		}
		line, err := ele.Tcl(i+1, nodeTags)
		if err != nil {
			return fmt.Errorf("cell %d: %w", i, err)
		}
		fmt.Fprintf(w, "\t%s\n", line)
		fmt.Fprintf(w, "}\n")
		e.progress(float64(i)/float64(m.NumCells())*45+5, "writing nodes and elements")
	}
	return nil
}

// writeRegions attaches element ids to each region present in the mesh and
// emits it. Node regions are not supported.
func (e *Exporter) writeRegions(w io.Writer) error {
	m := e.Mesh
	fmt.Fprintf(w, "\n# Regions ======================================\n")

	byTag := make(map[int][]int)
	for i, tag := range m.Region {
		byTag[tag] = append(byTag[tag], i+1)
	}
	tags := make([]int, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sort.Ints(tags)

	for _, tag := range tags {
		region, err := e.Model.Regions.Get(tag)
		if err != nil {
			return err
		}
		if region.Kind == model.NodeRegion {
			return fmt.Errorf("region %d is of type nodeRegion which is not supported yet", tag)
		}
		region.SetElements(byTag[tag])
		fmt.Fprintf(w, "%s \n", region.Tcl())
	}
	return nil
}

// writeConstraints emits equalDOF blocks per core. Master or slave nodes
// living on another rank are declared locally first so the constraint can
// bind.
func (e *Exporter) writeConstraints(w io.Writer) error {
	m := e.Mesh
	fmt.Fprintf(w, "\n# mpConstraints ======================================\n")

	numNodes := m.NumPoints()
	masterOf := make(map[int]*model.EqualDOF) // master node id (0-based) -> constraint
	masterFor := make(map[int]int)            // slave node id (0-based) -> master node id
	for _, c := range e.Model.Constraints.MP {
		masterOf[c.MasterNode-1] = c
		for _, s := range c.SlaveNodes {
			masterFor[s-1] = c.MasterNode - 1
		}
	}
	if len(masterOf) == 0 {
		return nil
	}

	for _, core := range coreValues(m.Core) {
		inCore := make([]bool, numNodes)
		for i, cell := range m.Cells {
			if m.Core[i] != core {
				continue
			}
			for _, pid := range cell {
				inCore[pid] = true
			}
		}

		// Masters active on this core: either resident, or master of a
		// resident slave.
		activeMasters := make(map[int]bool)
		for id := range masterOf {
			if inCore[id] {
				activeMasters[id] = true
			}
		}
		for slave, master := range masterFor {
			if slave < numNodes && inCore[slave] {
				activeMasters[master] = true
			}
		}
		if len(activeMasters) == 0 {
			continue
		}
		masters := make([]int, 0, len(activeMasters))
		for id := range activeMasters {
			masters = append(masters, id)
		}
		sort.Ints(masters)

		fmt.Fprintf(w, "if {$pid == %d} {\n", core)

		ghostMasters := filterOut(masters, inCore)
		if len(ghostMasters) > 0 {
			fmt.Fprintf(w, "\t# Master nodes\n")
			for _, id := range ghostMasters {
				p := m.Points[id]
				fmt.Fprintf(w, "\tnode %d %g %g %g -ndf %d\n", id+1, p.X, p.Y, p.Z, m.NDF[id])
			}
		}

		var ghostSlaves []int
		seen := make(map[int]bool)
		for _, id := range masters {
			for _, s := range masterOf[id].SlaveNodes {
				sid := s - 1
				if sid >= 0 && sid < numNodes && !inCore[sid] && !seen[sid] {
					seen[sid] = true
					ghostSlaves = append(ghostSlaves, sid)
				}
			}
		}
		sort.Ints(ghostSlaves)
		if len(ghostSlaves) > 0 {
			fmt.Fprintf(w, "\t# Slave nodes\n")
			for _, id := range ghostSlaves {
				p := m.Points[id]
				fmt.Fprintf(w, "\tnode %d %g %g %g -ndf %d\n", id+1, p.X, p.Y, p.Z, m.NDF[id])
			}
		}

		for _, id := range masters {
			fmt.Fprintf(w, "\t%s\n", masterOf[id].Tcl())
		}
		fmt.Fprintf(w, "}\n")
	}
	return nil
}

// coreValues returns the distinct Core ids in ascending order.
func coreValues(cores []int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, c := range cores {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Ints(out)
	return out
}

func filterOut(ids []int, inCore []bool) []int {
	var out []int
	for _, id := range ids {
		if !inCore[id] {
			out = append(out, id)
		}
	}
	return out
}

package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExportVTK writes the assembled mesh to filename as a legacy-format VTK
// unstructured grid, appending the .vtk extension when missing.
func (e *Exporter) ExportVTK(filename string) error {
	if !strings.HasSuffix(filename, ".vtk") {
		filename += ".vtk"
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
	if err := e.WriteVTK(w); err != nil {
		return err
	}
	return w.Flush()
}

// WriteVTK writes the mesh in VTK legacy ASCII format with the cell and
// point attribute arrays attached.
func (e *Exporter) WriteVTK(w io.Writer) error {
	if e.Mesh == nil {
		return fmt.Errorf("no mesh found, please assemble the mesh first")
	}
	m := e.Mesh

	fmt.Fprintf(w, "# vtk DataFile Version 3.0\n")
	fmt.Fprintf(w, "godrm assembled mesh\n")
	fmt.Fprintf(w, "ASCII\n")
	fmt.Fprintf(w, "DATASET UNSTRUCTURED_GRID\n")

	fmt.Fprintf(w, "POINTS %d double\n", m.NumPoints())
	for _, p := range m.Points {
		fmt.Fprintf(w, "%g %g %g\n", p.X, p.Y, p.Z)
	}

	size := 0
	for _, cell := range m.Cells {
		size += len(cell) + 1
	}
	fmt.Fprintf(w, "CELLS %d %d\n", m.NumCells(), size)
	for _, cell := range m.Cells {
		fmt.Fprintf(w, "%d", len(cell))
		for _, pid := range cell {
			fmt.Fprintf(w, " %d", pid)
		}
		fmt.Fprintf(w, "\n")
	}

	// VTK_HEXAHEDRON
	fmt.Fprintf(w, "CELL_TYPES %d\n", m.NumCells())
	for range m.Cells {
		fmt.Fprintf(w, "12\n")
	}

	fmt.Fprintf(w, "CELL_DATA %d\n", m.NumCells())
	writeIntArray(w, "MaterialTag", m.MaterialTag)
	writeIntArray(w, "ElementTag", m.ElementTag)
	writeIntArray(w, "Region", m.Region)
	writeIntArray(w, "Core", m.Core)
	writeIntArray(w, "AbsorbingRegion", m.AbsorbingRegion)

	fmt.Fprintf(w, "POINT_DATA %d\n", m.NumPoints())
	writeIntArray(w, "ndf", m.NDF)
	return nil
}

func writeIntArray(w io.Writer, name string, a []int) {
	if len(a) == 0 {
		return
	}
	fmt.Fprintf(w, "SCALARS %s int 1\n", name)
	fmt.Fprintf(w, "LOOKUP_TABLE default\n")
	for _, v := range a {
		fmt.Fprintf(w, "%d\n", v)
	}
}

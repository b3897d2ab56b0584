// Copyright (C) 2026 The lutinvert authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package lut

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Writes the LUT to the named file in .cube format
func (l *LUT) WriteCubeFile(fileName string) error {
	file, err:=os.Create(fileName)
	if err!=nil { return err }
	defer file.Close()

	writer:=bufio.NewWriter(file)
	if err:=l.WriteCube(writer); err!=nil { return err }
	return writer.Flush()
}

// Writes the LUT in .cube format: title, size and domain header lines,
// then one record per node with the first (red) axis varying fastest
func (l *LUT) WriteCube(w io.Writer) error {
	title:=l.Title
	if title=="" { title="Untitled LUT" }
	if _, err:=fmt.Fprintf(w, "TITLE %q\n", title); err!=nil { return err }
	if _, err:=fmt.Fprintf(w, "LUT_3D_SIZE %d\n", l.Size); err!=nil { return err }
	if _, err:=fmt.Fprintf(w, "DOMAIN_MIN %.6f %.6f %.6f\n", l.DomainMin[0], l.DomainMin[1], l.DomainMin[2]); err!=nil { return err }
	if _, err:=fmt.Fprintf(w, "DOMAIN_MAX %.6f %.6f %.6f\n", l.DomainMax[0], l.DomainMax[1], l.DomainMax[2]); err!=nil { return err }
	if _, err:=fmt.Fprintln(w); err!=nil { return err }

	for b:=0; b<l.Size; b++ {
		for g:=0; g<l.Size; g++ {
			for r:=0; r<l.Size; r++ {
				v:=l.At(r,g,b)
				if _, err:=fmt.Fprintf(w, "%.6f %.6f %.6f\n", v[0], v[1], v[2]); err!=nil { return err }
			}
		}
	}
	return nil
}

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
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Reads a .cube LUT from the named file
func ReadCubeFile(fileName string) (l *LUT, err error) {
	file, err:=os.Open(fileName)
	if err!=nil { return nil, err }
	defer file.Close()
	return ReadCube(bufio.NewReader(file))
}

// Reads a .cube LUT from the given reader. The file lists one RGB record per
// line with the first (red) axis varying fastest; records are reordered into
// the canonical (axis0, axis1, axis2) layout. Header keywords recognized are
// TITLE, LUT_3D_SIZE, DOMAIN_MIN and DOMAIN_MAX; comments, blank lines and
// unknown keywords are skipped.
func ReadCube(r io.Reader) (l *LUT, err error) {
	title    :=""
	size     :=0
	domainMin:=[3]float64{0,0,0}
	domainMax:=[3]float64{1,1,1}
	records  :=[][3]float64{}

	scanner:=bufio.NewScanner(r)
	for scanner.Scan() {
		line:=strings.TrimSpace(scanner.Text())
		if line=="" || strings.HasPrefix(line, "#") { continue }

		if strings.HasPrefix(line, "TITLE") {
			if strings.Contains(line, "\"") {
				title=strings.Split(line, "\"")[1]
			} else if fields:=strings.Fields(line); len(fields)>1 {
				title=fields[1]
			}
			continue
		}
		if strings.HasPrefix(line, "LUT_3D_SIZE") {
			fields:=strings.Fields(line)
			if len(fields)<2 { return nil, errors.New("LUT_3D_SIZE line without value") }
			size, err=strconv.Atoi(fields[1])
			if err!=nil { return nil, fmt.Errorf("invalid LUT_3D_SIZE %q: %s", fields[1], err.Error()) }
			continue
		}
		if strings.HasPrefix(line, "DOMAIN_MIN") {
			if domainMin, err=parseVec3(line); err!=nil { return nil, err }
			continue
		}
		if strings.HasPrefix(line, "DOMAIN_MAX") {
			if domainMax, err=parseVec3(line); err!=nil { return nil, err }
			continue
		}
		if strings.HasPrefix(line, "LUT_1D_SIZE") || strings.HasPrefix(line, "DOMAIN") { continue }

		rec, ok:=parseRecord(line)
		if !ok { continue } // unknown keyword line
		records=append(records, rec)
	}
	if err:=scanner.Err(); err!=nil { return nil, err }

	if size==0 {
		size=int(math.Round(math.Cbrt(float64(len(records)))))
	}
	if size<2 { return nil, fmt.Errorf("LUT size %d below minimum of 2", size) }
	if len(records)!=size*size*size {
		return nil, fmt.Errorf("expected %d data records for size %d, got %d", size*size*size, size, len(records))
	}

	l=New(size)
	l.Title    =title
	l.DomainMin=domainMin
	l.DomainMax=domainMax
	n:=0
	for b:=0; b<size; b++ {
		for g:=0; g<size; g++ {
			for r:=0; r<size; r++ {
				l.SetAt(r,g,b, records[n])
				n++
			}
		}
	}
	return l, nil
}

// Parses the three floats following a header keyword like DOMAIN_MIN
func parseVec3(line string) (v [3]float64, err error) {
	fields:=strings.Fields(line)
	if len(fields)<4 { return v, fmt.Errorf("%s line needs three values", fields[0]) }
	for i:=0; i<3; i++ {
		v[i], err=strconv.ParseFloat(fields[i+1], 64)
		if err!=nil { return v, fmt.Errorf("invalid %s value %q: %s", fields[0], fields[i+1], err.Error()) }
	}
	return v, nil
}

// Parses a data line of three floats. Returns ok=false for lines that do not
// consist of exactly three numbers, so unknown keywords pass through silently
func parseRecord(line string) (rec [3]float64, ok bool) {
	fields:=strings.Fields(line)
	if len(fields)!=3 { return rec, false }
	for i, f:=range fields {
		v, err:=strconv.ParseFloat(f, 64)
		if err!=nil { return rec, false }
		rec[i]=v
	}
	return rec, true
}

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
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestSetAtClamps(t *testing.T) {
	l:=New(2)
	l.SetAt(0,0,0, [3]float64{-0.5, 1.5, 0.25})
	v:=l.At(0,0,0)
	if v[0]!=0 { t.Errorf("v[0]=%f; want 0", v[0]) }
	if v[1]!=1 { t.Errorf("v[1]=%f; want 1", v[1]) }
	if v[2]!=0.25 { t.Errorf("v[2]=%f; want 0.25", v[2]) }
}

func TestNodeCoord(t *testing.T) {
	l:=New(5)
	c:=l.NodeCoord(0,2,4)
	if c[0]!=0 || c[1]!=0.5 || c[2]!=1 { t.Errorf("NodeCoord(0,2,4)=%v; want (0, 0.5, 1)", c) }
}

func TestWriteReadRoundTrip(t *testing.T) {
	l:=MakeGamma(3, 2.0)
	l.Title="Roundtrip Test"
	l.DomainMin=[3]float64{0.1, 0.2, 0.3}
	l.DomainMax=[3]float64{0.9, 0.8, 0.7}

	buf:=bytes.Buffer{}
	if err:=l.WriteCube(&buf); err!=nil { t.Fatalf("WriteCube: %s", err.Error()) }

	l2, err:=ReadCube(&buf)
	if err!=nil { t.Fatalf("ReadCube: %s", err.Error()) }
	if l2.Size!=l.Size { t.Errorf("size=%d; want %d", l2.Size, l.Size) }
	if l2.Title!=l.Title { t.Errorf("title=%q; want %q", l2.Title, l.Title) }
	for c:=0; c<3; c++ {
		if math.Abs(l2.DomainMin[c]-l.DomainMin[c])>1e-6 { t.Errorf("domainMin[%d]=%f; want %f", c, l2.DomainMin[c], l.DomainMin[c]) }
		if math.Abs(l2.DomainMax[c]-l.DomainMax[c])>1e-6 { t.Errorf("domainMax[%d]=%f; want %f", c, l2.DomainMax[c], l.DomainMax[c]) }
	}
	for i:=0; i<len(l.Data); i++ {
		if math.Abs(l2.Data[i]-l.Data[i])>1e-6 { t.Errorf("data[%d]=%f; want %f", i, l2.Data[i], l.Data[i]) }
	}
}

func TestReadCubeAxisOrder(t *testing.T) {
	// two nodes per axis; the record for node (r,g,b)=(1,0,0) comes second
	// in the file because the first axis varies fastest
	text:=`TITLE "Order"
LUT_3D_SIZE 2

0.00 0.00 0.00
0.10 0.00 0.00
0.00 0.20 0.00
0.10 0.20 0.00
0.00 0.00 0.30
0.10 0.00 0.30
0.00 0.20 0.30
0.10 0.20 0.30
`
	l, err:=ReadCube(strings.NewReader(text))
	if err!=nil { t.Fatalf("ReadCube: %s", err.Error()) }
	if v:=l.At(1,0,0); v[0]!=0.1 || v[1]!=0 || v[2]!=0 { t.Errorf("At(1,0,0)=%v; want (0.1, 0, 0)", v) }
	if v:=l.At(0,1,0); v[1]!=0.2 { t.Errorf("At(0,1,0)=%v; want green 0.2", v) }
	if v:=l.At(0,0,1); v[2]!=0.3 { t.Errorf("At(0,0,1)=%v; want blue 0.3", v) }
}

func TestReadCubeInfersSize(t *testing.T) {
	lines:=[]string{"# no size header"}
	for i:=0; i<8; i++ { lines=append(lines, "0.5 0.5 0.5") }
	l, err:=ReadCube(strings.NewReader(strings.Join(lines, "\n")))
	if err!=nil { t.Fatalf("ReadCube: %s", err.Error()) }
	if l.Size!=2 { t.Errorf("size=%d; want 2", l.Size) }
}

func TestReadCubeSizeMismatch(t *testing.T) {
	text:="LUT_3D_SIZE 3\n0.0 0.0 0.0\n1.0 1.0 1.0\n"
	if _, err:=ReadCube(strings.NewReader(text)); err==nil {
		t.Errorf("expected error for size/record count mismatch")
	}
}

func TestReadCubeSkipsCommentsAndUnknownKeywords(t *testing.T) {
	text:=`# a comment
LUT_1D_SIZE 17
SOME_FUTURE_KEYWORD abc
LUT_3D_SIZE 2

0 0 0
1 0 0
0 1 0
1 1 0
0 0 1
1 0 1
0 1 1
1 1 1
`
	l, err:=ReadCube(strings.NewReader(text))
	if err!=nil { t.Fatalf("ReadCube: %s", err.Error()) }
	if l.Size!=2 { t.Errorf("size=%d; want 2", l.Size) }
}

func TestMakeIdentity(t *testing.T) {
	l:=MakeIdentity(5)
	for i:=0; i<5; i++ {
		for j:=0; j<5; j++ {
			for k:=0; k<5; k++ {
				if v, c:=l.At(i,j,k), l.NodeCoord(i,j,k); v!=c {
					t.Errorf("At(%d,%d,%d)=%v; want %v", i,j,k, v, c)
				}
			}
		}
	}
}

func TestMakeGamma(t *testing.T) {
	l:=MakeGamma(5, 2.0)
	v:=l.At(2,2,2) // coordinate 0.5 per channel
	for c:=0; c<3; c++ {
		if math.Abs(v[c]-0.25)>1e-12 { t.Errorf("At(2,2,2)[%d]=%f; want 0.25", c, v[c]) }
	}
}

func TestMakeHueRotateFixesGrayAxis(t *testing.T) {
	l:=MakeHueRotate(5, 30)
	// gray colors have no hue, so rotation must leave the diagonal unchanged
	for d:=0; d<5; d++ {
		v:=l.At(d,d,d)
		want:=float64(d)/4
		for c:=0; c<3; c++ {
			if math.Abs(v[c]-want)>1e-9 { t.Errorf("At(%d,%d,%d)[%d]=%f; want %f", d,d,d, c, v[c], want) }
		}
	}
}

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
	"fmt"
)

// A cubic 3D lookup table mapping RGB coordinates in [0,1]^3 to RGB values.
// Node (i,j,k) represents input coordinate (i,j,k)/(Size-1), with i the first
// axis (red), and is stored at Data[((i*Size+j)*Size+k)*3 : +3].
// Domain bounds are opaque metadata carried through from the source file;
// the math operates on [0,1]^3 regardless.
type LUT struct {
	Size       int
	Data       []float64
	Title      string
	DomainMin  [3]float64
	DomainMax  [3]float64
}

// Allocates a zero-filled LUT of the given side length with default domain bounds
func New(size int) *LUT {
	return &LUT{
		Size     : size,
		Data     : make([]float64, size*size*size*3),
		DomainMin: [3]float64{0,0,0},
		DomainMax: [3]float64{1,1,1},
	}
}

// Returns the value stored at node (i,j,k)
func (l *LUT) At(i,j,k int) [3]float64 {
	o:=((i*l.Size+j)*l.Size+k)*3
	return [3]float64{l.Data[o], l.Data[o+1], l.Data[o+2]}
}

// Stores a value at node (i,j,k), clamping each component to [0,1]
func (l *LUT) SetAt(i,j,k int, v [3]float64) {
	o:=((i*l.Size+j)*l.Size+k)*3
	l.Data[o  ]=Clamp01(v[0])
	l.Data[o+1]=Clamp01(v[1])
	l.Data[o+2]=Clamp01(v[2])
}

// Returns the input coordinate of node (i,j,k)
func (l *LUT) NodeCoord(i,j,k int) [3]float64 {
	s:=1.0/float64(l.Size-1)
	return [3]float64{float64(i)*s, float64(j)*s, float64(k)*s}
}

func (l *LUT) String() string {
	return fmt.Sprintf("%dx%dx%d LUT %q", l.Size, l.Size, l.Size, l.Title)
}

// Clamps a value to [0,1]
func Clamp01(x float64) float64 {
	if x<0 { return 0 }
	if x>1 { return 1 }
	return x
}

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
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Synthetic LUT generators, mainly for testing inversions against mappings
// with a known closed-form inverse.

// Creates an identity LUT: every node stores its own input coordinate
func MakeIdentity(size int) *LUT {
	l:=New(size)
	l.Title="Identity"
	for i:=0; i<size; i++ {
		for j:=0; j<size; j++ {
			for k:=0; k<size; k++ {
				l.SetAt(i,j,k, l.NodeCoord(i,j,k))
			}
		}
	}
	return l
}

// Creates a per-channel gamma LUT: value = coord^gamma on each channel.
// gamma=2 reproduces the classic x^2 test mapping
func MakeGamma(size int, gamma float64) *LUT {
	l:=New(size)
	l.Title="Gamma"
	for i:=0; i<size; i++ {
		for j:=0; j<size; j++ {
			for k:=0; k<size; k++ {
				c:=l.NodeCoord(i,j,k)
				l.SetAt(i,j,k, [3]float64{
					math.Pow(c[0], gamma),
					math.Pow(c[1], gamma),
					math.Pow(c[2], gamma),
				})
			}
		}
	}
	return l
}

// Creates a hue rotation LUT turning each node color by the given angle in
// degrees. Unlike the per-channel generators this couples the channels,
// which exercises off-diagonal Jacobian terms in the inversion
func MakeHueRotate(size int, degrees float64) *LUT {
	l:=New(size)
	l.Title="HueRotate"
	for i:=0; i<size; i++ {
		for j:=0; j<size; j++ {
			for k:=0; k<size; k++ {
				c:=l.NodeCoord(i,j,k)
				h, s, v:=colorful.Color{R: c[0], G: c[1], B: c[2]}.Hsv()
				h=math.Mod(h+degrees, 360)
				if h<0 { h+=360 }
				rot:=colorful.Hsv(h, s, v)
				l.SetAt(i,j,k, [3]float64{rot.R, rot.G, rot.B})
			}
		}
	}
	return l
}

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

package invert

import (
	"math"

	"github.com/JunlongH/lutinvert/internal/lut"
)

// Vector helpers on [3]float64. Solver state is float64 throughout: the
// refinement tolerance of 1e-10 is below float32 resolution.

func add3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0]+b[0], a[1]+b[1], a[2]+b[2]}
}

func sub3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0]-b[0], a[1]-b[1], a[2]-b[2]}
}

func scale3(a [3]float64, s float64) [3]float64 {
	return [3]float64{a[0]*s, a[1]*s, a[2]*s}
}

func clamp3(a [3]float64) [3]float64 {
	return [3]float64{lut.Clamp01(a[0]), lut.Clamp01(a[1]), lut.Clamp01(a[2])}
}

// Returns the largest absolute component, the error norm used by the refiner
func maxAbs3(a [3]float64) float64 {
	m:=math.Abs(a[0])
	if v:=math.Abs(a[1]); v>m { m=v }
	if v:=math.Abs(a[2]); v>m { m=v }
	return m
}

// Returns the squared euclidian distance between the two given points
func dist3Squared(a, b [3]float64) float64 {
	dx, dy, dz:=a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dx*dx + dy*dy + dz*dz
}

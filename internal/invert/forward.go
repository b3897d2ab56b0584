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
	"github.com/JunlongH/lutinvert/internal/lut"
)

// Wraps a sampled LUT as a continuous function over [0,1]^3 via trilinear
// interpolation. Purely reads the immutable grid, so a single evaluator is
// safe to share across concurrent solves.
type Evaluator struct {
	l *lut.LUT
}

func NewEvaluator(l *lut.LUT) *Evaluator {
	return &Evaluator{l: l}
}

// Locates the cell containing coordinate x along one axis of n nodes.
// Returns the lower node index and the fraction within the cell.
// On the upper boundary the last cell is used with fraction 1, so boundary
// lookups degenerate to exact node values.
func locate(x float64, n int) (i int, f float64) {
	t:=lut.Clamp01(x)*float64(n-1)
	i=int(t)
	if i>n-2 { i=n-2 }
	f=t-float64(i)
	return i, f
}

// Evaluates the LUT at x, clamping coordinates to [0,1] first.
// Trilinear interpolation is applied independently per output channel.
func (e *Evaluator) Eval(x [3]float64) [3]float64 {
	n:=e.l.Size
	i, fi:=locate(x[0], n)
	j, fj:=locate(x[1], n)
	k, fk:=locate(x[2], n)

	c000:=e.l.At(i,   j,   k  )
	c001:=e.l.At(i,   j,   k+1)
	c010:=e.l.At(i,   j+1, k  )
	c011:=e.l.At(i,   j+1, k+1)
	c100:=e.l.At(i+1, j,   k  )
	c101:=e.l.At(i+1, j,   k+1)
	c110:=e.l.At(i+1, j+1, k  )
	c111:=e.l.At(i+1, j+1, k+1)

	var out [3]float64
	for c:=0; c<3; c++ {
		c00:=c000[c]+(c100[c]-c000[c])*fi
		c01:=c001[c]+(c101[c]-c001[c])*fi
		c10:=c010[c]+(c110[c]-c010[c])*fi
		c11:=c011[c]+(c111[c]-c011[c])*fi
		c0:=c00+(c10-c00)*fj
		c1:=c01+(c11-c01)*fj
		out[c]=c0+(c1-c0)*fk
	}
	return out
}

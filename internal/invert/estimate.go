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

// Estimates rough inverse values for a forward LUT by scattered-data
// interpolation over its (input, output) sample pairs. The forward mapping
// distorts sample density in output space, so a regular-grid reverse lookup
// would be unsound; instead the images of the forward grid cells, which tile
// the mapping's range, are split into tetrahedra and queried barycentrically.
// Built once per inversion job, then shared read-only by all solves.
type Estimator struct {
	l    *lut.LUT
	tree kdTree3
}

// The six tetrahedra of the Kuhn decomposition of a cube, as paths of corner
// offsets from (0,0,0) to (1,1,1), one axis step at a time
var cubeTetrahedra=[6][4][3]int{
	{{0,0,0}, {1,0,0}, {1,1,0}, {1,1,1}},
	{{0,0,0}, {1,0,0}, {1,0,1}, {1,1,1}},
	{{0,0,0}, {0,1,0}, {1,1,0}, {1,1,1}},
	{{0,0,0}, {0,1,0}, {0,1,1}, {1,1,1}},
	{{0,0,0}, {0,0,1}, {1,0,1}, {1,1,1}},
	{{0,0,0}, {0,0,1}, {0,1,1}, {1,1,1}},
}

// Builds an estimator from all sample pairs of the given forward LUT
func NewEstimator(l *lut.LUT) *Estimator {
	n:=l.Size
	tree:=make(kdTree3, 0, n*n*n)
	for i:=0; i<n; i++ {
		for j:=0; j<n; j++ {
			for k:=0; k<n; k++ {
				tree=append(tree, sample{out: l.At(i,j,k), i: i, j: j, k: k})
			}
		}
	}
	tree.build()
	return &Estimator{l: l, tree: tree}
}

// Returns an initial guess x with Eval(x) ≈ target. Looks for a tetrahedron
// containing target among the cells around the nearest sample output, and
// interpolates the cell's input corners barycentrically. Outside the convex
// hull of the observed outputs, or when local folding hides the containing
// cell, falls back to the nearest sample's input coordinate.
func (e *Estimator) Estimate(target [3]float64) [3]float64 {
	near, _:=e.tree.nearest(target)

	// cells incident to the nearest node first, then one layer further out
	if x, ok:=e.searchCells(near, target, 1); ok { return clamp3(x) }
	if x, ok:=e.searchCells(near, target, 2); ok { return clamp3(x) }

	return e.l.NodeCoord(near.i, near.j, near.k)
}

// Scans cells within the given radius of the sample's node, skipping those
// already covered by a smaller radius. Cell (ci,cj,ck) spans nodes
// [ci,ci+1]x[cj,cj+1]x[ck,ck+1]
func (e *Estimator) searchCells(near sample, target [3]float64, radius int) (x [3]float64, ok bool) {
	maxCell:=e.l.Size-2
	inner:=radius-1
	for di:=-radius; di<radius; di++ {
		for dj:=-radius; dj<radius; dj++ {
			for dk:=-radius; dk<radius; dk++ {
				if di>=-inner && di<inner && dj>=-inner && dj<inner && dk>=-inner && dk<inner { continue }
				ci, cj, ck:=near.i+di, near.j+dj, near.k+dk
				if ci<0 || ci>maxCell || cj<0 || cj>maxCell || ck<0 || ck>maxCell { continue }
				if x, ok:=e.interpolateCell(ci, cj, ck, target); ok { return x, true }
			}
		}
	}
	return x, false
}

// Tests the six tetrahedra of one warped cell for containment of target in
// output space; on a hit, interpolates the tetrahedron's input corners with
// the barycentric weights of target
func (e *Estimator) interpolateCell(ci, cj, ck int, target [3]float64) (x [3]float64, ok bool) {
	var outs, ins [2][2][2][3]float64
	for di:=0; di<2; di++ {
		for dj:=0; dj<2; dj++ {
			for dk:=0; dk<2; dk++ {
				outs[di][dj][dk]=e.l.At(ci+di, cj+dj, ck+dk)
				ins [di][dj][dk]=e.l.NodeCoord(ci+di, cj+dj, ck+dk)
			}
		}
	}

	for _, tet:=range cubeTetrahedra {
		o0:=outs[tet[0][0]][tet[0][1]][tet[0][2]]
		o1:=outs[tet[1][0]][tet[1][1]][tet[1][2]]
		o2:=outs[tet[2][0]][tet[2][1]][tet[2][2]]
		o3:=outs[tet[3][0]][tet[3][1]][tet[3][2]]

		b1, b2, b3, ok:=barycentric(o0, o1, o2, o3, target)
		if !ok { continue }

		q0:=ins[tet[0][0]][tet[0][1]][tet[0][2]]
		q1:=ins[tet[1][0]][tet[1][1]][tet[1][2]]
		q2:=ins[tet[2][0]][tet[2][1]][tet[2][2]]
		q3:=ins[tet[3][0]][tet[3][1]][tet[3][2]]

		x=add3(q0, add3(scale3(sub3(q1,q0), b1), add3(scale3(sub3(q2,q0), b2), scale3(sub3(q3,q0), b3))))
		return x, true
	}
	return x, false
}

const barycentricSlack=1e-9

// Computes barycentric coordinates of p within the tetrahedron (v0,v1,v2,v3)
// by Cramer's rule. Returns ok=false when p lies outside, or when the
// tetrahedron is degenerate (forward mapping collapses the cell)
func barycentric(v0, v1, v2, v3, p [3]float64) (b1, b2, b3 float64, ok bool) {
	a:=sub3(v1, v0)
	b:=sub3(v2, v0)
	c:=sub3(v3, v0)
	t:=sub3(p,  v0)

	det:=det3(a, b, c)
	if math.Abs(det)<1e-14 { return 0,0,0, false }

	b1=det3(t, b, c)/det
	b2=det3(a, t, c)/det
	b3=det3(a, b, t)/det
	if b1< -barycentricSlack || b2< -barycentricSlack || b3< -barycentricSlack ||
		b1+b2+b3>1+barycentricSlack {
		return 0,0,0, false
	}
	return b1, b2, b3, true
}

// Determinant of the 3x3 matrix with the given column vectors
func det3(a, b, c [3]float64) float64 {
	return a[0]*(b[1]*c[2]-b[2]*c[1]) - b[0]*(a[1]*c[2]-a[2]*c[1]) + c[0]*(a[1]*b[2]-a[2]*b[1])
}

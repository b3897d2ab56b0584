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
	"testing"

	"github.com/JunlongH/lutinvert/internal/lut"
)

func bruteForceNearest(samples []sample, p [3]float64) (closest sample, closestDsq float64) {
	closest, closestDsq=samples[0], dist3Squared(p, samples[0].out)
	for _, s:=range samples[1:] {
		if dsq:=dist3Squared(p, s.out); dsq<closestDsq { closest, closestDsq=s, dsq }
	}
	return closest, closestDsq
}

func TestKDTreeNearestMatchesBruteForce(t *testing.T) {
	l:=lut.MakeGamma(5, 2.0)
	reference:=make([]sample, 0, 125)
	for i:=0; i<5; i++ {
		for j:=0; j<5; j++ {
			for k:=0; k<5; k++ {
				reference=append(reference, sample{out: l.At(i,j,k), i: i, j: j, k: k})
			}
		}
	}

	tree:=make(kdTree3, len(reference))
	copy(tree, reference)
	tree.build()

	queries:=[][3]float64{
		{0, 0, 0}, {1, 1, 1}, {0.5, 0.5, 0.5},
		{0.03, 0.97, 0.41}, {0.77, 0.13, 0.66}, {0.249, 0.251, 0.5},
	}
	for _, q:=range queries {
		_, gotDsq:=tree.nearest(q)
		_, wantDsq:=bruteForceNearest(reference, q)
		if gotDsq!=wantDsq { t.Errorf("nearest(%v) dsq=%g; want %g", q, gotDsq, wantDsq) }
	}
}

func TestKDTreeDuplicateOutputs(t *testing.T) {
	// a constant mapping makes every sort key compare equal; build must
	// still terminate and nearest must find an exact match
	tree:=make(kdTree3, 0, 27)
	for i:=0; i<3; i++ {
		for j:=0; j<3; j++ {
			for k:=0; k<3; k++ {
				tree=append(tree, sample{out: [3]float64{0.5, 0.5, 0.5}, i: i, j: j, k: k})
			}
		}
	}
	tree.build()
	if _, dsq:=tree.nearest([3]float64{0.5, 0.5, 0.5}); dsq!=0 { t.Errorf("dsq=%g; want 0", dsq) }
}

func TestKDTreeSingleSample(t *testing.T) {
	tree:=kdTree3{{out: [3]float64{0.5, 0.5, 0.5}, i: 1, j: 2, k: 3}}
	tree.build()
	s, dsq:=tree.nearest([3]float64{0, 0, 0})
	if s.i!=1 || s.j!=2 || s.k!=3 { t.Errorf("nearest returned sample (%d,%d,%d); want (1,2,3)", s.i, s.j, s.k) }
	if dsq!=0.75 { t.Errorf("dsq=%g; want 0.75", dsq) }
}

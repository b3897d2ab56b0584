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
	"sort"
)

// A forward-LUT sample pair: the output value at a grid node, plus the node's
// grid index from which the input coordinate follows
type sample struct {
	out     [3]float64
	i, j, k int
}

// A pointerless kd-Tree with k=3 dimensions over sample outputs.
// Inspired by https://en.wikipedia.org/wiki/K-d_tree
type kdTree3 []sample

// Builds a pointerless k-dimensional tree with k=3 from the samples by resorting the array.
// Function for mod 3 == 0 depths which pivots on the first output channel.
func (samples kdTree3) build() {
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].out[0] < samples[j].out[0]
	})

	l:=len(samples)
	if l>1 { // descend left
		samples[ :l/2].buildY()
		if l>2 { // descend right
			samples[l/2+1: ].buildY()
		}
	}
}

// Helper function for mod 3 == 1 depths which pivots on the second output channel.
func (samples kdTree3) buildY() {
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].out[1] < samples[j].out[1]
	})

	l:=len(samples)
	if l>1 { // descend left
		samples[ :l/2].buildZ()
		if l>2 { // descend right
			samples[l/2+1: ].buildZ()
		}
	}
}

// Helper function for mod 3 == 2 depths which pivots on the third output channel.
func (samples kdTree3) buildZ() {
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].out[2] < samples[j].out[2]
	})

	l:=len(samples)
	if l>1 { // descend left
		samples[ :l/2].build()
		if l>2 { // descend right
			samples[l/2+1: ].build()
		}
	}
}

// Performs a nearest neighbor search on the samples, which must have been
// previously transformed to a k-dimensional tree using build()
func (kdt kdTree3) nearest(p [3]float64) (closest sample, closestDsq float64) {
	l:=len(kdt)
	midpoint:=kdt[l/2]
	closest, closestDsq=midpoint, dist3Squared(p, midpoint.out)
	if p[0] <= midpoint.out[0] {
		if l>1 { // descend left
			s, dsq:=kdt[ :l/2].nearestY(p)
			if dsq<closestDsq { closest, closestDsq=s, dsq }
			if l>2 { // descend right
				distToPlane:=p[0]-midpoint.out[0]
				if distToPlane*distToPlane<=closestDsq {
					s, dsq:=kdt[l/2+1:].nearestY(p)
					if dsq<closestDsq { closest, closestDsq=s, dsq }
				}
			}
		}
	} else {
		if l>2 { // descend right
			s, dsq:=kdt[l/2+1:].nearestY(p)
			if dsq<closestDsq { closest, closestDsq=s, dsq }
		}
		if l>1 { // descend left
			distToPlane:=p[0]-midpoint.out[0]
			if distToPlane*distToPlane<=closestDsq {
				s, dsq:=kdt[ :l/2].nearestY(p)
				if dsq<closestDsq { closest, closestDsq=s, dsq }
			}
		}
	}
	return closest, closestDsq
}

func (kdt kdTree3) nearestY(p [3]float64) (closest sample, closestDsq float64) {
	l:=len(kdt)
	midpoint:=kdt[l/2]
	closest, closestDsq=midpoint, dist3Squared(p, midpoint.out)
	if p[1] <= midpoint.out[1] {
		if l>1 { // descend left
			s, dsq:=kdt[ :l/2].nearestZ(p)
			if dsq<closestDsq { closest, closestDsq=s, dsq }
			if l>2 { // descend right
				distToPlane:=p[1]-midpoint.out[1]
				if distToPlane*distToPlane<=closestDsq {
					s, dsq:=kdt[l/2+1:].nearestZ(p)
					if dsq<closestDsq { closest, closestDsq=s, dsq }
				}
			}
		}
	} else {
		if l>2 { // descend right
			s, dsq:=kdt[l/2+1:].nearestZ(p)
			if dsq<closestDsq { closest, closestDsq=s, dsq }
		}
		if l>1 { // descend left
			distToPlane:=p[1]-midpoint.out[1]
			if distToPlane*distToPlane<=closestDsq {
				s, dsq:=kdt[ :l/2].nearestZ(p)
				if dsq<closestDsq { closest, closestDsq=s, dsq }
			}
		}
	}
	return closest, closestDsq
}

func (kdt kdTree3) nearestZ(p [3]float64) (closest sample, closestDsq float64) {
	l:=len(kdt)
	midpoint:=kdt[l/2]
	closest, closestDsq=midpoint, dist3Squared(p, midpoint.out)
	if p[2] <= midpoint.out[2] {
		if l>1 { // descend left
			s, dsq:=kdt[ :l/2].nearest(p)
			if dsq<closestDsq { closest, closestDsq=s, dsq }
			if l>2 { // descend right
				distToPlane:=p[2]-midpoint.out[2]
				if distToPlane*distToPlane<=closestDsq {
					s, dsq:=kdt[l/2+1:].nearest(p)
					if dsq<closestDsq { closest, closestDsq=s, dsq }
				}
			}
		}
	} else {
		if l>2 { // descend right
			s, dsq:=kdt[l/2+1:].nearest(p)
			if dsq<closestDsq { closest, closestDsq=s, dsq }
		}
		if l>1 { // descend left
			distToPlane:=p[2]-midpoint.out[2]
			if distToPlane*distToPlane<=closestDsq {
				s, dsq:=kdt[ :l/2].nearest(p)
				if dsq<closestDsq { closest, closestDsq=s, dsq }
			}
		}
	}
	return closest, closestDsq
}

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
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/JunlongH/lutinvert/internal/lut"
)

// worst round-trip error max_c |G(F(x))-x| over a fixed set of gray points
func maxGrayRoundTripError(fwd, inv *lut.LUT, points []float64) float64 {
	fwdEval:=NewEvaluator(fwd)
	invEval:=NewEvaluator(inv)
	worst:=0.0
	for _, p:=range points {
		x:=[3]float64{p, p, p}
		if e:=maxAbs3(sub3(invEval.Eval(fwdEval.Eval(x)), x)); e>worst { worst=e }
	}
	return worst
}

func TestInvertIdentity(t *testing.T) {
	for _, size:=range []int{3, 5, 9} {
		inv, rep, err:=Invert(lut.MakeIdentity(size), 0, 2, io.Discard)
		if err!=nil { t.Fatalf("Invert size %d: %s", size, err.Error()) }
		if rep.HighErrorNodes!=0 { t.Errorf("size %d: %d high-error nodes; want 0", size, rep.HighErrorNodes) }
		for i:=0; i<size; i++ {
			for j:=0; j<size; j++ {
				for k:=0; k<size; k++ {
					got:=inv.At(i,j,k)
					want:=inv.NodeCoord(i,j,k)
					for c:=0; c<3; c++ {
						if math.Abs(got[c]-want[c])>1e-4 { t.Errorf("size %d node (%d,%d,%d)[%d]=%g; want %g", size, i,j,k, c, got[c], want[c]) }
					}
				}
			}
		}
	}
}

func TestInvertGammaRoundTrip(t *testing.T) {
	fwd:=lut.MakeGamma(9, 2.0)
	inv, rep, err:=Invert(fwd, 0, 0, io.Discard)
	if err!=nil { t.Fatalf("Invert: %s", err.Error()) }
	if rep.Nodes!=9*9*9 { t.Errorf("nodes=%d; want %d", rep.Nodes, 9*9*9) }

	if e:=maxGrayRoundTripError(fwd, inv, []float64{0.5}); e>0.02 { t.Errorf("round-trip error at 0.5 is %g; want < 0.02", e) }

	// a denser inverse grid must cut the round-trip error at off-node points
	inv33, _, err:=Invert(fwd, 33, 0, io.Discard)
	if err!=nil { t.Fatalf("Invert to size 33: %s", err.Error()) }
	coarse:=maxGrayRoundTripError(fwd, inv,   []float64{0.31})
	dense :=maxGrayRoundTripError(fwd, inv33, []float64{0.31})
	if dense>coarse/4 { t.Errorf("error at 0.31 only improved from %g to %g with a 33^3 grid", coarse, dense) }
}

func TestInvertErrorShrinksWithOutputSize(t *testing.T) {
	if testing.Short() { t.Skip("skipping multi-resolution inversion in short mode") }
	fwd:=lut.MakeGamma(9, 2.2)
	points:=[]float64{0.11, 0.23, 0.37, 0.52, 0.68, 0.81, 0.94}
	prev:=math.MaxFloat64
	for _, size:=range []int{9, 17, 33} {
		inv, _, err:=Invert(fwd, size, 0, io.Discard)
		if err!=nil { t.Fatalf("Invert to size %d: %s", size, err.Error()) }
		e:=maxGrayRoundTripError(fwd, inv, points)
		if e>=prev { t.Errorf("error %g at size %d not below %g at the previous size", e, size, prev) }
		prev=e
	}
}

func TestInvertBoundaryNodes(t *testing.T) {
	inv, _, err:=Invert(lut.MakeGamma(5, 2.0), 0, 0, io.Discard)
	if err!=nil { t.Fatalf("Invert: %s", err.Error()) }
	lo:=inv.At(0,0,0)
	hi:=inv.At(4,4,4)
	for c:=0; c<3; c++ {
		if math.Abs(lo[c])>1e-6 { t.Errorf("inverse at black[%d]=%g; want 0", c, lo[c]) }
		if math.Abs(hi[c]-1)>1e-6 { t.Errorf("inverse at white[%d]=%g; want 1", c, hi[c]) }
	}
}

func TestInvertReportsNonInvertible(t *testing.T) {
	// a constant LUT cannot be inverted; the job must still complete and
	// flag the unreachable targets instead of failing
	fwd:=lut.New(3)
	for i:=0; i<len(fwd.Data); i++ { fwd.Data[i]=0.5 }
	inv, rep, err:=Invert(fwd, 0, 1, io.Discard)
	if err!=nil { t.Fatalf("Invert: %s", err.Error()) }
	if inv==nil { t.Fatalf("expected a result LUT despite non-invertibility") }
	if rep.HighErrorNodes==0 { t.Errorf("expected high-error nodes for a constant forward LUT") }
	if rep.MaxError<0.4 { t.Errorf("maxError=%g; want at least the corner distance 0.5-epsilon", rep.MaxError) }
}

func TestInvertMetadata(t *testing.T) {
	fwd:=lut.MakeGamma(3, 2.0)
	fwd.Title="My Look"
	fwd.DomainMin=[3]float64{0.1, 0.1, 0.1}
	fwd.DomainMax=[3]float64{0.9, 0.9, 0.9}
	inv, _, err:=Invert(fwd, 5, 0, io.Discard)
	if err!=nil { t.Fatalf("Invert: %s", err.Error()) }
	if inv.Size!=5 { t.Errorf("size=%d; want 5", inv.Size) }
	if inv.Title!="My Look (Inverted)" { t.Errorf("title=%q; want %q", inv.Title, "My Look (Inverted)") }
	if inv.DomainMin!=fwd.DomainMin || inv.DomainMax!=fwd.DomainMax { t.Errorf("domain not carried over") }
}

func TestInvertProgressToPlainWriter(t *testing.T) {
	// progress writes from the workers are serialized, so an ordinary
	// in-memory writer with no locking of its own must work
	buf:=bytes.Buffer{}
	if _, _, err:=Invert(lut.MakeIdentity(5), 0, 4, &buf); err!=nil { t.Fatalf("Invert: %s", err.Error()) }
	if !strings.Contains(buf.String(), "progress: 100.0%") { t.Errorf("progress log missing completion line:\n%s", buf.String()) }
}

func TestInvertRejectsBadSizes(t *testing.T) {
	if _, _, err:=Invert(nil, 0, 0, io.Discard); err==nil { t.Errorf("expected error for nil forward LUT") }
	if _, _, err:=Invert(lut.New(1), 0, 0, io.Discard); err==nil { t.Errorf("expected error for forward size 1") }
	if _, _, err:=Invert(lut.MakeIdentity(3), 1, 0, io.Discard); err==nil { t.Errorf("expected error for output size 1") }
}

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
	"fmt"
	"io"
	"math"

	"github.com/valyala/fastrand"

	"github.com/JunlongH/lutinvert/internal/lut"
)

// Round-trip error statistics over randomly sampled input points
type VerifyStats struct {
	Samples int
	Mean    float64
	Max     float64
	Min     float64
	StdDev  float64
}

// Pushes numSamples random points through forward then inverse LUT and
// reports the euclidian round-trip error x vs G(F(x)). The seed is fixed so
// repeated runs on the same LUT pair report the same numbers.
func VerifyRoundTrip(fwd, inv *lut.LUT, numSamples int, logWriter io.Writer) VerifyStats {
	fwdEval:=NewEvaluator(fwd)
	invEval:=NewEvaluator(inv)

	rng:=fastrand.RNG{}
	rng.Seed(42)

	errs:=make([]float64, numSamples)
	sum:=0.0
	stats:=VerifyStats{Samples: numSamples, Min: math.MaxFloat64}
	for s:=0; s<numSamples; s++ {
		x:=[3]float64{randUnit(&rng), randUnit(&rng), randUnit(&rng)}
		roundTrip:=invEval.Eval(fwdEval.Eval(x))
		e:=math.Sqrt(dist3Squared(x, roundTrip))
		errs[s]=e
		sum+=e
		if e>stats.Max { stats.Max=e }
		if e<stats.Min { stats.Min=e }
	}
	stats.Mean=sum/float64(numSamples)

	sumSqDiff:=0.0
	for _, e:=range errs {
		diff:=e-stats.Mean
		sumSqDiff+=diff*diff
	}
	stats.StdDev=math.Sqrt(sumSqDiff/float64(numSamples))

	fmt.Fprintf(logWriter, "\nRound trip over %d random sample points:\n", numSamples)
	fmt.Fprintf(logWriter, "  mean error:   %.6f\n", stats.Mean)
	fmt.Fprintf(logWriter, "  max error:    %.6f\n", stats.Max)
	fmt.Fprintf(logWriter, "  min error:    %.6f\n", stats.Min)
	fmt.Fprintf(logWriter, "  stddev:       %.6f\n", stats.StdDev)
	fmt.Fprintf(logWriter, "  quality:      %s\n", stats.Quality())
	return stats
}

// A coarse verdict on round-trip accuracy
func (s VerifyStats) Quality() string {
	if s.Max<0.01 { return "excellent" }
	if s.Max<0.03 { return "good" }
	return "fair (consider a larger output size)"
}

// Draws a uniform float in [0,1)
func randUnit(rng *fastrand.RNG) float64 {
	return float64(rng.Uint32n(1<<24))/float64(1<<24)
}

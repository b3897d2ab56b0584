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
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/JunlongH/lutinvert/internal/lut"
)

// Per-node achieved errors above this count as high-error in the report
const HighErrorThreshold = 0.01

// Aggregate quality diagnostics for one inversion job. Per-node numeric
// non-convergence is never fatal; it only shows up here.
type Report struct {
	Nodes          int     // number of output grid nodes solved
	HighErrorNodes int     // nodes with achieved error above HighErrorThreshold
	MaxError       float64 // worst per-node max-residual
	MeanError      float64 // average per-node max-residual
}

// Inverts the given forward LUT onto an output grid of side outSize
// (0 selects the forward grid's own size). Every output node (i,j,k) receives
// the x with Eval(x) ≈ (i,j,k)/(outSize-1), found by scattered-data estimation
// followed by Gauss-Newton refinement with a bounded-optimization fallback.
// Node solves are independent and run on up to maxThreads workers, one
// i-slice per task; the result is identical to a sequential sweep.
// Progress goes to logWriter, pass io.Discard to silence it; writes are
// serialized, so the writer itself need not be safe for concurrent use.
func Invert(fwd *lut.LUT, outSize, maxThreads int, logWriter io.Writer) (inv *lut.LUT, rep Report, err error) {
	if fwd==nil || fwd.Size<2 { return nil, rep, errors.New("forward LUT must have size >= 2") }
	if outSize==0 { outSize=fwd.Size }
	if outSize<2 { return nil, rep, fmt.Errorf("output size %d below minimum of 2", outSize) }
	if maxThreads<1 { maxThreads=runtime.GOMAXPROCS(0) }

	fmt.Fprintf(logWriter, "Building forward interpolator for %v...\n", fwd)
	eval:=NewEvaluator(fwd)

	fmt.Fprintf(logWriter, "Building inverse estimator from %d sample pairs...\n", fwd.Size*fwd.Size*fwd.Size)
	est:=NewEstimator(fwd)

	fmt.Fprintf(logWriter, "Solving %dx%dx%d output grid nodes on %d workers...\n", outSize, outSize, outSize, maxThreads)
	inv=lut.New(outSize)
	inv.DomainMin=fwd.DomainMin
	inv.DomainMax=fwd.DomainMax
	if fwd.Title!="" {
		inv.Title=fwd.Title+" (Inverted)"
	} else {
		inv.Title="Inverted LUT"
	}

	// each worker owns a full i-slice, so grid writes never overlap and the
	// per-slice partial stats need no locking
	highErrs :=make([]int,     outSize)
	maxErrs  :=make([]float64, outSize)
	sumErrs  :=make([]float64, outSize)
	done:=0
	var logMutex sync.Mutex // serializes progress writes from the workers

	limiter:=make(chan bool, maxThreads)
	for i:=0; i<outSize; i++ {
		limiter <- true
		go func(i int) {
			defer func() { <-limiter }()
			invertSlice(eval, est, inv, i, &highErrs[i], &maxErrs[i], &sumErrs[i])
			logMutex.Lock()
			done++
			fmt.Fprintf(logWriter, "\r        progress: %.1f%%", float64(done)*100/float64(outSize))
			logMutex.Unlock()
		}(i)
	}
	for i:=0; i<cap(limiter); i++ { // wait for workers to finish
		limiter <- true
	}
	fmt.Fprintf(logWriter, "\r        progress: 100.0%%\n")

	rep.Nodes=outSize*outSize*outSize
	sum:=0.0
	for i:=0; i<outSize; i++ {
		rep.HighErrorNodes+=highErrs[i]
		if maxErrs[i]>rep.MaxError { rep.MaxError=maxErrs[i] }
		sum+=sumErrs[i]
	}
	rep.MeanError=sum/float64(rep.Nodes)

	if rep.HighErrorNodes>0 {
		fmt.Fprintf(logWriter, "        warning: %d of %d nodes above error threshold %g\n",
			rep.HighErrorNodes, rep.Nodes, HighErrorThreshold)
	}
	return inv, rep, nil
}

// Solves all nodes of one i-slice of the output grid sequentially
func invertSlice(eval *Evaluator, est *Estimator, inv *lut.LUT, i int, highErr *int, maxErr, sumErr *float64) {
	scale:=1.0/float64(inv.Size-1)
	for j:=0; j<inv.Size; j++ {
		for k:=0; k<inv.Size; k++ {
			target:=[3]float64{float64(i)*scale, float64(j)*scale, float64(k)*scale}

			initial:=est.Estimate(target)
			result, errVal:=RefineBest(eval, target, initial)

			inv.SetAt(i, j, k, result)
			if errVal>HighErrorThreshold { *highErr++ }
			if errVal>*maxErr { *maxErr=errVal }
			*sumErr+=errVal
		}
	}
}

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

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

const (
	refineTolerance    = 1e-10 // stop when max |Eval(x)-target| falls below this
	jacobianStep       = 1e-7  // central difference step for the Jacobian
	dampingLambda      = 1e-8  // Levenberg regularization of the normal equations
	maxNewtonIter      = 30
	lineSearchHalvings = 10
	stallStep          = 0.1   // fixed fallback step scale when no halving improves
	fallbackThreshold  = 1e-4  // bounded optimization kicks in above this error
	fallbackMaxIter    = 200
	fallbackTolerance  = 1e-14
)

// Drives an initial estimate to a root of Eval(x) = target with damped
// Gauss-Newton iteration. Non-convergence is not an error: the best x found
// so far is returned and the caller reads the residual as a diagnostic.
// A singular regularized solve aborts early with the last valid x.
func Refine(eval *Evaluator, target, initial [3]float64) [3]float64 {
	x:=clamp3(initial)

	for iter:=0; iter<maxNewtonIter; iter++ {
		residual:=sub3(eval.Eval(x), target)
		errVal:=maxAbs3(residual)
		if errVal<refineTolerance { break }

		jac:=jacobian(eval, x)

		// solve the Levenberg-regularized normal equations (JᵗJ + λI)δ = -Jᵗr
		var jtj mat.Dense
		j:=mat.NewDense(3, 3, jac[:])
		jtj.Mul(j.T(), j)
		for d:=0; d<3; d++ { jtj.Set(d, d, jtj.At(d, d)+dampingLambda) }
		var jtr mat.VecDense
		jtr.MulVec(j.T(), mat.NewVecDense(3, []float64{-residual[0], -residual[1], -residual[2]}))
		var delta mat.VecDense
		if err:=delta.SolveVec(&jtj, &jtr); err!=nil { break }
		d:=[3]float64{delta.AtVec(0), delta.AtVec(1), delta.AtVec(2)}

		// backtracking line search, accepting the first strict improvement
		alpha:=1.0
		improved:=false
		for h:=0; h<lineSearchHalvings; h++ {
			xNew:=clamp3(add3(x, scale3(d, alpha)))
			if maxAbs3(sub3(eval.Eval(xNew), target))<errVal {
				x=xNew
				improved=true
				break
			}
			alpha*=0.5
		}
		if !improved { // small fixed step to avoid stalling
			x=clamp3(add3(x, scale3(d, stallStep)))
		}
	}
	return x
}

// Approximates the 3x3 Jacobian of Eval at x by central finite differences,
// in row-major order. Each perturbed coordinate is clamped to [0,1]
// independently; a column where both clamp directions collapse the step to
// zero is left zero.
func jacobian(eval *Evaluator, x [3]float64) (jac [9]float64) {
	for col:=0; col<3; col++ {
		xPlus, xMinus:=x, x
		xPlus [col]=math.Min(1, x[col]+jacobianStep)
		xMinus[col]=math.Max(0, x[col]-jacobianStep)
		dx:=xPlus[col]-xMinus[col]
		if dx<=0 { continue }

		fPlus :=eval.Eval(xPlus)
		fMinus:=eval.Eval(xMinus)
		for row:=0; row<3; row++ {
			jac[row*3+col]=(fPlus[row]-fMinus[row])/dx
		}
	}
	return jac
}

// Minimizes the sum of squared residuals over the unit box with derivative-free
// Nelder-Mead, clamping inside the objective to enforce the bounds. Used as a
// second strategy when Gauss-Newton stalls above the fallback threshold.
func RefineBounded(eval *Evaluator, target, initial [3]float64) [3]float64 {
	problem:=optimize.Problem{
		Func: func(v []float64) float64 {
			x:=clamp3([3]float64{v[0], v[1], v[2]})
			r:=sub3(eval.Eval(x), target)
			return r[0]*r[0] + r[1]*r[1] + r[2]*r[2]
		},
	}
	settings:=&optimize.Settings{
		MajorIterations: fallbackMaxIter,
		Converger: &optimize.FunctionConverge{Absolute: fallbackTolerance, Iterations: 20},
	}
	x0:=[]float64{initial[0], initial[1], initial[2]}
	result, err:=optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err!=nil { return clamp3(initial) }
	return clamp3([3]float64{result.X[0], result.X[1], result.X[2]})
}

// Refines with Gauss-Newton, retries with bounded optimization when the
// achieved error stays above threshold, and returns whichever result attains
// the lower max-residual, together with that error
func RefineBest(eval *Evaluator, target, initial [3]float64) (x [3]float64, errVal float64) {
	x=Refine(eval, target, initial)
	errVal=maxAbs3(sub3(eval.Eval(x), target))

	if errVal>fallbackThreshold {
		x2:=RefineBounded(eval, target, x)
		errVal2:=maxAbs3(sub3(eval.Eval(x2), target))
		if errVal2<errVal { x, errVal=x2, errVal2 }
	}
	return x, errVal
}

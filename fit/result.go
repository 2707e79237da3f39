package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/curvefit/model"
)

// Result is the outcome of one successful fit. It is owned by the engine
// that produced it and replaced wholesale on re-fit.
type Result struct {
	// Popt is the optimized parameter vector, length = model arity.
	Popt []float64
	// Psigma holds the parameter standard errors, sqrt(diag(Pcov)).
	// Entries are +Inf when the covariance degenerated.
	Psigma []float64
	// Pcov is the arity×arity covariance matrix, inv(JᵗJ)·ChisqDOF.
	// All entries are +Inf when JᵗJ was singular.
	Pcov [][]float64
	// ChisqDOF is the reduced chi-square: sum of squared weighted
	// residuals divided by DOF.
	ChisqDOF float64
	// DOF is the degrees of freedom, NObs - arity. Always >= 1.
	DOF int
	// NObs is the number of fitted samples.
	NObs int
	// Report carries the raw solver diagnostics.
	Report Report

	fn model.Function
}

// Report holds the raw optimizer diagnostics for one successful fit.
type Report struct {
	// Residuals is the final weighted residual vector w·(f(x;popt) - y).
	Residuals []float64
	// Jacobian is the numeric Jacobian of the weighted residuals at
	// Popt (NObs rows × arity columns).
	Jacobian *mat.Dense
	// Evaluations counts residual-function calls made by the solver,
	// including those spent on the numeric Jacobian.
	Evaluations int
	// Converged reports whether the scaled gradient at Popt passed the
	// convergence tolerance. A non-converged solve fails the fit, so
	// this is informational on a Result.
	Converged bool
}

// Model returns the model function the result was fitted with.
func (r *Result) Model() model.Function {
	return r.fn
}

// Curve returns the fitted model bound to Popt, usable for arbitrary x.
func (r *Result) Curve() func(x float64) float64 {
	popt := append([]float64(nil), r.Popt...)
	fn := r.fn

	return func(x float64) float64 {
		return fn.Eval(x, popt)
	}
}

// RelativeUncertainty returns Psigma[i] / |Popt[i]| per parameter.
// Entries with Popt[i] == 0 report +Inf rather than dividing by zero.
func (r *Result) RelativeUncertainty() []float64 {
	rel := make([]float64, len(r.Popt))
	for i := range r.Popt {
		if r.Popt[i] == 0 {
			rel[i] = math.Inf(1)
			continue
		}
		rel[i] = r.Psigma[i] / math.Abs(r.Popt[i])
	}

	return rel
}

// String returns a compact summary of the fit outcome.
func (r *Result) String() string {
	return fmt.Sprintf("Result{Model: %s, Popt: %v, ChisqDOF: %.6g, DOF: %d}",
		r.fn.Name(), r.Popt, r.ChisqDOF, r.DOF)
}

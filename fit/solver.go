package fit

import (
	"fmt"
	"math"

	"github.com/maorshutman/lm"
	"gonum.org/v1/gonum/mat"

	"github.com/arloliu/curvefit/model"
	"github.com/arloliu/curvefit/observation"
)

// lmTau is the initial damping scale for Levenberg-Marquardt.
const lmTau = 1e-3

// solveOutput bundles everything the engine needs to build a Result.
type solveOutput struct {
	popt        []float64
	residuals   []float64
	jacobian    *mat.Dense
	evaluations int
	converged   bool
}

// solve runs the LM protocol and returns the optimized parameters with
// the final residuals and Jacobian. Bounds are enforced by projection:
// the residual callback clamps parameters into [lo, hi], and the
// returned popt is clamped the same way. A saturated bound therefore
// zeroes the corresponding Jacobian column, which downstream covariance
// handling treats as a recoverable degeneracy.
func solve(obs observation.Set, fn model.Function, p0 []float64, cfg *config) (*solveOutput, error) {
	nobs := obs.Len()
	arity := fn.Arity()
	x := obs.X()
	y := obs.Y()
	w := obs.Weights()
	loss := lossTransform(cfg.loss)

	evaluations := 0
	residFn := func(dst, params []float64) {
		evaluations++
		p := params
		if cfg.bounds != nil {
			p = clamped(params, cfg.bounds)
		}
		for i := 0; i < nobs; i++ {
			dst[i] = loss(w[i] * (fn.Eval(x[i], p) - y[i]))
		}
	}

	start := append([]float64(nil), p0...)
	if cfg.bounds != nil {
		start = clamped(start, cfg.bounds)
	}

	numJac := lm.NumJac{Func: residFn}
	problem := lm.LMProblem{
		Dim:        arity,
		Size:       nobs,
		Func:       residFn,
		Jac:        numJac.Jac,
		InitParams: start,
		Tau:        lmTau,
		Eps1:       cfg.tolerance,
		Eps2:       cfg.tolerance,
	}

	settings := lm.Settings{
		Iterations:   cfg.maxIterations,
		ObjectiveTol: 1e-16,
	}

	out, err := lm.LM(problem, &settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOptimizationFailure, err)
	}

	popt := append([]float64(nil), out.X...)
	if cfg.bounds != nil {
		popt = clamped(popt, cfg.bounds)
	}
	for i, p := range popt {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: non-finite parameter %d", ErrOptimizationFailure, i)
		}
	}

	// Plain weighted residuals at popt, without the loss transform, so
	// chi-square reflects the actual misfit.
	residuals := make([]float64, nobs)
	for i := 0; i < nobs; i++ {
		r := w[i] * (fn.Eval(x[i], popt) - y[i])
		if math.IsNaN(r) {
			return nil, fmt.Errorf("%w: non-finite residual at sample %d", ErrOptimizationFailure, i)
		}
		residuals[i] = r
	}

	jac := mat.NewDense(nobs, arity, nil)
	numJac.Jac(jac, popt)

	return &solveOutput{
		popt:        popt,
		residuals:   residuals,
		jacobian:    jac,
		evaluations: evaluations,
		converged:   gradientConverged(jac, residuals, cfg.tolerance),
	}, nil
}

// covariance derives pcov = inv(JᵗJ)·chisqDOF and the per-parameter
// standard errors. A singular or non-invertible JᵗJ fills both with
// +Inf instead of failing: the fit itself still succeeded.
func covariance(jac *mat.Dense, chisqDOF float64, arity int) (pcov [][]float64, psigma []float64) {
	pcov = make([][]float64, arity)
	psigma = make([]float64, arity)

	var jtj mat.Dense
	jtj.Mul(jac.T(), jac)

	var inv mat.Dense
	if err := inv.Inverse(&jtj); err != nil {
		for i := 0; i < arity; i++ {
			pcov[i] = make([]float64, arity)
			for j := 0; j < arity; j++ {
				pcov[i][j] = math.Inf(1)
			}
			psigma[i] = math.Inf(1)
		}

		return pcov, psigma
	}

	for i := 0; i < arity; i++ {
		pcov[i] = make([]float64, arity)
		for j := 0; j < arity; j++ {
			pcov[i][j] = inv.At(i, j) * chisqDOF
		}
		if v := pcov[i][i]; v >= 0 {
			psigma[i] = math.Sqrt(v)
		} else {
			// Negative diagonal only arises from numerical noise on a
			// rank-deficient system.
			psigma[i] = math.Inf(1)
		}
	}

	return pcov, psigma
}

// gradientConverged checks the infinity norm of Jᵗr against the solver
// tolerance, scaled by the residual magnitude.
func gradientConverged(jac *mat.Dense, residuals []float64, tol float64) bool {
	rows, cols := jac.Dims()
	norm := 0.0
	scale := 1.0
	for _, r := range residuals {
		if a := math.Abs(r); a > scale {
			scale = a
		}
	}
	for j := 0; j < cols; j++ {
		g := 0.0
		for i := 0; i < rows; i++ {
			g += jac.At(i, j) * residuals[i]
		}
		if a := math.Abs(g); a > norm {
			norm = a
		}
	}

	return norm <= math.Sqrt(tol)*scale*float64(rows)
}

// clamped projects params into the bounds box, returning a fresh slice.
func clamped(params []float64, b *Bounds) []float64 {
	p := make([]float64, len(params))
	for i := range params {
		p[i] = math.Min(math.Max(params[i], b.Lower[i]), b.Upper[i])
	}

	return p
}

// lossTransform maps a loss name to its scaled-residual transform
// r -> sign(r)·sqrt(rho(r²)).
func lossTransform(l Loss) func(float64) float64 {
	switch l {
	case LossSoftL1:
		return func(r float64) float64 {
			return math.Copysign(math.Sqrt(2*(math.Sqrt(1+r*r)-1)), r)
		}
	case LossHuber:
		return func(r float64) float64 {
			z := r * r
			if z <= 1 {
				return r
			}

			return math.Copysign(math.Sqrt(2*math.Sqrt(z)-1), r)
		}
	default:
		return func(r float64) float64 { return r }
	}
}

// Package curvefit provides a nonlinear curve-fitting engine for noisy,
// possibly incomplete scientific observation sets: parametric model
// families, covariance-based parameter uncertainties, goodness-of-fit
// diagnostics, and a two-level "trend" pipeline that fits a second model
// across the parameters recovered from many independent per-group fits.
//
// # Basic Usage
//
// Fitting a model to raw samples:
//
//	import "github.com/arloliu/curvefit"
//
//	res, err := curvefit.Fit(x, y, model.Exponential{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Popt, res.Psigma, res.ChisqDOF)
//
// For masking, weights, bounds, and re-fitting, use the packages
// directly:
//
//	crit, _ := observation.NewCriteria(observation.WithXRange(0, 100))
//	obs, _ := observation.Apply(x, y, w, crit)
//	eng := fit.New()
//	err := eng.Fit(obs, model.Gaussian{}, fit.WithMaxIterations(500))
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the fit and
// observation packages, covering the most common one-shot cases. The
// full surface lives in the subpackages:
//
//   - observation: sample masking and the immutable (x, y, w) set
//   - model: built-in parametric families and the Function interface
//   - fit: the single-fit engine, options, and result contract
//   - trend: the per-group → aggregate trend pipeline
//   - notation: formula rendering for fitted results
//   - snapshot: compressed binary persistence of sets and results
package curvefit

import (
	"github.com/arloliu/curvefit/fit"
	"github.com/arloliu/curvefit/model"
	"github.com/arloliu/curvefit/observation"
)

// Fit filters (x, y) through a pass-everything mask (dropping only
// non-finite samples) and fits fn with uniform weights.
func Fit(x, y []float64, fn model.Function, opts ...fit.Option) (*fit.Result, error) {
	return FitWeighted(x, y, nil, fn, opts...)
}

// FitWeighted is Fit with an explicit weight column; w may be nil for
// uniform weights.
func FitWeighted(x, y, w []float64, fn model.Function, opts ...fit.Option) (*fit.Result, error) {
	criteria, err := observation.NewCriteria()
	if err != nil {
		return nil, err
	}

	return FitFiltered(x, y, w, criteria, fn, opts...)
}

// FitFiltered applies the mask criteria to the raw samples and runs one
// fit over the survivors.
func FitFiltered(x, y, w []float64, criteria observation.Criteria, fn model.Function, opts ...fit.Option) (*fit.Result, error) {
	obs, err := observation.Apply(x, y, w, criteria)
	if err != nil {
		return nil, err
	}

	eng := fit.New()
	if err := eng.Fit(obs, fn, opts...); err != nil {
		return nil, err
	}

	return eng.Result()
}

// Package trend fits many independent groups with one shared model
// family, then fits a second "trend" model to the parameters recovered
// from the groups.
//
// The defining design decision is partial-failure tolerance: a group
// whose individual fit fails (noisy, too short, degenerate) is recorded
// in the exclusion set and skipped; it never aborts the batch. The
// trend fit then runs once per parameter index of the shared model, over
// (group key, popt[i]) pairs from the surviving groups, weighted by
// 1/psigma² where finite. An index with too few surviving groups fails
// with ErrInsufficientGroups without affecting its siblings, so the
// caller always receives a per-index outcome, never a monolithic
// pass/fail.
//
//	p := trend.New()
//	p.MakeGroupFits(groups, model.Exponential{})
//	if err := p.MakeTrendFit(model.Linear{}); err != nil {
//	    return err
//	}
//	decay, err := p.TrendResult(1) // trend of the exponential rate
//
// Group keys are float64 because the trend fit uses them as its
// independent variable; categorical groups must be mapped to ordinals by
// the caller.
package trend

package trend

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/arloliu/curvefit/fit"
	"github.com/arloliu/curvefit/model"
	"github.com/arloliu/curvefit/observation"
)

// ErrInsufficientGroups reports too few valid per-group fits to fit the
// trend model for one parameter index.
var ErrInsufficientGroups = errors.New("trend: insufficient valid groups")

// ErrNoGroupFits reports MakeTrendFit called before MakeGroupFits.
var ErrNoGroupFits = errors.New("trend: no group fits have been made")

// ErrUnknownGroup reports an accessor called with a key that was never
// part of the batch.
var ErrUnknownGroup = errors.New("trend: unknown group key")

// ErrNoTrendFit reports a trend accessor called before MakeTrendFit, or
// with a parameter index outside the shared model's arity.
var ErrNoTrendFit = errors.New("trend: no trend fit for parameter index")

// Groups maps a numeric group key to that group's filtered observations.
type Groups map[float64]observation.Set

// Series is the derived dataset for one parameter index: the recovered
// parameter value and its standard error per valid group, ordered by key.
type Series struct {
	Keys   []float64
	Values []float64
	Sigmas []float64
}

// Pipeline owns one fit engine per group plus one engine per trend
// parameter index. The zero value is not usable; call New.
type Pipeline struct {
	fn      model.Function
	keys    []float64
	engines map[float64]*fit.Engine
	bad     map[float64]error

	trendFn      model.Function
	trendEngines []*fit.Engine
	trendErrs    []error
}

// New returns an empty pipeline.
func New() *Pipeline {
	return &Pipeline{
		engines: make(map[float64]*fit.Engine),
		bad:     make(map[float64]error),
	}
}

// MakeGroupFits fits fn independently against every group.
//
// Every group reaches exactly one terminal state: valid (its parameters
// feed the trend fit) or excluded (its key and failure reason land in
// the exclusion set). A failing group never aborts the batch. Calling
// MakeGroupFits again replaces all prior group and trend state. Groups
// are processed in ascending key order so repeated runs on the same
// input are deterministic.
func (p *Pipeline) MakeGroupFits(groups Groups, fn model.Function, opts ...fit.Option) {
	p.fn = fn
	p.keys = sortedKeys(groups)
	p.engines = make(map[float64]*fit.Engine, len(groups))
	p.bad = make(map[float64]error)
	p.trendFn = nil
	p.trendEngines = nil
	p.trendErrs = nil

	for _, key := range p.keys {
		eng := fit.New()
		if err := eng.Fit(groups[key], fn, opts...); err != nil {
			p.bad[key] = err
		}
		p.engines[key] = eng
	}
}

// MakeTrendFit fits trendFn to the recovered parameters of the valid
// groups, once per parameter index of the shared per-group model.
//
// Each index runs the ordinary single-fit protocol over (key, popt[i])
// pairs, weighted by 1/psigma[i]² where the source sigma is finite and
// positive, uniformly otherwise. Indices fail independently: an index
// with fewer than arity(trendFn)+1 valid groups records
// ErrInsufficientGroups and its siblings proceed. The only call-level
// error is ErrNoGroupFits when no batch has been fitted yet; per-index
// outcomes are reported by TrendResult.
func (p *Pipeline) MakeTrendFit(trendFn model.Function, opts ...fit.Option) error {
	if len(p.keys) == 0 {
		return ErrNoGroupFits
	}

	arity := p.fn.Arity()
	p.trendFn = trendFn
	p.trendEngines = make([]*fit.Engine, arity)
	p.trendErrs = make([]error, arity)

	for i := 0; i < arity; i++ {
		series := p.paramSeries(i)
		if len(series.Keys) < trendFn.Arity()+1 {
			p.trendErrs[i] = fmt.Errorf("%w: parameter %d has %d valid groups, trend model %s needs %d",
				ErrInsufficientGroups, i, len(series.Keys), trendFn.Name(), trendFn.Arity()+1)
			continue
		}

		obs, err := observation.NewSet(series.Keys, series.Values, trendWeights(series.Sigmas))
		if err != nil {
			p.trendErrs[i] = err
			continue
		}

		eng := fit.New()
		if err := eng.Fit(obs, trendFn, opts...); err != nil {
			p.trendErrs[i] = err
			continue
		}
		p.trendEngines[i] = eng
	}

	return nil
}

// BadFits returns the keys of excluded groups in ascending order.
func (p *Pipeline) BadFits() []float64 {
	keys := make([]float64, 0, len(p.bad))
	for key := range p.bad {
		keys = append(keys, key)
	}
	sort.Float64s(keys)

	return keys
}

// ValidGroups returns the keys of valid groups in ascending order.
func (p *Pipeline) ValidGroups() []float64 {
	keys := make([]float64, 0, len(p.keys))
	for _, key := range p.keys {
		if _, excluded := p.bad[key]; !excluded {
			keys = append(keys, key)
		}
	}

	return keys
}

// GroupErr returns the recorded failure for an excluded group, nil for a
// valid one, and ErrUnknownGroup for a key outside the batch.
func (p *Pipeline) GroupErr(key float64) error {
	if _, ok := p.engines[key]; !ok {
		return fmt.Errorf("%w: %g", ErrUnknownGroup, key)
	}

	return p.bad[key]
}

// GroupResult returns the fit result for one group.
func (p *Pipeline) GroupResult(key float64) (*fit.Result, error) {
	eng, ok := p.engines[key]
	if !ok {
		return nil, fmt.Errorf("%w: %g", ErrUnknownGroup, key)
	}

	return eng.Result()
}

// TrendResult returns the trend fit outcome for one parameter index of
// the shared per-group model. The error is ErrNoTrendFit before
// MakeTrendFit or for an out-of-range index, otherwise the per-index
// failure recorded during MakeTrendFit (ErrInsufficientGroups or a fit
// error).
func (p *Pipeline) TrendResult(paramIdx int) (*fit.Result, error) {
	if paramIdx < 0 || paramIdx >= len(p.trendEngines) {
		return nil, fmt.Errorf("%w: %d", ErrNoTrendFit, paramIdx)
	}
	if p.trendErrs[paramIdx] != nil {
		return nil, p.trendErrs[paramIdx]
	}

	return p.trendEngines[paramIdx].Result()
}

// TrendResults returns the per-index outcome map for every parameter of
// the shared model: indices that fitted map to their Result, failed
// indices are absent. Errs reports the failed indices.
func (p *Pipeline) TrendResults() (results map[int]*fit.Result, errs map[int]error) {
	results = make(map[int]*fit.Result)
	errs = make(map[int]error)
	for i := range p.trendEngines {
		res, err := p.TrendResult(i)
		if err != nil {
			errs[i] = err
			continue
		}
		results[i] = res
	}

	return results, errs
}

// ParamSeries returns the derived dataset for one parameter index across
// the valid groups, ordered by key.
func (p *Pipeline) ParamSeries(paramIdx int) (Series, error) {
	if p.fn == nil {
		return Series{}, ErrNoGroupFits
	}
	if paramIdx < 0 || paramIdx >= p.fn.Arity() {
		return Series{}, fmt.Errorf("%w: %d", ErrNoTrendFit, paramIdx)
	}

	return p.paramSeries(paramIdx), nil
}

func (p *Pipeline) paramSeries(paramIdx int) Series {
	s := Series{}
	for _, key := range p.keys {
		if _, excluded := p.bad[key]; excluded {
			continue
		}
		res, err := p.engines[key].Result()
		if err != nil {
			continue
		}
		s.Keys = append(s.Keys, key)
		s.Values = append(s.Values, res.Popt[paramIdx])
		s.Sigmas = append(s.Sigmas, res.Psigma[paramIdx])
	}

	return s
}

// trendWeights maps per-group sigmas to 1/sigma² weights, falling back
// to uniform weight where the sigma degenerated.
func trendWeights(sigmas []float64) []float64 {
	w := make([]float64, len(sigmas))
	for i, s := range sigmas {
		if s > 0 && !math.IsInf(s, 1) {
			w[i] = 1 / (s * s)
		} else {
			w[i] = 1
		}
	}

	return w
}

func sortedKeys(groups Groups) []float64 {
	keys := make([]float64, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Float64s(keys)

	return keys
}

package observation

import (
	"errors"
	"math"

	"github.com/arloliu/curvefit/internal/options"
)

// ErrShapeMismatch reports raw input columns of unequal length.
var ErrShapeMismatch = errors.New("observation: input length mismatch")

// ErrInvalidCriteria reports a malformed mask criteria option, such as an
// inverted range or exclusion window.
var ErrInvalidCriteria = errors.New("observation: invalid criteria")

// Window is a half-open exclusion interval on x. Samples with
// Lo <= x < Hi are dropped.
type Window struct {
	Lo float64
	Hi float64
}

// Contains reports whether x falls inside the window.
func (w Window) Contains(x float64) bool {
	return x >= w.Lo && x < w.Hi
}

// Criteria describes the declarative mask applied to raw samples before
// fitting. The zero value accepts every finite sample: both bounds
// absent, no exclusion windows, no log transform. Criteria values are
// immutable once built.
type Criteria struct {
	xmin    *float64
	xmax    *float64
	exclude []Window
	logY    bool
}

// Option configures a Criteria under construction.
type Option = options.Option[*Criteria]

// NewCriteria builds a Criteria from options. Invalid option values fail
// with ErrInvalidCriteria.
func NewCriteria(opts ...Option) (Criteria, error) {
	var c Criteria
	if err := options.Apply(&c, opts...); err != nil {
		return Criteria{}, err
	}

	return c, nil
}

// WithXMin sets the lower inclusive bound on x.
func WithXMin(xmin float64) Option {
	return options.NoError(func(c *Criteria) {
		c.xmin = &xmin
	})
}

// WithXMax sets the upper inclusive bound on x.
func WithXMax(xmax float64) Option {
	return options.NoError(func(c *Criteria) {
		c.xmax = &xmax
	})
}

// WithXRange sets both bounds on x at once.
func WithXRange(xmin, xmax float64) Option {
	return func(c *Criteria) error {
		if xmin > xmax {
			return ErrInvalidCriteria
		}
		c.xmin = &xmin
		c.xmax = &xmax

		return nil
	}
}

// WithExclusion adds an exclusion window; samples inside [lo, hi) are
// dropped. Multiple windows may be supplied and may overlap.
func WithExclusion(lo, hi float64) Option {
	return func(c *Criteria) error {
		if lo >= hi {
			return ErrInvalidCriteria
		}
		c.exclude = append(c.exclude, Window{Lo: lo, Hi: hi})

		return nil
	}
}

// WithLogY replaces y with log10(y) during filtering. Samples whose
// transformed y is non-finite (y <= 0) are dropped.
func WithLogY() Option {
	return options.NoError(func(c *Criteria) {
		c.logY = true
	})
}

// LogY reports whether the dependent variable is log-transformed.
func (c Criteria) LogY() bool {
	return c.logY
}

// Windows returns the exclusion windows.
// The returned slice is shared with the Criteria and must not be modified.
func (c Criteria) Windows() []Window {
	return c.exclude
}

// XRange returns the inclusive bounds on x; an absent bound reports the
// corresponding infinity.
func (c Criteria) XRange() (xmin, xmax float64) {
	xmin, xmax = math.Inf(-1), math.Inf(1)
	if c.xmin != nil {
		xmin = *c.xmin
	}
	if c.xmax != nil {
		xmax = *c.xmax
	}

	return xmin, xmax
}

// inBounds reports whether x satisfies the [xmin, xmax] bounds.
func (c Criteria) inBounds(x float64) bool {
	if c.xmin != nil && x < *c.xmin {
		return false
	}
	if c.xmax != nil && x > *c.xmax {
		return false
	}

	return true
}

// excluded reports whether x falls inside any exclusion window.
func (c Criteria) excludedAt(x float64) bool {
	for _, w := range c.exclude {
		if w.Contains(x) {
			return true
		}
	}

	return false
}

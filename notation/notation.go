package notation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/curvefit/fit"
	"github.com/arloliu/curvefit/internal/options"
)

// renderConfig controls formula formatting.
type renderConfig struct {
	precision       int
	withUncertainty bool
	withChisq       bool
}

// Option is a functional option for Render.
type Option = options.Option[*renderConfig]

// WithPrecision sets the number of significant digits (default 4).
func WithPrecision(digits int) Option {
	return options.NoError(func(c *renderConfig) {
		c.precision = digits
	})
}

// WithUncertainty renders each parameter as "value±sigma".
func WithUncertainty() Option {
	return options.NoError(func(c *renderConfig) {
		c.withUncertainty = true
	})
}

// WithChisq appends a "(chi²/dof = ...)" annotation.
func WithChisq() Option {
	return options.NoError(func(c *renderConfig) {
		c.withChisq = true
	})
}

// Render substitutes the fitted parameters into the model's notation
// template. Placeholders have the form {i} with i the parameter index;
// placeholders without a matching parameter are left untouched.
func Render(res *fit.Result, opts ...Option) (string, error) {
	cfg := renderConfig{precision: 4}
	if err := options.Apply(&cfg, opts...); err != nil {
		return "", err
	}

	out := res.Model().Notation()
	for i, p := range res.Popt {
		token := "{" + strconv.Itoa(i) + "}"
		out = strings.ReplaceAll(out, token, formatParam(p, res.Psigma[i], &cfg))
	}
	if cfg.withChisq {
		out += fmt.Sprintf("  (chi²/dof = %.*g)", cfg.precision, res.ChisqDOF)
	}

	return out, nil
}

func formatParam(value, sigma float64, cfg *renderConfig) string {
	v := strconv.FormatFloat(value, 'g', cfg.precision, 64)
	if !cfg.withUncertainty {
		return v
	}
	if math.IsInf(sigma, 1) {
		return v + "±inf"
	}

	return v + "±" + strconv.FormatFloat(sigma, 'g', cfg.precision, 64)
}

package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/curvefit/observation"
)

func mustSet(t *testing.T, x, y []float64) observation.Set {
	t.Helper()
	s, err := observation.NewSet(x, y, nil)
	require.NoError(t, err)

	return s
}

func sample(fn Function, params, xs []float64) (x, y []float64) {
	y = make([]float64, len(xs))
	for i, xi := range xs {
		y[i] = fn.Eval(xi, params)
	}

	return xs, y
}

func TestEval(t *testing.T) {
	tests := []struct {
		name     string
		fn       Function
		params   []float64
		x        float64
		expected float64
	}{
		{"linear", Linear{}, []float64{2, 1}, 3, 7},
		{"quadratic", Quadratic{}, []float64{1, -2, 1}, 3, 4},
		{"exponential", Exponential{}, []float64{2, 0}, 100, 2},
		{"power", Power{}, []float64{3, 2}, 4, 48},
		{"logarithmic", Logarithmic{}, []float64{1, 2}, math.E, 3},
		{"hyperbolic", Hyperbolic{}, []float64{1, 6}, 2, 4},
		{"gaussian", Gaussian{}, []float64{5, 2, 1}, 2, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expected, tt.fn.Eval(tt.x, tt.params), 1e-12)
			require.Len(t, tt.params, tt.fn.Arity())
		})
	}
}

// Guesses on noiseless data should land close to the true parameters:
// most families recover them exactly through their linearizing
// transform.
func TestGuess_RecoversTransformableFamilies(t *testing.T) {
	xs := []float64{0.5, 1, 1.5, 2, 2.5, 3}

	tests := []struct {
		name   string
		fn     Function
		params []float64
		tol    float64
	}{
		{"linear", Linear{}, []float64{2, 1}, 1e-9},
		{"exponential", Exponential{}, []float64{2.5, 0.8}, 1e-9},
		{"power", Power{}, []float64{3, 1.5}, 1e-9},
		{"logarithmic", Logarithmic{}, []float64{1, 2}, 1e-9},
		{"hyperbolic", Hyperbolic{}, []float64{1, 6}, 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := sample(tt.fn, tt.params, xs)
			guess, err := tt.fn.Guess(mustSet(t, x, y))
			require.NoError(t, err)
			require.Len(t, guess, tt.fn.Arity())
			for i := range guess {
				require.InDelta(t, tt.params[i], guess[i], tt.tol, "param %d", i)
			}
		})
	}
}

func TestGuess_Gaussian(t *testing.T) {
	fn := Gaussian{}
	xs := []float64{-1, -0.5, 0, 0.5, 1, 1.5, 2, 2.5, 3}
	x, y := sample(fn, []float64{2, 1, 0.5}, xs)

	guess, err := fn.Guess(mustSet(t, x, y))
	require.NoError(t, err)
	require.Len(t, guess, 3)
	require.InDelta(t, 2.0, guess[0], 1e-9, "amplitude comes from the peak sample")
	require.InDelta(t, 1.0, guess[1], 1e-9, "mean comes from the peak position")
	require.Greater(t, guess[2], 0.0)
}

func TestGuess_InsufficientData(t *testing.T) {
	short := mustSet(t, []float64{1}, []float64{2})

	for _, fn := range []Function{Linear{}, Exponential{}, Power{}, Logarithmic{}, Hyperbolic{}} {
		_, err := fn.Guess(short)
		require.ErrorIs(t, err, ErrInsufficientData, "family %s", fn.Name())
	}

	_, err := Gaussian{}.Guess(mustSet(t, []float64{1, 2}, []float64{1, 2}))
	require.ErrorIs(t, err, ErrInsufficientData)

	_, err = Quadratic{}.Guess(mustSet(t, []float64{1, 2}, []float64{1, 2}))
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestGuess_Degenerate(t *testing.T) {
	t.Run("all-equal x cannot seed a slope", func(t *testing.T) {
		obs := mustSet(t, []float64{2, 2, 2}, []float64{1, 2, 3})
		_, err := Linear{}.Guess(obs)
		require.ErrorIs(t, err, ErrDegenerateGuess)
	})

	t.Run("no positive y for a log-linear seed", func(t *testing.T) {
		obs := mustSet(t, []float64{1, 2, 3}, []float64{-1, -2, 0})
		_, err := Exponential{}.Guess(obs)
		require.ErrorIs(t, err, ErrDegenerateGuess)
	})

	t.Run("no positive x for a log-log seed", func(t *testing.T) {
		obs := mustSet(t, []float64{-1, -2, -3}, []float64{1, 2, 3})
		_, err := Power{}.Guess(obs)
		require.ErrorIs(t, err, ErrDegenerateGuess)
	})

	t.Run("zero x spread cannot seed a gaussian width", func(t *testing.T) {
		obs := mustSet(t, []float64{1, 1, 1}, []float64{1, 2, 1})
		_, err := Gaussian{}.Guess(obs)
		require.ErrorIs(t, err, ErrDegenerateGuess)
	})

	t.Run("all-zero y cannot seed a gaussian amplitude", func(t *testing.T) {
		obs := mustSet(t, []float64{1, 2, 3}, []float64{0, 0, 0})
		_, err := Gaussian{}.Guess(obs)
		require.ErrorIs(t, err, ErrDegenerateGuess)
	})
}

func TestQuadraticGuess_SeedsLineWithZeroCurvature(t *testing.T) {
	obs := mustSet(t, []float64{0, 1, 2, 3}, []float64{1, 3, 5, 7})
	guess, err := Quadratic{}.Guess(obs)
	require.NoError(t, err)
	require.Equal(t, 0.0, guess[0])
	require.InDelta(t, 2.0, guess[1], 1e-9)
	require.InDelta(t, 1.0, guess[2], 1e-9)
}

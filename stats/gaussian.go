// Package stats fits the per feature normal distributions used to score a class
package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var ErrNoObservations = errors.New("need at least 1 observation to fit a gaussian")

// Gaussian is a normal distribution fit on a column of observed feature values using the
// sample mean and sample variance.
type Gaussian struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std_dev"`
	N        int     `json:"n"`

	// Degenerate is set when every observation is identical, collapsing the distribution to
	// a point mass at Mean.
	Degenerate bool `json:"degenerate"`
}

// FitGaussian computes the gaussian parameters of the observations. A single observation or
// a column of identical values produces a degenerate gaussian.
func FitGaussian(x []float64) (Gaussian, error) {
	n := len(x)
	if n == 0 {
		return Gaussian{}, ErrNoObservations
	}

	// compare observed values directly so the constant is exact and not a rounded mean
	if n < 2 || floats.Min(x) == floats.Max(x) {
		return Gaussian{Mean: x[0], N: n, Degenerate: true}, nil
	}

	mean, variance := stat.MeanVariance(x, nil)
	g := Gaussian{
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		N:        n,
	}
	if g.StdDev == 0 {
		g.Degenerate = true
	}
	return g, nil
}

// Prob returns the probability density at x. This is not a probability mass and may exceed 1.
// A degenerate gaussian returns 1 at its mean and 0 everywhere else.
func (g Gaussian) Prob(x float64) float64 {
	if g.Degenerate {
		if x == g.Mean {
			return 1.0
		}
		return 0.0
	}
	return g.normal().Prob(x)
}

// LogProb returns the natural log of Prob. A degenerate miss returns -Inf.
func (g Gaussian) LogProb(x float64) float64 {
	if g.Degenerate {
		if x == g.Mean {
			return 0.0
		}
		return math.Inf(-1)
	}
	return g.normal().LogProb(x)
}

// Peak returns the density at the mean which is 1/sqrt(2*pi*variance) for a non degenerate
// gaussian.
func (g Gaussian) Peak() float64 {
	if g.Degenerate {
		return 1.0
	}
	return 1.0 / math.Sqrt(2.0*math.Pi*g.Variance)
}

func (g Gaussian) normal() distuv.Normal {
	return distuv.Normal{Mu: g.Mean, Sigma: g.StdDev}
}

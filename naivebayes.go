// Package naivebayes is a gaussian naive bayes classifier. Each feature of each class is
// modelled as an independent normal distribution fit on the training vectors of that class,
// and a query vector is assigned to the class with the highest likelihood under a uniform
// class prior.
package naivebayes

import (
	"fmt"
	"math"
	"slices"

	"github.com/aouyang1/go-naivebayes/stats"
	"github.com/aouyang1/go-naivebayes/trainingset"
	"gonum.org/v1/gonum/floats"
)

// Classifier predicts the class of a feature vector. It is immutable once created and all
// methods are safe to call from multiple goroutines. Gaussian parameters are recomputed from
// the training set on every call.
type Classifier struct {
	opt *Options
	ts  *trainingset.TrainingSet
}

// New creates a classifier from a mapping of class label to training vectors where every
// vector has dim features. If no options are provided a default is used.
func New(data map[string][][]float64, dim int, opt *Options) (*Classifier, error) {
	ts, err := trainingset.New(data, dim)
	if err != nil {
		return nil, fmt.Errorf("unable to create training set, %w", err)
	}
	return NewFromTrainingSet(ts, opt)
}

// NewFromTrainingSet creates a classifier from an existing training set
func NewFromTrainingSet(ts *trainingset.TrainingSet, opt *Options) (*Classifier, error) {
	if ts == nil {
		return nil, ErrNoTrainingSet
	}
	if opt != nil {
		optCopy := *opt
		opt = &optCopy
	}
	opt, err := opt.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid classifier options, %w", err)
	}
	return &Classifier{
		opt: opt,
		ts:  ts,
	}, nil
}

// Dimensionality returns the number of features in every vector
func (c *Classifier) Dimensionality() int {
	return c.ts.Dim()
}

// NumClasses returns the number of distinct classes in the training set
func (c *Classifier) NumClasses() int {
	return c.ts.NumClasses()
}

// ClassLabels returns the class labels in the order they are scored. Ties resolve to the
// label appearing last in this order.
func (c *Classifier) ClassLabels() []string {
	return c.ts.Labels()
}

// Scoring returns the configured scoring mode
func (c *Classifier) Scoring() ScoringMode {
	return c.opt.Scoring
}

// TrainingSet returns the training set backing the classifier
func (c *Classifier) TrainingSet() *trainingset.TrainingSet {
	return c.ts
}

// FeatureColumn returns the observed values of a feature across every training vector of the
// class in the original order.
func (c *Classifier) FeatureColumn(index int, label string) ([]float64, error) {
	return c.ts.Column(index, label)
}

// FeatureGaussian fits the normal distribution of a feature for a class
func (c *Classifier) FeatureGaussian(index int, label string) (stats.Gaussian, error) {
	col, err := c.ts.Column(index, label)
	if err != nil {
		return stats.Gaussian{}, err
	}
	return stats.FitGaussian(col)
}

// FeatureLikelihood returns the probability density of the value for a feature of a class.
// If every training value of the feature is the same constant, the density is 1 when the
// value equals the constant and 0 otherwise.
func (c *Classifier) FeatureLikelihood(index int, value float64, label string) (float64, error) {
	g, err := c.FeatureGaussian(index, label)
	if err != nil {
		return 0.0, err
	}
	return g.Prob(value), nil
}

// FeatureLogLikelihood returns the natural log of FeatureLikelihood
func (c *Classifier) FeatureLogLikelihood(index int, value float64, label string) (float64, error) {
	g, err := c.FeatureGaussian(index, label)
	if err != nil {
		return 0.0, err
	}
	return g.LogProb(value), nil
}

// Prior returns the uniform class prior
func (c *Classifier) Prior() float64 {
	return 1.0 / float64(c.ts.NumClasses())
}

func (c *Classifier) checkQuery(x []float64, label string) error {
	if err := c.ts.CheckVector(x); err != nil {
		return err
	}
	if !c.ts.Has(label) {
		return fmt.Errorf("class %q, %w", label, ErrUnknownClass)
	}
	return nil
}

// FeatureLikelihoods returns the density of every feature of x under the class
func (c *Classifier) FeatureLikelihoods(x []float64, label string) ([]float64, error) {
	if err := c.checkQuery(x, label); err != nil {
		return nil, err
	}
	likelihoods := make([]float64, len(x))
	for i, val := range x {
		l, err := c.FeatureLikelihood(i, val, label)
		if err != nil {
			return nil, fmt.Errorf("unable to compute likelihood of feature %d, %w", i, err)
		}
		likelihoods[i] = l
	}
	return likelihoods, nil
}

// ClassLikelihood returns the product of the feature densities of x under the class scaled
// by the uniform prior. The evidence term is omitted so this is only comparable across
// classes and is not a calibrated probability. Any zero feature density makes the score 0.
func (c *Classifier) ClassLikelihood(x []float64, label string) (float64, error) {
	likelihoods, err := c.FeatureLikelihoods(x, label)
	if err != nil {
		return 0.0, err
	}
	// a running product that overflowed to +Inf times a zero density would be NaN
	if slices.Contains(likelihoods, 0.0) {
		return 0.0, nil
	}
	return floats.Prod(likelihoods) * c.Prior(), nil
}

// ClassLogLikelihood returns the sum of the log feature densities of x under the class plus
// the log prior. Any zero feature density makes the score -Inf.
func (c *Classifier) ClassLogLikelihood(x []float64, label string) (float64, error) {
	if err := c.checkQuery(x, label); err != nil {
		return 0.0, err
	}
	logLikelihoods := make([]float64, len(x))
	for i, val := range x {
		l, err := c.FeatureLogLikelihood(i, val, label)
		if err != nil {
			return 0.0, fmt.Errorf("unable to compute log likelihood of feature %d, %w", i, err)
		}
		logLikelihoods[i] = l
	}
	return floats.Sum(logLikelihoods) + math.Log(c.Prior()), nil
}

func (c *Classifier) score(x []float64, label string) (float64, error) {
	if c.opt.Scoring == ScoringLog {
		return c.ClassLogLikelihood(x, label)
	}
	return c.ClassLikelihood(x, label)
}

// Scores returns the score of every class for x using the configured scoring mode
func (c *Classifier) Scores(x []float64) (map[string]float64, error) {
	if err := c.ts.CheckVector(x); err != nil {
		return nil, err
	}
	scores := make(map[string]float64, c.ts.NumClasses())
	for _, label := range c.ts.Labels() {
		s, err := c.score(x, label)
		if err != nil {
			return nil, fmt.Errorf("unable to score class %q, %w", label, err)
		}
		scores[label] = s
	}
	return scores, nil
}

// Classify returns the class with the highest score for x. Classes are visited in
// ClassLabels order and a class replaces the current best on a greater or equal score, so
// among tied classes the last in that order wins. This includes every class scoring zero. A NaN
// score ranks below every other score, including -Inf.
func (c *Classifier) Classify(x []float64) (string, error) {
	if err := c.ts.CheckVector(x); err != nil {
		return "", err
	}

	var best string
	bestScore := math.NaN()
	for _, label := range c.ts.Labels() {
		s, err := c.score(x, label)
		if err != nil {
			return "", fmt.Errorf("unable to score class %q, %w", label, err)
		}
		if math.IsNaN(bestScore) || s >= bestScore {
			best = label
			bestScore = s
		}
	}
	return best, nil
}

package naivebayes

import "fmt"

// ScoringMode selects how per feature likelihoods are combined into a class score
type ScoringMode string

const (
	// ScoringProduct multiplies densities and the class prior
	ScoringProduct ScoringMode = "product"

	// ScoringLog sums log densities and the log prior. This avoids the product underflowing
	// to zero with many features while keeping a zero density as -Inf.
	ScoringLog ScoringMode = "log"
)

// Options configures how a Classifier scores classes
type Options struct {
	Scoring ScoringMode `json:"scoring" yaml:"scoring"`
}

// NewDefaultOptions returns the default classifier options
func NewDefaultOptions() *Options {
	return &Options{
		Scoring: ScoringProduct,
	}
}

// Validate fills in defaults and checks the scoring mode
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}

	switch o.Scoring {
	case "":
		o.Scoring = ScoringProduct
	case ScoringProduct, ScoringLog:
	default:
		return nil, fmt.Errorf("got %q, %w", o.Scoring, ErrUnknownScoring)
	}
	return o, nil
}

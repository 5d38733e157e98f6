package naivebayes

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aouyang1/go-naivebayes/stats"
	"github.com/aouyang1/go-naivebayes/util"
)

// Summary describes the fitted gaussians of every class. It is for display only and cannot be
// used to construct a Classifier.
type Summary struct {
	Dimensionality int            `json:"dimensionality"`
	Scoring        ScoringMode    `json:"scoring"`
	Classes        []ClassSummary `json:"classes"`
}

// ClassSummary stores the number of training vectors, prior, and per feature gaussian of
// a single class
type ClassSummary struct {
	Label    string           `json:"label"`
	Vectors  int              `json:"vectors"`
	Prior    float64          `json:"prior"`
	Features []stats.Gaussian `json:"features"`
}

// Summary fits every feature gaussian of every class
func (c *Classifier) Summary() (Summary, error) {
	s := Summary{
		Dimensionality: c.Dimensionality(),
		Scoring:        c.opt.Scoring,
		Classes:        make([]ClassSummary, 0, c.NumClasses()),
	}
	for _, label := range c.ClassLabels() {
		n, err := c.ts.NumVectors(label)
		if err != nil {
			return Summary{}, err
		}
		cs := ClassSummary{
			Label:    label,
			Vectors:  n,
			Prior:    c.Prior(),
			Features: make([]stats.Gaussian, 0, c.Dimensionality()),
		}
		for i := 0; i < c.Dimensionality(); i++ {
			g, err := c.FeatureGaussian(i, label)
			if err != nil {
				return Summary{}, fmt.Errorf("unable to fit feature %d of class %q, %w", i, label, err)
			}
			cs.Features = append(cs.Features, g)
		}
		s.Classes = append(s.Classes, cs)
	}
	return s, nil
}

// TablePrint writes the summary as an aligned table
func (s Summary) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%s%sClassifier:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sFeatures: %d    Classes: %d    Scoring: %s\n",
		prefix, util.IndentExpand(indent, 1),
		s.Dimensionality, len(s.Classes), s.Scoring,
	); err != nil {
		return err
	}

	for _, cs := range s.Classes {
		if _, err := fmt.Fprintf(w, "%s%sClass %s:\n", prefix, util.IndentExpand(indent, 1), cs.Label); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%sVectors: %d    Prior: %.3f\n",
			prefix, util.IndentExpand(indent, 2), cs.Vectors, cs.Prior); err != nil {
			return err
		}

		tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
		fmt.Fprintf(tbl, "%s%sFeature\tMean\tStdDev\tDegenerate\t\n", prefix, util.IndentExpand(indent, 2))
		for i, g := range cs.Features {
			fmt.Fprintf(tbl, "%s%s%d\t%.5f\t%.5f\t%t\t\n",
				prefix, util.IndentExpand(indent, 2),
				i, g.Mean, g.StdDev, g.Degenerate,
			)
		}
		if err := tbl.Flush(); err != nil {
			return err
		}
	}
	return nil
}

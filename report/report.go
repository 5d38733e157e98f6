// Package report evaluates a classifier against quiz records with known labels
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sort"
	"text/tabwriter"

	"github.com/aouyang1/go-naivebayes/dataset"
	"github.com/aouyang1/go-naivebayes/util"
	"golang.org/x/sync/errgroup"
)

var ErrNoQuizRecords = errors.New("no quiz records to evaluate")

// Classifier predicts a class label for a feature vector
type Classifier interface {
	Classify(x []float64) (string, error)
}

// Outcome is the correctness of the prediction for a single quiz record
type Outcome struct {
	Index     int    `json:"index"`
	Expected  string `json:"expected"`
	Predicted string `json:"predicted"`
	Correct   bool   `json:"correct"`
}

// Report tracks every outcome in quiz order along with the overall accuracy and a confusion
// matrix keyed by expected then predicted label
type Report struct {
	Outcomes  []Outcome                 `json:"outcomes"`
	Correct   int                       `json:"correct"`
	Total     int                       `json:"total"`
	Accuracy  float64                   `json:"accuracy"`
	Confusion map[string]map[string]int `json:"confusion"`
}

// Evaluate classifies every quiz record using up to parallelism goroutines. A parallelism less
// than 1 uses GOMAXPROCS. The first classification error cancels the evaluation.
func Evaluate(ctx context.Context, c Classifier, quiz []dataset.Record, parallelism int) (*Report, error) {
	if len(quiz) == 0 {
		return nil, ErrNoQuizRecords
	}
	if parallelism < 1 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	predicted := make([]string, len(quiz))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, rec := range quiz {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			label, err := c.Classify(rec.Features)
			if err != nil {
				return fmt.Errorf("unable to classify quiz record %d, %w", i, err)
			}
			predicted[i] = label
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := &Report{
		Outcomes:  make([]Outcome, 0, len(quiz)),
		Total:     len(quiz),
		Confusion: make(map[string]map[string]int),
	}
	for i, rec := range quiz {
		o := Outcome{
			Index:     i,
			Expected:  rec.Label,
			Predicted: predicted[i],
			Correct:   rec.Label == predicted[i],
		}
		if o.Correct {
			r.Correct++
		}
		if _, exists := r.Confusion[o.Expected]; !exists {
			r.Confusion[o.Expected] = make(map[string]int)
		}
		r.Confusion[o.Expected][o.Predicted]++
		r.Outcomes = append(r.Outcomes, o)
	}
	r.Accuracy = float64(r.Correct) / float64(r.Total)
	return r, nil
}

// Labels returns every expected and predicted label in sorted order
func (r *Report) Labels() []string {
	set := make(map[string]struct{})
	for expected, row := range r.Confusion {
		set[expected] = struct{}{}
		for predicted := range row {
			set[predicted] = struct{}{}
		}
	}
	labels := make([]string, 0, len(set))
	for label := range set {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// TablePrint writes one correctness line per quiz record followed by the accuracy and the
// confusion matrix
func (r *Report) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%s%sQuiz:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}

	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tbl, "%s%sIndex\tExpected\tPredicted\tCorrect\t\n", prefix, util.IndentExpand(indent, 1))
	for _, o := range r.Outcomes {
		fmt.Fprintf(tbl, "%s%s%d\t%s\t%s\t%t\t\n",
			prefix, util.IndentExpand(indent, 1),
			o.Index, o.Expected, o.Predicted, o.Correct,
		)
	}
	if err := tbl.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s%sAccuracy: %.3f (%d/%d)\n",
		prefix, util.IndentExpand(indent, 0), r.Accuracy, r.Correct, r.Total); err != nil {
		return err
	}

	labels := r.Labels()
	if _, err := fmt.Fprintf(w, "%s%sConfusion (expected x predicted):\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}
	tbl = tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tbl, "%s%s\t", prefix, util.IndentExpand(indent, 1))
	for _, label := range labels {
		fmt.Fprintf(tbl, "%s\t", label)
	}
	fmt.Fprintln(tbl)
	for _, expected := range labels {
		fmt.Fprintf(tbl, "%s%s%s\t", prefix, util.IndentExpand(indent, 1), expected)
		for _, predicted := range labels {
			fmt.Fprintf(tbl, "%d\t", r.Confusion[expected][predicted])
		}
		fmt.Fprintln(tbl)
	}
	return tbl.Flush()
}

// Package trainingset holds labeled feature vectors grouped by class for the classifier.
package trainingset

import (
	"errors"
	"fmt"
	"sort"

	mat_ "github.com/aouyang1/go-naivebayes/mat"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrInvalidTrainingData = errors.New("invalid training data")
	ErrUnknownClass        = errors.New("unknown class")
	ErrIndexOutOfRange     = errors.New("feature index out of range")
	ErrDimensionMismatch   = errors.New("feature vector length does not match dimensionality")
)

// TrainingSet stores the training vectors of each class as a dense matrix where each row is
// one vector in its original order. A TrainingSet is never modified after New returns so it
// is safe for concurrent reads.
type TrainingSet struct {
	dim    int
	labels []string
	data   map[string]*mat.Dense
}

// New copies the input mapping of class label to feature vectors. Every vector must have
// exactly dim values and every class must have at least one vector.
func New(data map[string][][]float64, dim int) (*TrainingSet, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no classes, %w", ErrInvalidTrainingData)
	}
	if dim < 1 {
		return nil, fmt.Errorf("dimensionality must be positive, got %d, %w", dim, ErrInvalidTrainingData)
	}

	ts := &TrainingSet{
		dim:    dim,
		labels: make([]string, 0, len(data)),
		data:   make(map[string]*mat.Dense, len(data)),
	}
	for label, vectors := range data {
		mx, err := mat_.NewDenseFromRows(vectors, dim)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w, %w", label, err, ErrInvalidTrainingData)
		}
		ts.data[label] = mx
		ts.labels = append(ts.labels, label)
	}
	sort.Strings(ts.labels)
	return ts, nil
}

// Dim returns the number of features in every vector
func (ts *TrainingSet) Dim() int {
	return ts.dim
}

// NumClasses returns the number of distinct class labels
func (ts *TrainingSet) NumClasses() int {
	return len(ts.labels)
}

// Labels returns the class labels in a stable order. The order is lexicographic but is only
// meant for display.
func (ts *TrainingSet) Labels() []string {
	labels := make([]string, len(ts.labels))
	copy(labels, ts.labels)
	return labels
}

// Has reports whether the label is a known class
func (ts *TrainingSet) Has(label string) bool {
	_, exists := ts.data[label]
	return exists
}

// NumVectors returns the number of training vectors for a class
func (ts *TrainingSet) NumVectors(label string) (int, error) {
	mx, exists := ts.data[label]
	if !exists {
		return 0, fmt.Errorf("class %q, %w", label, ErrUnknownClass)
	}
	m, _ := mx.Dims()
	return m, nil
}

// Column returns the value at the feature index of every training vector of the class in
// the original vector order. The returned slice is owned by the caller.
func (ts *TrainingSet) Column(index int, label string) ([]float64, error) {
	mx, exists := ts.data[label]
	if !exists {
		return nil, fmt.Errorf("class %q, %w", label, ErrUnknownClass)
	}
	if index < 0 || index >= ts.dim {
		return nil, fmt.Errorf("index %d with %d features, %w", index, ts.dim, ErrIndexOutOfRange)
	}
	return mat.Col(nil, index, mx), nil
}

// Vectors returns a copy of the training vectors of a class
func (ts *TrainingSet) Vectors(label string) ([][]float64, error) {
	mx, exists := ts.data[label]
	if !exists {
		return nil, fmt.Errorf("class %q, %w", label, ErrUnknownClass)
	}
	m, _ := mx.Dims()
	vectors := make([][]float64, m)
	for i := 0; i < m; i++ {
		vectors[i] = mat.Row(nil, i, mx)
	}
	return vectors, nil
}

// CheckVector validates that a query vector matches the dimensionality of the training set
func (ts *TrainingSet) CheckVector(x []float64) error {
	if len(x) != ts.dim {
		return fmt.Errorf("got %d features, expected %d, %w", len(x), ts.dim, ErrDimensionMismatch)
	}
	return nil
}

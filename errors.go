package naivebayes

import (
	"errors"

	"github.com/aouyang1/go-naivebayes/trainingset"
)

var (
	ErrInvalidTrainingData = trainingset.ErrInvalidTrainingData
	ErrUnknownClass        = trainingset.ErrUnknownClass
	ErrIndexOutOfRange     = trainingset.ErrIndexOutOfRange
	ErrDimensionMismatch   = trainingset.ErrDimensionMismatch

	ErrUnknownScoring   = errors.New("unknown scoring mode")
	ErrNoTrainingSet    = errors.New("no training set")
	ErrInsufficientGrid = errors.New("need at least 2 points to plot a density")
)

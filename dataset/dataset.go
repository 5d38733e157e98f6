// Package dataset reads labeled feature vectors from delimited text and splits them into
// training and quiz records.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

var (
	ErrNoRecords     = errors.New("no records")
	ErrParseFeature  = errors.New("unable to parse feature value")
	ErrRowLength     = errors.New("row has a different number of columns")
	ErrLabelColumn   = errors.New("label column out of range")
	ErrEmptyLabel    = errors.New("empty class label")
	ErrQuizFraction  = errors.New("quiz fraction must be in [0, 1)")
	ErrFeatureLength = errors.New("record has a different number of features")
)

// Record is a single feature vector tagged with its class label
type Record struct {
	Features []float64 `json:"features"`
	Label    string    `json:"label"`
}

// Dataset is the parsed content of a delimited file. FeatureNames is only populated when the
// input has a header row.
type Dataset struct {
	FeatureNames []string `json:"feature_names,omitempty"`
	Records      []Record `json:"records"`
}

// CSVOptions configures how rows are parsed into records
type CSVOptions struct {
	// Comma is the field delimiter
	Comma rune

	// Header skips the first row and uses it for feature names
	Header bool

	// LabelColumn is the index of the class label column. Negative values count from the end
	// so -1 is the last column.
	LabelColumn int
}

// NewDefaultCSVOptions returns options for a comma separated file without a header and the
// label in the last column
func NewDefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		Comma:       ',',
		LabelColumn: -1,
	}
}

// Validate fills in defaults
func (o *CSVOptions) Validate() (*CSVOptions, error) {
	if o == nil {
		o = NewDefaultCSVOptions()
	}
	if o.Comma == 0 {
		o.Comma = ','
	}
	return o, nil
}

// ReadCSV parses every row into a record. Every row must have the same number of columns and
// every column other than the label must be a finite number. Rows with only empty fields are
// skipped.
func ReadCSV(r io.Reader, opt *CSVOptions) (*Dataset, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.Comma = opt.Comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	ds := new(Dataset)
	width := -1
	labelCol := 0
	for row := 0; ; row++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read row %d, %w", row, err)
		}
		if blankRow(rec) {
			slog.Debug("skipping blank row", "row", row)
			continue
		}

		if width < 0 {
			width = len(rec)
			labelCol = opt.LabelColumn
			if labelCol < 0 {
				labelCol += width
			}
			if labelCol < 0 || labelCol >= width {
				return nil, fmt.Errorf("column %d with %d columns, %w", opt.LabelColumn, width, ErrLabelColumn)
			}
			if width < 2 {
				return nil, fmt.Errorf("row %d has no feature columns, %w", row, ErrRowLength)
			}
			if opt.Header {
				ds.FeatureNames = withoutColumn(rec, labelCol)
				continue
			}
		}
		if len(rec) != width {
			return nil, fmt.Errorf("row %d has %d columns, expected %d, %w", row, len(rec), width, ErrRowLength)
		}

		record, err := parseRow(rec, labelCol)
		if err != nil {
			return nil, fmt.Errorf("row %d, %w", row, err)
		}
		ds.Records = append(ds.Records, record)
	}

	if len(ds.Records) == 0 {
		return nil, ErrNoRecords
	}
	return ds, nil
}

func blankRow(rec []string) bool {
	for _, field := range rec {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func withoutColumn(rec []string, col int) []string {
	out := make([]string, 0, len(rec)-1)
	for i, field := range rec {
		if i == col {
			continue
		}
		out = append(out, strings.TrimSpace(field))
	}
	return out
}

func parseRow(rec []string, labelCol int) (Record, error) {
	record := Record{
		Features: make([]float64, 0, len(rec)-1),
		Label:    strings.TrimSpace(rec[labelCol]),
	}
	if record.Label == "" {
		return Record{}, ErrEmptyLabel
	}
	for i, field := range rec {
		if i == labelCol {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return Record{}, fmt.Errorf("column %d value %q, %w", i, field, ErrParseFeature)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Record{}, fmt.Errorf("column %d value %q is not finite, %w", i, field, ErrParseFeature)
		}
		record.Features = append(record.Features, v)
	}
	return record, nil
}

// Dimensionality returns the number of features shared by every record
func Dimensionality(records []Record) (int, error) {
	if len(records) == 0 {
		return 0, ErrNoRecords
	}
	dim := len(records[0].Features)
	for i, r := range records {
		if len(r.Features) != dim {
			return 0, fmt.Errorf("record %d has %d features, expected %d, %w", i, len(r.Features), dim, ErrFeatureLength)
		}
	}
	return dim, nil
}

// Group assembles the class label to feature vectors mapping used to train a classifier.
// Vectors keep the order of the input records.
func Group(records []Record) map[string][][]float64 {
	data := make(map[string][][]float64)
	for _, r := range records {
		v := make([]float64, len(r.Features))
		copy(v, r.Features)
		data[r.Label] = append(data[r.Label], v)
	}
	return data
}

// Split partitions records into a training and quiz set where the quiz set holds
// floor(len(records) * quizFraction) records. Records are shuffled with rng first; a nil rng
// keeps the input order and takes the quiz records from the end.
func Split(records []Record, quizFraction float64, rng *rand.Rand) ([]Record, []Record, error) {
	if quizFraction < 0 || quizFraction >= 1 || math.IsNaN(quizFraction) {
		return nil, nil, fmt.Errorf("got %f, %w", quizFraction, ErrQuizFraction)
	}
	n := len(records)
	if n == 0 {
		return nil, nil, ErrNoRecords
	}

	shuffled := make([]Record, n)
	if rng == nil {
		copy(shuffled, records)
	} else {
		for i, idx := range rng.Perm(n) {
			shuffled[i] = records[idx]
		}
	}

	nTrain := n - int(float64(n)*quizFraction)
	return shuffled[:nTrain:nTrain], shuffled[nTrain:], nil
}

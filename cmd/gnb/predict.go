package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var ErrNoVector = errors.New("no feature vector, set --x")

func newPredictCmd() *cobra.Command {
	predictCmd := &cobra.Command{
		Use:   "predict",
		Short: "Train on every record of a file and classify a single feature vector",
		Args:  cobra.NoArgs,
		RunE:  runPredict,
	}
	predictCmd.Flags().String("x", "", "Comma separated feature values to classify")
	return predictCmd
}

// PredictOutput is the JSON document written by the predict command. A class score that is
// not finite, such as a vetoed class under log scoring, is written as null.
type PredictOutput struct {
	Label  string              `json:"label"`
	Scores map[string]*float64 `json:"scores"`
}

// NewPredictOutput converts class scores into their JSON representation
func NewPredictOutput(label string, scores map[string]float64) PredictOutput {
	out := PredictOutput{
		Label:  label,
		Scores: make(map[string]*float64, len(scores)),
	}
	for class, s := range scores {
		if math.IsInf(s, 0) || math.IsNaN(s) {
			out.Scores[class] = nil
			continue
		}
		out.Scores[class] = &s
	}
	return out
}

// ParseVector parses a comma separated list of feature values
func ParseVector(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, ErrNoVector
	}
	fields := strings.Split(s, ",")
	x := make([]float64, 0, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("feature %d, %w", i, err)
		}
		x = append(x, v)
	}
	return x, nil
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	xFlag, err := cmd.Flags().GetString("x")
	if err != nil {
		return err
	}
	x, err := ParseVector(xFlag)
	if err != nil {
		return err
	}

	ds, dim, err := loadDataset(cfg)
	if err != nil {
		return err
	}
	c, err := train(cfg, ds.Records, dim)
	if err != nil {
		return err
	}

	label, err := c.Classify(x)
	if err != nil {
		return err
	}

	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if !jsonOut {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), label)
		return err
	}

	scores, err := c.Scores(x)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), NewPredictOutput(label, scores))
}

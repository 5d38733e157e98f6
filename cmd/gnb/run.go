package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	naivebayes "github.com/aouyang1/go-naivebayes"
	"github.com/aouyang1/go-naivebayes/dataset"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// resolveConfig loads the config file and overrides it with any flag set on the command line
func resolveConfig(cmd *cobra.Command) (*Config, error) {
	flags := cmd.Flags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	var errs []error
	if flags.Changed("data") {
		cfg.Data, err = flags.GetString("data")
		errs = append(errs, err)
	}
	if flags.Changed("delimiter") {
		cfg.Delimiter, err = flags.GetString("delimiter")
		errs = append(errs, err)
	}
	if flags.Changed("header") {
		cfg.Header, err = flags.GetBool("header")
		errs = append(errs, err)
	}
	if flags.Changed("label-col") {
		cfg.LabelColumn, err = flags.GetInt("label-col")
		errs = append(errs, err)
	}
	if flags.Changed("scoring") {
		var scoring string
		scoring, err = flags.GetString("scoring")
		cfg.Classifier.Scoring = naivebayes.ScoringMode(scoring)
		errs = append(errs, err)
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	if cfg.Data == "" {
		return nil, fmt.Errorf("no data file, set --data or data in the config")
	}
	return cfg, nil
}

func loadDataset(cfg *Config) (*dataset.Dataset, int, error) {
	csvOpt, err := cfg.CSVOptions()
	if err != nil {
		return nil, 0, err
	}

	f, err := os.Open(cfg.Data)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	ds, err := dataset.ReadCSV(f, csvOpt)
	if err != nil {
		return nil, 0, fmt.Errorf("unable to read %s, %w", cfg.Data, err)
	}
	dim, err := dataset.Dimensionality(ds.Records)
	if err != nil {
		return nil, 0, err
	}
	slog.Debug("loaded dataset", "path", cfg.Data, "records", len(ds.Records), "features", dim)
	return ds, dim, nil
}

func train(cfg *Config, records []dataset.Record, dim int) (*naivebayes.Classifier, error) {
	c, err := naivebayes.New(dataset.Group(records), dim, &cfg.Classifier)
	if err != nil {
		return nil, fmt.Errorf("unable to train classifier, %w", err)
	}
	slog.Debug("trained classifier", "classes", c.NumClasses(), "vectors", len(records), "scoring", c.Scoring())
	return c, nil
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

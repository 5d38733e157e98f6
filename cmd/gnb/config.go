package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"unicode/utf8"

	naivebayes "github.com/aouyang1/go-naivebayes"
	"github.com/aouyang1/go-naivebayes/dataset"
	"gopkg.in/yaml.v3"
)

var ErrDelimiter = errors.New("delimiter must be a single character")

// Config is the run configuration loaded from a yaml file. Command line flags take precedence.
type Config struct {
	Data         string  `yaml:"data"`
	Delimiter    string  `yaml:"delimiter"`
	Header       bool    `yaml:"header"`
	LabelColumn  int     `yaml:"label_column"`
	QuizFraction float64 `yaml:"quiz_fraction"`
	Shuffle      bool    `yaml:"shuffle"`
	Seed         uint64  `yaml:"seed"`
	Parallelism  int     `yaml:"parallelism"`

	Classifier naivebayes.Options `yaml:"classifier"`

	Plot        string `yaml:"plot"`
	PlotFeature int    `yaml:"plot_feature"`
	PlotPoints  int    `yaml:"plot_points"`
}

// NewDefaultConfig returns the configuration used when no file is provided
func NewDefaultConfig() *Config {
	return &Config{
		Delimiter:    ",",
		LabelColumn:  -1,
		QuizFraction: 0.2,
		Shuffle:      true,
		Seed:         1,
		Classifier:   *naivebayes.NewDefaultOptions(),
		PlotPoints:   naivebayes.DefaultPlotPoints,
	}
}

// LoadConfig reads a yaml file over the defaults. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config, %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config %s, %w", path, err)
	}
	return cfg, nil
}

// CSVOptions converts the file settings into dataset parsing options
func (c *Config) CSVOptions() (*dataset.CSVOptions, error) {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return nil, fmt.Errorf("got %q, %w", c.Delimiter, ErrDelimiter)
	}
	comma, _ := utf8.DecodeRuneInString(c.Delimiter)
	return &dataset.CSVOptions{
		Comma:       comma,
		Header:      c.Header,
		LabelColumn: c.LabelColumn,
	}, nil
}

// Rand returns the source used to shuffle records before splitting or nil to keep file order
func (c *Config) Rand() *rand.Rand {
	if !c.Shuffle {
		return nil
	}
	return rand.New(rand.NewPCG(c.Seed, c.Seed))
}

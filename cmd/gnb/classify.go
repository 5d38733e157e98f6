package main

import (
	"fmt"
	"log/slog"
	"os"

	naivebayes "github.com/aouyang1/go-naivebayes"
	"github.com/aouyang1/go-naivebayes/dataset"
	"github.com/aouyang1/go-naivebayes/report"
	"github.com/spf13/cobra"
)

func newClassifyCmd() *cobra.Command {
	classifyCmd := &cobra.Command{
		Use:   "classify",
		Short: "Train on part of a file and report correctness on the quiz records",
		Args:  cobra.NoArgs,
		RunE:  runClassify,
	}
	classifyCmd.Flags().Float64("quiz", 0.2, "Fraction of records held out as quiz records")
	classifyCmd.Flags().Uint64("seed", 1, "Shuffle seed")
	classifyCmd.Flags().Bool("no-shuffle", false, "Take quiz records from the end of the file")
	classifyCmd.Flags().Int("parallelism", 0, "Concurrent classifications, 0 uses GOMAXPROCS")
	classifyCmd.Flags().String("plot", "", "Write an html density plot to this path")
	classifyCmd.Flags().Int("plot-feature", 0, "Feature index to plot")
	return classifyCmd
}

// ClassifyOutput is the JSON document written by the classify command
type ClassifyOutput struct {
	Summary naivebayes.Summary `json:"summary"`
	Report  *report.Report     `json:"report,omitempty"`
}

func applyClassifyFlags(cmd *cobra.Command, cfg *Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("quiz") {
		if cfg.QuizFraction, err = flags.GetFloat64("quiz"); err != nil {
			return err
		}
	}
	if flags.Changed("seed") {
		if cfg.Seed, err = flags.GetUint64("seed"); err != nil {
			return err
		}
	}
	if flags.Changed("no-shuffle") {
		noShuffle, err := flags.GetBool("no-shuffle")
		if err != nil {
			return err
		}
		cfg.Shuffle = !noShuffle
	}
	if flags.Changed("parallelism") {
		if cfg.Parallelism, err = flags.GetInt("parallelism"); err != nil {
			return err
		}
	}
	if flags.Changed("plot") {
		if cfg.Plot, err = flags.GetString("plot"); err != nil {
			return err
		}
	}
	if flags.Changed("plot-feature") {
		if cfg.PlotFeature, err = flags.GetInt("plot-feature"); err != nil {
			return err
		}
	}
	return nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyClassifyFlags(cmd, cfg); err != nil {
		return err
	}

	ds, dim, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	trainRecords, quizRecords, err := dataset.Split(ds.Records, cfg.QuizFraction, cfg.Rand())
	if err != nil {
		return err
	}
	slog.Info("split records", "training", len(trainRecords), "quiz", len(quizRecords))

	c, err := train(cfg, trainRecords, dim)
	if err != nil {
		return err
	}

	out := ClassifyOutput{}
	out.Summary, err = c.Summary()
	if err != nil {
		return err
	}

	if len(quizRecords) > 0 {
		out.Report, err = report.Evaluate(cmd.Context(), c, quizRecords, cfg.Parallelism)
		if err != nil {
			return err
		}
		slog.Info("evaluated quiz records", "accuracy", out.Report.Accuracy, "correct", out.Report.Correct, "total", out.Report.Total)
	} else {
		slog.Warn("no quiz records to evaluate", "quiz_fraction", cfg.QuizFraction)
	}

	if cfg.Plot != "" {
		if err := plotFeature(c, cfg); err != nil {
			return err
		}
		slog.Info("wrote density plot", "path", cfg.Plot, "feature", cfg.PlotFeature)
	}

	w := cmd.OutOrStdout()
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(w, out)
	}

	if err := out.Summary.TablePrint(w, "", "  "); err != nil {
		return err
	}
	if out.Report != nil {
		return out.Report.TablePrint(w, "", "  ")
	}
	return nil
}

func plotFeature(c *naivebayes.Classifier, cfg *Config) error {
	file, err := os.Create(cfg.Plot)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := c.PlotFeature(file, cfg.PlotFeature, cfg.PlotPoints); err != nil {
		return fmt.Errorf("unable to plot feature %d, %w", cfg.PlotFeature, err)
	}
	return nil
}

// Command gnb trains a gaussian naive bayes classifier from a delimited file and reports how
// well it predicts a held out quiz set.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Every invocation gets its own flag set.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gnb",
		Short:         "Gaussian naive bayes classifier",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML run configuration")
	rootCmd.PersistentFlags().String("data", "", "Delimited file of feature vectors and labels")
	rootCmd.PersistentFlags().String("delimiter", ",", "Field delimiter")
	rootCmd.PersistentFlags().Bool("header", false, "Skip the first row as a header")
	rootCmd.PersistentFlags().Int("label-col", -1, "Label column index, negative counts from the end")
	rootCmd.PersistentFlags().String("scoring", "product", "Class scoring mode: product or log")
	rootCmd.PersistentFlags().Bool("json", false, "Write JSON instead of tables")

	rootCmd.AddCommand(newClassifyCmd(), newPredictCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

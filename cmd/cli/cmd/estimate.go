// Package cmd - estimate command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"keyspace-time/core/magnitude"
	"keyspace-time/core/output"
	"keyspace-time/internal/config"
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate <exponent>",
	Short: "Describe a single 2^n space and its durations",
	Long: `Print the size of 2^n (exact or as a power of ten), its digit counts and
total bit volume, followed by the duration at every configured rate.

Examples:
  keyspace-time estimate 64
  keyspace-time estimate 4096 --threshold 128`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	addSweepFlags(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	n, err := magnitude.ParseExponent(args[0])
	if err != nil {
		return err
	}

	format := cfg.Output.DefaultFormat
	if outputFormat != "" {
		format = outputFormat
	}
	if output.Format(format) != output.FormatJSON {
		if err := printSummary(cmd, flagEstimator(cmd, cfg), n); err != nil {
			return err
		}
	}

	return renderSweep(cmd, cfg, []magnitude.Exponent{n})
}

func printSummary(cmd *cobra.Command, e magnitude.Estimator, n magnitude.Exponent) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(),
		"2^%d = %s\nDecimal digits: %s\nBinary digits:  %s\nTotal bits:     %s\n\n",
		n,
		magnitude.Format(e.Estimate(n)),
		magnitude.GroupDigits(fmt.Sprint(magnitude.DecimalDigits(n))),
		magnitude.GroupDigits(fmt.Sprint(magnitude.BinaryDigits(n))),
		magnitude.Format(e.TotalBits(n)),
	)
	return err
}

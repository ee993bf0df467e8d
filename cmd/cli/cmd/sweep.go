// Package cmd - sweep command
package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"keyspace-time/core/magnitude"
	"keyspace-time/core/output"
	"keyspace-time/core/sweep"
	"keyspace-time/internal/config"
	"keyspace-time/internal/logging"
)

var (
	outputFormat string
	useBits      bool
	threshold    uint
	concurrency  int
)

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep [exponents...]",
	Short: "Estimate durations for a list of exponents at every rate",
	Long: `Evaluate 2^n at every configured rate for each exponent n.

Without arguments the configured landmarks are used
(8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096 by default).

Examples:
  keyspace-time sweep
  keyspace-time sweep 40 56 64
  keyspace-time sweep --bits --format json 4096`,
	RunE: runSweep,
}

func init() {
	addSweepFlags(sweepCmd)
}

func addSweepFlags(c *cobra.Command) {
	c.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json); defaults to the configured format")
	c.Flags().BoolVar(&useBits, "bits", false, "time n * 2^n bit operations instead of 2^n")
	c.Flags().UintVar(&threshold, "threshold", magnitude.DefaultExactThreshold, "largest exponent computed exactly")
	c.Flags().IntVar(&concurrency, "concurrency", 0, "rows computed in parallel (0 = GOMAXPROCS)")
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	exps, err := parseExponents(args)
	if err != nil {
		return err
	}
	if len(exps) == 0 {
		if exps, err = cfg.LandmarkExponents(); err != nil {
			return err
		}
	}

	return renderSweep(cmd, cfg, exps)
}

func parseExponents(args []string) ([]magnitude.Exponent, error) {
	exps := make([]magnitude.Exponent, 0, len(args))
	for _, a := range args {
		n, err := magnitude.ParseExponent(a)
		if err != nil {
			return nil, err
		}
		exps = append(exps, n)
	}
	return exps, nil
}

// flagEstimator returns the configured estimator unless --threshold was given
func flagEstimator(cmd *cobra.Command, cfg *config.Config) magnitude.Estimator {
	if !cmd.Flags().Changed("threshold") {
		return cfg.Estimator()
	}
	if threshold > magnitude.MaxExactThreshold {
		logging.Warn("exact threshold clamped",
			zap.Uint("requested", threshold),
			zap.Uint("max", magnitude.MaxExactThreshold),
		)
	}
	return magnitude.NewEstimator(threshold)
}

func renderSweep(cmd *cobra.Command, cfg *config.Config, exps []magnitude.Exponent) error {
	startTime := time.Now()

	estimator := flagEstimator(cmd, cfg)
	basis := sweep.Basis(cfg.Estimation.Basis)
	if useBits {
		basis = sweep.BasisBits
	}
	workers := cfg.Estimation.Concurrency
	if cmd.Flags().Changed("concurrency") {
		workers = concurrency
	}
	format := output.Format(cfg.Output.DefaultFormat)
	if outputFormat != "" {
		format = output.Format(outputFormat)
	}

	formatter, err := output.New(format, output.Options{ShowMagnitude: cfg.Output.ShowMagnitude})
	if err != nil {
		return err
	}

	logging.Info("Starting sweep",
		zap.Int("exponents", len(exps)),
		zap.String("basis", string(basis)),
		zap.Uint("exact_threshold", estimator.ExactThreshold),
	)

	report, err := sweep.Run(cmd.Context(), sweep.Request{
		Exponents: exps,
		Rates:     cfg.RateTable(),
		Basis:     basis,
	}, sweep.WithEstimator(estimator), sweep.WithConcurrency(workers))
	if err != nil {
		return err
	}

	result := &output.Result{
		Report:         report,
		ExactThreshold: estimator.ExactThreshold,
		Metadata: output.Metadata{
			Timestamp: startTime.Format(time.RFC3339),
			Elapsed:   time.Since(startTime).String(),
			Version:   Version,
		},
	}
	return formatter.Render(cmd.OutOrStdout(), result)
}

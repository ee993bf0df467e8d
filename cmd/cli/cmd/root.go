// Package cmd provides the CLI commands for keyspace-time.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"keyspace-time/internal/config"
	"keyspace-time/internal/logging"
)

// Version is the tool version
const Version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "keyspace-time",
	Short: "Estimate how long it takes to walk a 2^n keyspace",
	Long: `keyspace-time estimates the size of 2^n combinatorial spaces and the time
needed to process them at a table of fixed rates.

Exponents up to the exact threshold (default 64) are computed exactly; larger
ones are handled in log10 space, so 2^4096 costs the same as 2^8.

Examples:
  keyspace-time sweep
  keyspace-time sweep 8 64 4096 --format json
  keyspace-time estimate 256
  keyspace-time sweep --bits --config keyspace.yaml`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (.json, .yaml, .yml or .hcl)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}

func initConfig() {
	if err := config.LoadDotEnv(); err != nil {
		fatal("failed to load .env", err)
	}

	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			fatal("failed to load config", err, zap.String("file", cfgFile))
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		fatal("failed to apply environment", err)
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	logging.Debug("configuration loaded",
		zap.String("file", cfgFile),
		zap.Uint("exact_threshold", cfg.Estimation.ExactThreshold),
		zap.Int("rates", len(cfg.Rates)),
	)
}

// fatal logs err through the default logger and exits
func fatal(msg string, err error, fields ...zap.Field) {
	logging.Error(msg, append(fields, zap.Error(err))...)
	logging.Sync()
	os.Exit(1)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "keyspace-time version %s\n", Version)
	},
}

// ratesCmd lists the configured rate table
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "List the processing rate table",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		for _, r := range config.Get().RateTable() {
			if _, err := fmt.Fprintf(w, "%-24s %g Hz\n", r.Label, r.Hz); err != nil {
				return err
			}
		}
		return nil
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// configShowCmd prints the effective configuration as YAML
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(config.Get())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

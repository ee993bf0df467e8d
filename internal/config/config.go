// Package config provides configuration management.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"keyspace-time/core/duration"
	"keyspace-time/core/magnitude"
	"keyspace-time/core/sweep"
	"keyspace-time/internal/errors"
	"keyspace-time/internal/logging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// Estimation contains estimator settings
	Estimation EstimationConfig `json:"estimation" yaml:"estimation"`

	// Rates is the processing rate table, in display order
	Rates duration.RateTable `json:"rates" yaml:"rates" validate:"required,min=1,dive"`

	// Landmarks are the exponents swept when none are given
	Landmarks []int `json:"landmarks" yaml:"landmarks"`

	// Output contains output configuration
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// EstimationConfig contains estimator settings
type EstimationConfig struct {
	// ExactThreshold is the largest exponent computed with exact arithmetic
	ExactThreshold uint `json:"exact_threshold" yaml:"exact_threshold" validate:"max=1000"`

	// Basis is "count" (2^n) or "bits" (n * 2^n)
	Basis string `json:"basis" yaml:"basis" validate:"omitempty,oneof=count bits"`

	// Concurrency bounds parallel rows; 0 means GOMAXPROCS
	Concurrency int `json:"concurrency" yaml:"concurrency" validate:"min=0"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format" yaml:"default_format" validate:"oneof=cli json"`

	// ShowMagnitude adds the magnitude column to CLI output
	ShowMagnitude bool `json:"show_magnitude" yaml:"show_magnitude"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Estimation: EstimationConfig{
			ExactThreshold: magnitude.DefaultExactThreshold,
			Basis:          string(sweep.BasisCount),
		},
		Rates:     duration.DefaultRates(),
		Landmarks: lo.Map(sweep.DefaultLandmarks, func(n magnitude.Exponent, _ int) int { return int(n) }),
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowMagnitude: true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a JSON, YAML or HCL file.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config", err).WithContext("path", path)
	}

	config := Default()
	var format string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		format, err = "yaml", decodeYAML(data, config)
	case ".hcl":
		format, err = "hcl", decodeHCL(path, data, config)
	case ".json", "":
		format, err = "json", decodeJSON(data, config)
	default:
		return nil, errors.Newf(errors.TypeConfig, "unsupported config extension %q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "failed to parse %s config", format).
			WithContext("path", path)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// decodeJSON and decodeYAML replace list fields wholesale rather than
// merging element-wise into the defaults.
func decodeJSON(data []byte, c *Config) error {
	c.Rates, c.Landmarks = nil, nil
	if err := json.Unmarshal(data, c); err != nil {
		return err
	}
	restoreLists(c)
	return nil
}

func decodeYAML(data []byte, c *Config) error {
	c.Rates, c.Landmarks = nil, nil
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}
	restoreLists(c)
	return nil
}

func restoreLists(c *Config) {
	d := Default()
	if c.Rates == nil {
		c.Rates = d.Rates
	}
	if c.Landmarks == nil {
		c.Landmarks = d.Landmarks
	}
}

var validate = validator.New()

// Validate checks the configuration
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Config("invalid config", err)
	}
	if err := c.Rates.Validate(); err != nil {
		return errors.Config("invalid rate table", err)
	}
	if _, err := c.LandmarkExponents(); err != nil {
		return errors.Config("invalid landmarks", err)
	}
	return nil
}

// Estimator builds the magnitude estimator described by the config
func (c *Config) Estimator() magnitude.Estimator {
	return magnitude.NewEstimator(c.Estimation.ExactThreshold)
}

// RateTable returns a copy of the configured rates
func (c *Config) RateTable() duration.RateTable {
	return c.Rates.Clone()
}

// LandmarkExponents converts the configured landmarks into exponents
func (c *Config) LandmarkExponents() ([]magnitude.Exponent, error) {
	out := make([]magnitude.Exponent, 0, len(c.Landmarks))
	for _, n := range c.Landmarks {
		e, err := magnitude.NewExponent(n)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Save saves configuration to a file, as YAML or JSON by extension
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}

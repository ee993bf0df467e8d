package config

import (
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"keyspace-time/internal/errors"
)

// envOverrides are the settings that may come from the environment.
// Unset variables leave the pointer nil.
type envOverrides struct {
	LogLevel       *string `env:"KEYSPACE_LOG_LEVEL"`
	LogFormat      *string `env:"KEYSPACE_LOG_FORMAT"`
	ExactThreshold *uint   `env:"KEYSPACE_EXACT_THRESHOLD"`
	Basis          *string `env:"KEYSPACE_BASIS"`
	OutputFormat   *string `env:"KEYSPACE_OUTPUT_FORMAT"`
}

// LoadDotEnv loads variables from the given .env files (default ".env").
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !os.IsNotExist(err) {
		return errors.Config("failed to load .env file", err)
	}
	return nil
}

// ApplyEnv overlays KEYSPACE_* environment variables onto c and revalidates
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return errors.Config("failed to parse environment", err)
	}

	setIf(&c.Logging.Level, o.LogLevel)
	setIf(&c.Logging.Format, o.LogFormat)
	setIf(&c.Estimation.ExactThreshold, o.ExactThreshold)
	setIf(&c.Estimation.Basis, o.Basis)
	setIf(&c.Output.DefaultFormat, o.OutputFormat)

	return c.Validate()
}

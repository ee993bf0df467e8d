package config

import (
	"github.com/hashicorp/hcl/v2/hclsimple"

	"keyspace-time/core/duration"
)

// hclFile is the HCL shape of a config file:
//
//	exact_threshold = 64
//	landmarks       = [8, 16, 4096]
//
//	rate "Standard (1 GHz)" {
//	  hz = 1e9
//	}
//
//	logging {
//	  level = "debug"
//	}
type hclFile struct {
	Version        *string     `hcl:"version,optional"`
	ExactThreshold *uint       `hcl:"exact_threshold,optional"`
	Basis          *string     `hcl:"basis,optional"`
	Concurrency    *int        `hcl:"concurrency,optional"`
	Landmarks      []int       `hcl:"landmarks,optional"`
	Rates          []hclRate   `hcl:"rate,block"`
	Output         *hclOutput  `hcl:"output,block"`
	Logging        *hclLogging `hcl:"logging,block"`
}

type hclRate struct {
	Label string  `hcl:"label,label"`
	Hz    float64 `hcl:"hz"`
}

type hclOutput struct {
	DefaultFormat *string `hcl:"default_format,optional"`
	ShowMagnitude *bool   `hcl:"show_magnitude,optional"`
}

type hclLogging struct {
	Level       *string `hcl:"level,optional"`
	Format      *string `hcl:"format,optional"`
	Output      *string `hcl:"output,optional"`
	Development *bool   `hcl:"development,optional"`
}

func decodeHCL(path string, data []byte, c *Config) error {
	var f hclFile
	if err := hclsimple.Decode(path, data, nil, &f); err != nil {
		return err
	}

	setIf(&c.Version, f.Version)
	setIf(&c.Estimation.ExactThreshold, f.ExactThreshold)
	setIf(&c.Estimation.Basis, f.Basis)
	setIf(&c.Estimation.Concurrency, f.Concurrency)
	if f.Landmarks != nil {
		c.Landmarks = f.Landmarks
	}
	if len(f.Rates) > 0 {
		c.Rates = make(duration.RateTable, 0, len(f.Rates))
		for _, r := range f.Rates {
			c.Rates = append(c.Rates, duration.Rate{Label: r.Label, Hz: r.Hz})
		}
	}
	if o := f.Output; o != nil {
		setIf(&c.Output.DefaultFormat, o.DefaultFormat)
		setIf(&c.Output.ShowMagnitude, o.ShowMagnitude)
	}
	if l := f.Logging; l != nil {
		setIf(&c.Logging.Level, l.Level)
		setIf(&c.Logging.Format, l.Format)
		setIf(&c.Logging.Output, l.Output)
		setIf(&c.Logging.Development, l.Development)
	}
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

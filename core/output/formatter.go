// Package output provides output formatting interfaces.
// Renderers only display results computed by the sweep; they never compute.
package output

import (
	"io"

	"keyspace-time/core/sweep"
	"keyspace-time/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given result
	Render(w io.Writer, result *Result) error
}

// Result is a sweep report plus run metadata
type Result struct {
	// Report is the computed sweep
	Report *sweep.Report `json:"-"`

	// ExactThreshold is the estimator threshold used
	ExactThreshold uint `json:"exact_threshold"`

	// Metadata contains execution context
	Metadata Metadata `json:"metadata"`
}

// Metadata contains execution context
type Metadata struct {
	// Timestamp is when the sweep was performed
	Timestamp string `json:"timestamp"`

	// Elapsed is how long the sweep took
	Elapsed string `json:"elapsed"`

	// Version is the tool version
	Version string `json:"version"`
}

// Options tune the CLI renderer
type Options struct {
	// ShowMagnitude adds the 2^n magnitude column
	ShowMagnitude bool
}

// New returns the formatter for format
func New(format Format, opts Options) (Formatter, error) {
	switch format {
	case FormatCLI, "":
		return &CLIFormatter{opts: opts}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, errors.NotSupported("output format " + string(format))
	}
}

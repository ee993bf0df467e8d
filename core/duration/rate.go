// Package duration - Converts magnitudes into elapsed time at a processing rate
package duration

import (
	"fmt"
	"math"

	"keyspace-time/internal/errors"
)

// Rate is a labelled processing speed in operations per second
type Rate struct {
	// Label is the human-readable name, e.g. "Standard (1 GHz)"
	Label string `json:"label" yaml:"label" validate:"required"`

	// Hz is the number of operations per second
	Hz float64 `json:"hz" yaml:"hz" validate:"gt=0"`
}

// String implements fmt.Stringer
func (r Rate) String() string {
	return fmt.Sprintf("%s (%g Hz)", r.Label, r.Hz)
}

// RateTable is an ordered, read-only list of rates
type RateTable []Rate

// DefaultRates returns the four stock processing rates, slowest first
func DefaultRates() RateTable {
	return RateTable{
		{Label: "Conservative (1 MHz)", Hz: 1e6},
		{Label: "Standard (1 GHz)", Hz: 1e9},
		{Label: "Maximum (1 THz)", Hz: 1e12},
		{Label: "Theoretical Limit", Hz: 1e15},
	}
}

// Validate checks that every rate is positive and finite and labels are unique
func (t RateTable) Validate() error {
	if len(t) == 0 {
		return errors.Input("rate table is empty")
	}
	seen := make(map[string]struct{}, len(t))
	for i, r := range t {
		if r.Label == "" {
			return errors.Newf(errors.TypeInput, "rate %d has no label", i)
		}
		if !(r.Hz > 0) || math.IsInf(r.Hz, 0) {
			return errors.Newf(errors.TypeInput, "rate %q must be positive and finite, got %g", r.Label, r.Hz).
				WithContext("hz", r.Hz)
		}
		if _, dup := seen[r.Label]; dup {
			return errors.Newf(errors.TypeInput, "duplicate rate label %q", r.Label)
		}
		seen[r.Label] = struct{}{}
	}
	return nil
}

// Fastest returns the rate with the highest Hz
func (t RateTable) Fastest() (Rate, bool) {
	if len(t) == 0 {
		return Rate{}, false
	}
	best := t[0]
	for _, r := range t[1:] {
		if r.Hz > best.Hz {
			best = r
		}
	}
	return best, true
}

// Clone returns a copy that callers may modify freely
func (t RateTable) Clone() RateTable {
	return append(RateTable(nil), t...)
}

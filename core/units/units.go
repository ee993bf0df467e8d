// Package units - Human-readable rendering of durations
// Picks the most legible unit for a duration, from picoseconds up to
// powers of ten of years.
package units

import (
	"fmt"
	"math"

	"keyspace-time/core/duration"
)

// Unit is the unit category chosen for a formatted duration
type Unit string

const (
	Picoseconds     Unit = "picoseconds"
	Nanoseconds     Unit = "nanoseconds"
	Microseconds    Unit = "microseconds"
	Milliseconds    Unit = "milliseconds"
	Seconds         Unit = "seconds"
	Minutes         Unit = "minutes"
	Hours           Unit = "hours"
	Days            Unit = "days"
	Years           Unit = "years"
	YearsScientific Unit = "years_scientific"
	PowerOfTenYears Unit = "power_of_ten_years"
)

// FormattedDuration is a rendered duration and the unit it was rendered in
type FormattedDuration struct {
	Text string `json:"text"`
	Unit Unit   `json:"unit"`
}

// String implements fmt.Stringer
func (f FormattedDuration) String() string {
	return f.Text
}

// step is one rung of the unit cascade: values below upTo seconds are
// scaled by mul/div and labelled with unit.
type step struct {
	upTo float64
	mul  float64
	div  float64
	unit Unit
}

// secondsPerCalendarYear is the 365-day year used by the cascade
const secondsPerCalendarYear = 31536000

var cascade = []step{
	{upTo: 1e-9, mul: 1e12, div: 1, unit: Picoseconds},
	{upTo: 1e-6, mul: 1e9, div: 1, unit: Nanoseconds},
	{upTo: 1e-3, mul: 1e6, div: 1, unit: Microseconds},
	{upTo: 1, mul: 1e3, div: 1, unit: Milliseconds},
	{upTo: 60, mul: 1, div: 1, unit: Seconds},
	{upTo: 3600, mul: 1, div: 60, unit: Minutes},
	{upTo: 86400, mul: 1, div: 3600, unit: Hours},
	{upTo: secondsPerCalendarYear, mul: 1, div: 86400, unit: Days},
	{upTo: secondsPerCalendarYear * 1000, mul: 1, div: secondsPerCalendarYear, unit: Years},
}

// Format renders d in the most readable unit
func Format(d duration.Duration) FormattedDuration {
	if years, ok := d.Log10Years(); ok {
		return FormattedDuration{
			Text: fmt.Sprintf("~10^%d years", int64(math.Round(years))),
			Unit: PowerOfTenYears,
		}
	}
	s, _ := d.Seconds()
	return FormatSeconds(s)
}

// FormatSeconds renders a linear number of seconds
func FormatSeconds(s float64) FormattedDuration {
	for _, st := range cascade {
		if s < st.upTo {
			return FormattedDuration{
				Text: fmt.Sprintf("%.2f %s", s*st.mul/st.div, st.unit),
				Unit: st.unit,
			}
		}
	}
	return FormattedDuration{
		Text: fmt.Sprintf("%.2e years", s/secondsPerCalendarYear),
		Unit: YearsScientific,
	}
}

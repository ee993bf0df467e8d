package units

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"keyspace-time/core/duration"
	"keyspace-time/core/magnitude"
)

func TestFormatSecondsCascade(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
		unit    Unit
	}{
		{name: "zero", seconds: 0, want: "0.00 picoseconds", unit: Picoseconds},
		{name: "picoseconds", seconds: 5e-10, want: "500.00 picoseconds", unit: Picoseconds},
		{name: "nanoseconds lower bound", seconds: 1e-9, want: "1.00 nanoseconds", unit: Nanoseconds},
		{name: "nanoseconds", seconds: 2.56e-7, want: "256.00 nanoseconds", unit: Nanoseconds},
		{name: "microseconds", seconds: 2.5e-5, want: "25.00 microseconds", unit: Microseconds},
		{name: "just below a millisecond", seconds: 0.0009999, want: "999.90 microseconds", unit: Microseconds},
		{name: "one millisecond", seconds: 0.001, want: "1.00 milliseconds", unit: Milliseconds},
		{name: "seconds", seconds: 1, want: "1.00 seconds", unit: Seconds},
		{name: "just below a minute", seconds: 59.994, want: "59.99 seconds", unit: Seconds},
		{name: "minutes", seconds: 120, want: "2.00 minutes", unit: Minutes},
		{name: "hours", seconds: 5400, want: "1.50 hours", unit: Hours},
		{name: "days", seconds: 86400 * 3, want: "3.00 days", unit: Days},
		{name: "years", seconds: 31536000 * 12.5, want: "12.50 years", unit: Years},
		{name: "scientific years lower bound", seconds: 31536000000, want: "1.00e+03 years", unit: YearsScientific},
		{name: "scientific years", seconds: 31536000 * 4.2e17, want: "4.20e+17 years", unit: YearsScientific},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSeconds(tt.seconds)
			require.Equal(t, tt.want, got.Text)
			require.Equal(t, tt.unit, got.Unit)
		})
	}
}

func TestFormatMillisecondBoundary(t *testing.T) {
	require.Equal(t, Microseconds, Format(duration.Seconds(0.0009999)).Unit)
	require.Equal(t, Milliseconds, Format(duration.Seconds(0.001)).Unit)
}

func TestFormatYearsLogScale(t *testing.T) {
	rq := require.New(t)

	got := Format(duration.YearsLogScale(1210.6))
	rq.Equal("~10^1211 years", got.Text)
	rq.Equal(PowerOfTenYears, got.Unit)

	rq.Equal("~10^101 years", Format(duration.YearsLogScale(100.5)).Text)
	rq.Equal("~10^100 years", Format(duration.YearsLogScale(100.4)).Text)
}

func TestFormatEndToEndSmallExponent(t *testing.T) {
	d := duration.For(magnitude.Estimate(8), duration.Rate{Label: "Standard (1 GHz)", Hz: 1e9})
	require.Equal(t, "256.00 nanoseconds", Format(d).Text)
}

func TestFormatEndToEndLargeExponent(t *testing.T) {
	rq := require.New(t)

	d := duration.For(magnitude.Estimate(4096), duration.Rate{Label: "Theoretical Limit", Hz: 1e15})
	got := Format(d)
	rq.Equal(PowerOfTenYears, got.Unit)

	years, _ := d.Log10Years()
	rq.Equal("~10^"+strconv.FormatInt(int64(math.Round(years)), 10)+" years", got.Text)
	rq.Regexp(`^~10\^12\d\d years$`, got.Text)
}

func TestFormatExactMagnitudeAtTinyRate(t *testing.T) {
	bits := magnitude.NewEstimator(magnitude.MaxExactThreshold).Estimate(1000)
	got := Format(duration.For(bits, duration.Rate{Label: "slow", Hz: 1e-10}))
	require.Equal(t, FormattedDuration{Text: "~10^304 years", Unit: PowerOfTenYears}, got)
}

func TestFormatIsIdempotent(t *testing.T) {
	for _, n := range []magnitude.Exponent{8, 64, 128, 4096} {
		for _, rate := range duration.DefaultRates() {
			d := duration.For(magnitude.Estimate(n), rate)
			require.Equal(t, Format(d), Format(d))
		}
	}
}

func TestEveryDefaultCellFormats(t *testing.T) {
	// 2^64 at 1 GHz is ~585 years, 2^32 at 1 THz is ~4.3 ms
	tests := []struct {
		n    magnitude.Exponent
		hz   float64
		unit Unit
	}{
		{16, 1e6, Milliseconds},
		{32, 1e12, Milliseconds},
		{64, 1e6, YearsScientific},
		{64, 1e9, Years},
		{64, 1e12, Days},
		{64, 1e15, Hours},
		{128, 1e15, YearsScientific},
		{256, 1e6, YearsScientific},
		{512, 1e15, PowerOfTenYears},
	}
	for _, tt := range tests {
		d := duration.For(magnitude.Estimate(tt.n), duration.Rate{Label: "r", Hz: tt.hz})
		got := Format(d)
		if got.Unit != tt.unit {
			t.Errorf("2^%d at %g Hz: got %s (%q), want %s", tt.n, tt.hz, got.Unit, got.Text, tt.unit)
		}
	}
}

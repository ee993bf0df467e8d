package duration

import (
	"math"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"keyspace-time/core/magnitude"
	"keyspace-time/internal/errors"
)

func TestExactMagnitudeDividesExactly(t *testing.T) {
	rq := require.New(t)

	d := For(magnitude.Estimate(8), Rate{Label: "Standard (1 GHz)", Hz: 1e9})

	rq.Equal(KindSeconds, d.Kind())
	s, ok := d.Seconds()
	rq.True(ok)
	rq.InDelta(2.56e-7, s, 1e-20)

	exact, ok := d.ExactSeconds()
	rq.True(ok)
	rq.True(exact.Equal(decimal.RequireFromString("0.000000256")), "got %s", exact)
}

func TestExactDivisionKeepsTinyQuotients(t *testing.T) {
	d := For(magnitude.Exact(big.NewInt(1)), Rate{Label: "Theoretical Limit", Hz: 1e15})

	exact, ok := d.ExactSeconds()
	require.True(t, ok)
	require.True(t, exact.Equal(decimal.New(1, -15)), "got %s", exact)
}

func TestLogScaleBelowYearsThresholdReturnsSeconds(t *testing.T) {
	rq := require.New(t)

	// 2^128 / 1e9 is about 1.08e13 years
	d := For(magnitude.Estimate(128), Rate{Label: "Standard (1 GHz)", Hz: 1e9})
	rq.Equal(KindSeconds, d.Kind())

	s, _ := d.Seconds()
	want := math.Pow(2, 128) / 1e9
	rq.InEpsilon(want, s, 1e-9)

	_, ok := d.ExactSeconds()
	rq.False(ok)
}

func TestLogScaleAboveYearsThresholdStaysLog(t *testing.T) {
	rq := require.New(t)

	d := For(magnitude.Estimate(4096), Rate{Label: "Theoretical Limit", Hz: 1e15})
	rq.Equal(KindYearsLogScale, d.Kind())

	years, ok := d.Log10Years()
	rq.True(ok)
	want := 4096*math.Log10(2) - 15 - math.Log10(365.25*86400)
	rq.InDelta(want, years, 1e-9)
	rq.Greater(years, 1200.0)
	rq.Less(years, 1240.0)

	_, ok = d.Seconds()
	rq.False(ok)
}

func TestYearsThresholdBoundary(t *testing.T) {
	below := magnitude.LogScale(YearsLogThreshold - 0.5 + math.Log10(SecondsPerYear))
	d := For(below, Rate{Label: "unit", Hz: 1})
	require.Equal(t, KindSeconds, d.Kind())

	s, _ := d.Seconds()
	require.InEpsilon(t, math.Pow(10, 99.5)*SecondsPerYear, s, 1e-9)

	above := magnitude.LogScale(YearsLogThreshold + 0.5 + math.Log10(SecondsPerYear))
	d = For(above, Rate{Label: "unit", Hz: 1})
	require.Equal(t, KindYearsLogScale, d.Kind())
}

func TestExactMagnitudeAtTinyRateSwitchesToLogScale(t *testing.T) {
	rq := require.New(t)

	slow := Rate{Label: "slow", Hz: 1e-10}
	exact := For(magnitude.NewEstimator(magnitude.MaxExactThreshold).Estimate(1000), slow)
	logged := For(magnitude.LogScale(1000*magnitude.Log10Two), slow)

	rq.Equal(KindYearsLogScale, exact.Kind())
	_, ok := exact.ExactSeconds()
	rq.False(ok)

	got, ok := exact.Log10Years()
	rq.True(ok)
	want, _ := logged.Log10Years()
	rq.InDelta(want, got, 1e-9)
	rq.InDelta(303.5, got, 0.1)
}

func TestHigherRatesGiveShorterDurations(t *testing.T) {
	calc := NewCalculator()
	for _, n := range []magnitude.Exponent{8, 64, 65, 512, 4096} {
		bits := magnitude.Estimate(n)
		prev := math.Inf(1)
		for _, rate := range DefaultRates() {
			cur := calc.Duration(bits, rate).Log10Seconds()
			if cur >= prev {
				t.Errorf("2^%d at %s: log10 seconds %v not below %v", n, rate.Label, cur, prev)
			}
			prev = cur
		}
	}
}

func TestLog10SecondsAgreesAcrossKinds(t *testing.T) {
	lin := Seconds(SecondsPerYear * 1000)
	log := YearsLogScale(3)
	require.InDelta(t, lin.Log10Seconds(), log.Log10Seconds(), 1e-9)
}

func TestLog10UniverseAges(t *testing.T) {
	d := YearsLogScale(math.Log10(UniverseAgeYears) + 5)
	require.InDelta(t, 5.0, d.Log10UniverseAges(), 1e-9)
}

func TestDefaultRates(t *testing.T) {
	rq := require.New(t)

	rates := DefaultRates()
	rq.Len(rates, 4)
	rq.Equal([]float64{1e6, 1e9, 1e12, 1e15}, []float64{rates[0].Hz, rates[1].Hz, rates[2].Hz, rates[3].Hz})
	rq.NoError(rates.Validate())

	fastest, ok := rates.Fastest()
	rq.True(ok)
	rq.Equal("Theoretical Limit", fastest.Label)
}

func TestRateTableValidate(t *testing.T) {
	tests := []struct {
		name  string
		table RateTable
	}{
		{name: "empty", table: RateTable{}},
		{name: "zero hz", table: RateTable{{Label: "a", Hz: 0}}},
		{name: "negative hz", table: RateTable{{Label: "a", Hz: -1}}},
		{name: "nan hz", table: RateTable{{Label: "a", Hz: math.NaN()}}},
		{name: "infinite hz", table: RateTable{{Label: "a", Hz: math.Inf(1)}}},
		{name: "missing label", table: RateTable{{Hz: 1}}},
		{name: "duplicate label", table: RateTable{{Label: "a", Hz: 1}, {Label: "a", Hz: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			require.Error(t, err)
			require.True(t, errors.IsType(err, errors.TypeInput))
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	rates := DefaultRates()
	c := rates.Clone()
	c[0].Hz = 42
	require.Equal(t, 1e6, rates[0].Hz)
}

package duration

import (
	"math"

	"github.com/shopspring/decimal"

	"keyspace-time/core/magnitude"
)

const (
	// SecondsPerYear uses the Julian year of 365.25 days
	SecondsPerYear = 365.25 * 86400

	// YearsLogThreshold is the log10(years) above which durations are kept
	// as powers of ten and never refined into smaller units
	YearsLogThreshold = 100.0

	// UniverseAgeYears is the approximate age of the universe
	UniverseAgeYears = 13.8e9

	// divisionPrecision is the number of fractional digits kept when dividing
	// an exact magnitude by a rate
	divisionPrecision = 40
)

var (
	log10SecondsPerYear = math.Log10(SecondsPerYear)
	log10UniverseAge    = math.Log10(UniverseAgeYears * SecondsPerYear)
)

// Kind identifies which representation a Duration holds
type Kind int

const (
	// KindSeconds is a linear number of seconds
	KindSeconds Kind = iota

	// KindYearsLogScale is log10 of a number of years
	KindYearsLogScale
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case KindSeconds:
		return "seconds"
	case KindYearsLogScale:
		return "years_log_scale"
	default:
		return "unknown"
	}
}

// Duration is an elapsed time, either linear seconds or log10(years)
type Duration struct {
	kind       Kind
	seconds    float64
	exact      decimal.Decimal
	hasExact   bool
	log10Years float64
}

// Seconds creates a linear duration
func Seconds(s float64) Duration {
	return Duration{kind: KindSeconds, seconds: s}
}

// FromExactSeconds creates a linear duration backed by an exact quotient
func FromExactSeconds(s decimal.Decimal) Duration {
	return Duration{
		kind:     KindSeconds,
		seconds:  s.InexactFloat64(),
		exact:    s,
		hasExact: true,
	}
}

// YearsLogScale creates a duration of 10^log10Years years
func YearsLogScale(log10Years float64) Duration {
	return Duration{kind: KindYearsLogScale, log10Years: log10Years}
}

// Kind returns the representation in use
func (d Duration) Kind() Kind {
	return d.kind
}

// Seconds returns the linear seconds, or false for log-scale durations
func (d Duration) Seconds() (float64, bool) {
	return d.seconds, d.kind == KindSeconds
}

// ExactSeconds returns the exact quotient when one was computed
func (d Duration) ExactSeconds() (decimal.Decimal, bool) {
	return d.exact, d.hasExact
}

// Log10Years returns log10 of the duration in years, or false for linear durations
func (d Duration) Log10Years() (float64, bool) {
	return d.log10Years, d.kind == KindYearsLogScale
}

// Log10Seconds returns log10 of the duration in seconds for either representation
func (d Duration) Log10Seconds() float64 {
	if d.kind == KindYearsLogScale {
		return d.log10Years + log10SecondsPerYear
	}
	return math.Log10(d.seconds)
}

// Log10UniverseAges returns log10 of the duration measured in universe ages
func (d Duration) Log10UniverseAges() float64 {
	return d.Log10Seconds() - log10UniverseAge
}

// Calculator turns a bit-count magnitude and a rate into a Duration
type Calculator struct{}

// NewCalculator creates a calculator
func NewCalculator() Calculator {
	return Calculator{}
}

// Duration computes bits / rate.Hz seconds.
// Exact magnitudes divide exactly; log-scale magnitudes subtract logarithms.
// Either way the result is log-scale when it exceeds 10^YearsLogThreshold
// years. rate must have passed RateTable.Validate.
func (Calculator) Duration(bits magnitude.Magnitude, rate Rate) Duration {
	log10Seconds := bits.Log10() - math.Log10(rate.Hz)
	log10Years := log10Seconds - log10SecondsPerYear

	if v, ok := bits.Exact(); ok {
		num := decimal.NewFromBigInt(v, 0)
		hz := decimal.NewFromFloat(rate.Hz)
		d := FromExactSeconds(num.DivRound(hz, divisionPrecision))
		if log10Years > YearsLogThreshold || math.IsInf(d.seconds, 0) {
			return YearsLogScale(log10Years)
		}
		return d
	}

	if log10Years > YearsLogThreshold {
		return YearsLogScale(log10Years)
	}
	return Seconds(math.Pow(10, log10Seconds))
}

// For computes bits / rate.Hz with a zero-value Calculator
func For(bits magnitude.Magnitude, rate Rate) Duration {
	return Calculator{}.Duration(bits, rate)
}

// Package magnitude - Power-of-two magnitude estimation
// Quantities are either exact big integers or base-10 logarithms.
// The exact/log decision is made in exactly one place: Estimator.
package magnitude

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"keyspace-time/internal/errors"
)

// DefaultExactThreshold is the largest exponent computed exactly by default
const DefaultExactThreshold uint = 64

// MaxExactThreshold bounds the configurable threshold so that exact values
// stay cheap to compute and to print digit by digit.
const MaxExactThreshold uint = 1000

// Log10Two is log10(2)
var Log10Two = math.Log10(2)

// Exponent is the power of two defining a space of size 2^n
type Exponent uint

// NewExponent converts a signed integer, rejecting negatives
func NewExponent(n int) (Exponent, error) {
	if n < 0 {
		return 0, errors.InvalidExponent(n, "must be non-negative")
	}
	return Exponent(n), nil
}

// ParseExponent parses a decimal integer exponent such as "4096"
func ParseExponent(s string) (Exponent, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.InvalidExponent(s, "empty")
	}
	if strings.HasPrefix(s, "-") {
		return 0, errors.InvalidExponent(s, "must be non-negative")
	}
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, errors.InvalidExponent(s, "must be an integer").WithContext("cause", err.Error())
	}
	return Exponent(n), nil
}

// Kind identifies which representation a Magnitude holds
type Kind int

const (
	// KindExact holds an arbitrary precision integer
	KindExact Kind = iota

	// KindLogScale holds log10 of the quantity
	KindLogScale
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindLogScale:
		return "log_scale"
	default:
		return "unknown"
	}
}

// Magnitude is a non-negative quantity that is either exact or log-scale.
// The zero value is Exact(0).
type Magnitude struct {
	kind  Kind
	exact *big.Int
	log10 float64
}

// Exact wraps an exact value. The value is copied.
func Exact(v *big.Int) Magnitude {
	c := new(big.Int)
	if v != nil {
		c.Set(v)
	}
	return Magnitude{kind: KindExact, exact: c}
}

// LogScale wraps a base-10 logarithm
func LogScale(log10 float64) Magnitude {
	return Magnitude{kind: KindLogScale, log10: log10}
}

// Kind returns the representation in use
func (m Magnitude) Kind() Kind {
	return m.kind
}

// IsExact reports whether m holds an exact value
func (m Magnitude) IsExact() bool {
	return m.kind == KindExact
}

// Exact returns a copy of the exact value, or false for log-scale magnitudes
func (m Magnitude) Exact() (*big.Int, bool) {
	if m.kind != KindExact {
		return nil, false
	}
	if m.exact == nil {
		return new(big.Int), true
	}
	return new(big.Int).Set(m.exact), true
}

// Log10 returns log10 of the quantity for either representation.
// Exact zero yields -Inf.
func (m Magnitude) Log10() float64 {
	if m.kind == KindLogScale {
		return m.log10
	}
	return log10Int(m.exact)
}

// ToLogScale converts explicitly to the log-scale representation
func (m Magnitude) ToLogScale() Magnitude {
	return LogScale(m.Log10())
}

// log10Int computes log10(v) through the binary mantissa/exponent split,
// which stays finite for values beyond float64 range.
func log10Int(v *big.Int) float64 {
	if v == nil || v.Sign() == 0 {
		return math.Inf(-1)
	}
	mant := new(big.Float)
	exp := new(big.Float).SetInt(v).MantExp(mant)
	m, _ := mant.Float64()
	return math.Log10(m) + float64(exp)*Log10Two
}

// Estimator chooses between exact and log-scale arithmetic
type Estimator struct {
	// ExactThreshold is the largest exponent computed exactly
	ExactThreshold uint
}

// NewEstimator creates an estimator, clamping the threshold to MaxExactThreshold
func NewEstimator(threshold uint) Estimator {
	return Estimator{ExactThreshold: min(threshold, MaxExactThreshold)}
}

// DefaultEstimator returns an estimator using DefaultExactThreshold
func DefaultEstimator() Estimator {
	return Estimator{ExactThreshold: DefaultExactThreshold}
}

// Estimate returns 2^n
func (e Estimator) Estimate(n Exponent) Magnitude {
	if uint(n) <= e.ExactThreshold {
		return Magnitude{kind: KindExact, exact: pow2(n)}
	}
	return LogScale(float64(n) * Log10Two)
}

// TotalBits returns n * 2^n, the bits needed to write every n-bit value
func (e Estimator) TotalBits(n Exponent) Magnitude {
	if uint(n) <= e.ExactThreshold {
		v := pow2(n)
		v.Mul(v, new(big.Int).SetUint64(uint64(n)))
		return Magnitude{kind: KindExact, exact: v}
	}
	return LogScale(float64(n)*Log10Two + math.Log10(float64(n)))
}

// Estimate returns 2^n using the default estimator
func Estimate(n Exponent) Magnitude {
	return DefaultEstimator().Estimate(n)
}

// TotalBits returns n * 2^n using the default estimator
func TotalBits(n Exponent) Magnitude {
	return DefaultEstimator().TotalBits(n)
}

// DecimalDigits returns the number of decimal digits of 2^n
func DecimalDigits(n Exponent) uint64 {
	if n < 64 {
		return uint64(len(strconv.FormatUint(uint64(1)<<n, 10)))
	}
	return uint64(math.Floor(float64(n)*Log10Two)) + 1
}

// BinaryDigits returns the number of binary digits of 2^n
func BinaryDigits(n Exponent) uint64 {
	return uint64(n) + 1
}

func pow2(n Exponent) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(n))
}

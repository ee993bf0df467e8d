package magnitude

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// groupedLimit is the largest exact value rendered with thousands separators
var groupedLimit = big.NewInt(1 << 16)

// Format renders a magnitude for display.
// Small exact values are grouped ("65,536"), larger exact values use
// scientific notation ("1.84e+19"), log-scale values render as "~10^k".
func Format(m Magnitude) string {
	v, ok := m.Exact()
	if !ok {
		return fmt.Sprintf("~10^%d", int64(math.Floor(m.Log10())))
	}
	if v.Cmp(groupedLimit) <= 0 {
		return GroupDigits(v.String())
	}
	f, _ := new(big.Float).SetInt(v).Float64()
	return fmt.Sprintf("%.2e", f)
}

// GroupDigits inserts a comma every three digits of an unsigned decimal string
func GroupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

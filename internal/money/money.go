// Package money converts heterogeneous spreadsheet cell values into decimal
// amounts and formats them using Brazilian Real conventions.
package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a cell value into a decimal amount. Numeric values
// pass through unchanged (NaN counts as zero). Strings are reduced to their
// digits and comma, with the first comma acting as the decimal separator,
// so "R$ 1.234,56" parses as 1234.56. Anything unparseable is zero.
func ParseAmount(cell interface{}) decimal.Decimal {
	switch v := cell.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(v)
	case float32:
		return ParseAmount(float64(v))
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case decimal.Decimal:
		return v
	case string:
		return parseString(v)
	default:
		return decimal.Zero
	}
}

func parseString(s string) decimal.Decimal {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero
	}

	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == ',' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Replace(b.String(), ",", ".", 1)

	// Parse the longest numeric prefix; a second comma or other trailing
	// noise truncates the value instead of failing the whole parse.
	cleaned = numericPrefix(cleaned)
	if cleaned == "" || cleaned == "." {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func numericPrefix(s string) string {
	seenDot := false
	for i, r := range s {
		if r >= '0' && r <= '9' {
			continue
		}
		if r == '.' && !seenDot {
			seenDot = true
			continue
		}
		return s[:i]
	}
	return s
}

// FormatBRL renders an amount as a display currency string, e.g.
// "R$ 1.234,56". Negative amounts carry a leading minus sign.
func FormatBRL(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	intPart := fixed
	fracPart := "00"
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart = fixed[:i]
		fracPart = fixed[i+1:]
	}

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := "R$ " + strings.Join(groups, ".") + "," + fracPart
	if neg {
		return "-" + out
	}
	return out
}

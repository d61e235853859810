package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		cell interface{}
		want string
	}{
		{"formatted brl string", "1.234,56", "1234.56"},
		{"string with currency prefix", "R$ 1.234,56", "1234.56"},
		{"plain numeric", 1234.56, "1234.56"},
		{"integer cell", float64(900), "900"},
		{"empty string", "", "0"},
		{"blank string", "   ", "0"},
		{"garbage string", "abc", "0"},
		{"nil cell", nil, "0"},
		{"nan", math.NaN(), "0"},
		{"comma only decimal", "0,5", "0.5"},
		{"no decimals", "12.000", "12000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.cell)
			want, err := decimal.NewFromString(tt.want)
			assert.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s, want %s", got, want)
		})
	}
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", FormatBRL(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "R$ 0,00", FormatBRL(decimal.Zero))
	assert.Equal(t, "R$ 1.000.000,00", FormatBRL(decimal.NewFromInt(1000000)))
	assert.Equal(t, "R$ 999,90", FormatBRL(decimal.RequireFromString("999.9")))
	assert.Equal(t, "-R$ 42,00", FormatBRL(decimal.NewFromInt(-42)))
}

func TestParseFormatRoundTrip(t *testing.T) {
	// A formatted value parsed back must equal the original amount.
	orig := decimal.RequireFromString("98765.43")
	assert.True(t, orig.Equal(ParseAmount(FormatBRL(orig))))
}

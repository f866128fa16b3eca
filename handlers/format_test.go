package handlers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"title cases words", "red rum", "Red Rum"},
		{"normalizes case", "RED RUM", "Red Rum"},
		{"slash becomes ampersand", "red rum/desert orchid", "Red Rum & Desert Orchid"},
		{"trims around slash", "red rum / desert orchid", "Red Rum & Desert Orchid"},
		{"empty uses placeholder", "", "Unknown Horse"},
		{"whitespace uses placeholder", "   ", "Unknown Horse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatName(tt.in, "Unknown Horse"))
		})
	}
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "Red Rum", truncateName("Red Rum"))

	long := "Abcdefghij Klmnopqrst Uvwxyz"
	got := truncateName(long)
	assert.Len(t, got, 26)
	assert.Equal(t, long[:23]+"...", got)

	// Exactly at the limit stays untouched.
	exact := "abcdefghijklmnopqrstuvwxyz"
	assert.Equal(t, exact, truncateName(exact))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "10.00", formatAmount(decimal.NewFromInt(10)))
	assert.Equal(t, "2.50", formatAmount(decimal.RequireFromString("2.5")))
	assert.Equal(t, "0.33", formatAmount(decimal.RequireFromString("0.333")))
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+12.50", formatSigned(decimal.RequireFromString("12.5")))
	assert.Equal(t, "+0.00", formatSigned(decimal.Zero))
	assert.Equal(t, "-7.25", formatSigned(decimal.RequireFromString("-7.25")))
}

package handlers

import (
	"strings"

	"github.com/shopspring/decimal"
)

const maxNameLen = 26

// formatName title-cases a horse or track name, turning "/"-separated
// multiples into " & " lists. Empty input falls back to the placeholder.
func formatName(name, placeholder string) string {
	if strings.TrimSpace(name) == "" {
		return placeholder
	}

	parts := strings.Split(name, "/")
	for i, part := range parts {
		words := strings.Fields(strings.TrimSpace(part))
		for j, w := range words {
			r := []rune(w)
			words[j] = strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
		}
		parts[i] = strings.Join(words, " ")
	}
	return strings.Join(parts, " & ")
}

// truncateName shortens display names past the card width with an ellipsis.
func truncateName(name string) string {
	r := []rune(name)
	if len(r) > maxNameLen {
		return string(r[:maxNameLen-3]) + "..."
	}
	return name
}

// formatAmount renders a money value with fixed two decimals.
func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// formatSigned renders a profit/loss with an explicit "+" for non-negative
// values and the magnitude with "-" otherwise.
func formatSigned(d decimal.Decimal) string {
	if d.Sign() >= 0 {
		return "+" + d.StringFixed(2)
	}
	return "-" + d.Abs().StringFixed(2)
}

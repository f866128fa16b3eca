// Package betstatus maps free-text bet status strings to a canonical display
// label and color token. Classification is case- and whitespace-insensitive
// and never fails.
package betstatus

import "strings"

// Info is the display classification of a bet status.
type Info struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Classify normalizes the raw status and returns its display label and color
// token. Unrecognized statuses keep the raw text (or "Unknown" when empty)
// with a gray token.
func Classify(status string) Info {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "pending":
		return Info{Label: "Pending", Color: "yellow"}
	case "placed", "open":
		return Info{Label: "Placed", Color: "blue"}
	case "won", "win":
		return Info{Label: "Won", Color: "green"}
	case "lost", "lose":
		return Info{Label: "Lost", Color: "red"}
	case "void", "voided":
		return Info{Label: "Void", Color: "gray"}
	}

	label := strings.TrimSpace(status)
	if label == "" {
		label = "Unknown"
	}
	return Info{Label: label, Color: "gray"}
}

// IsPending reports whether the status classifies as pending. Outcome fields
// are only shown, and settlement only allowed, when this is false.
func IsPending(status string) bool {
	return Classify(status).Label == "Pending"
}

package betstatus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		status string
		label  string
		color  string
	}{
		{"pending", "pending", "Pending", "yellow"},
		{"pending uppercase with space", "PENDING ", "Pending", "yellow"},
		{"placed", "placed", "Placed", "blue"},
		{"open maps to placed", "open", "Placed", "blue"},
		{"won", "won", "Won", "green"},
		{"win maps to won", "win", "Won", "green"},
		{"lost", "lost", "Lost", "red"},
		{"lose maps to lost", "lose", "Lost", "red"},
		{"void", "void", "Void", "gray"},
		{"voided maps to void", "voided", "Void", "gray"},
		{"empty is unknown", "", "Unknown", "gray"},
		{"whitespace only is unknown", "   ", "Unknown", "gray"},
		{"unrecognized keeps raw text", "cashed out", "cashed out", "gray"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Classify(tt.status)
			assert.Equal(t, tt.label, info.Label)
			assert.Equal(t, tt.color, info.Color)
		})
	}
}

func TestClassifyNormalizationInvariance(t *testing.T) {
	variants := []string{"won", "WON", " Won ", "\twoN\n"}
	want := Classify("won")
	for _, v := range variants {
		assert.Equal(t, want, Classify(v), "variant %q", v)
	}
}

func TestIsPending(t *testing.T) {
	assert.True(t, IsPending("pending"))
	assert.True(t, IsPending(" PENDING "))
	assert.False(t, IsPending("won"))
	assert.False(t, IsPending(""))
	assert.False(t, IsPending("placed"))
}

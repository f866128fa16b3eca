package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		pw   string
		want Strength
	}{
		{"empty", "", Weak},
		{"short regardless of composition", "Ab1!x", Weak},
		{"seven chars all classes", "Abc123!", Weak},
		{"all four classes at nine chars", "Abc12345!", Strong},
		{"lower and digit pair at nine chars", "abcdefgh1", Weak},
		{"lower and digit pair at ten chars", "abcdefghi1", Medium},
		{"upper and digit pair at ten chars", "ABCDEFGHI1", Medium},
		{"upper and special pair at ten chars", "ABCDEFGHI!", Medium},
		{"single class long", "abcdefghijkl", Weak},
		{"lower and special is not a qualifying pair", "abcdefghij!", Weak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.pw))
		})
	}
}

func TestClassifyShortIsAlwaysWeak(t *testing.T) {
	// Anything under 8 characters is weak no matter what it contains.
	for _, pw := range []string{"A1b!", "Ab1!Ab2", "ZZZZ999", "a"} {
		assert.Equal(t, Weak, Classify(pw), "pw %q", pw)
	}
}

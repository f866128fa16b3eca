// Package password scores password strength for registration. There is a
// single policy: the length-gated medium rule, applied everywhere a password
// is accepted.
package password

import "unicode"

// Strength is a coarse password quality bucket.
type Strength string

const (
	Weak   Strength = "weak"
	Medium Strength = "medium"
	Strong Strength = "strong"
)

// Classify scores a password. Anything under 8 characters is weak regardless
// of composition. All four character classes make it strong. A qualifying
// pair of classes makes it medium only at 10 characters or more.
func Classify(pw string) Strength {
	if len(pw) < 8 {
		return Weak
	}

	var hasDigit, hasUpper, hasLower, hasSpecial bool
	for _, r := range pw {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		default:
			hasSpecial = true
		}
	}

	if hasDigit && hasUpper && hasLower && hasSpecial {
		return Strong
	}

	pair := (hasDigit && hasUpper) || (hasUpper && hasSpecial) || (hasLower && hasDigit)
	if pair && len(pw) >= 10 {
		return Medium
	}
	return Weak
}

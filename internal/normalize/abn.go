// Package normalize turns free-form user input into the canonical forms the
// application stores and displays: digits-only ABNs and Australian phone
// numbers, plus the email syntax check shared by both.
//
// Every function here is total over strings and safe for concurrent use.
package normalize

import "strings"

// ABN strips every non-digit character from raw. Length is not enforced.
func ABN(raw string) string {
	return digitsOnly(raw)
}

// FormatABN renders an ABN in the 2-3-3-3 grouping. Input that does not hold
// exactly 11 digits is returned trimmed but otherwise untouched.
func FormatABN(raw string) string {
	digits := digitsOnly(raw)
	if len(digits) != 11 {
		return strings.TrimSpace(raw)
	}
	return digits[:2] + " " + digits[2:5] + " " + digits[5:8] + " " + digits[8:]
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

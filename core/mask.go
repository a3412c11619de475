package core

import "strings"

// RedactedToken replaces a sensitive identifier that cannot be partially
// exposed because it carries fewer than four digits.
const RedactedToken = "[REDACTED]"

// MaskSSN redacts a social security number (or similar sensitive identifier)
// so that at most the last four digits survive. Empty input returns an empty
// string; input with fewer than four digits returns RedactedToken. The
// function is pure and never fails.
func MaskSSN(ssn string) string {
	if ssn == "" {
		return ""
	}
	var digits strings.Builder
	for _, r := range ssn {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) < 4 {
		return RedactedToken
	}
	return "XXX-XX-" + d[len(d)-4:]
}

// Package numeric provides the shared input normalization and formatting
// helpers used by the residue ledger and the shift matcher. User-editable
// numeric fields are kept as raw text so in-progress input (a trailing "."
// or an empty field) survives the edit cycle; these helpers decide what
// text is accepted and how it parses.
package numeric

import (
	"math"
	"strconv"
	"strings"
)

// NormalizeDecimal converts raw keystroke text into a canonical decimal
// string. A decimal comma is rewritten to a point before validation. The
// second return value is false when the text must be rejected (characters
// outside [0-9.] or more than one point), in which case the caller keeps
// the prior value.
func NormalizeDecimal(raw string) (string, bool) {
	s := strings.ReplaceAll(raw, ",", ".")
	dots := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.':
			dots++
			if dots > 1 {
				return "", false
			}
		default:
			return "", false
		}
	}
	return s, true
}

// NormalizeInteger validates raw text for an integer-only field. Digits
// only; the empty string is a valid transient value.
func NormalizeInteger(raw string) (string, bool) {
	for _, r := range raw {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return raw, true
}

// ParseDecimal parses canonical decimal text. Empty or in-progress text
// (for example a lone ".") parses to undefined, never to zero.
func ParseDecimal(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ParseInt parses integer-only field text.
func ParseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Percent renders a purity figure with two decimals, or "-" when the
// value is undefined.
func Percent(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Package lexer holds the small character-level helpers shared by the
// loader and decoder: comment stripping, whitespace trimming, and the
// literal/label validators that must run before any numeric conversion.
package lexer

import (
	"math"
	"strconv"
)

// StripComment removes everything from the first '#' onward, if any.
func StripComment(line string) string {
	if idx := indexByte(line, '#'); idx >= 0 {
		return line[:idx]
	}
	return line
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// TrimLeading removes a maximal prefix of space and tab characters.
func TrimLeading(line string) string {
	i := 0
	for i < len(line) && isBlank(line[i]) {
		i++
	}
	return line[i:]
}

// TrimTrailing removes a maximal suffix of space and tab characters.
func TrimTrailing(line string) string {
	i := len(line)
	for i > 0 && isBlank(line[i-1]) {
		i--
	}
	return line[:i]
}

// Trim removes leading and trailing space/tab.
func Trim(line string) string {
	return TrimTrailing(TrimLeading(line))
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}

// IsBlankRange reports whether every character of s is a space or tab.
// An empty string is considered blank.
func IsBlankRange(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isBlank(s[i]) {
			return false
		}
	}
	return true
}

// maxPositive and maxNegative are the decimal-digit strings of
// the signed 32-bit bounds, used to reject out-of-range literals by
// digit-length comparison before ever calling strconv.
const (
	maxPositive = "2147483647"
	maxNegative = "2147483648" // magnitude of math.MinInt32
)

// IsIntegerLiteral reports whether s is a legal signed 32-bit decimal
// literal: an optional leading '-', then one or more ASCII digits, with
// magnitude checked against the 32-bit bounds by digit-length comparison
// before any numeric conversion is attempted.
func IsIntegerLiteral(s string) bool {
	_, ok := ParseIntegerLiteral(s)
	return ok
}

// ParseIntegerLiteral validates and converts a signed 32-bit decimal
// literal. It returns false if s is not a legal literal or its magnitude
// exceeds the 32-bit signed range.
func ParseIntegerLiteral(s string) (int32, bool) {
	if s == "" {
		return 0, false
	}

	negative := false
	digits := s
	if s[0] == '-' {
		negative = true
		digits = s[1:]
	}
	if digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}

	limit := maxPositive
	if negative {
		limit = maxNegative
	}
	if !magnitudeInRange(digits, limit) {
		return 0, false
	}

	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	if value < math.MinInt32 || value > math.MaxInt32 {
		return 0, false
	}
	return int32(value), true
}

// magnitudeInRange compares digits (no sign, no leading zeros assumed
// away) against limit by length first and lexicographically second --
// the check the decoder must apply before conversion is ever attempted.
func magnitudeInRange(digits, limit string) bool {
	// Strip leading zeros for a fair length comparison.
	trimmed := digits
	for len(trimmed) > 1 && trimmed[0] == '0' {
		trimmed = trimmed[1:]
	}
	if len(trimmed) != len(limit) {
		return len(trimmed) < len(limit)
	}
	return trimmed <= limit
}

// IsLegalLabel reports whether s is a legal label: non-empty, first
// character not a digit, and every character ASCII alphanumeric.
func IsLegalLabel(s string) bool {
	if s == "" {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isAlphaNumeric(s[i]) {
			return false
		}
	}
	return true
}

func isAlphaNumeric(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

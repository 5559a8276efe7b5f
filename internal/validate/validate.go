package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ukrainian mobile number with country code, optional leading plus.
var rePhone = regexp.MustCompile(`^\+?380\d{9}$`)

// Phone strips all whitespace, checks the +380XXXXXXXXX shape and
// returns the number in canonical form with the leading plus.
func Phone(s string) (string, bool) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if !rePhone.MatchString(s) {
		return s, false
	}
	if !strings.HasPrefix(s, "+") {
		s = "+" + s
	}
	return s, true
}

// FullName requires at least 3 characters after trimming.
func FullName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, utf8.RuneCountInString(s) >= 3
}

// City requires at least 2 characters after trimming.
func City(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, utf8.RuneCountInString(s) >= 2
}

// Branch is the pickup-point identifier; any non-empty text is accepted.
func Branch(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// ProductName requires at least 2 characters after trimming.
func ProductName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, utf8.RuneCountInString(s) >= 2
}

// Qty parses a quantity, falling back to def on garbage; the cart layer
// applies the [1,99] clamp on top.
func Qty(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

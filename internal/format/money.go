// Package format renders user-facing values the way the storefront
// displays them.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Ukrainian)

// Money formats a UAH amount with Ukrainian digit grouping and no
// fraction digits, e.g. 12345.6 -> "12 346 грн".
func Money(v float64) string {
	return printer.Sprintf("%d грн", int64(math.Round(v)))
}

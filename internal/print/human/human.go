// Package human provides types that support parsing and formatting
// human-friendly representations of values in various units.
//
// The package only exposes type names that are not that common to find in Go
// programs (in our experience). For that reason, it can be interesting to
// import the package as '.' (dot) to inject the symbols in the namespace of the
// importer, especially in the common case where it's being used in the main
// package of a program, for example:
//
//	import (
//		. "github.com/Lucop1911/vlsm/internal/print/human"
//	)
//
// This can help improve code readability by importing constants in the package
// namespace, allowing constructs like:
//
//	type subnetRequest struct {
//		Name  string
//		Hosts Count
//	}
//	...
//	request := subnetRequest{
//		Name:  "engineering",
//		Hosts: 1.5 * K,
//	}
package human

import (
	"fmt"
	"strings"
	"unicode"
)

func trimSpaces(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// parseUnit splits a value from the unit letters that may follow it, so that
// "1.5K" and "1.5 K" both yield ("1.5", "K").
func parseUnit(s string) (head, unit string) {
	i := strings.LastIndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	if i < 0 {
		head = s
		return
	}

	head = trimSpaces(s[:i+1])
	unit = s[i+1:]
	return
}

// match reports whether s is a case-insensitive prefix of pattern, which is
// how unit names are recognized ("k", "K" both match "K").
func match(s, pattern string) bool {
	return len(s) <= len(pattern) && strings.EqualFold(s, pattern[:len(s)])
}

type suffix byte

func (c suffix) trim(s string) string {
	for len(s) > 0 && s[len(s)-1] == byte(c) {
		s = s[:len(s)-1]
	}
	return s
}

func (c suffix) match(s string) bool {
	return len(s) > 0 && s[len(s)-1] == byte(c)
}

func fabs(value float64) float64 {
	if value < 0 {
		return -value
	}
	return value
}

// ftoa formats value divided by scale, using fewer decimals as the scaled
// value grows and trimming insignificant trailing zeros.
func ftoa(value, scale float64) string {
	var format string

	if value == 0 {
		return "0"
	}

	if value < 0 {
		return "-" + ftoa(-value, scale)
	}

	switch {
	case (value / scale) >= 100:
		format = "%.0f"
	case (value / scale) >= 10:
		format = "%.1f"
	case scale > 1:
		format = "%.2f"
	default:
		format = "%.3f"
	}

	s := fmt.Sprintf(format, value/scale)
	if strings.Contains(s, ".") {
		s = suffix('0').trim(s)
		s = suffix('.').trim(s)
	}
	return s
}

func printError(verb rune, typ, val any) string {
	return fmt.Sprintf("%%!%c(%T=%v)", verb, typ, val)
}

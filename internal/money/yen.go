// Package money renders yen amounts for display.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Japanese)

// FormatYen renders n with thousands separators, e.g. ¥50,050 or -¥3,000.
func FormatYen(n int64) string {
	if n < 0 {
		return "-" + printer.Sprintf("¥%d", -n)
	}
	return printer.Sprintf("¥%d", n)
}

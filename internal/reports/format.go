package reports

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// The dashboard displays en-US USD alongside the raw decimal, so a frontend
// never has to reparse a formatted string.
var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders integer minor units as a grouped en-US dollar string,
// e.g. 123456789 -> "$1,234,567.89".
func FormatUSD(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	// The printer groups the dollar part; cents are plain zero-padded digits.
	return sign + usPrinter.Sprintf("$%d", minor/100) + fmt.Sprintf(".%02d", minor%100)
}

package common

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatMoney renders d as dollars with thousands separators, e.g. "$50,000.00".
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		sign, s = "-", rest
	}
	whole, cents, _ := strings.Cut(s, ".")
	return sign + "$" + groupThousands(whole) + "." + cents
}

// FormatWhole renders d rounded to whole units with separators, e.g. "50,000".
func FormatWhole(d decimal.Decimal) string {
	return printer.Sprintf("%d", d.Round(0).IntPart())
}

// groupThousands inserts commas into a string of digits.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

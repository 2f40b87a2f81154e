package locale

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyLabel is appended by FormatMoney.
const CurrencyLabel = "F CFA"

// FormatAmount rounds v to a whole number (half to even) and groups thousands
// with a space: 1234567.5 -> "1 234 568".
func FormatAmount(v float64) string {
	d := decimal.NewFromFloat(v).RoundBank(0)
	digits := d.Abs().String()

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(' ')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatMoney is FormatAmount followed by the currency label.
func FormatMoney(v float64) string {
	return FormatAmount(v) + " " + CurrencyLabel
}

// WholeUnits truncates a monetary value to the integer used for number words.
func WholeUnits(v float64) int64 {
	return decimal.NewFromFloat(v).Truncate(0).IntPart()
}

package locale

import (
	"fmt"
	"time"
)

// Language selects the month names and ordering of FormatLongDate.
type Language string

const (
	French  Language = "fr"
	English Language = "en"
)

var frenchMonths = [...]string{"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre"}

// FormatLongDate renders t without consulting the host locale.
// French: "5 mars 2026". English: "March 5, 2026". Unknown languages fall
// back to French, the language of every generated document.
func FormatLongDate(t time.Time, lang Language) string {
	switch lang {
	case English:
		return fmt.Sprintf("%s %d, %d", t.Month().String(), t.Day(), t.Year())
	default:
		return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
	}
}

// FrenchDate is FormatLongDate(t, French).
func FrenchDate(t time.Time) string {
	return FormatLongDate(t, French)
}

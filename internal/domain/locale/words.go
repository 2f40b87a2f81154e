// Package locale holds the host-independent text formatting used in quote
// and contract documents: French number words, money and long dates.
package locale

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	units = [...]string{"", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf"}
	teens = [...]string{"dix", "onze", "douze", "treize", "quatorze", "quinze", "seize",
		"dix-sept", "dix-huit", "dix-neuf"}
	tens = [...]string{"", "", "vingt", "trente", "quarante", "cinquante", "soixante",
		"soixante", "quatre-vingt", "quatre-vingt"}
)

// scales are the group words for 10^3k. Index 0 is the unit group.
var scales = [...]struct {
	word   string
	plural bool
}{
	{"", false},
	{"mille", false},
	{"million", true},
	{"milliard", true},
	{"billion", true},
	{"billiard", true},
	{"trillion", true},
}

// ToWords spells n as a lowercase French cardinal ("deux mille cinq cent").
func ToWords(n int64) string {
	if n == 0 {
		return "zéro"
	}
	if n < 0 {
		// -n overflows for MinInt64; spell the magnitude through uint64.
		return "moins " + spell(uint64(-(n+1))+1)
	}
	return spell(uint64(n))
}

// AmountInWords is ToWords with the first letter upper-cased, the form used
// at the start of a sentence in contracts.
func AmountInWords(n int64) string {
	return Capitalize(ToWords(n))
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func spell(n uint64) string {
	var groups []string
	for i := 0; n > 0; i++ {
		chunk := int(n % 1000)
		n /= 1000
		if chunk == 0 {
			continue
		}
		groups = append(groups, group(chunk, i))
	}
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return strings.Join(groups, " ")
}

func group(chunk, scale int) string {
	s := scales[scale]
	switch {
	case scale == 0:
		return below1000(chunk)
	case !s.plural:
		// "mille", never "un mille" nor "milles"
		if chunk == 1 {
			return s.word
		}
		return below1000(chunk) + " " + s.word
	case chunk > 1:
		return below1000(chunk) + " " + s.word + "s"
	default:
		return below1000(chunk) + " " + s.word
	}
}

func below1000(n int) string {
	h, r := n/100, n%100
	if h == 0 {
		return below100(r)
	}
	prefix := "cent"
	if h > 1 {
		prefix = units[h] + " cent"
	}
	if r == 0 {
		return prefix
	}
	return prefix + " " + below100(r)
}

func below100(n int) string {
	if n < 10 {
		return units[n]
	}
	if n < 20 {
		return teens[n-10]
	}
	t, u := n/10, n%10
	switch t {
	case 7:
		if u == 1 {
			return "soixante-et-onze"
		}
		return tens[t] + "-" + teens[u]
	case 9:
		return tens[t] + "-" + teens[u]
	}
	if u == 0 {
		return tens[t]
	}
	if u == 1 && t != 8 {
		return tens[t] + "-et-un"
	}
	return tens[t] + "-" + units[u]
}

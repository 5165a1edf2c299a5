// Package roman renders enchantment levels as roman numerals for display
// names, e.g. "Sharpness VII".
package roman

import (
	"fmt"
	"strings"
)

var numerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"},
	{900, "CM"},
	{500, "D"},
	{400, "CD"},
	{100, "C"},
	{90, "XC"},
	{50, "L"},
	{40, "XL"},
	{10, "X"},
	{9, "IX"},
	{5, "V"},
	{4, "IV"},
	{1, "I"},
}

// ToRoman converts a positive integer to a roman numeral. Values outside
// [1, 3999] fall back to decimal digits, matching how oversized enchantment
// levels are usually rendered.
func ToRoman(n int) string {
	if n < 1 || n > 3999 {
		return fmt.Sprintf("%d", n)
	}

	var b strings.Builder
	for _, num := range numerals {
		for n >= num.value {
			b.WriteString(num.symbol)
			n -= num.value
		}
	}
	return b.String()
}

var values = map[byte]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000,
}

// FromRoman parses a roman numeral. Returns an error for empty or malformed
// input; parsing is strict enough to reject nonsense but accepts any
// subtractive form ToRoman emits.
func FromRoman(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty roman numeral")
	}

	upper := strings.ToUpper(s)
	total := 0
	for i := 0; i < len(upper); i++ {
		v, ok := values[upper[i]]
		if !ok {
			return 0, fmt.Errorf("invalid roman numeral %q", s)
		}
		if i+1 < len(upper) {
			if next, ok := values[upper[i+1]]; ok && v < next {
				total -= v
				continue
			}
		}
		total += v
	}

	// Reject forms that do not round-trip, e.g. "IIII" or "VX".
	if ToRoman(total) != upper {
		return 0, fmt.Errorf("invalid roman numeral %q", s)
	}
	return total, nil
}

package tiss

import "strings"

// digitsOnly strips every non-digit rune from s.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCPF reports whether s, after punctuation is stripped, is an 11-digit
// CPF whose two modulo-11 check digits match. Sequences of a single repeated
// digit are rejected even though they satisfy the arithmetic.
func ValidCPF(s string) bool {
	d := digitsOnly(s)
	if len(d) != 11 {
		return false
	}
	if strings.Count(d, d[:1]) == 11 {
		return false
	}
	return cpfCheckDigit(d[:9], 10) == int(d[9]-'0') &&
		cpfCheckDigit(d[:10], 11) == int(d[10]-'0')
}

func cpfCheckDigit(digits string, weight int) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (weight - i)
	}
	r := 11 - sum%11
	if r >= 10 {
		return 0
	}
	return r
}

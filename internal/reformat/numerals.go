package reformat

import (
	"strconv"
	"strings"
)

const (
	nativeZero = '٠'
	nativeNine = '٩'
)

// ToWesternDigits replaces every Arabic-Indic digit with its ASCII digit.
func ToWesternDigits(s string) string {
	if !strings.ContainsFunc(s, isNativeDigit) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isNativeDigit(r) {
			b.WriteRune('0' + (r - nativeZero))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToNativeDigits renders n with Arabic-Indic digits.
func ToNativeDigits(n int) string {
	western := strconv.Itoa(n)
	var b strings.Builder
	b.Grow(len(western) * 2)
	for _, r := range western {
		if r >= '0' && r <= '9' {
			b.WriteRune(nativeZero + (r - '0'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isNativeDigit(r rune) bool {
	return r >= nativeZero && r <= nativeNine
}

package interview

import (
	"regexp"
	"unicode"
)

const minPhoneDigits = 9

var (
	emailRe = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\s\-()]{7,}\d`)
)

// FindEmail returns the first email address in s, or "".
func FindEmail(s string) string {
	return emailRe.FindString(s)
}

// FindPhone returns the first phone number in s, or "". A phone number is a
// run of digits and separators with an optional leading '+' carrying at
// least nine digits.
func FindPhone(s string) string {
	for _, m := range phoneRe.FindAllString(s, -1) {
		if countDigits(m) >= minPhoneDigits {
			return m
		}
	}
	return ""
}

func ValidEmail(s string) bool { return FindEmail(s) != "" }

func ValidPhone(s string) bool { return FindPhone(s) != "" }

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

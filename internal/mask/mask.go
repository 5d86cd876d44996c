// Package mask projects person records into redacted views for outbound
// notifications. The stored person is never touched; every masker is total
// over absent fields.
package mask

import (
	"strings"
)

// Email keeps the first and last character of the local part and the whole
// domain. Local parts of one or two characters are fully masked.
func Email(email string) string {
	user, domain, found := strings.Cut(email, "@")
	if !found || email == "" {
		return email
	}
	runes := []rune(user)
	if len(runes) <= 2 {
		return strings.Repeat("*", len(runes)) + "@" + domain
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1]) + "@" + domain
}

// Digits masks every digit except the last four, preserving any punctuation.
// Values with fewer than four digits are fully masked. Used for phone
// numbers and government id numbers.
func Digits(value string) string {
	total := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			total++
		}
	}
	if value == "" {
		return value
	}
	if total < 4 {
		return strings.Repeat("*", total)
	}

	var b strings.Builder
	seen := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			seen++
			if seen <= total-4 {
				b.WriteRune('*')
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NamePart keeps the first character and masks the remainder.
func NamePart(part string) string {
	if part == "" {
		return part
	}
	runes := []rune(part)
	return string(runes[0]) + strings.Repeat("*", len(runes)-1)
}

// AddressLine keeps the first character and replaces the remainder with a
// fixed token.
func AddressLine(line string) string {
	if line == "" {
		return line
	}
	runes := []rune(line)
	return string(runes[0]) + "***"
}

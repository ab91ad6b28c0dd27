package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Capitalize returns s with its first letter in upper case and the rest in lower case
// (e.g. "mr-mime" -> "Mr-mime", "CHARIZARD" -> "Charizard")
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}

// NormalizeName trims and lowercases a pokemon name for lookups
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

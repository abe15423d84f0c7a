package utils

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/unicode/norm"
)

// NormalizeString applies NFKC normalization and trims surrounding whitespace
func NormalizeString(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

// Similarity returns a ratio in [0, 1] derived from the Levenshtein distance,
// 1 meaning identical strings. The comparison is case sensitive.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	if longest == 0 {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

var yearRegex = regexp.MustCompile(`(?:19|20)\d{2}`)

// ExtractYear returns the last standalone 4-digit year in a release or file
// name and the byte offset where it starts. Release names put the year after
// the title, so "2001.A.Space.Odyssey.1968" yields 1968.
// Returns 0, -1 if no year is found.
func ExtractYear(title string) (int, int) {
	year, at := 0, -1
	for _, loc := range yearRegex.FindAllStringIndex(title, -1) {
		if isAlnumAt(title, loc[0]-1) || isAlnumAt(title, loc[1]) {
			continue
		}
		if n, err := strconv.Atoi(title[loc[0]:loc[1]]); err == nil {
			year, at = n, loc[0]
		}
	}
	return year, at
}

func isAlnumAt(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return false
	}
	c := s[i]
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// ParsePositiveInt parses an all-digit string into a positive integer.
// Anything else (empty, signs, spaces inside, zero) reports false.
func ParsePositiveInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !IsDigits(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// IsDigits reports whether s is non-empty and made of ASCII digits only
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

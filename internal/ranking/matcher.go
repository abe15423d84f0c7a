package ranking

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/opensubtitlesdev/service.subtitles.opensubtitles-com/internal/utils"
)

const separators = ".:;()[]{}\\/&€'`#@=$?!%+-_*^"

// Tokenize lowercases s and splits it on whitespace and punctuation
// commonly found in release names.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(separators, r)
	})
}

// Cost orders candidates; lower sorts first. The last element is the
// negated similarity and only breaks ties.
type Cost []float64

// Less compares costs lexicographically
func (c Cost) Less(other Cost) bool {
	for i := range c {
		if i >= len(other) {
			return false
		}
		if c[i] != other[i] {
			return c[i] < other[i]
		}
	}
	return len(c) < len(other)
}

// Matcher holds the vocabulary a playing file mentions, per category
type Matcher struct {
	filename string
	terms    [][]string
}

// NewMatcher tokenizes the base name of the playing file. A category's
// matched terms are the union of every synonym group that has at least
// one token in the name, in vocabulary order without duplicates.
func NewMatcher(playingFile string) *Matcher {
	var base string
	if playingFile != "" {
		base = strings.ToLower(filepath.Base(playingFile))
	}

	tokens := make(map[string]struct{})
	for _, tok := range Tokenize(base) {
		tokens[tok] = struct{}{}
	}

	m := &Matcher{filename: base, terms: make([][]string, len(Categories))}
	for i, category := range Categories {
		seen := make(map[string]struct{})
		for _, group := range category.Groups {
			if !groupPresent(group, tokens) {
				continue
			}
			for _, term := range group {
				if _, dup := seen[term]; dup {
					continue
				}
				seen[term] = struct{}{}
				m.terms[i] = append(m.terms[i], term)
			}
		}
	}
	return m
}

func groupPresent(group []string, tokens map[string]struct{}) bool {
	for _, term := range group {
		if _, ok := tokens[term]; ok {
			return true
		}
	}
	return false
}

// Terms returns the matched terms for the named category
func (m *Matcher) Terms(category string) []string {
	for i, c := range Categories {
		if c.Name == category {
			return m.terms[i]
		}
	}
	return nil
}

// Cost scores a release label against the playing file
func (m *Matcher) Cost(release string) Cost {
	label := strings.ToLower(release)

	cost := make(Cost, 0, len(Categories)+1)
	for i, category := range Categories {
		hits := 0
		for _, term := range m.terms[i] {
			if strings.Contains(label, term) {
				hits++
			}
		}
		cost = append(cost, -category.Weight*float64(hits))
	}
	return append(cost, -utils.Similarity(label, m.filename))
}

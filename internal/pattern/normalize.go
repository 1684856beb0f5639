package pattern

import (
	"regexp"
	"strings"
)

var (
	datePattern  = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}([/-]\d{2,4})?`)
	refPattern   = regexp.MustCompile(`\b\d{4,}\b`)
	checkPattern = regexp.MustCompile(`(?i)check\s*#?\s*\d+`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// Normalize reduces a description to the form patterns are stored under:
// lowercased, dates removed, long digit runs and check numbers replaced by
// a reference marker, whitespace collapsed.
func Normalize(description string) string {
	s := strings.ToLower(description)
	s = datePattern.ReplaceAllString(s, "")
	s = refPattern.ReplaceAllString(s, "#REF#")
	s = checkPattern.ReplaceAllString(s, "CHECK #REF#")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// significantWords returns the words of s longer than three bytes.
func significantWords(s string) []string {
	var words []string
	for _, w := range strings.Split(s, " ") {
		if len(w) > 3 {
			words = append(words, w)
		}
	}
	return words
}

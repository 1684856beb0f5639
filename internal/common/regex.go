package common

import (
	"fmt"
	"regexp"
	"strings"
)

// CompileInsensitive compiles pattern as a case-insensitive regular expression.
// An empty pattern yields a nil regexp and no error.
func CompileInsensitive(pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, nil
	}
	if !strings.HasPrefix(pattern, "(?i)") {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", pattern, err)
	}
	return re, nil
}

// MatchRegex compiles and matches a regex pattern against a string.
// Returns an error if the pattern is invalid.
func MatchRegex(pattern, text string) (bool, error) {
	re, err := CompileInsensitive(pattern)
	if err != nil {
		return false, err
	}
	if re == nil {
		return false, nil
	}
	return re.MatchString(text), nil
}

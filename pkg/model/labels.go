package model

import (
	"regexp"
	"strings"
)

var labelSplitPattern = regexp.MustCompile(`[_\-\s]+`)

// DefaultLabeler converts a field or entity name into a human-friendly label,
// splitting on underscores, dashes and camelCase boundaries.
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	var segments []string
	for _, word := range labelSplitPattern.Split(name, -1) {
		if word == "" {
			continue
		}
		// Camel splitting can yield several words; each gets its own
		// title casing.
		for _, part := range strings.Split(splitCamelWord(word), " ") {
			segments = append(segments, titleWord(part))
		}
	}
	return strings.TrimSpace(strings.Join(segments, " "))
}

func splitCamelWord(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && camelBoundary(rune(input[i-1]), r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func camelBoundary(prev, r rune) bool {
	isUpper := func(c rune) bool { return c >= 'A' && c <= 'Z' }
	isLower := func(c rune) bool { return c >= 'a' && c <= 'z' }
	isDigit := func(c rune) bool { return c >= '0' && c <= '9' }
	isLetter := func(c rune) bool { return isUpper(c) || isLower(c) }

	return (isLower(prev) && isUpper(r)) ||
		(isLetter(prev) && isDigit(r)) ||
		(isDigit(prev) && isLetter(r))
}

func titleWord(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

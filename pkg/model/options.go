package model

import (
	"sort"
	"strings"
)

// SearchOptions filters an option list by case-insensitive substring match
// against each option's label (falling back to its value). Prefix matches
// sort ahead of interior matches; ties keep lexical order. The result never
// exceeds limit. An empty query returns the first limit options so capped
// dropdowns still show something before the user types.
func SearchOptions(options []Option, query string, limit int) []Option {
	if limit <= 0 || len(options) == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if len(options) <= limit {
			return append([]Option{}, options...)
		}
		return append([]Option{}, options[:limit]...)
	}

	q := strings.ToLower(query)
	type match struct {
		option   Option
		isPrefix bool
	}
	matches := make([]match, 0, 32)
	for _, option := range options {
		haystack := strings.ToLower(option.DisplayLabel())
		if !strings.Contains(haystack, q) {
			continue
		}
		matches = append(matches, match{
			option:   option,
			isPrefix: strings.HasPrefix(haystack, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].option.DisplayLabel() < matches[j].option.DisplayLabel()
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Option, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.option)
	}
	return out
}

// ExactMatch finds the option whose label or value equals the typed text,
// ignoring case and surrounding whitespace. The combobox create flow uses
// this to decide whether typed input is a selection or a new value.
func ExactMatch(options []Option, text string) (Option, bool) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return Option{}, false
	}
	for _, option := range options {
		if strings.ToLower(strings.TrimSpace(option.Value)) == needle {
			return option, true
		}
		if option.Label != "" && strings.ToLower(strings.TrimSpace(option.Label)) == needle {
			return option, true
		}
	}
	return Option{}, false
}

// OptionByValue looks an option up by its stored value.
func OptionByValue(options []Option, value string) (Option, bool) {
	for _, option := range options {
		if option.Value == value {
			return option, true
		}
	}
	return Option{}, false
}

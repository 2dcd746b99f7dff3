package specialties

import (
	"sort"
	"strings"

	"github.com/goliatone/go-medforms/pkg/model"
)

// Search filters the specialty list by case-insensitive substring match.
// Prefix matches sort before interior matches; ties sort alphabetically.
func Search(list []string, query string, limit int, opts Options) []string {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		if opts.EmptySearchMode != EmptySearchTop {
			return nil
		}
		// The pre-typing dropdown shows the first page of the raw list.
		if len(list) > limit {
			list = list[:limit]
		}
		return append([]string{}, list...)
	}

	var prefix, interior []string
	for _, name := range list {
		lower := strings.ToLower(name)
		switch {
		case strings.HasPrefix(lower, query):
			prefix = append(prefix, name)
		case strings.Contains(lower, query):
			interior = append(interior, name)
		}
	}
	sort.Strings(prefix)
	sort.Strings(interior)

	out := append(prefix, interior...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SearchOptions runs Search and wraps the results as form options.
func SearchOptions(list []string, query string, limit int, opts Options) []model.Option {
	results := Search(list, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]model.Option, 0, len(results))
	for _, name := range results {
		out = append(out, model.Option{Value: name, Label: name})
	}
	return out
}

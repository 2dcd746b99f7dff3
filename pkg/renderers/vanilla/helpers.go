package vanilla

import "strings"

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "mf-" + trimmed
}

func sanitizeClassList(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		// Reserved prefix: callers cannot smuggle chrome classes in.
		if strings.HasPrefix(token, "mf-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

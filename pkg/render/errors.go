package render

import (
	"strings"

	"github.com/goliatone/go-medforms/pkg/model"
)

// ErrorMapping splits a server error payload into field-level and form-level
// messages keyed by the field names used throughout the render pipeline.
type ErrorMapping struct {
	Fields map[string]string
	Form   []string
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload routes server error messages onto definition fields.
// Messages keyed by a name the definition does not declare become form-level
// errors so they are not lost; when a field receives multiple messages the
// first survives.
func MapErrorPayload(def model.FormDefinition, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{}
	if len(payload) == 0 {
		return mapping
	}

	known := make(map[string]struct{}, len(def.Fields))
	for _, field := range def.Fields {
		known[field.Name] = struct{}{}
	}

	fields := make(map[string]string)
	for rawName, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		name := strings.TrimSpace(rawName)
		if _, ok := known[name]; !ok || isFormLevelKey(name) {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		if _, taken := fields[name]; !taken {
			fields[name] = normalized[0]
		}
		if len(normalized) > 1 {
			mapping.Form = append(mapping.Form, normalized[1:]...)
		}
	}

	if len(fields) > 0 {
		mapping.Fields = fields
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func isFormLevelKey(name string) bool {
	switch strings.ToLower(name) {
	case "", "_form", "form", "base", "non_field_errors", "*":
		return true
	}
	return false
}

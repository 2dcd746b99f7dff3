package form

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-medforms/pkg/dates"
	"github.com/goliatone/go-medforms/pkg/model"
)

// Normalize coerces the raw submitted representation of one field into its
// canonical typed value, wrapped in a ChangeEvent. Raw values arrive as the
// string slices an HTML form post produces. Coercion failures degrade: the
// event still carries the canonical empty value and the error describes what
// was rejected, so a bad keystroke never aborts a whole submission.
func Normalize(field model.Field, raw []string) (ChangeEvent, error) {
	first := ""
	if len(raw) > 0 {
		first = raw[0]
	}

	switch field.Type {
	case model.TypeText, model.TypeEmail, model.TypeTel, model.TypeURL,
		model.TypeTextarea, model.TypeSelect, model.TypeAutocomplete,
		model.TypeCombobox:
		return StringChange(field.Name, first), nil

	case model.TypeNumber:
		trimmed := strings.TrimSpace(first)
		if trimmed == "" {
			return ClearedNumber(field.Name), nil
		}
		value, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return ClearedNumber(field.Name), fmt.Errorf("form: field %q: not a number: %q", field.Name, first)
		}
		return NumberChange(field.Name, value), nil

	case model.TypeDate:
		trimmed := strings.TrimSpace(first)
		if trimmed == "" {
			return StringChange(field.Name, ""), nil
		}
		if _, err := dates.Parse(trimmed); err != nil {
			return StringChange(field.Name, ""), fmt.Errorf("form: field %q: %w", field.Name, err)
		}
		return StringChange(field.Name, trimmed), nil

	case model.TypeRating:
		trimmed := strings.TrimSpace(first)
		if trimmed == "" {
			return ChangeEvent{Name: field.Name, Value: "", Kind: model.TypeRating}, nil
		}
		value, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return ChangeEvent{Name: field.Name, Value: "", Kind: model.TypeRating},
				fmt.Errorf("form: field %q: not a rating: %q", field.Name, first)
		}
		return ChangeEvent{Name: field.Name, Value: clampRating(value), Kind: model.TypeRating}, nil

	case model.TypeCheckbox:
		return BoolChange(field.Name, truthy(first)), nil

	case model.TypeTags:
		limit := field.TagLimit()
		tags := make([]string, 0, len(raw))
		for _, entry := range raw {
			tag := strings.TrimSpace(entry)
			if tag == "" {
				continue
			}
			tags = append(tags, tag)
			if len(tags) == limit {
				break
			}
		}
		return TagsChange(field.Name, tags), nil

	case model.TypeDivider:
		// Dividers carry no value.
		return ChangeEvent{Name: field.Name, Kind: model.TypeDivider}, nil

	default:
		return ChangeEvent{}, fmt.Errorf("form: field %q has unknown type %q", field.Name, field.Type)
	}
}

// DecodeValues normalizes a whole submission against a field list. The first
// return holds every field's canonical value; the second collects per-field
// coercion messages for inline display. Fields absent from the submission get
// their canonical empty value except checkboxes, which an HTML post omits
// when unchecked and therefore decode to false.
func DecodeValues(fields []model.Field, submitted url.Values) (map[string]any, map[string]string) {
	values := make(map[string]any, len(fields))
	problems := make(map[string]string)

	for _, field := range fields {
		if field.Type == model.TypeDivider {
			continue
		}
		raw, ok := submitted[field.Name]
		if !ok {
			if field.Type == model.TypeCheckbox {
				values[field.Name] = false
			}
			continue
		}
		event, err := Normalize(field, raw)
		if err != nil {
			problems[field.Name] = err.Error()
		}
		values[field.Name] = event.Value
	}

	if len(problems) == 0 {
		problems = nil
	}
	return values, problems
}

// clampRating snaps a rating onto the 0-5 half-point scale.
func clampRating(value float64) float64 {
	snapped := math.Round(value*2) / 2
	if snapped < 0 {
		return 0
	}
	if snapped > 5 {
		return 5
	}
	return snapped
}

func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes", "checked":
		return true
	default:
		return false
	}
}

package dates

import "strings"

const (
	endSuffix   = "_end_date"
	startSuffix = "_start_date"
)

// StartSiblings returns the field names that may hold the start counterpart
// of an end-date field, in lookup order. Names follow the convention used by
// the entity configurations: "<prefix>_end_date" pairs with
// "<prefix>_start_date", and the literal "end_date" pairs with "onset_date"
// then "start_date". Non end-date names have no siblings.
func StartSiblings(name string) []string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "end_date" {
		return []string{"onset_date", "start_date"}
	}
	if strings.HasSuffix(trimmed, endSuffix) {
		prefix := strings.TrimSuffix(trimmed, endSuffix)
		return []string{prefix + startSuffix}
	}
	return nil
}

// EffectiveMin computes the minimum-date bound for a field. When the field is
// an end-date by naming convention and a sibling start value is present and
// parses, that value wins over the statically configured bound. Otherwise the
// static bound applies unchanged.
func EffectiveMin(name string, values map[string]any, static Bound) Bound {
	for _, sibling := range StartSiblings(name) {
		raw, ok := values[sibling]
		if !ok {
			continue
		}
		str, ok := raw.(string)
		if !ok || strings.TrimSpace(str) == "" {
			continue
		}
		if t, err := Parse(str); err == nil {
			return At(t)
		}
	}
	return static
}

// Package form owns the state of one open form instance: the normalized
// change-event shape every control emits, the value store, and the submit
// orchestration. Every control, whatever its native representation, funnels
// through ChangeEvent so downstream concerns (dirty tracking, payload
// construction, visual-state hooks) see one shape.
package form

import "github.com/goliatone/go-medforms/pkg/model"

// ChangeEvent is the normalized change shape. Value is a string for text-like
// and date fields, float64 for numbers and ratings, bool for checkboxes, and
// []string for tags; a cleared numeric field carries the empty string, never
// NaN or nil.
type ChangeEvent struct {
	Name    string          `json:"name"`
	Value   any             `json:"value"`
	Kind    model.FieldType `json:"type,omitempty"`
	Checked bool            `json:"checked,omitempty"`
}

// StringChange builds a change event for text-like, select and date fields.
func StringChange(name, value string) ChangeEvent {
	return ChangeEvent{Name: name, Value: value}
}

// NumberChange builds a change event carrying a numeric value.
func NumberChange(name string, value float64) ChangeEvent {
	return ChangeEvent{Name: name, Value: value, Kind: model.TypeNumber}
}

// ClearedNumber builds the event a numeric field emits when emptied: the
// canonical empty value is "", not zero.
func ClearedNumber(name string) ChangeEvent {
	return ChangeEvent{Name: name, Value: "", Kind: model.TypeNumber}
}

// BoolChange builds a checkbox change event. The value is always a bool.
func BoolChange(name string, value bool) ChangeEvent {
	return ChangeEvent{Name: name, Value: value, Kind: model.TypeCheckbox, Checked: value}
}

// TagsChange builds a change event carrying the whole tag list.
func TagsChange(name string, tags []string) ChangeEvent {
	return ChangeEvent{Name: name, Value: append([]string(nil), tags...), Kind: model.TypeTags}
}

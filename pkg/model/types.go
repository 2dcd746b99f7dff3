package model

import (
	"github.com/goliatone/go-medforms/pkg/dates"
)

// FieldType tags a field with its rendering and normalisation behaviour. The
// set is closed: an unrecognised value is a configuration error, surfaced as
// a warning by the renderer and never a panic.
type FieldType string

const (
	TypeText         FieldType = "text"
	TypeEmail        FieldType = "email"
	TypeTel          FieldType = "tel"
	TypeURL          FieldType = "url"
	TypeTextarea     FieldType = "textarea"
	TypeNumber       FieldType = "number"
	TypeSelect       FieldType = "select"
	TypeAutocomplete FieldType = "autocomplete"
	TypeCombobox     FieldType = "combobox"
	TypeDate         FieldType = "date"
	TypeRating       FieldType = "rating"
	TypeCheckbox     FieldType = "checkbox"
	TypeDivider      FieldType = "divider"
	TypeTags         FieldType = "tags"
)

// Types returns every member of the closed field-type set, in a stable order.
// Renderer tests iterate this list so a type added without a handler fails
// the build's test run rather than silently rendering nothing.
func Types() []FieldType {
	return []FieldType{
		TypeText, TypeEmail, TypeTel, TypeURL, TypeTextarea,
		TypeNumber, TypeSelect, TypeAutocomplete, TypeCombobox,
		TypeDate, TypeRating, TypeCheckbox, TypeDivider, TypeTags,
	}
}

// Valid reports whether t belongs to the closed set.
func (t FieldType) Valid() bool {
	switch t {
	case TypeText, TypeEmail, TypeTel, TypeURL, TypeTextarea,
		TypeNumber, TypeSelect, TypeAutocomplete, TypeCombobox,
		TypeDate, TypeRating, TypeCheckbox, TypeDivider, TypeTags:
		return true
	}
	return false
}

// TextLike reports whether the type stores a plain string entered through a
// single or multi line text control.
func (t FieldType) TextLike() bool {
	switch t {
	case TypeText, TypeEmail, TypeTel, TypeURL, TypeTextarea:
		return true
	}
	return false
}

// Option is one selectable value for enumerable field types.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// DisplayLabel returns the label when present, falling back to the value.
func (o Option) DisplayLabel() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// DefaultMaxTags bounds the tag-input field when a configuration does not
// set its own limit.
const DefaultMaxTags = 15

// Field is the author-time configuration for one form input. Instances are
// built once per entity type and treated as immutable at runtime.
type Field struct {
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Description string    `json:"description,omitempty"`
	Required    bool      `json:"required,omitempty"`

	MinLength int      `json:"minLength,omitempty"`
	MaxLength int      `json:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	MinRows   int      `json:"minRows,omitempty"`
	MaxRows   int      `json:"maxRows,omitempty"`
	MaxTags   int      `json:"maxTags,omitempty"`

	// Options holds the static option list. DynamicOptions instead names a
	// key into the runtime-supplied options map for server-populated lists
	// such as practitioners or specialties.
	Options        []Option `json:"options,omitempty"`
	DynamicOptions string   `json:"dynamicOptions,omitempty"`

	// GridColumn is the explicit layout span out of the active column
	// budget. Zero means "use the type default".
	GridColumn int `json:"gridColumn,omitempty"`

	MinDate dates.Bound `json:"minDate,omitempty"`
	MaxDate dates.Bound `json:"maxDate,omitempty"`

	Metadata map[string]string `json:"metadata,omitempty"`
}

// TagLimit returns the effective tag bound for a tags field.
func (f Field) TagLimit() int {
	if f.MaxTags > 0 {
		return f.MaxTags
	}
	return DefaultMaxTags
}

// DisplayLabel returns the configured label, deriving one from the field
// name when absent.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return DefaultLabeler(f.Name)
}

// FormDefinition is the top-level unit renderers consume: one entity's
// ordered field list plus presentation metadata.
type FormDefinition struct {
	Entity      string            `json:"entity"`
	Title       string            `json:"title,omitempty"`
	Endpoint    string            `json:"endpoint,omitempty"`
	Method      string            `json:"method,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// DisplayTitle returns the configured title, deriving one from the entity
// name when absent.
func (d FormDefinition) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return DefaultLabeler(d.Entity)
}

// EffectiveMethod returns the configured HTTP method, defaulting to POST.
func (d FormDefinition) EffectiveMethod() string {
	if d.Method != "" {
		return d.Method
	}
	return "POST"
}

// FieldByName finds a field in the definition. The second return is false
// when no field carries that name.
func (d FormDefinition) FieldByName(name string) (Field, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

package openapi

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-medforms/pkg/model"
)

// extensionKey namespaces the per-property overrides this package honours.
// The value is an object with optional keys: type, dynamicOptions,
// placeholder, gridColumn.
const extensionKey = "x-medforms"

// Fields maps the named component schema onto form fields. Property names
// are processed in sorted order so generated forms are stable across loads.
// Properties that cannot be represented as a field (nested objects, arrays
// of objects) are skipped with a log entry.
func (d *Document) Fields(name string) ([]model.Field, error) {
	ref, err := d.schema(name)
	if err != nil {
		return nil, err
	}
	schema := ref.Value
	if len(schema.Properties) == 0 {
		return nil, fmt.Errorf("openapi: schema %q has no properties", name)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, prop := range schema.Required {
		required[prop] = true
	}

	props := make([]string, 0, len(schema.Properties))
	for prop := range schema.Properties {
		props = append(props, prop)
	}
	sort.Strings(props)

	fields := make([]model.Field, 0, len(props))
	for _, prop := range props {
		propRef := schema.Properties[prop]
		if propRef == nil || propRef.Value == nil {
			d.logger.Warn().Str("schema", name).Str("property", prop).
				Msg("unresolved property skipped")
			continue
		}
		field, ok := d.mapProperty(prop, propRef.Value)
		if !ok {
			d.logger.Warn().Str("schema", name).Str("property", prop).
				Str("type", schemaType(propRef.Value)).
				Msg("unsupported property skipped")
			continue
		}
		field.Required = required[prop]
		fields = append(fields, field)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("openapi: schema %q yielded no fields", name)
	}
	return fields, nil
}

// Definition builds a full form definition for the named component schema.
// The entity name is the snake_case form of the schema name.
func (d *Document) Definition(name string) (model.FormDefinition, error) {
	fields, err := d.Fields(name)
	if err != nil {
		return model.FormDefinition{}, err
	}
	ref, _ := d.schema(name)
	def := model.FormDefinition{
		Entity: snakeCase(name),
		Fields: fields,
	}
	if ref.Value.Title != "" {
		def.Title = ref.Value.Title
	}
	if ref.Value.Description != "" {
		def.Description = ref.Value.Description
	}
	return def, nil
}

func (d *Document) mapProperty(name string, schema *openapi3.Schema) (model.Field, bool) {
	field := model.Field{
		Name:        name,
		Description: schema.Description,
	}

	switch schemaType(schema) {
	case "string":
		field.Type = stringFieldType(schema)
		if field.Type == model.TypeSelect {
			field.Options = enumOptions(schema.Enum)
		}
		field.MinLength = int(schema.MinLength)
		if schema.MaxLength != nil {
			field.MaxLength = int(*schema.MaxLength)
		}
	case "number", "integer":
		field.Type = model.TypeNumber
		if schema.Min != nil {
			value := *schema.Min
			field.Min = &value
		}
		if schema.Max != nil {
			value := *schema.Max
			field.Max = &value
		}
	case "boolean":
		field.Type = model.TypeCheckbox
	case "array":
		if schema.Items == nil || schema.Items.Value == nil ||
			schemaType(schema.Items.Value) != "string" {
			return model.Field{}, false
		}
		field.Type = model.TypeTags
		if schema.MaxItems != nil {
			field.MaxTags = int(*schema.MaxItems)
		}
	default:
		return model.Field{}, false
	}

	applyOverrides(&field, schema.Extensions)
	return field, true
}

// stringFieldType picks the field type for a string property from its
// format and constraints. Enums win over formats.
func stringFieldType(schema *openapi3.Schema) model.FieldType {
	if len(schema.Enum) > 0 {
		return model.TypeSelect
	}
	switch schema.Format {
	case "email":
		return model.TypeEmail
	case "date":
		return model.TypeDate
	case "tel", "phone":
		return model.TypeTel
	case "uri", "url":
		return model.TypeURL
	}
	if schema.MaxLength != nil && *schema.MaxLength > 255 {
		return model.TypeTextarea
	}
	return model.TypeText
}

func enumOptions(enum []any) []model.Option {
	options := make([]model.Option, 0, len(enum))
	for _, raw := range enum {
		value, ok := raw.(string)
		if !ok || value == "" {
			continue
		}
		options = append(options, model.Option{
			Value: value,
			Label: model.DefaultLabeler(value),
		})
	}
	return options
}

// applyOverrides folds the x-medforms extension object into the field.
// Unknown keys and mistyped values are ignored.
func applyOverrides(field *model.Field, extensions map[string]any) {
	raw, ok := extensions[extensionKey].(map[string]any)
	if !ok || len(raw) == 0 {
		return
	}
	if value, ok := raw["type"].(string); ok {
		fieldType := model.FieldType(value)
		if fieldType.Valid() {
			field.Type = fieldType
		}
	}
	if value, ok := raw["dynamicOptions"].(string); ok && value != "" {
		field.DynamicOptions = value
	}
	if value, ok := raw["placeholder"].(string); ok && value != "" {
		field.Placeholder = value
	}
	if value, ok := raw["gridColumn"].(float64); ok && value > 0 {
		field.GridColumn = int(value)
	}
}

func schemaType(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return ""
	}
	values := schema.Type.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// snakeCase turns a PascalCase schema name into the entity naming the
// catalog uses, e.g. "LabResult" becomes "lab_result".
func snakeCase(name string) string {
	var builder strings.Builder
	builder.Grow(len(name) + 4)
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				builder.WriteByte('_')
			}
			builder.WriteRune(unicode.ToLower(r))
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

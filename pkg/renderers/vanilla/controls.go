package vanilla

import (
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-medforms/pkg/dates"
	"github.com/goliatone/go-medforms/pkg/model"
)

const (
	// selectCap limits how many options a select emits once the full list
	// crosses selectCapThreshold; the rest stay reachable through search.
	selectCap          = 50
	selectCapThreshold = 100

	defaultTextareaRows = 3
)

func (r *fieldRenderer) textControl(field model.Field) string {
	var builder strings.Builder

	builder.WriteString(`<input type="`)
	builder.WriteString(inputType(field.Type))
	builder.WriteString(`"`)
	writeCommonAttrs(&builder, field)
	if field.Type == model.TypeTel {
		builder.WriteString(` inputmode="tel"`)
	}
	if field.MinLength > 0 {
		fmt.Fprintf(&builder, ` minlength="%d"`, field.MinLength)
	}
	if field.MaxLength > 0 {
		fmt.Fprintf(&builder, ` maxlength="%d"`, field.MaxLength)
	}
	if value := r.stringValue(field.Name); value != "" {
		writeAttr(&builder, "value", value)
	}
	builder.WriteString(` class="mf-input">`)
	return builder.String()
}

func inputType(t model.FieldType) string {
	switch t {
	case model.TypeEmail:
		return "email"
	case model.TypeTel:
		return "tel"
	case model.TypeURL:
		return "url"
	default:
		return "text"
	}
}

func (r *fieldRenderer) textareaControl(field model.Field) string {
	var builder strings.Builder

	rows := field.MinRows
	if rows <= 0 {
		rows = defaultTextareaRows
	}

	builder.WriteString(`<textarea`)
	writeCommonAttrs(&builder, field)
	fmt.Fprintf(&builder, ` rows="%d"`, rows)
	if field.MaxRows > 0 {
		fmt.Fprintf(&builder, ` data-max-rows="%d"`, field.MaxRows)
	}
	if field.MaxLength > 0 {
		fmt.Fprintf(&builder, ` maxlength="%d"`, field.MaxLength)
	}
	builder.WriteString(` class="mf-textarea">`)
	builder.WriteString(html.EscapeString(r.stringValue(field.Name)))
	builder.WriteString(`</textarea>`)
	return builder.String()
}

func (r *fieldRenderer) numberControl(field model.Field) string {
	var builder strings.Builder

	builder.WriteString(`<input type="number"`)
	writeCommonAttrs(&builder, field)
	if field.Min != nil {
		writeAttr(&builder, "min", formatNumber(*field.Min))
	}
	if field.Max != nil {
		writeAttr(&builder, "max", formatNumber(*field.Max))
	}
	builder.WriteString(` step="any"`)
	if value := r.stringValue(field.Name); value != "" {
		writeAttr(&builder, "value", value)
	}
	builder.WriteString(` class="mf-input">`)
	return builder.String()
}

func (r *fieldRenderer) selectControl(field model.Field) string {
	var builder strings.Builder

	full := r.options.OptionsFor(field)
	current := r.stringValue(field.Name)
	if current != "" {
		if _, ok := model.OptionByValue(full, current); !ok {
			r.logger.Debug().
				Str("field", field.Name).
				Str("value", current).
				Msg("prefill value not among options, rendering unselected")
			current = ""
		}
	}

	visible := full
	capped := false
	if len(full) > selectCapThreshold {
		limit := r.options.Pressure.OptionCap(selectCap)
		if len(visible) > limit {
			visible = visible[:limit]
			capped = true
		}
		// The selected option must survive the cap.
		if current != "" {
			if _, shown := model.OptionByValue(visible, current); !shown {
				if opt, ok := model.OptionByValue(full, current); ok {
					visible = append(append([]model.Option{}, visible...), opt)
				}
			}
		}
	}

	loading := r.options.Loading(field)

	builder.WriteString(`<select`)
	writeCommonAttrs(&builder, field)
	if capped {
		fmt.Fprintf(&builder, ` data-searchable="true" data-option-total="%d"`, len(full))
	}
	if loading {
		builder.WriteString(` disabled data-loading="true"`)
	}
	builder.WriteString(` class="mf-select">` + "\n")

	placeholder := field.Placeholder
	if placeholder == "" {
		placeholder = "Select " + field.DisplayLabel()
	}
	if loading {
		placeholder = loadingMessage(field)
	}
	builder.WriteString(`    <option value="">`)
	builder.WriteString(html.EscapeString(placeholder))
	builder.WriteString("</option>\n")

	for _, option := range visible {
		builder.WriteString(`    <option value="`)
		builder.WriteString(html.EscapeString(option.Value))
		builder.WriteString(`"`)
		if current != "" && option.Value == current {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(option.DisplayLabel()))
		builder.WriteString("</option>\n")
	}

	builder.WriteString(`</select>`)
	return builder.String()
}

func (r *fieldRenderer) autocompleteControl(field model.Field) string {
	return r.listInput(field, nil)
}

// comboboxControl is the create-capable variant: the runtime watches the
// input against the datalist and offers "Add <text>" when nothing matches.
func (r *fieldRenderer) comboboxControl(field model.Field) string {
	extra := map[string]string{
		"data-combobox":      "true",
		"data-create-label":  "Add",
		"data-create-target": field.Name,
	}
	return r.listInput(field, extra)
}

func (r *fieldRenderer) listInput(field model.Field, extra map[string]string) string {
	var builder strings.Builder

	listID := controlID(field.Name) + "-list"

	loading := r.options.Loading(field)
	if loading {
		field.Placeholder = loadingMessage(field)
	}

	builder.WriteString(`<input type="text"`)
	writeCommonAttrs(&builder, field)
	writeAttr(&builder, "list", listID)
	if value := r.stringValue(field.Name); value != "" {
		writeAttr(&builder, "value", value)
	}
	for _, key := range sortedKeys(extra) {
		writeAttr(&builder, key, extra[key])
	}
	if loading {
		builder.WriteString(` disabled data-loading="true"`)
	}
	builder.WriteString(` autocomplete="off" class="mf-input">` + "\n")

	builder.WriteString(`<datalist id="`)
	builder.WriteString(html.EscapeString(listID))
	builder.WriteString(`">` + "\n")
	for _, option := range r.options.OptionsFor(field) {
		builder.WriteString(`    <option value="`)
		builder.WriteString(html.EscapeString(option.Value))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(option.DisplayLabel()))
		builder.WriteString("</option>\n")
	}
	builder.WriteString(`</datalist>`)
	return builder.String()
}

func (r *fieldRenderer) dateControl(field model.Field) string {
	var builder strings.Builder

	builder.WriteString(`<input type="date"`)
	writeCommonAttrs(&builder, field)

	minBound := dates.EffectiveMin(field.Name, r.options.Values, field.MinDate)
	if minDate, ok := minBound.Resolve(); ok {
		writeAttr(&builder, "min", dates.Format(minDate))
	}
	if maxDate, ok := field.MaxDate.Resolve(); ok {
		writeAttr(&builder, "max", dates.Format(maxDate))
	}

	if value := r.stringValue(field.Name); value != "" {
		if dates.Valid(value) {
			writeAttr(&builder, "value", value)
		} else {
			r.logger.Debug().
				Str("field", field.Name).
				Str("value", value).
				Msg("invalid date prefill dropped")
		}
	}
	builder.WriteString(` class="mf-input">`)
	return builder.String()
}

func (r *fieldRenderer) ratingControl(field model.Field) string {
	var builder strings.Builder

	value := r.stringValue(field.Name)

	builder.WriteString(`<div class="mf-rating">` + "\n")
	builder.WriteString(`    <input type="range"`)
	writeCommonAttrs(&builder, field)
	builder.WriteString(` min="0" max="5" step="0.5"`)
	if value != "" {
		writeAttr(&builder, "value", value)
	}
	builder.WriteString(` class="mf-range">` + "\n")
	builder.WriteString(`    <output for="`)
	builder.WriteString(html.EscapeString(controlID(field.Name)))
	builder.WriteString(`" class="mf-rating-value">`)
	if value == "" {
		builder.WriteString("No rating")
	} else {
		builder.WriteString(html.EscapeString(value))
	}
	builder.WriteString("</output>\n")
	builder.WriteString(`</div>`)
	return builder.String()
}

func (r *fieldRenderer) checkboxControl(field model.Field) string {
	var builder strings.Builder

	checked := false
	if raw, ok := r.options.ValueFor(field.Name); ok {
		if b, isBool := raw.(bool); isBool {
			checked = b
		}
	}

	builder.WriteString(`<label class="mf-checkbox">` + "\n")
	builder.WriteString(`    <input type="checkbox"`)
	writeCommonAttrs(&builder, field)
	if checked {
		builder.WriteString(` checked`)
	}
	builder.WriteString(`>` + "\n")
	builder.WriteString(`    <span>`)
	builder.WriteString(html.EscapeString(field.DisplayLabel()))
	builder.WriteString("</span>\n")
	builder.WriteString(`</label>`)
	return builder.String()
}

// dividerControl renders a full-width section break. An optional label
// becomes the section heading.
func (r *fieldRenderer) dividerControl(field model.Field) string {
	var builder strings.Builder

	builder.WriteString(`<div class="mf-divider" role="separator">` + "\n")
	if label := strings.TrimSpace(field.Label); label != "" {
		builder.WriteString(`    <h3 class="mf-divider-title">`)
		builder.WriteString(html.EscapeString(label))
		builder.WriteString("</h3>\n")
	}
	builder.WriteString("    <hr>\n")
	builder.WriteString(`</div>`)
	return builder.String()
}

func (r *fieldRenderer) tagsControl(field model.Field) string {
	var builder strings.Builder

	var tags []string
	if raw, ok := r.options.ValueFor(field.Name); ok {
		switch v := raw.(type) {
		case []string:
			tags = v
		case []any:
			for _, item := range v {
				if s, isString := item.(string); isString && strings.TrimSpace(s) != "" {
					tags = append(tags, s)
				}
			}
		}
	}
	if limit := field.TagLimit(); len(tags) > limit {
		tags = tags[:limit]
	}

	builder.WriteString(`<div class="mf-tags">` + "\n")
	for _, tag := range tags {
		builder.WriteString(`    <span class="mf-tag">`)
		builder.WriteString(html.EscapeString(tag))
		builder.WriteString(`<input type="hidden" name="`)
		builder.WriteString(html.EscapeString(field.Name))
		builder.WriteString(`" value="`)
		builder.WriteString(html.EscapeString(tag))
		builder.WriteString(`"></span>` + "\n")
	}
	// The text input carries the tag budget and field name as data
	// attributes so the runtime can mint hidden inputs on Enter without
	// the raw text ever submitting under the field's own name.
	builder.WriteString(`    <input type="text"`)
	writeAttr(&builder, "id", controlID(field.Name))
	fmt.Fprintf(&builder, ` data-maxtags="%d"`, field.TagLimit())
	writeAttr(&builder, "data-field", field.Name)
	if field.Placeholder != "" {
		writeAttr(&builder, "placeholder", field.Placeholder)
	}
	if len(tags) >= field.TagLimit() {
		builder.WriteString(` disabled data-limit-reached="true"`)
	}
	builder.WriteString(` class="mf-tag-input">` + "\n")
	builder.WriteString(`</div>`)
	return builder.String()
}

// loadingMessage replaces the configured placeholder while a dynamic
// options fetch is still in flight.
func loadingMessage(field model.Field) string {
	return "Loading " + strings.ToLower(field.DisplayLabel()) + "..."
}

// writeCommonAttrs emits the attributes shared by every named control.
func writeCommonAttrs(builder *strings.Builder, field model.Field) {
	writeAttr(builder, "id", controlID(field.Name))
	writeAttr(builder, "name", field.Name)
	if field.Placeholder != "" {
		writeAttr(builder, "placeholder", field.Placeholder)
	}
	if field.Required {
		builder.WriteString(` required`)
	}
}

func writeAttr(builder *strings.Builder, name, value string) {
	builder.WriteByte(' ')
	builder.WriteString(name)
	builder.WriteString(`="`)
	builder.WriteString(html.EscapeString(value))
	builder.WriteString(`"`)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// stringValue renders a prefilled value as its input attribute form. Numbers
// drop trailing zeros, bools and slices are not string-representable here.
func (r *fieldRenderer) stringValue(name string) string {
	raw, ok := r.options.ValueFor(name)
	if !ok || raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return formatNumber(v)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

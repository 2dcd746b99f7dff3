package vanilla

import (
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-medforms/pkg/model"
	"github.com/goliatone/go-medforms/pkg/render"
)

// fieldRenderer dispatches each field type to its control builder and wraps
// the control in the shared field chrome (label, description, error line).
type fieldRenderer struct {
	logger  zerolog.Logger
	options render.RenderOptions
}

func newFieldRenderer(logger zerolog.Logger, options render.RenderOptions) *fieldRenderer {
	return &fieldRenderer{logger: logger, options: options}
}

// render builds the full markup for one grid cell. Unknown field types emit
// nothing: a definition typo must not take the rest of the form down.
func (r *fieldRenderer) render(field model.Field, span int) (string, error) {
	control, err := r.control(field)
	if err != nil {
		return "", err
	}
	if control == "" {
		return "", nil
	}

	if field.Type == model.TypeDivider {
		return wrapCell(span, control), nil
	}
	return wrapCell(span, buildFieldMarkup(field, r.options.ErrorFor(field.Name), control)), nil
}

func (r *fieldRenderer) control(field model.Field) (string, error) {
	switch field.Type {
	case model.TypeText, model.TypeEmail, model.TypeTel, model.TypeURL:
		return r.textControl(field), nil
	case model.TypeTextarea:
		return r.textareaControl(field), nil
	case model.TypeNumber:
		return r.numberControl(field), nil
	case model.TypeSelect:
		return r.selectControl(field), nil
	case model.TypeAutocomplete:
		return r.autocompleteControl(field), nil
	case model.TypeCombobox:
		return r.comboboxControl(field), nil
	case model.TypeDate:
		return r.dateControl(field), nil
	case model.TypeRating:
		return r.ratingControl(field), nil
	case model.TypeCheckbox:
		return r.checkboxControl(field), nil
	case model.TypeDivider:
		return r.dividerControl(field), nil
	case model.TypeTags:
		return r.tagsControl(field), nil
	default:
		r.logger.Warn().
			Str("field", field.Name).
			Str("type", string(field.Type)).
			Msg("unknown field type skipped")
		return "", nil
	}
}

func wrapCell(span int, inner string) string {
	var builder strings.Builder
	builder.Grow(len(inner) + 48)
	fmt.Fprintf(&builder, "<div class=\"mf-col mf-col-span-%d\">\n", span)
	for _, line := range strings.Split(inner, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("    ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}
	builder.WriteString("</div>\n")
	return builder.String()
}

func buildFieldMarkup(field model.Field, fieldError, control string) string {
	var builder strings.Builder
	builder.Grow(len(control) + 256)

	builder.WriteString(`<div class="mf-field`)
	if fieldError != "" {
		builder.WriteString(` mf-field-invalid`)
	}
	if extra := sanitizeClassList(field.Metadata["cssClass"]); extra != "" {
		builder.WriteByte(' ')
		builder.WriteString(html.EscapeString(extra))
	}
	builder.WriteString(`" data-field="`)
	builder.WriteString(html.EscapeString(field.Name))
	builder.WriteString(`">` + "\n")

	if shouldRenderLabel(field) {
		builder.WriteString(`    <label for="`)
		builder.WriteString(html.EscapeString(controlID(field.Name)))
		builder.WriteString(`" class="mf-label">`)
		builder.WriteString(html.EscapeString(field.DisplayLabel()))
		if field.Required {
			builder.WriteString(` *`)
		}
		builder.WriteString("</label>\n")
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("    ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	if desc := sanitizeText(field.Description); desc != "" {
		builder.WriteString(`    <small class="mf-description">`)
		builder.WriteString(html.EscapeString(desc))
		builder.WriteString("</small>\n")
	}

	if fieldError != "" {
		builder.WriteString(`    <span class="mf-error" role="alert">`)
		builder.WriteString(html.EscapeString(fieldError))
		builder.WriteString("</span>\n")
	}

	builder.WriteString("</div>\n")
	return builder.String()
}

func shouldRenderLabel(field model.Field) bool {
	switch field.Type {
	case model.TypeCheckbox, model.TypeDivider:
		// The checkbox builds its own inline label; dividers carry a heading.
		return false
	}
	return strings.TrimSpace(field.DisplayLabel()) != ""
}

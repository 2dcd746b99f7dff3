// Package layout packs form fields into grid rows under a column budget and
// classifies the modal shell that hosts them. Packing is greedy first-fit in
// authoring order: fields are grouped into rows but never reordered, so
// left-to-right configuration order always maps to top-to-bottom,
// left-to-right placement.
package layout

import "github.com/goliatone/go-medforms/pkg/model"

// Breakpoint names the active viewport class.
type Breakpoint string

const (
	BreakpointXS Breakpoint = "xs"
	BreakpointSM Breakpoint = "sm"
	BreakpointMD Breakpoint = "md"
	BreakpointLG Breakpoint = "lg"
	BreakpointXL Breakpoint = "xl"
)

// DefaultColumns is the column budget on medium and larger viewports.
const DefaultColumns = 12

// simpleFormThreshold is the field count at or below which a wide viewport
// still gets a narrower budget so sparse forms don't stretch their controls
// across the full dialog. Tuning constant, not load-bearing.
const simpleFormThreshold = 4

// Columns derives the active column budget from the breakpoint and a field
// count complexity heuristic.
func Columns(bp Breakpoint, fieldCount int) int {
	switch bp {
	case BreakpointXS:
		return 4
	case BreakpointSM:
		return 8
	default:
		if fieldCount > 0 && fieldCount <= simpleFormThreshold {
			return 8
		}
		return DefaultColumns
	}
}

// Placed is a field with its resolved span.
type Placed struct {
	Field model.Field
	Span  int
}

// Row is one packed grid row. Span is the sum of member spans; it never
// exceeds the budget unless the row holds a single field whose own span does.
type Row struct {
	Fields []Placed
	Span   int
}

// defaultSpans expresses type defaults as twelfths of the row; SpanFor scales
// them to the active budget.
func defaultSpan12(t model.FieldType) int {
	switch t {
	case model.TypeTextarea, model.TypeTags, model.TypeDivider:
		return 12
	case model.TypeNumber, model.TypeDate, model.TypeRating, model.TypeCheckbox:
		return 4
	default:
		return 6
	}
}

// SpanFor resolves a field's span out of the budget: the explicit GridColumn
// when set, otherwise a type-derived default scaled to the budget. Dividers
// always occupy a full row. Explicit spans are taken as-is; a span wider than
// the budget is not clamped, the packer gives it a row alone.
func SpanFor(field model.Field, budget int) int {
	if budget <= 0 {
		budget = DefaultColumns
	}
	if field.Type == model.TypeDivider {
		return budget
	}
	if field.GridColumn > 0 {
		return field.GridColumn
	}
	span := defaultSpan12(field.Type) * budget / DefaultColumns
	if span < 1 {
		span = 1
	}
	return span
}

// Pack groups fields into rows using greedy first-fit in list order: when a
// field's span no longer fits the running row, the row closes and the field
// starts the next one.
func Pack(fields []model.Field, budget int) []Row {
	if budget <= 0 {
		budget = DefaultColumns
	}

	var rows []Row
	var current Row
	for _, field := range fields {
		span := SpanFor(field, budget)
		if len(current.Fields) > 0 && current.Span+span > budget {
			rows = append(rows, current)
			current = Row{}
		}
		current.Fields = append(current.Fields, Placed{Field: field, Span: span})
		current.Span += span
	}
	if len(current.Fields) > 0 {
		rows = append(rows, current)
	}
	return rows
}

package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-medforms/pkg/form"
	"github.com/goliatone/go-medforms/pkg/layout"
	"github.com/goliatone/go-medforms/pkg/model"
)

// RenderOptions describe per-request data that renderers can use to
// customise their output without mutating the form definition.
type RenderOptions struct {
	// Values pre-populates rendered controls by field name. An edit form
	// passes the record being edited; a create form passes nothing.
	Values map[string]any

	// Errors surfaces server-side validation feedback keyed by field name.
	Errors map[string]string

	// FormErrors carries messages with no field to attach to. They render
	// above the field grid.
	FormErrors []string

	// DynamicOptions supplies runtime option lists keyed by the field's
	// dynamic-options key (for example "specialties").
	DynamicOptions map[string][]model.Option

	// LoadingStates marks dynamic-options keys that are still fetching so
	// the affected controls render disabled with a loading hint.
	LoadingStates map[string]bool

	// Editing switches the submit affordance from "Add X" to "Update X".
	Editing bool

	// Breakpoint selects the column budget for row packing. Empty means
	// layout.BreakpointLG.
	Breakpoint layout.Breakpoint

	// Pressure degrades option caps and animation under load.
	Pressure layout.Pressure

	// HiddenFields are emitted inside the form element in sorted order.
	HiddenFields map[string]string

	// Theme carries resolved theme configuration for renderers that honor
	// theming. Nil means unthemed output.
	Theme *theme.RendererConfig

	// VisualHooks derive submit-button treatment from current values, for
	// example turning the button red when severity is critical.
	VisualHooks []form.VisualHook

	// Session identifies the open form instance; it round-trips as a
	// hidden input so late responses can be matched to the right form.
	Session string

	// SubmitLabel overrides the derived "Add X"/"Update X" label.
	SubmitLabel string

	// CancelLabel overrides the dismiss affordance text. Empty means
	// "Cancel".
	CancelLabel string
}

// EffectiveBreakpoint resolves the configured breakpoint, defaulting to lg.
func (o RenderOptions) EffectiveBreakpoint() layout.Breakpoint {
	if o.Breakpoint == "" {
		return layout.BreakpointLG
	}
	return o.Breakpoint
}

// ValueFor looks up a prefilled value by field name.
func (o RenderOptions) ValueFor(name string) (any, bool) {
	if o.Values == nil {
		return nil, false
	}
	value, ok := o.Values[name]
	return value, ok
}

// ErrorFor looks up a validation message by field name.
func (o RenderOptions) ErrorFor(name string) string {
	if o.Errors == nil {
		return ""
	}
	return o.Errors[name]
}

// OptionsFor combines a field's static options with any dynamic list fetched
// for its key. Static options come first; the dynamic list follows.
func (o RenderOptions) OptionsFor(field model.Field) []model.Option {
	if field.DynamicOptions == "" || o.DynamicOptions == nil {
		return field.Options
	}
	dynamic := o.DynamicOptions[field.DynamicOptions]
	if len(dynamic) == 0 {
		return field.Options
	}
	out := make([]model.Option, 0, len(field.Options)+len(dynamic))
	out = append(out, field.Options...)
	out = append(out, dynamic...)
	return out
}

// Loading reports whether a field's dynamic options are still fetching.
func (o RenderOptions) Loading(field model.Field) bool {
	if field.DynamicOptions == "" || o.LoadingStates == nil {
		return false
	}
	return o.LoadingStates[field.DynamicOptions]
}

// VisualState evaluates the visual hooks against the prefilled values.
func (o RenderOptions) VisualState() (form.VisualState, bool) {
	for _, hook := range o.VisualHooks {
		if hook == nil {
			continue
		}
		if state, ok := hook(o.Values); ok {
			return state, true
		}
	}
	return form.VisualState{}, false
}

package vanilla

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-medforms/pkg/dates"
	"github.com/goliatone/go-medforms/pkg/layout"
	"github.com/goliatone/go-medforms/pkg/model"
	"github.com/goliatone/go-medforms/pkg/render"
)

func newTestFieldRenderer(options render.RenderOptions) *fieldRenderer {
	return newFieldRenderer(zerolog.Nop(), options)
}

func TestControlCoversEveryFieldType(t *testing.T) {
	r := newTestFieldRenderer(render.RenderOptions{})

	for _, fieldType := range model.Types() {
		field := model.Field{Name: "probe", Type: fieldType, Label: "Probe"}
		control, err := r.control(field)
		if err != nil {
			t.Fatalf("type %s: %v", fieldType, err)
		}
		if control == "" {
			t.Fatalf("type %s produced no markup", fieldType)
		}
	}

	// Unknown types are skipped without error.
	control, err := r.control(model.Field{Name: "x", Type: model.FieldType("hologram")})
	if err != nil || control != "" {
		t.Fatalf("unknown type should render nothing: %q %v", control, err)
	}
}

func TestTextControlAttributes(t *testing.T) {
	r := newTestFieldRenderer(render.RenderOptions{
		Values: map[string]any{"contact_phone": "555-0100"},
	})

	got := r.textControl(model.Field{
		Name:        "contact_phone",
		Type:        model.TypeTel,
		Placeholder: "Phone",
		Required:    true,
		MaxLength:   20,
	})

	for _, want := range []string{
		`type="tel"`, `inputmode="tel"`, `id="mf-contact_phone"`,
		`name="contact_phone"`, `placeholder="Phone"`, ` required`,
		`maxlength="20"`, `value="555-0100"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %s in:\n%s", want, got)
		}
	}
}

func TestNumberControlFormatsPrefill(t *testing.T) {
	min := 0.0
	r := newTestFieldRenderer(render.RenderOptions{
		Values: map[string]any{"dosage_amount": 12.5},
	})

	got := r.numberControl(model.Field{Name: "dosage_amount", Type: model.TypeNumber, Min: &min})
	if !strings.Contains(got, `value="12.5"`) {
		t.Fatalf("expected numeric prefill, got:\n%s", got)
	}
	if !strings.Contains(got, `min="0"`) || !strings.Contains(got, `step="any"`) {
		t.Fatalf("expected numeric constraints, got:\n%s", got)
	}

	// A cleared number renders without a value attribute.
	empty := newTestFieldRenderer(render.RenderOptions{Values: map[string]any{"dosage_amount": ""}})
	got = empty.numberControl(model.Field{Name: "dosage_amount", Type: model.TypeNumber})
	if strings.Contains(got, `value=`) {
		t.Fatalf("cleared number should have no value attribute, got:\n%s", got)
	}
}

func TestSelectCapsLongLists(t *testing.T) {
	options := make([]model.Option, 0, 120)
	for i := 0; i < 120; i++ {
		options = append(options, model.Option{Value: "opt-" + strings.Repeat("x", i%5) + string(rune('a'+i%26))})
	}
	options[119] = model.Option{Value: "needle", Label: "Needle"}

	field := model.Field{Name: "code", Type: model.TypeSelect, Options: options}

	r := newTestFieldRenderer(render.RenderOptions{Values: map[string]any{"code": "needle"}})
	got := r.selectControl(field)

	if !strings.Contains(got, `data-searchable="true"`) {
		t.Fatalf("capped select should advertise search, got:\n%s", got)
	}
	if !strings.Contains(got, `data-option-total="120"`) {
		t.Fatalf("expected full list size, got:\n%s", got)
	}
	// The selected value survives even though it sits past the cap.
	if !strings.Contains(got, `value="needle" selected`) {
		t.Fatalf("selected option must survive the cap, got:\n%s", got)
	}
	if count := strings.Count(got, "<option"); count > selectCap+2 {
		t.Fatalf("expected at most %d options, got %d", selectCap+2, count)
	}
}

func TestSelectUnderPressureShrinksFurther(t *testing.T) {
	options := make([]model.Option, 0, 120)
	for i := 0; i < 120; i++ {
		options = append(options, model.Option{Value: string(rune('a'+i%26)) + strings.Repeat("z", i/26)})
	}
	field := model.Field{Name: "code", Type: model.TypeSelect, Options: options}

	r := newTestFieldRenderer(render.RenderOptions{Pressure: layout.PressureCritical})
	got := r.selectControl(field)

	want := layout.PressureCritical.OptionCap(selectCap) + 1 // plus placeholder
	if count := strings.Count(got, "<option"); count != want {
		t.Fatalf("expected %d options under critical pressure, got %d", want, count)
	}
}

func TestSelectDropsStalePrefill(t *testing.T) {
	field := model.Field{Name: "status", Type: model.TypeSelect, Options: []model.Option{{Value: "active"}}}
	r := newTestFieldRenderer(render.RenderOptions{Values: map[string]any{"status": "retired"}})

	got := r.selectControl(field)
	if strings.Contains(got, "selected") {
		t.Fatalf("stale value must not select anything, got:\n%s", got)
	}
}

func TestComboboxEmitsCreateAffordance(t *testing.T) {
	field := model.Field{
		Name:           "specialty",
		Type:           model.TypeCombobox,
		Options:        []model.Option{{Value: "Cardiology"}},
		DynamicOptions: "specialties",
	}
	r := newTestFieldRenderer(render.RenderOptions{
		DynamicOptions: map[string][]model.Option{
			"specialties": {{Value: "Neurology"}},
		},
	})

	got := r.comboboxControl(field)
	for _, want := range []string{
		`data-combobox="true"`, `data-create-target="specialty"`,
		`list="mf-specialty-list"`, `<datalist id="mf-specialty-list">`,
		`value="Cardiology"`, `value="Neurology"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %s in:\n%s", want, got)
		}
	}
}

func TestComboboxLoadingDisablesInput(t *testing.T) {
	field := model.Field{
		Name:           "specialty",
		Type:           model.TypeCombobox,
		Placeholder:    "Search specialties",
		DynamicOptions: "specialties",
	}
	r := newTestFieldRenderer(render.RenderOptions{
		LoadingStates: map[string]bool{"specialties": true},
	})

	got := r.comboboxControl(field)
	if !strings.Contains(got, `disabled data-loading="true"`) {
		t.Fatalf("loading combobox should be disabled, got:\n%s", got)
	}
	if !strings.Contains(got, `placeholder="Loading specialty..."`) {
		t.Fatalf("loading combobox should announce the fetch, got:\n%s", got)
	}
	if strings.Contains(got, "Search specialties") {
		t.Fatalf("configured placeholder should be suppressed while loading, got:\n%s", got)
	}
}

func TestSelectLoadingSwapsPlaceholderOption(t *testing.T) {
	field := model.Field{
		Name:           "ordering_provider",
		Type:           model.TypeSelect,
		Placeholder:    "Select a provider",
		DynamicOptions: "providers",
	}
	r := newTestFieldRenderer(render.RenderOptions{
		LoadingStates: map[string]bool{"providers": true},
	})

	got := r.selectControl(field)
	if !strings.Contains(got, `disabled data-loading="true"`) {
		t.Fatalf("loading select should be disabled, got:\n%s", got)
	}
	if !strings.Contains(got, `<option value="">Loading ordering provider...</option>`) {
		t.Fatalf("empty option should carry the loading message, got:\n%s", got)
	}
	if strings.Contains(got, ">Select a provider<") {
		t.Fatalf("configured placeholder should be suppressed while loading, got:\n%s", got)
	}
}

func TestDateControlMinFromSiblingStart(t *testing.T) {
	field := model.Field{Name: "treatment_end_date", Type: model.TypeDate}
	r := newTestFieldRenderer(render.RenderOptions{
		Values: map[string]any{
			"treatment_start_date": "2024-03-10",
			"treatment_end_date":   "2024-04-01",
		},
	})

	got := r.dateControl(field)
	if !strings.Contains(got, `min="2024-03-10"`) {
		t.Fatalf("end date should be bounded by its start sibling, got:\n%s", got)
	}
	if !strings.Contains(got, `value="2024-04-01"`) {
		t.Fatalf("expected date prefill, got:\n%s", got)
	}
}

func TestDateControlDropsInvalidPrefill(t *testing.T) {
	field := model.Field{Name: "onset_date", Type: model.TypeDate, MaxDate: dates.TodayBound()}
	r := newTestFieldRenderer(render.RenderOptions{
		Values: map[string]any{"onset_date": "2024-02-31"},
	})

	got := r.dateControl(field)
	if strings.Contains(got, `value=`) {
		t.Fatalf("invalid date must not be emitted, got:\n%s", got)
	}
	if !strings.Contains(got, `max="`+dates.Format(dates.Today())+`"`) {
		t.Fatalf("expected today ceiling, got:\n%s", got)
	}
}

func TestRatingControl(t *testing.T) {
	field := model.Field{Name: "rating", Type: model.TypeRating}

	r := newTestFieldRenderer(render.RenderOptions{Values: map[string]any{"rating": 3.5}})
	got := r.ratingControl(field)
	for _, want := range []string{`min="0"`, `max="5"`, `step="0.5"`, `value="3.5"`} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %s in:\n%s", want, got)
		}
	}

	empty := newTestFieldRenderer(render.RenderOptions{})
	if got := empty.ratingControl(field); !strings.Contains(got, "No rating") {
		t.Fatalf("empty rating should show placeholder, got:\n%s", got)
	}
}

func TestCheckboxControlChecked(t *testing.T) {
	field := model.Field{Name: "as_needed", Type: model.TypeCheckbox}

	r := newTestFieldRenderer(render.RenderOptions{Values: map[string]any{"as_needed": true}})
	if got := r.checkboxControl(field); !strings.Contains(got, " checked") {
		t.Fatalf("expected checked box, got:\n%s", got)
	}

	// Non-bool prefill never checks the box.
	r = newTestFieldRenderer(render.RenderOptions{Values: map[string]any{"as_needed": "yes"}})
	if got := r.checkboxControl(field); strings.Contains(got, " checked") {
		t.Fatalf("string prefill must not check the box, got:\n%s", got)
	}
}

func TestTagsControlCapsAndDisables(t *testing.T) {
	field := model.Field{Name: "tags", Type: model.TypeTags, MaxTags: 2}
	r := newTestFieldRenderer(render.RenderOptions{
		Values: map[string]any{"tags": []string{"bp", "daily", "overflow"}},
	})

	got := r.tagsControl(field)
	if strings.Contains(got, "overflow") {
		t.Fatalf("tags past the cap must not render, got:\n%s", got)
	}
	// The budget and field name ride on the text input itself so the
	// runtime keydown handler can find them.
	if !strings.Contains(got, `<input type="text" id="mf-tags" data-maxtags="2" data-field="tags"`) {
		t.Fatalf("expected maxtags and field name on the text input, got:\n%s", got)
	}
	if !strings.Contains(got, `disabled data-limit-reached="true"`) {
		t.Fatalf("full tag list should disable the input, got:\n%s", got)
	}
	if count := strings.Count(got, `type="hidden"`); count != 2 {
		t.Fatalf("expected 2 hidden tag inputs, got %d", count)
	}
}

func TestBuildFieldMarkupChrome(t *testing.T) {
	field := model.Field{
		Name:        "medication_name",
		Type:        model.TypeText,
		Required:    true,
		Description: "<b>Generic</b> name preferred",
	}

	got := buildFieldMarkup(field, "Required", `<input id="mf-medication_name">`)
	if !strings.Contains(got, `for="mf-medication_name"`) {
		t.Fatalf("expected label binding, got:\n%s", got)
	}
	if !strings.Contains(got, "Medication Name *") {
		t.Fatalf("expected derived label with required marker, got:\n%s", got)
	}
	if !strings.Contains(got, `mf-field-invalid`) || !strings.Contains(got, `role="alert"`) {
		t.Fatalf("expected error chrome, got:\n%s", got)
	}
	if strings.Contains(got, "<b>") {
		t.Fatalf("description markup should be stripped, got:\n%s", got)
	}
	if !strings.Contains(got, "Generic name preferred") {
		t.Fatalf("description text should survive sanitizing, got:\n%s", got)
	}
}

func TestDividerRendersHeading(t *testing.T) {
	r := newTestFieldRenderer(render.RenderOptions{})
	got, err := r.render(model.Field{Name: "schedule", Type: model.TypeDivider, Label: "Schedule"}, 8)
	if err != nil {
		t.Fatalf("render divider: %v", err)
	}
	if !strings.Contains(got, `mf-col-span-8`) {
		t.Fatalf("divider should take the full row span, got:\n%s", got)
	}
	if !strings.Contains(got, "<h3") || !strings.Contains(got, "Schedule") {
		t.Fatalf("expected section heading, got:\n%s", got)
	}
	if strings.Contains(got, "<label") {
		t.Fatalf("dividers must not render field chrome, got:\n%s", got)
	}
}

package vanilla_test

import (
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-medforms/pkg/layout"
	"github.com/goliatone/go-medforms/pkg/render"
	"github.com/goliatone/go-medforms/pkg/renderers/vanilla"
	"github.com/goliatone/go-medforms/pkg/testsupport"
)

func TestRender_ModalShell(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	def := testsupport.MedicationDefinition()
	output, err := renderer.Render(testsupport.Context(), def, render.RenderOptions{
		Session: "session-1",
		HiddenFields: render.MergeHiddenFields(nil,
			render.CSRFToken("_csrf", "token-9"),
		),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(output)
	for _, want := range []string{
		`role="dialog"`,
		`mf-modal-medium`,
		`mf-animate`,
		`data-entity="medication"`,
		`action="/api/medications"`,
		`method="POST"`,
		`name="_csrf" value="token-9"`,
		`name="_session" value="session-1"`,
		`>Add Medication</button>`,
		`>Cancel</button>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("missing %s in output:\n%s", want, html)
		}
	}
}

func TestRender_EditingChangesSubmitLabel(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), testsupport.MedicationDefinition(), render.RenderOptions{
		Editing: true,
		Values:  map[string]any{"medication_name": "Lisinopril"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(output)
	if !strings.Contains(html, ">Update Medication</button>") {
		t.Fatalf("expected update label, got:\n%s", html)
	}
	if !strings.Contains(html, `data-editing="true"`) {
		t.Fatalf("expected editing marker, got:\n%s", html)
	}
	if !strings.Contains(html, `value="Lisinopril"`) {
		t.Fatalf("expected prefill, got:\n%s", html)
	}
}

func TestRender_PressureDisablesAnimation(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), testsupport.MedicationDefinition(), render.RenderOptions{
		Pressure: layout.PressureDegraded,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if strings.Contains(string(output), "mf-animate") {
		t.Fatalf("degraded pressure must not animate:\n%s", output)
	}
}

func TestRender_ThemePassthrough(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), testsupport.MedicationDefinition(), render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:   "clinic",
			Variant: "dark",
			CSSVars: map[string]string{"--brand": "#123456"},
			AssetURL: func(key string) string {
				return "/themes/clinic/" + key
			},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(output)
	for _, want := range []string{
		`data-theme="clinic"`,
		`data-theme-variant="dark"`,
		`--brand: #123456;`,
		`href="/themes/clinic/vanilla.stylesheet"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("missing %s in output:\n%s", want, html)
		}
	}
}

func TestRender_RowPackingMatchesBudget(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	def := testsupport.MedicationDefinition()
	output, err := renderer.Render(testsupport.Context(), def, render.RenderOptions{
		Breakpoint: layout.BreakpointLG,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(output)
	budget := layout.Columns(layout.BreakpointLG, len(def.Fields))
	rows := layout.Pack(def.Fields, budget)
	if got := strings.Count(html, `<div class="mf-row">`); got != len(rows) {
		t.Fatalf("expected %d rows, got %d:\n%s", len(rows), got, html)
	}
	if !strings.Contains(html, "mf-grid-12") {
		t.Fatalf("expected 12-column grid, got:\n%s", html)
	}
}

func TestRender_FormErrors(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output, err := renderer.Render(testsupport.Context(), testsupport.MedicationDefinition(), render.RenderOptions{
		Errors:     map[string]string{"medication_name": "Required"},
		FormErrors: []string{"Could not save the record."},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(output)
	if !strings.Contains(html, "mf-field-invalid") {
		t.Fatalf("expected invalid field chrome:\n%s", html)
	}
	if !strings.Contains(html, "Could not save the record.") {
		t.Fatalf("expected form-level error banner:\n%s", html)
	}
}

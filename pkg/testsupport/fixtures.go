// Package testsupport collects fixture loaders and golden-file helpers
// shared by renderer and engine tests.
package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-medforms/pkg/model"
)

// MustLoadDefinition loads a JSON fixture into a FormDefinition, failing the
// test on error.
func MustLoadDefinition(t *testing.T, path string) model.FormDefinition {
	t.Helper()

	def, err := LoadDefinition(path)
	if err != nil {
		t.Fatalf("load definition: %v", err)
	}
	return def
}

// LoadDefinition reads a JSON fixture into a FormDefinition, returning an
// error for callers managing setup outside of *testing.T.
func LoadDefinition(path string) (model.FormDefinition, error) {
	if path == "" {
		return model.FormDefinition{}, errors.New("testsupport: definition path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FormDefinition{}, fmt.Errorf("testsupport: read definition: %w", err)
	}
	var out model.FormDefinition
	if err := json.Unmarshal(data, &out); err != nil {
		return model.FormDefinition{}, fmt.Errorf("testsupport: unmarshal definition: %w", err)
	}
	return out, nil
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// MedicationDefinition returns the fixture definition most renderer tests
// exercise: one field of each control family plus a section divider.
func MedicationDefinition() model.FormDefinition {
	return model.FormDefinition{
		Entity:      "medication",
		Title:       "Medication",
		Endpoint:    "/api/medications",
		Method:      "POST",
		Description: "Track a prescribed medication.",
		Fields: []model.Field{
			{Name: "medication_name", Type: model.TypeText, Required: true, MaxLength: 120},
			{Name: "dosage_amount", Type: model.TypeNumber, Min: ptrFloat(0)},
			{Name: "frequency", Type: model.TypeSelect, Options: []model.Option{
				{Value: "daily", Label: "Daily"},
				{Value: "bid", Label: "Twice a day"},
			}},
			{Name: "schedule", Type: model.TypeDivider, Label: "Schedule"},
			{Name: "start_date", Type: model.TypeDate},
			{Name: "end_date", Type: model.TypeDate},
			{Name: "as_needed", Type: model.TypeCheckbox},
			{Name: "tags", Type: model.TypeTags},
		},
	}
}

func ptrFloat(v float64) *float64 { return &v }

package form

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-medforms/pkg/model"
)

func TestNormalizeNumberEmptyStaysEmpty(t *testing.T) {
	field := model.Field{Name: "amount", Type: model.TypeNumber}

	event, err := Normalize(field, []string{""})
	if err != nil {
		t.Fatalf("empty number: %v", err)
	}
	if event.Value != "" {
		t.Fatalf("cleared number should emit empty string, got %#v", event.Value)
	}

	event, err = Normalize(field, []string{"12.5"})
	if err != nil {
		t.Fatalf("valid number: %v", err)
	}
	if got, ok := event.Value.(float64); !ok || got != 12.5 {
		t.Fatalf("expected 12.5, got %#v", event.Value)
	}

	// Clearing after typing emits "" again, never NaN or nil.
	event, _ = Normalize(field, []string{"   "})
	if event.Value != "" {
		t.Fatalf("cleared number should emit empty string, got %#v", event.Value)
	}
}

func TestNormalizeNumberRejectsGarbageWithoutPanic(t *testing.T) {
	field := model.Field{Name: "amount", Type: model.TypeNumber}
	event, err := Normalize(field, []string{"12x"})
	if err == nil {
		t.Fatalf("expected coercion error")
	}
	if event.Value != "" {
		t.Fatalf("rejected number should degrade to empty, got %#v", event.Value)
	}
}

func TestNormalizeCheckboxAlwaysBool(t *testing.T) {
	field := model.Field{Name: "is_primary", Type: model.TypeCheckbox}
	for raw, want := range map[string]bool{
		"on": true, "true": true, "1": true, "yes": true,
		"": false, "off": false, "false": false, "0": false,
	} {
		event, err := Normalize(field, []string{raw})
		if err != nil {
			t.Fatalf("checkbox %q: %v", raw, err)
		}
		got, ok := event.Value.(bool)
		if !ok {
			t.Fatalf("checkbox %q emitted %T, want bool", raw, event.Value)
		}
		if got != want {
			t.Fatalf("checkbox %q = %v, want %v", raw, got, want)
		}
	}
}

func TestNormalizeDateValidatesWireFormat(t *testing.T) {
	field := model.Field{Name: "onset_date", Type: model.TypeDate}

	event, err := Normalize(field, []string{"2024-01-10"})
	if err != nil || event.Value != "2024-01-10" {
		t.Fatalf("valid date: %v %#v", err, event.Value)
	}

	event, err = Normalize(field, []string{"2024-02-31"})
	if err == nil {
		t.Fatalf("expected invalid date error")
	}
	if event.Value != "" {
		t.Fatalf("invalid date should degrade to empty, got %#v", event.Value)
	}
}

func TestNormalizeRatingSnapsToHalfPoints(t *testing.T) {
	field := model.Field{Name: "rating", Type: model.TypeRating}
	cases := map[string]float64{
		"3.4": 3.5,
		"3.2": 3.0,
		"7":   5,
		"-1":  0,
		"4.5": 4.5,
	}
	for raw, want := range cases {
		event, err := Normalize(field, []string{raw})
		if err != nil {
			t.Fatalf("rating %q: %v", raw, err)
		}
		if got := event.Value.(float64); got != want {
			t.Fatalf("rating %q = %v, want %v", raw, got, want)
		}
	}

	event, err := Normalize(field, []string{""})
	if err != nil || event.Value != "" {
		t.Fatalf("absent rating should stay empty: %v %#v", err, event.Value)
	}
}

func TestNormalizeTagsCapped(t *testing.T) {
	field := model.Field{Name: "tags", Type: model.TypeTags, MaxTags: 3}
	event, err := Normalize(field, []string{"a", " b ", "", "c", "d"})
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, event.Value); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeUnknownTypeErrors(t *testing.T) {
	field := model.Field{Name: "x", Type: model.FieldType("wysiwyg")}
	if _, err := Normalize(field, []string{"v"}); err == nil {
		t.Fatalf("unknown type should error")
	}
}

func TestDecodeValues(t *testing.T) {
	fields := []model.Field{
		{Name: "medication_name", Type: model.TypeText},
		{Name: "dosage_amount", Type: model.TypeNumber},
		{Name: "as_needed", Type: model.TypeCheckbox},
		{Name: "section", Type: model.TypeDivider},
		{Name: "tags", Type: model.TypeTags},
	}

	submitted := url.Values{
		"medication_name": {"Lisinopril"},
		"dosage_amount":   {"10"},
		"tags":            {"bp", "daily"},
	}

	values, problems := DecodeValues(fields, submitted)
	if problems != nil {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if values["medication_name"] != "Lisinopril" {
		t.Fatalf("name = %#v", values["medication_name"])
	}
	if values["dosage_amount"].(float64) != 10 {
		t.Fatalf("dosage = %#v", values["dosage_amount"])
	}
	// Unchecked checkboxes are omitted from an HTML post; they decode false.
	if values["as_needed"] != false {
		t.Fatalf("as_needed = %#v, want false", values["as_needed"])
	}
	if _, ok := values["section"]; ok {
		t.Fatalf("dividers must not produce values")
	}
}

func TestDecodeValuesCollectsProblems(t *testing.T) {
	fields := []model.Field{{Name: "dosage_amount", Type: model.TypeNumber}}
	values, problems := DecodeValues(fields, url.Values{"dosage_amount": {"ten"}})
	if problems == nil || problems["dosage_amount"] == "" {
		t.Fatalf("expected a coercion problem, got %v", problems)
	}
	if values["dosage_amount"] != "" {
		t.Fatalf("bad number should degrade to empty, got %#v", values["dosage_amount"])
	}
}

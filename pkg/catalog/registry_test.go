package catalog

import (
	"errors"
	"testing"

	"github.com/goliatone/go-medforms/pkg/model"
)

func validDefinition(entity string) model.FormDefinition {
	return model.FormDefinition{
		Entity: entity,
		Fields: []model.Field{
			{Name: "name", Type: model.TypeText, Required: true},
			{Name: "notes", Type: model.TypeTextarea},
		},
	}
}

func TestRegister_RejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name string
		def  model.FormDefinition
	}{
		{"empty entity", model.FormDefinition{Fields: []model.Field{{Name: "a", Type: model.TypeText}}}},
		{"no fields", model.FormDefinition{Entity: "thing"}},
		{"unnamed field", model.FormDefinition{Entity: "thing", Fields: []model.Field{{Type: model.TypeText}}}},
		{"duplicate field", model.FormDefinition{Entity: "thing", Fields: []model.Field{
			{Name: "a", Type: model.TypeText},
			{Name: "a", Type: model.TypeNumber},
		}}},
		{"unknown type", model.FormDefinition{Entity: "thing", Fields: []model.Field{
			{Name: "a", Type: model.FieldType("carousel")},
		}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := NewRegistry().Register(tc.def); err == nil {
				t.Fatal("Register() expected error")
			}
		})
	}
}

func TestRegister_DuplicateEntity(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(validDefinition("allergy")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	err := registry.Register(validDefinition("allergy"))
	if !errors.Is(err, ErrDuplicateEntity) {
		t.Fatalf("Register() error = %v, want ErrDuplicateEntity", err)
	}
}

func TestEntities_Sorted(t *testing.T) {
	registry := NewRegistry()
	for _, entity := range []string{"visit", "allergy", "medication"} {
		registry.MustRegister(validDefinition(entity))
	}
	got := registry.Entities()
	want := []string{"allergy", "medication", "visit"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Entities() = %v, want %v", got, want)
		}
	}
}

func TestLookups(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(validDefinition("medication"))

	if !registry.Has("medication") {
		t.Fatal("Has() = false for registered entity")
	}
	if registry.Has("ghost") {
		t.Fatal("Has() = true for unknown entity")
	}

	def, err := registry.Definition("medication")
	if err != nil {
		t.Fatalf("Definition() error = %v", err)
	}
	if def.Entity != "medication" {
		t.Fatalf("Definition().Entity = %q", def.Entity)
	}

	if _, err := registry.Definition("ghost"); !errors.Is(err, ErrUnknownEntity) {
		t.Fatalf("Definition() error = %v, want ErrUnknownEntity", err)
	}

	if fields := registry.Fields("medication"); len(fields) != 2 {
		t.Fatalf("Fields() returned %d fields, want 2", len(fields))
	}
	if fields := registry.Fields("ghost"); fields != nil {
		t.Fatalf("Fields() = %v for unknown entity, want nil", fields)
	}
}

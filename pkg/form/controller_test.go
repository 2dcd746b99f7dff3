package form

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/goliatone/go-medforms/pkg/model"
)

func practitionerDefinition() model.FormDefinition {
	return model.FormDefinition{
		Entity: "practitioner",
		Title:  "Practitioner",
		Fields: []model.Field{
			{Name: "full_name", Type: model.TypeText, Required: true},
			{
				Name:           "specialty",
				Type:           model.TypeCombobox,
				Options:        []model.Option{{Value: "Cardiology"}, {Value: "Neurology"}},
				DynamicOptions: "specialties",
			},
		},
	}
}

type recordingCache struct {
	mu      sync.Mutex
	added   []string
	flushed int
}

func (c *recordingCache) Add(value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.added = append(c.added, value)
	return true
}

func (c *recordingCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushed++
}

func TestControllerSubmitGuard(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	// The handler runs again for the follow-up submit, so the started
	// signal must only fire once.
	var startOnce sync.Once
	ctrl := NewController(practitionerDefinition(), WithSubmit(func(ctx context.Context, values map[string]any) error {
		startOnce.Do(func() { close(started) })
		<-release
		return nil
	}))

	first := make(chan error, 1)
	go func() { first <- ctrl.Submit(context.Background()) }()
	<-started

	if err := ctrl.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("concurrent submit = %v, want ErrSubmitInFlight", err)
	}

	close(release)
	if err := <-first; err != nil {
		t.Fatalf("first submit: %v", err)
	}

	// Once the first submit settles, the guard releases.
	if err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("follow-up submit: %v", err)
	}
}

func TestControllerSubmitWithoutHandler(t *testing.T) {
	ctrl := NewController(practitionerDefinition())
	if err := ctrl.Submit(context.Background()); !errors.Is(err, ErrNoSubmitHandler) {
		t.Fatalf("submit = %v, want ErrNoSubmitHandler", err)
	}
}

func TestControllerComboboxCachesCreatedOptions(t *testing.T) {
	cache := &recordingCache{}
	ctrl := NewController(practitionerDefinition(), WithOptionCache(cache))

	// Exact match against the static list, ignoring case and padding: no add.
	if err := ctrl.Apply(StringChange("specialty", " cardiology ")); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(cache.added) != 0 {
		t.Fatalf("known option should not be cached, got %v", cache.added)
	}

	// Exact match against a dynamic list: still no add.
	ctrl.SetDynamicOptions("specialties", []model.Option{{Value: "Dermatology"}})
	if err := ctrl.Apply(StringChange("specialty", "Dermatology")); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(cache.added) != 0 {
		t.Fatalf("dynamic option should not be cached, got %v", cache.added)
	}

	// A genuinely new value is a create.
	if err := ctrl.Apply(StringChange("specialty", "Sports Medicine")); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(cache.added) != 1 || cache.added[0] != "Sports Medicine" {
		t.Fatalf("created option not cached: %v", cache.added)
	}

	if got, _ := ctrl.State().Value("specialty"); got != "Sports Medicine" {
		t.Fatalf("value = %#v", got)
	}
}

func TestControllerCloseDiscardsLateOptions(t *testing.T) {
	ctrl := NewController(practitionerDefinition())
	ctrl.SetLoading("specialties")
	ctrl.Close()

	// A fetch that resolves after dismissal must not mutate the form.
	ctrl.SetDynamicOptions("specialties", []model.Option{{Value: "Oncology"}})
	if got := ctrl.DynamicOptions("specialties"); len(got) != 0 {
		t.Fatalf("closed form accepted options: %v", got)
	}

	if err := ctrl.Apply(StringChange("full_name", "Dr. Chen")); !errors.Is(err, ErrClosed) {
		t.Fatalf("apply after close = %v, want ErrClosed", err)
	}
	if err := ctrl.Submit(context.Background()); !errors.Is(err, ErrClosed) && !errors.Is(err, ErrNoSubmitHandler) {
		t.Fatalf("submit after close = %v", err)
	}
}

func TestControllerSubmitLabelTracksEditing(t *testing.T) {
	ctrl := NewController(practitionerDefinition())
	if got := ctrl.SubmitLabel(); got != "Add Practitioner" {
		t.Fatalf("create label = %q", got)
	}
	ctrl.State().SetEditing(map[string]any{"id": 7})
	if got := ctrl.SubmitLabel(); got != "Update Practitioner" {
		t.Fatalf("edit label = %q", got)
	}
}

func TestSeverityColorHook(t *testing.T) {
	hook := SeverityColor("severity", "critical", "red")
	ctrl := NewController(practitionerDefinition(), WithVisualHook(hook))

	if _, ok := ctrl.VisualState(); ok {
		t.Fatalf("hook fired without the sentinel value")
	}

	ctrl.State().SetValue("severity", "critical")
	state, ok := ctrl.VisualState()
	if !ok || state.Color != "red" {
		t.Fatalf("visual state = %+v ok=%v", state, ok)
	}
}

func TestControllerSessionsAreUnique(t *testing.T) {
	a := NewController(practitionerDefinition())
	b := NewController(practitionerDefinition())
	if a.Session() == "" || a.Session() == b.Session() {
		t.Fatalf("sessions must be distinct non-empty ids: %q %q", a.Session(), b.Session())
	}
}

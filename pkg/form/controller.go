package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-medforms/pkg/model"
)

var (
	// ErrSubmitInFlight guards re-entrant submission: a second Submit while
	// the first is still running is rejected, never queued.
	ErrSubmitInFlight = errors.New("form: submit already in flight")
	// ErrNoSubmitHandler is returned when the controller was built without a
	// submit callback.
	ErrNoSubmitHandler = errors.New("form: no submit handler configured")
	// ErrClosed is returned for operations on a controller whose modal has
	// been dismissed.
	ErrClosed = errors.New("form: controller is closed")
)

// SubmitFunc persists the collected values. Failure handling beyond the
// returned error is entirely the caller's concern.
type SubmitFunc func(ctx context.Context, values map[string]any) error

// VisualState is a rendering hint derived from current values, e.g. a submit
// button color override.
type VisualState struct {
	Color string
}

// VisualHook inspects current values and optionally yields a visual state.
// The first hook that matches wins.
type VisualHook func(values map[string]any) (VisualState, bool)

// SeverityColor builds the common hook: when a field equals a sentinel value
// (compared case-insensitively), the submit button takes the given color.
func SeverityColor(fieldName, sentinel, color string) VisualHook {
	return func(values map[string]any) (VisualState, bool) {
		raw, ok := values[fieldName]
		if !ok {
			return VisualState{}, false
		}
		str, ok := raw.(string)
		if !ok {
			return VisualState{}, false
		}
		if strings.EqualFold(strings.TrimSpace(str), sentinel) {
			return VisualState{Color: color}, true
		}
		return VisualState{}, false
	}
}

// OptionCache is the caller-owned cache the combobox create flow appends to.
// The specialties component provides the production implementation; passing
// it explicitly keeps the dependency visible and testable.
type OptionCache interface {
	Add(value string) bool
	Invalidate()
}

// Controller merges normalized change events into the form state and
// orchestrates submission. It validates nothing itself: field errors are
// caller-supplied and rendered verbatim.
type Controller struct {
	session string
	def     model.FormDefinition
	state   *State
	dynamic map[string][]model.Option

	onSubmit SubmitFunc
	hooks    []VisualHook
	cache    OptionCache
	logger   zerolog.Logger

	mu         sync.Mutex
	submitting bool
	closed     bool
}

// ControllerOption customises a Controller.
type ControllerOption func(*Controller)

// WithState seeds the controller with an existing state, typically prefilled
// from the entity being edited.
func WithState(state *State) ControllerOption {
	return func(c *Controller) {
		if state != nil {
			c.state = state
		}
	}
}

// WithSubmit sets the persistence callback.
func WithSubmit(fn SubmitFunc) ControllerOption {
	return func(c *Controller) {
		c.onSubmit = fn
	}
}

// WithVisualHook appends a derived-visual-state hook.
func WithVisualHook(hook VisualHook) ControllerOption {
	return func(c *Controller) {
		if hook != nil {
			c.hooks = append(c.hooks, hook)
		}
	}
}

// WithOptionCache attaches the cache the combobox create flow feeds.
func WithOptionCache(cache OptionCache) ControllerOption {
	return func(c *Controller) {
		c.cache = cache
	}
}

// WithLogger attaches a structured logger; the default discards everything.
func WithLogger(logger zerolog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController builds a controller for one open form.
func NewController(def model.FormDefinition, options ...ControllerOption) *Controller {
	c := &Controller{
		session: uuid.NewString(),
		def:     def,
		dynamic: make(map[string][]model.Option),
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.state == nil {
		c.state = NewState(nil, nil)
	}
	return c
}

// Session identifies this open form instance.
func (c *Controller) Session() string {
	return c.session
}

// State exposes the controller's value store.
func (c *Controller) State() *State {
	return c.state
}

// Definition returns the form definition under edit.
func (c *Controller) Definition() model.FormDefinition {
	return c.def
}

// Apply merges one normalized change event. Combobox values with no exact
// match in the field's option set are treated as created on the fly and
// appended to the option cache so future forms offer them without a round
// trip.
func (c *Controller) Apply(event ChangeEvent) error {
	if c.isClosed() {
		return ErrClosed
	}
	if event.Name == "" {
		return errors.New("form: change event without a field name")
	}

	field, known := c.def.FieldByName(event.Name)
	if !known {
		c.logger.Debug().Str("field", event.Name).Msg("change event for field outside the definition")
	}

	if known && field.Type == model.TypeCombobox {
		c.recordCreatedOption(field, event)
	}

	c.state.SetValue(event.Name, event.Value)
	return nil
}

func (c *Controller) recordCreatedOption(field model.Field, event ChangeEvent) {
	if c.cache == nil {
		return
	}
	text, ok := event.Value.(string)
	if !ok || strings.TrimSpace(text) == "" {
		return
	}
	if _, ok := model.ExactMatch(c.optionsFor(field), text); ok {
		return
	}
	if c.cache.Add(text) {
		c.logger.Info().
			Str("field", field.Name).
			Str("value", text).
			Msg("created option cached")
	}
}

func (c *Controller) optionsFor(field model.Field) []model.Option {
	options := field.Options
	if field.DynamicOptions != "" {
		options = append(append([]model.Option{}, options...), c.dynamic[field.DynamicOptions]...)
	}
	return options
}

// SetLoading marks a dynamic-options key as fetching.
func (c *Controller) SetLoading(key string) {
	if c.isClosed() {
		return
	}
	c.state.SetLoading(key, true)
}

// SetDynamicOptions stores a fetched option list and clears its loading
// flag. Results arriving after Close are discarded so a stale fetch can
// never mutate a dismissed form.
func (c *Controller) SetDynamicOptions(key string, options []model.Option) {
	if c.isClosed() {
		c.logger.Debug().Str("key", key).Msg("discarding dynamic options for closed form")
		return
	}
	if key == "" {
		return
	}
	c.dynamic[key] = append([]model.Option{}, options...)
	c.state.SetLoading(key, false)
}

// DynamicOptions returns the runtime option list for a key.
func (c *Controller) DynamicOptions(key string) []model.Option {
	return c.dynamic[key]
}

// DynamicOptionMap returns the full runtime options map for renderers.
func (c *Controller) DynamicOptionMap() map[string][]model.Option {
	return c.dynamic
}

// SubmitLabel derives the action label from the editing state: "Add X" for
// creates, "Update X" for edits.
func (c *Controller) SubmitLabel() string {
	noun := c.def.DisplayTitle()
	if c.state.IsEditing() {
		return fmt.Sprintf("Update %s", noun)
	}
	return fmt.Sprintf("Add %s", noun)
}

// VisualState evaluates the registered hooks against current values.
func (c *Controller) VisualState() (VisualState, bool) {
	for _, hook := range c.hooks {
		if state, ok := hook(c.state.Values()); ok {
			return state, true
		}
	}
	return VisualState{}, false
}

// Submit runs the persistence callback exactly once at a time. A submit
// arriving while another is in flight fails with ErrSubmitInFlight.
func (c *Controller) Submit(ctx context.Context) error {
	if c.onSubmit == nil {
		return ErrNoSubmitHandler
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.submitting = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	return c.onSubmit(ctx, c.state.Values())
}

// Close dismisses the form. Later Apply/Submit calls fail and in-flight
// dynamic-option results are discarded rather than applied.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

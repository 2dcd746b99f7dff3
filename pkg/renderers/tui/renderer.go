// Package tui walks a form definition as a sequence of terminal prompts and
// serializes the collected values. It exists for operators filling records
// from a shell session and for exercising definitions without a browser.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-medforms/pkg/dates"
	"github.com/goliatone/go-medforms/pkg/form"
	"github.com/goliatone/go-medforms/pkg/model"
	"github.com/goliatone/go-medforms/pkg/render"
)

// createOption is the sentinel entry appended to combobox selects.
const createOption = "Create new…"

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	OutputFormatJSON           OutputFormat = "json"
	OutputFormatFormURLEncoded OutputFormat = "form"
)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithOptionCache routes combobox create-new answers into the given cache.
func WithOptionCache(cache form.OptionCache) Option {
	return func(r *Renderer) {
		r.cache = cache
	}
}

// WithLogger attaches a structured logger; the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	cache        form.OptionCache
	logger       zerolog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		logger:       zerolog.Nop(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = newSurveyDriver()
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatFormURLEncoded {
		return "application/x-www-form-urlencoded"
	}
	return "application/json"
}

// Render prompts for every field in definition order and serializes the
// collected values. Prefilled values become prompt defaults.
func (r *Renderer) Render(ctx context.Context, def model.FormDefinition, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	verb := "Add"
	if opts.Editing {
		verb = "Update"
	}
	if err := r.driver.Info(ctx, fmt.Sprintf("=== %s %s ===", verb, def.DisplayTitle())); err != nil {
		return nil, err
	}

	state := form.NewState(opts.Values, opts.Errors)

	for _, field := range def.Fields {
		if err := r.promptField(ctx, field, state, opts); err != nil {
			return nil, err
		}
	}

	return r.serialize(state.Values())
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, state *form.State, opts render.RenderOptions) error {
	switch field.Type {
	case model.TypeText, model.TypeEmail, model.TypeTel, model.TypeURL:
		return r.promptText(ctx, field, state)
	case model.TypeTextarea:
		return r.promptTextarea(ctx, field, state)
	case model.TypeNumber:
		return r.promptNumber(ctx, field, state)
	case model.TypeSelect, model.TypeAutocomplete:
		return r.promptSelect(ctx, field, state, opts)
	case model.TypeCombobox:
		return r.promptCombobox(ctx, field, state, opts)
	case model.TypeDate:
		return r.promptDate(ctx, field, state)
	case model.TypeRating:
		return r.promptRating(ctx, field, state)
	case model.TypeCheckbox:
		return r.promptCheckbox(ctx, field, state)
	case model.TypeDivider:
		return r.driver.Info(ctx, "--- "+field.DisplayLabel()+" ---")
	case model.TypeTags:
		return r.promptTags(ctx, field, state)
	default:
		// Skipped, same as the HTML renderer.
		r.logger.Warn().
			Str("field", field.Name).
			Str("type", string(field.Type)).
			Msg("unknown field type skipped")
		return nil
	}
}

func (r *Renderer) promptText(ctx context.Context, field model.Field, state *form.State) error {
	value, err := r.driver.Input(ctx, InputConfig{
		Message:     promptMessage(field),
		Default:     stringValue(state, field.Name),
		Help:        field.Description,
		Placeholder: field.Placeholder,
		Validator:   textValidator(field),
	})
	if err != nil {
		return err
	}
	state.SetValue(field.Name, strings.TrimSpace(value))
	return nil
}

func (r *Renderer) promptTextarea(ctx context.Context, field model.Field, state *form.State) error {
	value, err := r.driver.TextArea(ctx, TextAreaConfig{
		Message: promptMessage(field),
		Default: stringValue(state, field.Name),
		Help:    field.Description,
	})
	if err != nil {
		return err
	}
	state.SetValue(field.Name, value)
	return nil
}

func (r *Renderer) promptNumber(ctx context.Context, field model.Field, state *form.State) error {
	raw, err := r.driver.Input(ctx, InputConfig{
		Message:   promptMessage(field),
		Default:   stringValue(state, field.Name),
		Help:      field.Description,
		Validator: numberValidator(field),
	})
	if err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		state.SetValue(field.Name, "")
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("tui: field %q: %w", field.Name, err)
	}
	state.SetValue(field.Name, value)
	return nil
}

func (r *Renderer) promptSelect(ctx context.Context, field model.Field, state *form.State, opts render.RenderOptions) error {
	options := opts.OptionsFor(field)
	labels := optionLabels(options)
	index, err := r.driver.Select(ctx, SelectConfig{
		Message:      promptMessage(field),
		Options:      labels,
		DefaultIndex: selectedIndex(options, stringValue(state, field.Name)),
		Help:         field.Description,
		PageSize:     opts.Pressure.OptionCap(10),
	})
	if err != nil {
		return err
	}
	if index < 0 || index >= len(options) {
		state.SetValue(field.Name, "")
		return nil
	}
	state.SetValue(field.Name, options[index].Value)
	return nil
}

// promptCombobox offers the option list plus a create-new entry. A created
// value lands in the option cache the same way the HTML flow caches it.
func (r *Renderer) promptCombobox(ctx context.Context, field model.Field, state *form.State, opts render.RenderOptions) error {
	options := opts.OptionsFor(field)
	labels := append(optionLabels(options), createOption)
	index, err := r.driver.Select(ctx, SelectConfig{
		Message:      promptMessage(field),
		Options:      labels,
		DefaultIndex: selectedIndex(options, stringValue(state, field.Name)),
		Help:         field.Description,
		PageSize:     opts.Pressure.OptionCap(10),
	})
	if err != nil {
		return err
	}

	if index >= 0 && index < len(options) {
		state.SetValue(field.Name, options[index].Value)
		return nil
	}

	created, err := r.driver.Input(ctx, InputConfig{
		Message:   "New " + field.DisplayLabel(),
		Validator: textValidator(field),
	})
	if err != nil {
		return err
	}
	created = strings.TrimSpace(created)
	state.SetValue(field.Name, created)

	if r.cache != nil && created != "" {
		if _, exists := model.ExactMatch(options, created); !exists {
			r.cache.Add(created)
		}
	}
	return nil
}

func (r *Renderer) promptDate(ctx context.Context, field model.Field, state *form.State) error {
	minBound := dates.EffectiveMin(field.Name, state.Values(), field.MinDate)
	value, err := r.driver.Input(ctx, InputConfig{
		Message:   promptMessage(field) + " (YYYY-MM-DD)",
		Default:   stringValue(state, field.Name),
		Help:      field.Description,
		Validator: dateValidator(field, minBound),
	})
	if err != nil {
		return err
	}
	state.SetValue(field.Name, strings.TrimSpace(value))
	return nil
}

func (r *Renderer) promptRating(ctx context.Context, field model.Field, state *form.State) error {
	labels := []string{"No rating"}
	for v := 0.5; v <= 5; v += 0.5 {
		labels = append(labels, strconv.FormatFloat(v, 'f', -1, 64))
	}

	index, err := r.driver.Select(ctx, SelectConfig{
		Message: promptMessage(field),
		Options: labels,
		Help:    field.Description,
	})
	if err != nil {
		return err
	}
	if index <= 0 {
		state.SetValue(field.Name, "")
		return nil
	}
	state.SetValue(field.Name, float64(index)*0.5)
	return nil
}

func (r *Renderer) promptCheckbox(ctx context.Context, field model.Field, state *form.State) error {
	current := false
	if raw, ok := state.Value(field.Name); ok {
		if b, isBool := raw.(bool); isBool {
			current = b
		}
	}
	value, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: promptMessage(field),
		Default: current,
		Help:    field.Description,
	})
	if err != nil {
		return err
	}
	state.SetValue(field.Name, value)
	return nil
}

// promptTags collects entries one per prompt until the user submits a blank
// line or the limit is reached.
func (r *Renderer) promptTags(ctx context.Context, field model.Field, state *form.State) error {
	limit := field.TagLimit()
	tags := make([]string, 0, limit)

	for len(tags) < limit {
		value, err := r.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("%s (%d/%d, blank to finish)", promptMessage(field), len(tags), limit),
		})
		if err != nil {
			return err
		}
		value = strings.TrimSpace(value)
		if value == "" {
			break
		}
		tags = append(tags, value)
	}

	state.SetValue(field.Name, tags)
	return nil
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	if r.outputFormat == OutputFormatFormURLEncoded {
		encoded := url.Values{}
		for name, value := range values {
			switch v := value.(type) {
			case []string:
				for _, item := range v {
					encoded.Add(name, item)
				}
			default:
				encoded.Set(name, fmt.Sprint(v))
			}
		}
		return []byte(encoded.Encode()), nil
	}
	return json.Marshal(values)
}

func promptMessage(field model.Field) string {
	message := field.DisplayLabel()
	if field.Required {
		message += " *"
	}
	return message
}

func stringValue(state *form.State, name string) string {
	raw, ok := state.Value(name)
	if !ok || raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func optionLabels(options []model.Option) []string {
	labels := make([]string, 0, len(options))
	for _, option := range options {
		labels = append(labels, option.DisplayLabel())
	}
	return labels
}

func selectedIndex(options []model.Option, value string) int {
	if value == "" {
		return 0
	}
	for i, option := range options {
		if option.Value == value {
			return i
		}
	}
	return 0
}

func textValidator(field model.Field) func(string) error {
	return func(raw string) error {
		trimmed := strings.TrimSpace(raw)
		if field.Required && trimmed == "" {
			return fmt.Errorf("%s is required", field.DisplayLabel())
		}
		if field.MaxLength > 0 && len(trimmed) > field.MaxLength {
			return fmt.Errorf("at most %d characters", field.MaxLength)
		}
		if field.MinLength > 0 && trimmed != "" && len(trimmed) < field.MinLength {
			return fmt.Errorf("at least %d characters", field.MinLength)
		}
		return nil
	}
}

func numberValidator(field model.Field) func(string) error {
	return func(raw string) error {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			if field.Required {
				return fmt.Errorf("%s is required", field.DisplayLabel())
			}
			return nil
		}
		value, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return errors.New("enter a number")
		}
		if field.Min != nil && value < *field.Min {
			return fmt.Errorf("must be at least %v", *field.Min)
		}
		if field.Max != nil && value > *field.Max {
			return fmt.Errorf("must be at most %v", *field.Max)
		}
		return nil
	}
}

func dateValidator(field model.Field, minBound dates.Bound) func(string) error {
	return func(raw string) error {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			if field.Required {
				return fmt.Errorf("%s is required", field.DisplayLabel())
			}
			return nil
		}
		parsed, err := dates.Parse(trimmed)
		if err != nil {
			return errors.New("enter a date as YYYY-MM-DD")
		}
		if minDate, ok := minBound.Resolve(); ok && parsed.Before(minDate) {
			return fmt.Errorf("must be on or after %s", dates.Format(minDate))
		}
		if maxDate, ok := field.MaxDate.Resolve(); ok && parsed.After(maxDate) {
			return fmt.Errorf("must be on or before %s", dates.Format(maxDate))
		}
		return nil
	}
}

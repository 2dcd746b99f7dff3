// Package medforms generates medical record entry forms from entity
// definitions. The root package wires the embedded catalog and the built-in
// renderers together; the pkg tree exposes the individual layers for callers
// that need finer control.
package medforms

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-medforms/pkg/catalog"
	"github.com/goliatone/go-medforms/pkg/engine"
	"github.com/goliatone/go-medforms/pkg/render"
	"github.com/goliatone/go-medforms/pkg/renderers/tui"
	"github.com/goliatone/go-medforms/pkg/renderers/vanilla"
)

// Request describes a single form generation; alias exported via the root
// package for convenience.
type Request = engine.Request

// Result is a rendered form plus its content type and session token.
type Result = engine.Result

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Option configures an Engine.
type Option = engine.Option

// NewEngine constructs an engine with the built-in renderers registered.
// The HTML renderer is the default; the terminal renderer is available by
// name.
func NewEngine(options ...Option) (*engine.Engine, error) {
	htmlRenderer, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("medforms: %w", err)
	}
	terminalRenderer, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("medforms: %w", err)
	}

	registry := render.NewRegistry()
	registry.MustRegister(htmlRenderer)
	registry.MustRegister(terminalRenderer)

	base := []Option{
		engine.WithRegistry(registry),
		engine.WithDefaultRenderer(htmlRenderer.Name()),
	}
	return engine.New(append(base, options...)...), nil
}

// GenerateHTML renders the named entity's form with the default HTML
// renderer. It is the simplest entry point for callers that just want
// markup.
func GenerateHTML(ctx context.Context, entity string, options ...Option) ([]byte, error) {
	eng, err := NewEngine(options...)
	if err != nil {
		return nil, err
	}
	result, err := eng.Generate(ctx, Request{Entity: entity})
	if err != nil {
		return nil, err
	}
	return result.Body, nil
}

// WithCatalog replaces the embedded entity catalog.
func WithCatalog(registry *catalog.Registry) Option {
	return engine.WithCatalog(registry)
}

// WithThemeSelector passes a go-theme selector through to the engine so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return engine.WithThemeSelector(selector)
}

// WithTheme sets the default theme and variant applied when a request does
// not name its own.
func WithTheme(name, variant string) Option {
	return engine.WithTheme(name, variant)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return engine.WithThemeFallbacks(fallbacks)
}

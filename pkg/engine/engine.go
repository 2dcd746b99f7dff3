package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-medforms/pkg/catalog"
	"github.com/goliatone/go-medforms/pkg/form"
	"github.com/goliatone/go-medforms/pkg/layout"
	"github.com/goliatone/go-medforms/pkg/model"
	"github.com/goliatone/go-medforms/pkg/render"
)

// ErrNoRenderer reports a Generate call with no renderer requested and no
// default configured.
var ErrNoRenderer = errors.New("engine: no renderer configured")

// Engine resolves entities from a catalog and renders their forms.
type Engine struct {
	catalog         *catalog.Registry
	registry        *render.Registry
	defaultRenderer string
	selector        theme.ThemeSelector
	themeName       string
	themeVariant    string
	themeFallbacks  map[string]string
	logger          zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalog replaces the embedded default catalog.
func WithCatalog(registry *catalog.Registry) Option {
	return func(e *Engine) {
		if registry != nil {
			e.catalog = registry
		}
	}
}

// WithRegistry replaces the renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(e *Engine) {
		if registry != nil {
			e.registry = registry
		}
	}
}

// WithDefaultRenderer names the renderer used when a request does not pick
// one.
func WithDefaultRenderer(name string) Option {
	return func(e *Engine) {
		e.defaultRenderer = name
	}
}

// WithThemeSelector passes a go-theme selector so theme and variant choices
// can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(e *Engine) {
		e.selector = selector
	}
}

// WithTheme sets the theme and variant used when a request does not name
// its own.
func WithTheme(name, variant string) Option {
	return func(e *Engine) {
		e.themeName = name
		e.themeVariant = variant
	}
}

// WithThemeFallbacks replaces the fallback partials merged into derived
// renderer configuration.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(e *Engine) {
		e.themeFallbacks = fallbacks
	}
}

// WithLogger replaces the no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New constructs an Engine. Without options it serves the embedded catalog
// with an empty renderer registry; callers register renderers themselves or
// go through the package root which wires the defaults.
func New(opts ...Option) *Engine {
	engine := &Engine{
		catalog:        catalog.Default(),
		registry:       render.NewRegistry(),
		themeFallbacks: defaultThemeFallbacks(),
		logger:         zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(engine)
		}
	}
	return engine
}

// Request describes a single form generation.
type Request struct {
	// Entity names a catalog definition.
	Entity string
	// Renderer overrides the engine default for this request.
	Renderer string

	Values         map[string]any
	Errors         map[string]string
	FormErrors     []string
	DynamicOptions map[string][]model.Option
	LoadingStates  map[string]bool
	Editing        bool

	Breakpoint layout.Breakpoint
	Pressure   layout.Pressure

	// Session correlates the rendered form with a submission. Empty means
	// the engine mints one.
	Session      string
	HiddenFields map[string]string
	VisualHooks  []form.VisualHook

	SubmitLabel string
	CancelLabel string

	ThemeName    string
	ThemeVariant string
}

// Result is the rendered form.
type Result struct {
	Body        []byte
	ContentType string
	Renderer    string
	Session     string
}

// Generate looks up the entity, resolves the theme and renders the form.
func (e *Engine) Generate(ctx context.Context, req Request) (Result, error) {
	def, err := e.catalog.Definition(req.Entity)
	if err != nil {
		return Result{}, fmt.Errorf("engine: %w", err)
	}

	name := req.Renderer
	if name == "" {
		name = e.defaultRenderer
	}
	if name == "" {
		return Result{}, ErrNoRenderer
	}
	renderer, err := e.registry.Get(name)
	if err != nil {
		return Result{}, fmt.Errorf("engine: %w", err)
	}

	themeConfig, err := e.resolveTheme(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return Result{}, err
	}

	session := req.Session
	if session == "" {
		session = uuid.NewString()
	}

	options := render.RenderOptions{
		Values:         req.Values,
		Errors:         req.Errors,
		FormErrors:     req.FormErrors,
		DynamicOptions: req.DynamicOptions,
		LoadingStates:  req.LoadingStates,
		Editing:        req.Editing,
		Breakpoint:     req.Breakpoint,
		Pressure:       req.Pressure,
		HiddenFields:   req.HiddenFields,
		Theme:          themeConfig,
		VisualHooks:    req.VisualHooks,
		Session:        session,
		SubmitLabel:    req.SubmitLabel,
		CancelLabel:    req.CancelLabel,
	}

	body, err := renderer.Render(ctx, def, options)
	if err != nil {
		return Result{}, fmt.Errorf("engine: render %s: %w", name, err)
	}

	e.logger.Debug().Str("entity", req.Entity).Str("renderer", name).
		Int("bytes", len(body)).Msg("form generated")

	return Result{
		Body:        body,
		ContentType: renderer.ContentType(),
		Renderer:    name,
		Session:     session,
	}, nil
}

// Entities lists the entities this engine can render.
func (e *Engine) Entities() []string {
	return e.catalog.Entities()
}

// Catalog exposes the backing registry for callers that need definitions
// directly, such as submission controllers.
func (e *Engine) Catalog() *catalog.Registry {
	return e.catalog
}

// Renderers lists the registered renderer names.
func (e *Engine) Renderers() []string {
	return e.registry.List()
}

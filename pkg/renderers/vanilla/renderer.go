// Package vanilla renders form definitions as dependency-free HTML: a modal
// shell around a responsive field grid, with plain inputs a browser can
// submit without any client runtime.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-medforms/pkg/layout"
	"github.com/goliatone/go-medforms/pkg/model"
	"github.com/goliatone/go-medforms/pkg/render"
	rendertemplate "github.com/goliatone/go-medforms/pkg/render/template"
	gotemplate "github.com/goliatone/go-medforms/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	logger           zerolog.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithLogger routes renderer diagnostics through the given logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	logger    zerolog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, logger: cfg.logger}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render packs the definition's fields into grid rows for the requested
// breakpoint and wraps them in the modal shell template.
func (r *Renderer) Render(_ context.Context, def model.FormDefinition, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	breakpoint := options.EffectiveBreakpoint()
	budget := layout.Columns(breakpoint, len(def.Fields))
	rows := layout.Pack(def.Fields, budget)

	fields := newFieldRenderer(r.logger, options)
	rowMarkup := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		cells := make([]map[string]any, 0, len(row.Fields))
		for _, cell := range row.Fields {
			markup, err := fields.render(cell.Field, cell.Span)
			if err != nil {
				return nil, fmt.Errorf("vanilla renderer: field %q: %w", cell.Field.Name, err)
			}
			cells = append(cells, map[string]any{
				"span":   cell.Span,
				"markup": markup,
			})
		}
		rowMarkup = append(rowMarkup, map[string]any{"cells": cells})
	}

	submitLabel := options.SubmitLabel
	if submitLabel == "" {
		verb := "Add"
		if options.Editing {
			verb = "Update"
		}
		submitLabel = verb + " " + def.DisplayTitle()
	}
	cancelLabel := options.CancelLabel
	if cancelLabel == "" {
		cancelLabel = "Cancel"
	}

	submitColor := ""
	if state, ok := options.VisualState(); ok {
		submitColor = state.Color
	}

	data := map[string]any{
		"entity":       def.Entity,
		"title":        def.DisplayTitle(),
		"description":  sanitizeText(def.Description),
		"endpoint":     def.Endpoint,
		"method":       def.EffectiveMethod(),
		"session":      options.Session,
		"editing":      options.Editing,
		"size":         string(layout.SizeFor(len(def.Fields))),
		"spacing":      string(layout.SpacingFor(breakpoint, len(def.Fields))),
		"animate":      options.Pressure.Animate(),
		"columns":      budget,
		"rows":         rowMarkup,
		"formErrors":   options.FormErrors,
		"hiddenFields": hiddenFieldData(options),
		"submitLabel":  submitLabel,
		"submitColor":  submitColor,
		"cancelLabel":  cancelLabel,
		"theme":        themeData(options),
	}

	result, err := r.templates.RenderTemplate("templates/modal.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func hiddenFieldData(options render.RenderOptions) []map[string]any {
	merged := options.HiddenFields
	if options.Session != "" {
		merged = render.MergeHiddenFields(merged, render.SessionField(options.Session))
	}
	sorted := render.SortedHiddenFields(merged)
	if len(sorted) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(sorted))
	for _, field := range sorted {
		out = append(out, map[string]any{"name": field.Name, "value": field.Value})
	}
	return out
}

func themeData(options render.RenderOptions) map[string]any {
	cfg := options.Theme
	if cfg == nil {
		return nil
	}
	out := map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
	}
	if len(cfg.CSSVars) > 0 {
		names := make([]string, 0, len(cfg.CSSVars))
		for name := range cfg.CSSVars {
			names = append(names, name)
		}
		sort.Strings(names)
		var style strings.Builder
		for _, name := range names {
			style.WriteString(name)
			style.WriteString(": ")
			style.WriteString(cfg.CSSVars[name])
			style.WriteString("; ")
		}
		out["style"] = strings.TrimSpace(style.String())
	}
	if cfg.AssetURL != nil {
		if href := cfg.AssetURL("vanilla.stylesheet"); href != "" {
			out["stylesheet"] = href
		}
	}
	return out
}

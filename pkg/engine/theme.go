package engine

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// defaultThemeFallbacks names the partials a selection falls back to when
// neither the manifest nor the variant overrides them.
func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		"form.modal": "templates/modal.tmpl",
	}
}

// resolveTheme turns a theme/variant choice into renderer configuration.
// Request values win over the engine defaults; with no selector configured
// rendering proceeds unthemed.
func (e *Engine) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	if e.selector == nil {
		return nil, nil
	}
	if name == "" {
		name = e.themeName
	}
	if variant == "" {
		variant = e.themeVariant
	}
	if name == "" {
		return nil, nil
	}

	selection, err := e.selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("engine: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, nil
	}
	return rendererConfig(selection, e.themeFallbacks), nil
}

// rendererConfig flattens a selection into the config renderers consume.
// Variant values overlay the manifest, which overlays the fallbacks. Tokens
// double as CSS custom properties under a leading double dash.
func rendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	manifest := selection.Manifest
	var variant theme.Variant
	if selection.Variant != "" {
		variant = manifest.Variants[selection.Variant]
	}

	tokens := overlay(manifest.Tokens, variant.Tokens)
	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars[cssVarName(key)] = value
	}

	partials := overlay(fallbacks, manifest.Templates)
	partials = overlay(partials, variant.Templates)

	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}
	files := overlay(manifest.Assets.Files, variant.Assets.Files)

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Tokens:   tokens,
		CSSVars:  cssVars,
		Partials: partials,
		AssetURL: assetResolver(prefix, files),
	}
}

func overlay(base, over map[string]string) map[string]string {
	if len(base) == 0 && len(over) == 0 {
		return nil
	}
	merged := make(map[string]string, len(base)+len(over))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range over {
		merged[key] = value
	}
	return merged
}

func cssVarName(token string) string {
	if strings.HasPrefix(token, "--") {
		return token
	}
	return "--" + token
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return strings.TrimSuffix(prefix, "/") + "/" + file
	}
}

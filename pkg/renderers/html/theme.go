package html

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Partial keys a theme can override through its templates map.
const (
	PartialArray  = "formarray.array"
	PartialDialog = "formarray.dialog"
)

func defaultPartials() map[string]string {
	return map[string]string{
		PartialArray:  "array",
		PartialDialog: "dialog",
	}
}

// RendererConfig flattens a selection into renderer configuration: variant
// tokens, templates and assets override the manifest's, tokens become
// "--<name>" CSS variables and fallbacks fill partials the theme does not
// define.
func RendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	variant, hasVariant := manifest.Variants[selection.Variant]

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(fallbacks, manifest.Templates)
	files := mergeStrings(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix
	if hasVariant {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, variant.Templates)
		files = mergeStrings(files, variant.Assets.Files)
		if strings.TrimSpace(variant.Assets.Prefix) != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file := strings.TrimSpace(files[key])
			if file == "" {
				return ""
			}
			if strings.HasPrefix(file, "/") || strings.Contains(file, "://") || prefix == "" {
				return file
			}
			return strings.TrimSuffix(prefix, "/") + "/" + file
		},
	}
}

// StaticSelector serves a fixed set of manifests. It satisfies
// theme.ThemeSelector; unknown variants select the base manifest.
type StaticSelector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

// NewStaticSelector validates manifests through a go-theme registry and
// indexes them by name. The first manifest is the default theme.
func NewStaticSelector(defaultVariant string, manifests ...*theme.Manifest) (*StaticSelector, error) {
	if len(manifests) == 0 {
		return nil, errors.New("html: at least one theme manifest is required")
	}
	registry := theme.NewRegistry()
	selector := &StaticSelector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultVariant: defaultVariant,
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("html: register theme %q: %w", manifest.Name, err)
		}
		if selector.defaultTheme == "" {
			selector.defaultTheme = manifest.Name
		}
		selector.manifests[manifest.Name] = manifest
	}
	return selector, nil
}

// Select implements theme.ThemeSelector.
func (s *StaticSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if strings.TrimSpace(name) == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("html: unknown theme %q", name)
	}
	if strings.TrimSpace(variant) == "" {
		variant = s.defaultVariant
	}
	if _, ok := manifest.Variants[variant]; !ok {
		variant = ""
	}
	return &theme.Selection{Theme: manifest.Name, Variant: variant, Manifest: manifest}, nil
}

// DefaultManifest is the built-in theme used by the CLI. Tokens feed the
// drag indicator and item chrome.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "formarray",
		Version: "1.0.0",
		Tokens: map[string]string{
			"formarray-border":    "#d0d7de",
			"formarray-indicator": "#0969da",
			"formarray-dragging":  "#f6f8fa",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"formarray-border":    "#30363d",
					"formarray-indicator": "#58a6ff",
					"formarray-dragging":  "#161b22",
				},
			},
		},
	}
}

type themeContext struct {
	Name    string
	Variant string
	Style   string
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	return themeContext{Name: cfg.Theme, Variant: cfg.Variant, Style: cssVarsStyle(cfg.CSSVars)}
}

func (t themeContext) values() map[string]any {
	return map[string]any{"name": t.Name, "variant": t.Variant, "style": t.Style}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}

func mergeStrings(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		if strings.TrimSpace(value) != "" {
			out[key] = value
		}
	}
	return out
}

package html

import (
	"io"
	"io/fs"
	"log/slog"

	theme "github.com/goliatone/go-theme"
)

type config struct {
	logger    *slog.Logger
	templates fs.FS
	engine    TemplateRenderer
	theme     *theme.RendererConfig
	selector  theme.ThemeSelector
	themeName string
	variant   string
	fallbacks map[string]string
}

func defaultConfig() config {
	return config{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		templates: TemplatesFS(),
		fallbacks: defaultPartials(),
	}
}

// Option customises a Renderer.
type Option func(*config)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTemplatesFS replaces the embedded templates. The FS must provide
// every partial the renderer resolves.
func WithTemplatesFS(files fs.FS) Option {
	return func(c *config) {
		if files != nil {
			c.templates = files
		}
	}
}

// WithTemplateRenderer plugs in a ready engine; WithTemplatesFS is then
// ignored.
func WithTemplateRenderer(engine TemplateRenderer) Option {
	return func(c *config) {
		c.engine = engine
	}
}

// WithTheme uses an already resolved renderer configuration.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithThemeSelector resolves name and variant through selector when the
// renderer is built.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(c *config) {
		c.selector = selector
		c.themeName = name
		c.variant = variant
	}
}

// WithThemeFallbacks overrides the partials used when a theme does not
// define them.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(c *config) {
		c.fallbacks = mergeStrings(c.fallbacks, fallbacks)
	}
}

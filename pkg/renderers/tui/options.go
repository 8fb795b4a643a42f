package tui

import (
	"io"
	"log/slog"

	"github.com/goliatone/go-formarray/pkg/arrays"
	"github.com/goliatone/go-formarray/pkg/i18n"
)

// Theme captures message prefixes printed before info and error lines.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

type config struct {
	driver      PromptDriver
	logger      *slog.Logger
	localizer   i18n.Localizer
	theme       Theme
	color       bool
	diffPreview bool
	control     []arrays.Option
}

func defaultConfig() config {
	return config{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		localizer:   i18n.NewLocalizer(i18n.DefaultLocale),
		theme:       Theme{ErrorPrefix: "! "},
		color:       true,
		diffPreview: true,
	}
}

// Option configures a Session or Presenter.
type Option func(*config)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *config) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLocalizer sets the locale for menu labels and dialog strings.
func WithLocalizer(localizer i18n.Localizer) Option {
	return func(c *config) {
		c.localizer = localizer
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(c *config) {
		c.theme = theme
	}
}

// WithColor toggles ANSI colours.
func WithColor(enabled bool) Option {
	return func(c *config) {
		c.color = enabled
	}
}

// WithDiffPreview toggles the diff shown before a raw edit is applied.
func WithDiffPreview(enabled bool) Option {
	return func(c *config) {
		c.diffPreview = enabled
	}
}

// WithControlOptions forwards options to the underlying arrays.Control.
// The session always installs its own presenter.
func WithControlOptions(options ...arrays.Option) Option {
	return func(c *config) {
		c.control = append(c.control, options...)
	}
}

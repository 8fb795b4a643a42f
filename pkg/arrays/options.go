package arrays

import (
	"io"
	"log/slog"

	"github.com/goliatone/go-formarray/pkg/dialog"
	"github.com/goliatone/go-formarray/pkg/i18n"
	"github.com/goliatone/go-formarray/pkg/visibility"
	exprvis "github.com/goliatone/go-formarray/pkg/visibility/expr"
)

type config struct {
	logger        *slog.Logger
	presenter     dialog.Presenter
	renderer      ElementRenderer
	evaluator     visibility.Evaluator
	localizer     i18n.Localizer
	minimal       bool
	validateRaw   bool
	visibilityEnv map[string]any
}

func defaultConfig() config {
	return config{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		evaluator:   exprvis.New(),
		localizer:   i18n.NewLocalizer(i18n.DefaultLocale),
		validateRaw: true,
	}
}

// Option customises a Control.
type Option func(*config)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPresenter sets the dialog service used by RequestAdd and EditRaw.
func WithPresenter(presenter dialog.Presenter) Option {
	return func(c *config) {
		c.presenter = presenter
	}
}

// WithRenderer sets the delegate that renders each element.
func WithRenderer(renderer ElementRenderer) Option {
	return func(c *config) {
		c.renderer = renderer
	}
}

// WithEvaluator sets the evaluator for item visibility and enablement rules.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(c *config) {
		if evaluator != nil {
			c.evaluator = evaluator
		}
	}
}

// WithLocalizer sets the locale and translator for display strings.
func WithLocalizer(localizer i18n.Localizer) Option {
	return func(c *config) {
		c.localizer = localizer
	}
}

// WithMinimal hides the header (label and raw-edit affordance).
func WithMinimal(minimal bool) Option {
	return func(c *config) {
		c.minimal = minimal
	}
}

// WithRawValidation toggles schema validation of raw-edited values. Parsing
// is always enforced.
func WithRawValidation(enabled bool) Option {
	return func(c *config) {
		c.validateRaw = enabled
	}
}

// WithRuleExtras exposes extra bindings to item rules under `extras`.
func WithRuleExtras(extras map[string]any) Option {
	return func(c *config) {
		c.visibilityEnv = extras
	}
}

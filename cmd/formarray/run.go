package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-formarray/internal/loader"
	"github.com/goliatone/go-formarray/pkg/arrays"
	"github.com/goliatone/go-formarray/pkg/i18n"
	"github.com/goliatone/go-formarray/pkg/jsonschema"
	"github.com/goliatone/go-formarray/pkg/openapi"
	"github.com/goliatone/go-formarray/pkg/paths"
	"github.com/goliatone/go-formarray/pkg/renderers/html"
	"github.com/goliatone/go-formarray/pkg/renderers/tui"
	"github.com/goliatone/go-formarray/pkg/schema"
	"github.com/goliatone/go-formarray/pkg/store"
)

func execute(ctx context.Context, cfg *Config, stdout io.Writer) error {
	if cfg.ConfigFile != "" {
		file, err := loadConfigFile(cfg.ConfigFile)
		if err != nil {
			return err
		}
		cfg.overlay(file)
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	root, pointer, err := loadRoot(ctx, cfg)
	if err != nil {
		return err
	}
	arraySchema, err := root.Lookup(pointer)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", pointer, err)
	}
	dataPath := paths.Path(cfg.Path)
	if dataPath == paths.Root {
		dataPath = dataPathFromPointer(cfg.Pointer)
	}
	data, err := loadData(cfg.Data)
	if err != nil {
		return err
	}

	out := stdout
	if cfg.Out != "" {
		f, err := os.Create(cfg.Out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	locale := strings.TrimSpace(cfg.Locale)
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	localizer := i18n.NewLocalizer(locale)
	controlOptions := []arrays.Option{
		arrays.WithMinimal(cfg.Minimal),
		arrays.WithRawValidation(!cfg.NoValidate),
		arrays.WithRuleExtras(cfg.Rules),
	}
	st := store.New(data, store.WithLogger(logger))
	props := arrays.Props{Schema: &arraySchema, Root: root, Path: dataPath}

	logger.Debug("formarray start", "schema", cfg.Schema, "pointer", pointer, "path", dataPath.String(), "format", cfg.Format)

	switch cfg.Format {
	case FormatHTML:
		return renderHTML(cfg, st, props, append(controlOptions, arrays.WithLogger(logger), arrays.WithLocalizer(localizer)), logger, out)
	default:
		session, err := tui.NewSession(st, props,
			tui.WithLogger(logger),
			tui.WithLocalizer(localizer),
			tui.WithColor(!cfg.NoColor),
			tui.WithControlOptions(controlOptions...),
		)
		if err != nil {
			return err
		}
		if err := session.Run(ctx); err != nil {
			return err
		}
		return writeJSON(out, st.Data())
	}
}

func renderHTML(cfg *Config, st *store.Store, props arrays.Props, options []arrays.Option, logger *slog.Logger, out io.Writer) error {
	selector, err := html.NewStaticSelector(cfg.Variant, html.DefaultManifest())
	if err != nil {
		return err
	}
	renderer, err := html.New(html.WithThemeSelector(selector, cfg.Theme, cfg.Variant), html.WithLogger(logger))
	if err != nil {
		return err
	}
	value, _ := st.Get(props.Path)
	if value != nil {
		list, ok := value.([]any)
		if !ok {
			logger.Warn("data at path is not an array; rendering empty", "path", props.Path.String())
		}
		props.Data = list
	}
	control := arrays.NewControl(st, options...)
	control.Update(props)
	_, err = renderer.RenderView(control.View(), out)
	return err
}

// loadRoot loads the schema root and returns the absolute pointer of the
// array schema. With -operation the pointer is resolved against that
// operation's request body schema.
func loadRoot(ctx context.Context, cfg *Config) (*jsonschema.Root, string, error) {
	src := schema.SourceFromFile(cfg.Schema)
	if !cfg.OpenAPI {
		root, err := jsonschema.LoadRootFrom(ctx, loader.New(nil), src)
		return root, cfg.Pointer, err
	}
	doc, err := loader.New(nil).Load(ctx, src)
	if err != nil {
		return nil, "", err
	}
	spec, err := openapi.Load(ctx, doc, openapi.WithValidation(true))
	if err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(cfg.Operation) == "" {
		return spec.Root(), cfg.Pointer, nil
	}
	pointer, err := spec.SchemaPointer(strings.TrimSpace(cfg.Operation), cfg.Pointer)
	if err != nil {
		return nil, "", err
	}
	return spec.Root(), pointer, nil
}

func loadData(path string) (any, error) {
	if strings.TrimSpace(path) == "" {
		return map[string]any{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	doc, err := schema.NewDocument(schema.SourceFromFile(path), raw)
	if err != nil {
		return nil, fmt.Errorf("data %s: %w", path, err)
	}
	if doc.Format() == schema.FormatYAML {
		return jsonschema.DecodeYAML(raw)
	}
	return jsonschema.DecodeJSON(raw)
}

// dataPathFromPointer maps a schema pointer to the data path it describes:
// "properties/<name>" segments become path segments, "items" becomes 0.
func dataPathFromPointer(pointer string) paths.Path {
	segments := paths.FromPointer(strings.TrimPrefix(pointer, "#")).Segments()
	path := paths.Root
	for i := 0; i < len(segments); i++ {
		switch segments[i] {
		case "properties":
			if i+1 < len(segments) {
				path = paths.Compose(path, segments[i+1])
				i++
			}
		case "items":
			path = paths.Compose(path, 0)
		}
	}
	return path
}

func writeJSON(w io.Writer, value any) error {
	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}

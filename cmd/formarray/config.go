package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/scott-cotton/cli"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatTUI  = "tui"
	FormatHTML = "html"
)

// Config holds command flags. Values from -config fill the flags left at
// their zero value.
type Config struct {
	*cli.Command `yaml:"-"`

	ConfigFile string `cli:"name=config desc='YAML configuration file'" yaml:"-"`
	Schema     string `cli:"name=schema aliases=s desc='JSON Schema or OpenAPI document (json or yaml)'" yaml:"schema"`
	OpenAPI    bool   `cli:"name=openapi desc='treat -schema as an OpenAPI document'" yaml:"openapi"`
	Operation  string `cli:"name=operation desc='OpenAPI operationId; -pointer is then relative to its request body schema'" yaml:"operation"`
	Pointer    string `cli:"name=pointer aliases=p desc='JSON pointer to the array schema, e.g. #/properties/blocks'" yaml:"pointer"`
	Data       string `cli:"name=data aliases=d desc='JSON or YAML data file'" yaml:"data"`
	Path       string `cli:"name=path desc='dotted data path of the array (derived from -pointer when empty)'" yaml:"path"`
	Format     string `cli:"name=format aliases=f desc='output: tui or html'" yaml:"format"`
	Out        string `cli:"name=o desc='output file (default stdout)'" yaml:"out"`
	Locale     string `cli:"name=locale desc='display locale'" yaml:"locale"`
	Theme      string `cli:"name=theme desc='theme name'" yaml:"theme"`
	Variant    string `cli:"name=variant desc='theme variant'" yaml:"variant"`
	Minimal    bool   `cli:"name=minimal desc='hide the array header'" yaml:"minimal"`
	NoColor    bool   `cli:"name=no-color desc='disable ANSI colours'" yaml:"noColor"`
	NoValidate bool   `cli:"name=no-validate desc='skip schema validation of raw edits'" yaml:"noValidate"`
	LogLevel   string `cli:"name=log-level desc='debug, info, warn or error'" yaml:"logLevel"`
	LogFormat  string `cli:"name=log-format desc='text or json'" yaml:"logFormat"`

	Rules map[string]any `yaml:"rules"`
}

func loadConfigFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	out := &Config{}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return out, nil
}

// overlay copies values from file into fields cfg left unset.
func (cfg *Config) overlay(file *Config) {
	if file == nil {
		return
	}
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = strings.TrimSpace(src)
		}
	}
	fill(&cfg.Schema, file.Schema)
	fill(&cfg.Operation, file.Operation)
	fill(&cfg.Pointer, file.Pointer)
	fill(&cfg.Data, file.Data)
	fill(&cfg.Path, file.Path)
	fill(&cfg.Format, file.Format)
	fill(&cfg.Out, file.Out)
	fill(&cfg.Locale, file.Locale)
	fill(&cfg.Theme, file.Theme)
	fill(&cfg.Variant, file.Variant)
	fill(&cfg.LogLevel, file.LogLevel)
	fill(&cfg.LogFormat, file.LogFormat)
	cfg.OpenAPI = cfg.OpenAPI || file.OpenAPI
	cfg.Minimal = cfg.Minimal || file.Minimal
	cfg.NoColor = cfg.NoColor || file.NoColor
	cfg.NoValidate = cfg.NoValidate || file.NoValidate
	if cfg.Rules == nil {
		cfg.Rules = file.Rules
	}
}

func (cfg *Config) validate() error {
	if strings.TrimSpace(cfg.Schema) == "" {
		return fmt.Errorf("-schema is required")
	}
	if strings.TrimSpace(cfg.Pointer) == "" {
		return fmt.Errorf("-pointer is required")
	}
	if strings.TrimSpace(cfg.Operation) != "" && !cfg.OpenAPI {
		return fmt.Errorf("-operation requires -openapi")
	}
	switch cfg.Format {
	case "":
		cfg.Format = FormatTUI
	case FormatTUI, FormatHTML:
	default:
		return fmt.Errorf("unknown format %q (want tui or html)", cfg.Format)
	}
	return nil
}

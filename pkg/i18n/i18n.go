// Package i18n resolves display strings for the array editor.
package i18n

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Message keys used by the editor.
const (
	KeyAddItem         = "addItem"
	KeyAdd             = "add"
	KeyCancel          = "cancel"
	KeyUpdate          = "update"
	KeyJSON            = "json"
	KeyRemove          = "remove"
	KeyMove            = "move"
	KeyDone            = "done"
	KeyNoItems         = "noItems"
	KeySelectVariant   = "selectVariant"
	KeyEditRaw         = "editRaw"
	KeyMaxItemsReached = "maxItemsReached"
)

// DefaultLocale is used when no locale or translation matches.
const DefaultLocale = "en"

var (
	// ErrMissingTranslator is reported to MissingTranslationHandler when no
	// translator is configured.
	ErrMissingTranslator = errors.New("i18n: translator is nil")
	// ErrMissingKey is returned by Catalog for unknown keys.
	ErrMissingKey = errors.New("i18n: missing translation")
)

// Translator resolves a key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to show when a lookup fails.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate implements Translator.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

//go:embed messages.yaml
var builtinMessages []byte

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// Catalog is a static locale -> key -> message table.
type Catalog struct {
	messages map[string]map[string]string
}

var _ Translator = (*Catalog)(nil)

// ParseCatalog decodes a YAML catalogue.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var messages map[string]map[string]string
	if err := yaml.Unmarshal(raw, &messages); err != nil {
		return nil, fmt.Errorf("i18n: parse catalog: %w", err)
	}
	normalized := make(map[string]map[string]string, len(messages))
	for locale, table := range messages {
		normalized[strings.ToLower(locale)] = table
	}
	return &Catalog{messages: normalized}, nil
}

// Default returns the built-in catalogue (English, Spanish, German).
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = ParseCatalog(builtinMessages)
	})
	if defaultCatalogErr != nil {
		panic(defaultCatalogErr)
	}
	return defaultCatalog
}

// Merge overlays other on top of c and returns a new catalogue.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	out := &Catalog{messages: make(map[string]map[string]string)}
	for _, src := range []*Catalog{c, other} {
		if src == nil {
			continue
		}
		for locale, table := range src.messages {
			dst, ok := out.messages[locale]
			if !ok {
				dst = make(map[string]string, len(table))
				out.messages[locale] = dst
			}
			for key, msg := range table {
				dst[key] = msg
			}
		}
	}
	return out
}

// Translate looks the key up for locale, then its base language, then the
// default locale. Args are applied with fmt.Sprintf.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil {
		return "", ErrMissingTranslator
	}
	for _, candidate := range candidates(locale) {
		table, ok := c.messages[candidate]
		if !ok {
			continue
		}
		msg, ok := table[key]
		if !ok || strings.TrimSpace(msg) == "" {
			continue
		}
		if len(args) > 0 {
			return fmt.Sprintf(msg, args...), nil
		}
		return msg, nil
	}
	return "", fmt.Errorf("%w: %s/%s", ErrMissingKey, locale, key)
}

func candidates(locale string) []string {
	out := make([]string, 0, 3)
	locale = strings.TrimSpace(locale)
	if locale != "" {
		out = append(out, strings.ToLower(locale))
		if tag, err := language.Parse(locale); err == nil {
			base, _ := tag.Base()
			if b := strings.ToLower(base.String()); b != out[0] {
				out = append(out, b)
			}
		}
	}
	return append(out, DefaultLocale)
}

// Translate resolves key with t, falling back to onMissing, then fallback,
// then the key itself.
func Translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	var err error
	if t == nil {
		err = ErrMissingTranslator
	} else {
		var result string
		result, err = t.Translate(locale, key, args...)
		if err == nil && strings.TrimSpace(result) != "" {
			return result
		}
	}

	if onMissing != nil {
		return onMissing(locale, key, append([]any{map[string]any{"default": fallback}}, args...), err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// Localizer binds a locale and translator for repeated lookups.
type Localizer struct {
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// NewLocalizer returns a Localizer backed by the built-in catalogue.
func NewLocalizer(locale string) Localizer {
	return Localizer{Locale: locale, Translator: Default()}
}

// T translates key with args.
func (l Localizer) T(key string, args ...any) string {
	return Translate(l.Locale, key, "", l.Translator, l.OnMissing, args...)
}

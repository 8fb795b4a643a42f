package i18n

import (
	"errors"
	"testing"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestCatalog_LocaleFallback(t *testing.T) {
	catalog := Default()
	cases := []struct {
		locale string
		want   string
	}{
		{"es", "Añadir elemento"},
		{"es-MX", "Añadir elemento"},
		{"DE", "Eintrag hinzufügen"},
		{"fr", "Add item"},
		{"", "Add item"},
	}
	for _, tc := range cases {
		got, err := catalog.Translate(tc.locale, KeyAddItem)
		if err != nil {
			t.Fatalf("%s: %v", tc.locale, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.locale, tc.want, got)
		}
	}
	if _, err := catalog.Translate("en", "unknown"); !errors.Is(err, ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
	if got, _ := catalog.Translate("en", KeyMaxItemsReached, 3); got != "Maximum of 3 items reached" {
		t.Fatalf("unexpected formatted message %q", got)
	}
}

func TestTranslate_FallbackChain(t *testing.T) {
	stub := stubTranslator{"add": "Agregar"}
	if got := Translate("es", "add", "Add", stub, nil); got != "Agregar" {
		t.Fatalf("expected translation, got %q", got)
	}
	if got := Translate("es", "cancel", "Cancel", stub, nil); got != "Cancel" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := Translate("es", "cancel", "", nil, nil); got != "cancel" {
		t.Fatalf("expected key, got %q", got)
	}

	var gotErr error
	handler := func(locale, key string, args []any, err error) string {
		gotErr = err
		return "[" + key + "]"
	}
	if got := Translate("es", "cancel", "", nil, handler); got != "[cancel]" {
		t.Fatalf("expected handler output, got %q", got)
	}
	if !errors.Is(gotErr, ErrMissingTranslator) {
		t.Fatalf("expected ErrMissingTranslator, got %v", gotErr)
	}
}

func TestCatalog_Merge(t *testing.T) {
	custom, err := ParseCatalog([]byte("en:\n  addItem: Add block\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	merged := Default().Merge(custom)
	if got, _ := merged.Translate("en", KeyAddItem); got != "Add block" {
		t.Fatalf("expected override, got %q", got)
	}
	if got, _ := merged.Translate("en", KeyCancel); got != "Cancel" {
		t.Fatalf("expected builtin entry, got %q", got)
	}
	if got := NewLocalizer("es").T(KeyCancel); got != "Cancelar" {
		t.Fatalf("unexpected localizer output %q", got)
	}
}

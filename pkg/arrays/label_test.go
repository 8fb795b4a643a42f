package arrays

import "testing"

func TestResolveLabel(t *testing.T) {
	variants := []VariantDescriptor{
		{Title: "V1", DiscriminantProperty: "type", DiscriminantValue: "a"},
		{Title: "V2", DiscriminantProperty: "type", DiscriminantValue: "b"},
		{Title: "V3", DiscriminantProperty: "type", DiscriminantValue: float64(3)},
	}
	cases := []struct {
		name    string
		element any
		want    string
	}{
		{"match", map[string]any{"type": "b"}, "V2"},
		{"missing", map[string]any{}, ""},
		{"unknown", map[string]any{"type": "z"}, ""},
		{"numeric", map[string]any{"type": 3}, "V3"},
		{"strict", map[string]any{"type": "3"}, ""},
		{"nonObject", "b", ""},
	}
	for _, tc := range cases {
		if got := ResolveLabel(tc.element, variants); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
	if got := ResolveLabel(map[string]any{"type": "a"}, nil); got != "" {
		t.Fatalf("expected empty label without variants, got %q", got)
	}
}

func TestResolveLabel_FromResolvedSchema(t *testing.T) {
	root := loadRoot(t)
	item, _ := ResolveItemSchema(arraySchema(t, root, "variants"), root)
	variants := ResolveVariants(item, root)
	if got := ResolveLabel(map[string]any{"type": "b"}, variants); got != "Beta" {
		t.Fatalf("expected Beta, got %q", got)
	}
	if got := ResolveLabel(map[string]any{}, variants); got != "" {
		t.Fatalf("expected empty label, got %q", got)
	}
}

package arrays

import "reflect"

// ResolveLabel returns the title of the variant whose discriminant value
// matches element, or "" when nothing matches.
func ResolveLabel(element any, variants []VariantDescriptor) string {
	variant, ok := MatchVariant(element, variants)
	if !ok {
		return ""
	}
	return variant.Title
}

// MatchVariant returns the first variant whose discriminant value equals
// element[DiscriminantProperty]. All variants share the property of the
// first one.
func MatchVariant(element any, variants []VariantDescriptor) (VariantDescriptor, bool) {
	if len(variants) == 0 || variants[0].DiscriminantProperty == "" {
		return VariantDescriptor{}, false
	}
	obj, ok := element.(map[string]any)
	if !ok {
		return VariantDescriptor{}, false
	}
	actual, ok := obj[variants[0].DiscriminantProperty]
	if !ok || actual == nil {
		return VariantDescriptor{}, false
	}
	for _, variant := range variants {
		if sameValue(variant.DiscriminantValue, actual) {
			return variant, true
		}
	}
	return VariantDescriptor{}, false
}

// sameValue compares scalars strictly, treating numeric kinds by value.
func sameValue(a, b any) bool {
	if fa, ok := number(a); ok {
		fb, ok := number(b)
		return ok && fa == fb
	}
	switch a.(type) {
	case string, bool:
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}

package arrays

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/goliatone/go-formarray/pkg/defaults"
	"github.com/goliatone/go-formarray/pkg/schema"
)

// preferredDiscriminant wins when several constant properties are shared by
// every variant.
const preferredDiscriminant = "_type"

// VariantDescriptor describes one alternative of a union item schema.
type VariantDescriptor struct {
	Title                string
	DiscriminantProperty string
	DiscriminantValue    any
	Description          string
	Schema               schema.Schema
	CreateDefault        func() any
}

// DisplayLabel is the label used in selection lists: the title, else the
// discriminant value.
func (v VariantDescriptor) DisplayLabel() string {
	if v.Title != "" {
		return v.Title
	}
	if v.DiscriminantValue != nil {
		return fmt.Sprint(v.DiscriminantValue)
	}
	return ""
}

// ResolveVariants maps the union branches of item (anyOf before oneOf) to
// descriptors. It returns nil when item is not a union. Branches that fail to
// dereference are skipped.
func ResolveVariants(item schema.Schema, root SchemaDereferencer) []VariantDescriptor {
	branches := item.Union()
	if len(branches) == 0 {
		return nil
	}

	resolved := make([]schema.Schema, 0, len(branches))
	constants := make([]map[string]any, 0, len(branches))
	for _, branch := range branches {
		if branch.IsRef() {
			if root == nil {
				continue
			}
			deref, err := root.Deref(branch)
			if err != nil {
				continue
			}
			branch = deref
		}
		resolved = append(resolved, branch)
		constants = append(constants, constProperties(branch, root))
	}
	if len(resolved) == 0 {
		return nil
	}

	property := sharedDiscriminant(constants)
	factory := defaults.New(root)

	out := make([]VariantDescriptor, 0, len(resolved))
	for idx, branch := range resolved {
		desc := VariantDescriptor{
			Title:       branch.Title,
			Description: branch.Description,
			Schema:      branch,
		}
		if property != "" {
			desc.DiscriminantProperty = property
			desc.DiscriminantValue = constants[idx][property]
		}
		if desc.Title == "" {
			desc.Title = branch.HintString("label")
		}
		if desc.Title == "" {
			if str, ok := desc.DiscriminantValue.(string); ok {
				desc.Title = str
			}
		}
		desc.CreateDefault = variantFactory(factory, branch, desc.DiscriminantProperty, desc.DiscriminantValue)
		out = append(out, desc)
	}
	return out
}

func variantFactory(factory *defaults.Factory, branch schema.Schema, property string, value any) func() any {
	return func() any {
		created := factory.Create(branch)
		if property == "" {
			return created
		}
		obj, ok := created.(map[string]any)
		if !ok {
			obj = make(map[string]any)
		}
		obj[property] = value
		return obj
	}
}

func constProperties(branch schema.Schema, root SchemaDereferencer) map[string]any {
	out := make(map[string]any)
	for _, name := range branch.PropertyNames() {
		prop := branch.Properties[name]
		if prop.IsRef() && root != nil {
			deref, err := root.Deref(prop)
			if err != nil {
				continue
			}
			prop = deref
		}
		if value, ok := prop.ConstValue(); ok {
			out[name] = value
		}
	}
	return out
}

// sharedDiscriminant picks the constant property present in every branch.
func sharedDiscriminant(constants []map[string]any) string {
	if len(constants) == 0 {
		return ""
	}
	var shared []string
	for name := range constants[0] {
		inAll := true
		for _, other := range constants[1:] {
			if _, ok := other[name]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			shared = append(shared, name)
		}
	}
	if len(shared) == 0 {
		return ""
	}
	sort.Strings(shared)
	for _, name := range shared {
		if name == preferredDiscriminant {
			return name
		}
	}
	return shared[0]
}

// SortVariants orders descriptors by display label using case-insensitive
// collation for locale. It returns a new slice.
func SortVariants(variants []VariantDescriptor, locale string) []VariantDescriptor {
	out := append([]VariantDescriptor(nil), variants...)
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.English
	}
	collator := collate.New(tag, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		return collator.CompareString(out[i].DisplayLabel(), out[j].DisplayLabel()) < 0
	})
	return out
}

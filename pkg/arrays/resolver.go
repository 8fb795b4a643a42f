package arrays

import (
	"github.com/goliatone/go-formarray/pkg/schema"
)

// SchemaDereferencer resolves $ref nodes against a root document.
// *jsonschema.Root implements it.
type SchemaDereferencer interface {
	Resolve(s schema.Schema, property string) (schema.Schema, error)
	Deref(s schema.Schema) (schema.Schema, error)
}

// ResolveItemSchema dereferences the element schema of array. The boolean is
// false when the array has no usable item schema; callers treat that as
// "editing disabled".
func ResolveItemSchema(array *schema.Schema, root SchemaDereferencer) (schema.Schema, bool) {
	if array == nil || root == nil {
		return schema.Schema{}, false
	}
	item, err := root.Resolve(*array, "items")
	if err != nil {
		return schema.Schema{}, false
	}
	return item, true
}

// SchemaCache memoizes item and variant resolution per array schema. Results
// are rebuilt only when a different *schema.Schema is passed in.
type SchemaCache struct {
	key      *schema.Schema
	item     schema.Schema
	resolved bool
	variants []VariantDescriptor
	builds   int
}

// Resolve returns the item schema, whether it resolved, and its variants.
func (c *SchemaCache) Resolve(array *schema.Schema, root SchemaDereferencer) (schema.Schema, bool, []VariantDescriptor) {
	if c.builds > 0 && c.key == array {
		return c.item, c.resolved, c.variants
	}
	c.key = array
	c.builds++
	c.item, c.resolved = ResolveItemSchema(array, root)
	c.variants = nil
	if c.resolved {
		c.variants = ResolveVariants(c.item, root)
	}
	return c.item, c.resolved, c.variants
}

// Builds reports how many times the cache recomputed.
func (c *SchemaCache) Builds() int {
	return c.builds
}

// Reset drops the memoized results.
func (c *SchemaCache) Reset() {
	*c = SchemaCache{builds: c.builds}
}

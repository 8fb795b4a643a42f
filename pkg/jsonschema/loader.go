package jsonschema

import (
	"context"

	"github.com/goliatone/go-formarray/pkg/schema"
)

// Loader fetches raw documents from a Source.
type Loader interface {
	Load(ctx context.Context, src schema.Source) (schema.Document, error)
}

// LoaderFunc adapts a function into a Loader.
type LoaderFunc func(ctx context.Context, src schema.Source) (schema.Document, error)

// Load implements Loader.
func (fn LoaderFunc) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	return fn(ctx, src)
}

// LoadRootFrom fetches src with loader and wraps the parsed payload in a Root.
func LoadRootFrom(ctx context.Context, loader Loader, src schema.Source, options ...RootOption) (*Root, error) {
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return LoadRoot(doc, options...)
}

package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/rs/zerolog"
)

// ErrSchemaNotFound reports that the requested component schema does not
// exist in the loaded document.
var ErrSchemaNotFound = errors.New("openapi: schema not found")

// Importer loads OpenAPI documents and exposes their component schemas as
// form field sources.
type Importer struct {
	logger       zerolog.Logger
	externalRefs bool
}

// Option configures an Importer.
type Option func(*Importer)

// WithLogger replaces the no-op logger used for mapping diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(i *Importer) {
		i.logger = logger
	}
}

// WithExternalRefs allows the loader to follow references outside the
// document. Off by default so imports stay hermetic.
func WithExternalRefs() Option {
	return func(i *Importer) {
		i.externalRefs = true
	}
}

// New constructs an Importer.
func New(opts ...Option) *Importer {
	importer := &Importer{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(importer)
		}
	}
	return importer
}

// LoadBytes parses an OpenAPI document from raw bytes.
func (i *Importer) LoadBytes(ctx context.Context, data []byte) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := i.loader(ctx)
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return i.wrap(spec)
}

// LoadFile parses an OpenAPI document from disk.
func (i *Importer) LoadFile(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loader := i.loader(ctx)
	spec, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", path, err)
	}
	return i.wrap(spec)
}

func (i *Importer) loader(ctx context.Context) *openapi3.Loader {
	return &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: i.externalRefs,
	}
}

func (i *Importer) wrap(spec *openapi3.T) (*Document, error) {
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi: document has no component schemas")
	}
	return &Document{spec: spec, logger: i.logger}, nil
}

// Document is a loaded OpenAPI description with component schemas available
// for field import.
type Document struct {
	spec   *openapi3.T
	logger zerolog.Logger
}

// Schemas lists the component schema names in sorted order.
func (d *Document) Schemas() []string {
	names := make([]string, 0, len(d.spec.Components.Schemas))
	for name := range d.spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *Document) schema(name string) (*openapi3.SchemaRef, error) {
	ref, ok := d.spec.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
	}
	return ref, nil
}

// Package render defines the renderer contract shared by every output
// target, the registry that stores renderers by name, and the per-request
// option bag that carries form state into a render call.
package render

import (
	"context"

	"github.com/goliatone/go-medforms/pkg/model"
)

// Renderer converts a form definition into a byte representation (HTML,
// terminal output, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, def model.FormDefinition, options RenderOptions) ([]byte, error)
}

package render

import (
	"context"

	"github.com/goliatone/go-listedit/pkg/model"
)

// Renderer converts a page of list editor widgets into a byte representation
// (HTML markup, JSON payloads collected from a terminal session, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page model.Page, options RenderOptions) ([]byte, error)
}

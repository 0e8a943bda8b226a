// Package listedit renders and serializes repeatable signup form fields (group
// names and capacity-limited time slots) backed by hidden JSON inputs. The
// packages under pkg/ hold the pieces; this package offers the shortest path
// from a page definition to HTML.
package listedit

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-listedit/pkg/orchestrator"
	"github.com/goliatone/go-listedit/pkg/render"
)

// RenderOptions describes per-request overrides that renderers can use to
// surface server-side validation errors, hidden fields and theme settings.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML builds the editors of the configured page and renders them with
// the html renderer.
func GenerateHTML(ctx context.Context, pageID string, editable bool, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		PageID:   pageID,
		Renderer: "html",
		Editable: editable,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

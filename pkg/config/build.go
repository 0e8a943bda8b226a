package config

import (
	"fmt"

	"github.com/goliatone/go-listedit/pkg/listedit"
	"github.com/goliatone/go-listedit/pkg/model"
	"github.com/goliatone/go-listedit/pkg/render"
)

// BuildOptions controls how a page's editors are constructed.
type BuildOptions struct {
	// Registry resolves widget kinds; nil uses listedit.NewDefaultRegistry.
	Registry *listedit.Registry
	// Editable is the page environment flag applied to every widget.
	Editable bool
	// Payloads overrides the configured initial payload per widget name, e.g.
	// with values restored from a previous submission.
	Payloads map[string]string
}

// EditorConfig returns the listedit configuration for the widget.
func (w Widget) EditorConfig(editable bool) listedit.Config {
	return listedit.Config{
		Name:         w.Name,
		Editable:     editable,
		Label:        w.Label,
		Help:         w.Help,
		Placeholders: w.Placeholders,
		AddLabel:     w.AddLabel,
		RemoveLabel:  w.RemoveLabel,
		AddIcon:      w.AddIcon,
		RemoveIcon:   w.RemoveIcon,
	}
}

// Build constructs one editor per configured widget, in page order.
func (p Page) Build(opts BuildOptions) ([]listedit.Widget, error) {
	registry := opts.Registry
	if registry == nil {
		registry = listedit.NewDefaultRegistry()
	}

	widgets := make([]listedit.Widget, 0, len(p.Widgets))
	for _, cfg := range p.Widgets {
		initial, ok := opts.Payloads[cfg.Name]
		if !ok {
			var err error
			if initial, err = cfg.InitialJSON(); err != nil {
				return nil, err
			}
		}
		widget, err := registry.Build(cfg.Kind, cfg.EditorConfig(opts.Editable), initial)
		if err != nil {
			return nil, fmt.Errorf("config: page %q widget %q: %w", p.ID, cfg.Name, err)
		}
		widgets = append(widgets, widget)
	}
	return widgets, nil
}

// Model projects the page and its editors into the renderer page model.
func (p Page) Model(widgets []listedit.Widget) model.Page {
	out := model.Page{
		ID:          p.ID,
		Title:       p.Title,
		Action:      p.Action,
		Method:      normaliseMethod(p.Method),
		SubmitLabel: p.SubmitLabel,
		Widgets:     make([]model.Widget, 0, len(widgets)),
	}
	for _, widget := range widgets {
		out.Widgets = append(out.Widgets, widget.Model())
	}
	return out
}

// HiddenFields merges the configured hidden fields with extra ones (CSRF
// tokens and the like).
func (p Page) HiddenFields(extra ...render.HiddenField) map[string]string {
	return render.MergeHiddenFields(p.Hidden, extra...)
}

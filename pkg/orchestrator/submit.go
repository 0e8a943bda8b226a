package orchestrator

import (
	"context"
	"fmt"
	"net/url"

	"github.com/goliatone/go-listedit/pkg/config"
	"github.com/goliatone/go-listedit/pkg/listedit"
	"github.com/goliatone/go-listedit/pkg/render"
	"github.com/goliatone/go-listedit/pkg/validation"
)

// SubmitRequest carries a posted signup form.
type SubmitRequest struct {
	PageID   string
	Editable bool
	Values   url.Values
	// ThemeName and ThemeVariant are kept on the submission for re-rendering.
	ThemeName    string
	ThemeVariant string
}

// Submission is the outcome of one post. When Action is set the post was an
// add/remove round trip and the page should be rendered again; otherwise the
// form was submitted and Payloads/Results hold the final widget values.
type Submission struct {
	Page    config.Page
	Widgets []listedit.Widget
	Action  listedit.Action

	// Payloads holds the serialized JSON per widget name.
	Payloads map[string]string
	// Results holds the validation report per widget name; empty for action
	// round trips.
	Results map[string]validation.Result

	themeName    string
	themeVariant string
}

// Completed reports whether the post was a final submit.
func (s *Submission) Completed() bool {
	return s != nil && s.Action.IsZero()
}

// Valid reports whether every widget payload passed validation.
func (s *Submission) Valid() bool {
	for _, result := range s.Results {
		if !result.Valid {
			return false
		}
	}
	return true
}

// Errors merges every validation issue into render error keys.
func (s *Submission) Errors() map[string][]string {
	var out map[string][]string
	for _, result := range s.Results {
		for field, messages := range result.Errors() {
			if out == nil {
				out = make(map[string][]string)
			}
			out[field] = append(out[field], messages...)
		}
	}
	return out
}

// Submit decodes the posted rows of every widget, applies an add/remove action
// when one was pressed, serializes all widgets and, for a final submit,
// validates each payload.
func (o *Orchestrator) Submit(ctx context.Context, req SubmitRequest) (*Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, widgets, err := o.Build(req.PageID, req.Editable, nil)
	if err != nil {
		return nil, err
	}

	for _, widget := range widgets {
		if err := widget.Decode(req.Values); err != nil {
			return nil, fmt.Errorf("orchestrator: decode %s: %w", widget.Name(), err)
		}
	}

	action, err := listedit.ActionFromValues(req.Values)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	if !action.IsZero() {
		applied := false
		for _, widget := range widgets {
			ok, err := widget.Apply(action)
			if err != nil {
				return nil, fmt.Errorf("orchestrator: apply %s: %w", action, err)
			}
			applied = applied || ok
		}
		if !applied {
			return nil, fmt.Errorf("orchestrator: apply %s: %w", action, listedit.ErrUnknownAction)
		}
	}

	sub := &Submission{
		Page:     page,
		Widgets:  widgets,
		Action:   action,
		Payloads: make(map[string]string, len(widgets)),

		themeName:    req.ThemeName,
		themeVariant: req.ThemeVariant,
	}
	if action.IsZero() {
		sub.Results = make(map[string]validation.Result, len(widgets))
	}
	for _, widget := range widgets {
		if action.IsZero() {
			payload, result, err := o.validator.ValidateWidget(widget)
			if err != nil {
				return nil, fmt.Errorf("orchestrator: serialize %s: %w", widget.Name(), err)
			}
			sub.Payloads[widget.Name()] = payload
			sub.Results[widget.Name()] = result
			continue
		}
		payload, err := widget.SerializeJSON()
		if err != nil {
			return nil, fmt.Errorf("orchestrator: serialize %s: %w", widget.Name(), err)
		}
		sub.Payloads[widget.Name()] = payload
	}
	return sub, nil
}

// RenderSubmission renders the page of a submission again, surfacing its
// validation issues.
func (o *Orchestrator) RenderSubmission(ctx context.Context, sub *Submission, rendererName string, opts render.RenderOptions) ([]byte, error) {
	if sub == nil {
		return nil, fmt.Errorf("orchestrator: submission is nil")
	}
	if errs := sub.Errors(); len(errs) > 0 {
		merged := make(map[string][]string, len(opts.Errors)+len(errs))
		for key, messages := range opts.Errors {
			merged[key] = append(merged[key], messages...)
		}
		for key, messages := range errs {
			merged[key] = append(merged[key], messages...)
		}
		opts.Errors = merged
	}
	return o.Render(ctx, RenderRequest{
		Page:          sub.Page,
		Widgets:       sub.Widgets,
		Renderer:      rendererName,
		ThemeName:     sub.themeName,
		ThemeVariant:  sub.themeVariant,
		RenderOptions: opts,
	})
}

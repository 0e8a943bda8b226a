package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-listedit/pkg/listedit"
	"github.com/goliatone/go-listedit/pkg/model"
	"github.com/goliatone/go-listedit/pkg/render"
)

const (
	choiceKeep   = "Keep"
	choiceEdit   = "Edit"
	choiceRemove = "Remove"
)

// Renderer implements render.Renderer for terminal sessions. Every widget of
// the page is walked row by row; the output holds each widget's serialized
// payload keyed by widget name.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	registry          *listedit.Registry
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output,
// default kind registry).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       NewSurveyDriver(nil),
		outputFormat: OutputFormatJSON,
		registry:     listedit.NewDefaultRegistry(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render rebuilds an editor per page widget and runs the prompts.
func (r *Renderer) Render(ctx context.Context, page model.Page, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	widgets := make([]listedit.Widget, 0, len(page.Widgets))
	for _, view := range page.Widgets {
		widget, err := r.restore(view)
		if err != nil {
			return nil, err
		}
		widgets = append(widgets, widget)
	}
	return r.Edit(ctx, widgets, opts.Errors)
}

// Edit prompts for every widget in order and serializes the result. errs uses
// the same keys as render.RenderOptions.Errors.
func (r *Renderer) Edit(ctx context.Context, widgets []listedit.Widget, errs map[string][]string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}

	for _, message := range errs[render.FormErrorsKey] {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return nil, err
		}
	}

	payloads := make(map[string]json.RawMessage, len(widgets))
	order := make([]string, 0, len(widgets))
	for _, widget := range widgets {
		if err := r.editWidget(ctx, widget, errs); err != nil {
			return nil, err
		}
		payload, err := widget.SerializeJSON()
		if err != nil {
			return nil, fmt.Errorf("tui: serialize %s: %w", widget.Name(), err)
		}
		payloads[widget.Name()] = json.RawMessage(payload)
		order = append(order, widget.Name())
	}

	if r.submitTransformer != nil {
		var err error
		payloads, err = r.submitTransformer(payloads)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(payloads, order)
}

func (r *Renderer) editWidget(ctx context.Context, widget listedit.Widget, errs map[string][]string) error {
	view := widget.Model()
	title := widgetTitle(view)
	if err := r.driver.Info(ctx, r.theme.InfoPrefix+title); err != nil {
		return err
	}
	if view.Help != "" {
		if err := r.driver.Info(ctx, view.Help); err != nil {
			return err
		}
	}
	for _, message := range errs[widget.Name()] {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return err
		}
	}

	options := []string{choiceKeep, choiceEdit}
	if widget.Editable() {
		options = append(options, choiceRemove)
	}

	// Snapshot: removals must not shift the rows still to visit.
	rows := append([]*listedit.Row(nil), widget.Rows()...)
	for idx, row := range rows {
		choice, err := r.driver.Select(ctx, SelectConfig{
			Message: fmt.Sprintf("%s #%d: %s", title, idx+1, rowSummary(widget.Columns(), row)),
			Options: options,
			Help:    strings.Join(errs[listedit.RowPath(widget.Name(), idx)], "; "),
		})
		if err != nil {
			return err
		}
		switch {
		case choice < 0 || choice >= len(options):
			return fmt.Errorf("tui: invalid choice %d for %s", choice, widget.Name())
		case options[choice] == choiceEdit:
			if err := r.promptRow(ctx, widget, row, idx, title, errs); err != nil {
				return err
			}
		case options[choice] == choiceRemove:
			if err := widget.Remove(row.ID()); err != nil {
				return err
			}
		}
	}

	if !widget.Editable() {
		return nil
	}
	addLabel := view.Add.Label
	for {
		add, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("%s: %s a row?", title, addLabel),
		})
		if err != nil {
			return err
		}
		if !add {
			return nil
		}
		row := widget.AddBlank()
		if err := r.promptRow(ctx, widget, row, widget.Len()-1, title, errs); err != nil {
			return err
		}
	}
}

func (r *Renderer) promptRow(ctx context.Context, widget listedit.Widget, row *listedit.Row, idx int, title string, errs map[string][]string) error {
	for _, column := range widget.Columns() {
		if !widget.Editable() && column.ReadOnlyDisabled {
			continue
		}
		name := listedit.RowPath(widget.Name(), idx) + "." + column.Key
		text, err := r.driver.Input(ctx, InputConfig{
			Message:     fmt.Sprintf("%s #%d %s", title, idx+1, column.Key),
			Default:     row.Get(column.Key),
			Placeholder: column.Placeholder,
			Help:        strings.Join(errs[name], "; "),
		})
		if err != nil {
			return err
		}
		if err := widget.Set(row.ID(), column.Key, text); err != nil {
			return err
		}
	}
	return nil
}

// restore rebuilds an editor holding exactly the rows of view. Rows are
// replayed into an editable scratch editor first so read-only columns can be
// written, then the final editor is built from the scratch payload.
func (r *Renderer) restore(view model.Widget) (listedit.Widget, error) {
	cfg := listedit.Config{
		Name:         view.Name,
		Editable:     true,
		Label:        view.Label,
		Help:         view.Help,
		Placeholders: placeholders(view.Columns),
		AddLabel:     view.Add.Label,
		RemoveLabel:  view.Remove.Label,
	}
	scratch, err := r.registry.Build(view.Kind, cfg, "")
	if err != nil {
		return nil, fmt.Errorf("tui: widget %q: %w", view.Name, err)
	}
	for _, viewRow := range view.Rows {
		row := scratch.AddBlank()
		for _, cell := range viewRow.Cells {
			if err := scratch.Set(row.ID(), cell.Column.Key, cell.Value); err != nil {
				return nil, fmt.Errorf("tui: widget %q: %w", view.Name, err)
			}
		}
	}
	payload, err := scratch.SerializeJSON()
	if err != nil {
		return nil, err
	}

	cfg.Editable = view.Editable
	widget, err := r.registry.Build(view.Kind, cfg, payload)
	if err != nil {
		return nil, fmt.Errorf("tui: widget %q: %w", view.Name, err)
	}
	return widget, nil
}

func (r *Renderer) serialize(payloads map[string]json.RawMessage, order []string) ([]byte, error) {
	names := orderedNames(payloads, order)
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for _, name := range names {
			values.Set(name, string(payloads[name]))
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, name := range names {
			fmt.Fprintf(&b, "%s: %s\n", name, payloads[name])
		}
		return []byte(b.String()), nil
	default:
		return jsonBytes(payloads)
	}
}

// orderedNames keeps page order for known widgets and appends names added by a
// transformer in sorted order.
func orderedNames(payloads map[string]json.RawMessage, order []string) []string {
	out := make([]string, 0, len(payloads))
	seen := make(map[string]struct{}, len(order))
	for _, name := range order {
		if _, ok := payloads[name]; ok {
			out = append(out, name)
			seen[name] = struct{}{}
		}
	}
	var extra []string
	for name := range payloads {
		if _, ok := seen[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func jsonBytes(payloads map[string]json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payloads); err != nil {
		return nil, fmt.Errorf("tui: encode output: %w", err)
	}
	return buf.Bytes(), nil
}

func widgetTitle(view model.Widget) string {
	if strings.TrimSpace(view.Label) != "" {
		return view.Label
	}
	return view.Name
}

func rowSummary(columns []model.Column, row *listedit.Row) string {
	var b strings.Builder
	for _, column := range columns {
		text := row.Get(column.Key)
		if text == "" {
			text = "(" + column.Placeholder + ")"
		}
		b.WriteString(text)
		b.WriteString(column.Suffix)
	}
	return b.String()
}

func placeholders(columns []model.Column) map[string]string {
	out := make(map[string]string, len(columns))
	for _, column := range columns {
		if column.Placeholder != "" {
			out[column.Key] = column.Placeholder
		}
	}
	return out
}

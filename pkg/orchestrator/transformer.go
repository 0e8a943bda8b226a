package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-listedit/pkg/model"
)

// Transformer mutates a page model before rendering. Implementations can
// relabel widgets, tweak placeholders or perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, page *model.Page) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, page *model.Page) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, page *model.Page) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, page)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file:
//
//	{
//	  "title": "Volunteer signup",
//	  "widgets": {
//	    "slot": {"label": "Shifts", "placeholders": {"label": "Sat 9am"}}
//	  }
//	}
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Title       string                     `json:"title"`
	SubmitLabel string                     `json:"submitLabel"`
	Widgets     map[string]jsonWidgetPatch `json:"widgets"`
}

type jsonWidgetPatch struct {
	Label        string            `json:"label"`
	Help         string            `json:"help"`
	AddLabel     string            `json:"addLabel"`
	RemoveLabel  string            `json:"removeLabel"`
	Placeholders map[string]string `json:"placeholders"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied page.
func (t *JSONPresetTransformer) Transform(ctx context.Context, page *model.Page) error {
	if page == nil {
		return errors.New("json preset transformer: page model is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.document.Title != "" {
		page.Title = t.document.Title
	}
	if t.document.SubmitLabel != "" {
		page.SubmitLabel = t.document.SubmitLabel
	}

	for name, patch := range t.document.Widgets {
		widget := findWidget(page.Widgets, name)
		if widget == nil {
			return fmt.Errorf("json preset transformer: widget %q not found", name)
		}
		applyWidgetPatch(widget, patch)
	}
	return nil
}

func applyWidgetPatch(widget *model.Widget, patch jsonWidgetPatch) {
	if patch.Label != "" {
		widget.Label = patch.Label
	}
	if patch.Help != "" {
		widget.Help = patch.Help
	}
	if patch.AddLabel != "" {
		widget.Add.Label = patch.AddLabel
	}
	if patch.RemoveLabel != "" {
		widget.Remove.Label = patch.RemoveLabel
	}
	if len(patch.Placeholders) == 0 {
		return
	}
	for idx := range widget.Columns {
		if placeholder, ok := patch.Placeholders[widget.Columns[idx].Key]; ok {
			widget.Columns[idx].Placeholder = placeholder
		}
	}
	for r := range widget.Rows {
		for c := range widget.Rows[r].Cells {
			cell := &widget.Rows[r].Cells[c]
			if placeholder, ok := patch.Placeholders[cell.Column.Key]; ok {
				cell.Column.Placeholder = placeholder
			}
		}
	}
}

func findWidget(widgets []model.Widget, name string) *model.Widget {
	for idx := range widgets {
		if widgets[idx].Name == name {
			return &widgets[idx]
		}
	}
	return nil
}

package listedit

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-listedit/pkg/model"
	"github.com/goliatone/go-listedit/pkg/render"
)

const (
	defaultAddLabel    = "Add"
	defaultRemoveLabel = "Delete"
	defaultAddIcon     = `<i class="icon-plus"></i>`
	defaultRemoveIcon  = `<i class="icon-remove"></i>`
)

// Config carries the per-widget settings supplied by the page.
type Config struct {
	// Name is the hidden field name and the prefix of every row input. It must
	// not contain '.' or ':' since both delimit submitted paths and actions.
	Name string
	// Editable toggles the add/remove affordances.
	Editable bool

	Label string
	Help  string
	// Placeholders overrides column placeholders keyed by column key.
	Placeholders map[string]string

	AddLabel    string
	RemoveLabel string
	// AddIcon and RemoveIcon hold trusted markup; sanitize user supplied
	// values before passing them in.
	AddIcon    string
	RemoveIcon string
}

// Editor is a list editor for entries of type T.
type Editor[T any] struct {
	cfg      Config
	strategy Strategy[T]
	columns  []model.Column
	rows     []*Row
	value    []T
	hidden   string
}

var _ Widget = (*Editor[string])(nil)

// New builds an editor from an initial JSON payload. An empty payload yields an
// empty list; anything else must decode as a JSON array of T or a *ParseError
// is returned.
func New[T any](strategy Strategy[T], cfg Config, initialJSON string) (*Editor[T], error) {
	if strategy == nil {
		return nil, errors.New("listedit: strategy is required")
	}
	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" {
		return nil, errors.New("listedit: widget name is required")
	}
	if strings.ContainsAny(cfg.Name, ".:") {
		return nil, fmt.Errorf("listedit: widget name %q must not contain '.' or ':'", cfg.Name)
	}

	entries, err := ParseList[T](cfg.Name, initialJSON)
	if err != nil {
		return nil, err
	}

	editor := &Editor[T]{
		cfg:      cfg,
		strategy: strategy,
		columns:  applyPlaceholders(strategy.Columns(cfg.Name), cfg.Placeholders),
		value:    entries,
		hidden:   initialJSON,
	}
	for _, entry := range entries {
		editor.Add(entry)
	}
	return editor, nil
}

// ParseList decodes a widget payload. Blank input yields an empty list.
func ParseList[T any](widget, raw string) ([]T, error) {
	if strings.TrimSpace(raw) == "" {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, &ParseError{Widget: widget, Input: raw, Err: err}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func applyPlaceholders(columns []model.Column, overrides map[string]string) []model.Column {
	out := slices.Clone(columns)
	for idx := range out {
		if placeholder, ok := overrides[out[idx].Key]; ok {
			out[idx].Placeholder = placeholder
		}
	}
	return out
}

func (e *Editor[T]) Name() string {
	return e.cfg.Name
}

func (e *Editor[T]) Kind() string {
	return e.strategy.Kind()
}

func (e *Editor[T]) Editable() bool {
	return e.cfg.Editable
}

// Columns returns the declared row inputs.
func (e *Editor[T]) Columns() []model.Column {
	return slices.Clone(e.columns)
}

// Rows returns the current rows in order. The slice is a copy; the rows are
// live and may be edited through Row.Set.
func (e *Editor[T]) Rows() []*Row {
	return slices.Clone(e.rows)
}

func (e *Editor[T]) Len() int {
	return len(e.rows)
}

// Row looks up a row by id.
func (e *Editor[T]) Row(id string) (*Row, bool) {
	idx := e.rowIndex(id)
	if idx < 0 {
		return nil, false
	}
	return e.rows[idx], true
}

func (e *Editor[T]) rowIndex(id string) int {
	for idx, row := range e.rows {
		if row.id == id {
			return idx
		}
	}
	return -1
}

// Add appends a row pre-filled from value. Rows always precede the add
// affordance because renderers emit it after the row list.
func (e *Editor[T]) Add(value T) *Row {
	row := newRow(uuid.NewString(), e.columns, e.strategy.Format(value))
	e.rows = append(e.rows, row)
	return row
}

// AddBlank appends a row holding the strategy's blank value.
func (e *Editor[T]) AddBlank() *Row {
	return e.Add(e.strategy.Blank())
}

// Remove detaches exactly one row.
func (e *Editor[T]) Remove(id string) error {
	if !e.cfg.Editable {
		return ErrReadOnly
	}
	idx := e.rowIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrRowNotFound, id)
	}
	e.rows = slices.Delete(e.rows, idx, idx+1)
	return nil
}

// Set writes the text of one column of one row. Columns disabled in read-only
// mode reject writes while the editor is not editable.
func (e *Editor[T]) Set(id, column, text string) error {
	row, ok := e.Row(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrRowNotFound, id)
	}
	idx := columnIndex(e.columns, column)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}
	if !e.cfg.Editable && e.columns[idx].ReadOnlyDisabled {
		return ErrReadOnly
	}
	row.texts[idx] = text
	return nil
}

// Serialize converts every row into an entry, stores the result as the
// editor value, refreshes the hidden field and returns the entries. The hidden
// field is only current right after a call to Serialize.
func (e *Editor[T]) Serialize() ([]T, error) {
	out := make([]T, 0, len(e.rows))
	for _, row := range e.rows {
		out = append(out, e.strategy.Parse(row.texts))
	}

	payload, err := marshalJSON(out)
	if err != nil {
		return nil, fmt.Errorf("listedit: encode %s: %w", e.cfg.Name, err)
	}
	e.value = out
	e.hidden = string(payload)
	return slices.Clone(out), nil
}

// SerializeJSON serializes and returns the hidden field payload.
func (e *Editor[T]) SerializeJSON() (string, error) {
	if _, err := e.Serialize(); err != nil {
		return "", err
	}
	return e.hidden, nil
}

// Value returns the entries captured by the last Serialize (or construction).
func (e *Editor[T]) Value() []T {
	return slices.Clone(e.value)
}

// HiddenField returns the hidden input carrying the last serialized payload.
func (e *Editor[T]) HiddenField() render.HiddenField {
	return render.HiddenField{Name: e.cfg.Name, Value: e.hidden}
}

// Model projects the editor into the renderer view model.
func (e *Editor[T]) Model() model.Widget {
	widget := model.Widget{
		Name:     e.cfg.Name,
		Kind:     e.strategy.Kind(),
		Label:    e.cfg.Label,
		Help:     e.cfg.Help,
		Editable: e.cfg.Editable,
		Hidden:   model.Hidden{Name: e.cfg.Name, Value: e.hidden},
		Columns:  e.Columns(),
		Rows:     make([]model.Row, 0, len(e.rows)),
		Add:      control(e.cfg.AddLabel, defaultAddLabel, e.cfg.AddIcon, defaultAddIcon),
		Remove:   control(e.cfg.RemoveLabel, defaultRemoveLabel, e.cfg.RemoveIcon, defaultRemoveIcon),
	}
	if e.cfg.Editable {
		widget.AddAction = Action{Widget: e.cfg.Name, Verb: VerbAdd}.String()
	}

	for idx, row := range e.rows {
		prefix := RowPath(e.cfg.Name, idx)
		view := model.Row{
			ID:     row.id,
			Index:  idx,
			IDName: prefix + "." + rowIDKey,
			Cells:  make([]model.Cell, 0, len(e.columns)),
		}
		for col, column := range e.columns {
			view.Cells = append(view.Cells, model.Cell{
				Column:   column,
				Name:     prefix + "." + column.Key,
				Value:    row.texts[col],
				Disabled: !e.cfg.Editable && column.ReadOnlyDisabled,
			})
		}
		if e.cfg.Editable {
			view.RemoveAction = Action{Widget: e.cfg.Name, Verb: VerbRemove, RowID: row.id}.String()
		}
		widget.Rows = append(widget.Rows, view)
	}
	return widget
}

// RowPath returns the submitted path prefix of the row at index idx.
func RowPath(widget string, idx int) string {
	return widget + rowsSegment + strconv.Itoa(idx)
}

func control(label, fallbackLabel, icon, fallbackIcon string) model.Control {
	if strings.TrimSpace(label) == "" {
		label = fallbackLabel
	}
	if strings.TrimSpace(icon) == "" {
		icon = fallbackIcon
	}
	return model.Control{Label: label, Icon: icon}
}

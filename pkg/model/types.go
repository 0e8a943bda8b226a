package model

// Widget kinds shipped with the module.
const (
	KindInfo = "info"
	KindSlot = "slot"
)

// ActionField names the submit buttons that carry add/remove actions.
const ActionField = "_action"

// Column declares one input inside a row. Class doubles as the CSS hook the
// original markup used to address inputs (info, slot_name, slot_limit).
type Column struct {
	Key         string `json:"key"`
	Class       string `json:"class"`
	InputType   string `json:"inputType"`
	InputMode   string `json:"inputMode,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	// Suffix is literal connector text rendered after the input.
	Suffix string `json:"suffix,omitempty"`
	// ReadOnlyDisabled disables the input when the widget is not editable.
	ReadOnlyDisabled bool `json:"readOnlyDisabled,omitempty"`
}

// Cell is the rendered state of one column within a row.
type Cell struct {
	Column   Column   `json:"column"`
	Name     string   `json:"name"`
	Value    string   `json:"value"`
	Disabled bool     `json:"disabled,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// Row is a projection of a single entry.
type Row struct {
	ID     string `json:"id"`
	Index  int    `json:"index"`
	IDName string `json:"idName"`
	Cells  []Cell `json:"cells"`
	// RemoveAction is the submit value that removes this row; empty when the
	// widget is read-only.
	RemoveAction string   `json:"removeAction,omitempty"`
	Errors       []string `json:"errors,omitempty"`
}

// Hidden mirrors the hidden input that carries the serialized payload.
type Hidden struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Control describes an add/remove affordance.
type Control struct {
	Label string `json:"label"`
	// Icon holds sanitized markup rendered ahead of the label.
	Icon string `json:"icon,omitempty"`
}

// Widget is the renderer-facing projection of one list editor.
type Widget struct {
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Label     string   `json:"label,omitempty"`
	Help      string   `json:"help,omitempty"`
	Editable  bool     `json:"editable"`
	Hidden    Hidden   `json:"hidden"`
	Columns   []Column `json:"columns"`
	Rows      []Row    `json:"rows"`
	AddAction string   `json:"addAction,omitempty"`
	Add       Control  `json:"add"`
	Remove    Control  `json:"remove"`
	Errors    []string `json:"errors,omitempty"`
}

// Page is the signup form as a whole.
type Page struct {
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Action      string   `json:"action"`
	Method      string   `json:"method"`
	SubmitLabel string   `json:"submitLabel"`
	Widgets     []Widget `json:"widgets"`
}

// Widget looks up a widget by name.
func (p Page) Widget(name string) (Widget, bool) {
	for _, widget := range p.Widgets {
		if widget.Name == name {
			return widget, true
		}
	}
	return Widget{}, false
}

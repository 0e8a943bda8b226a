package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Page describes one signup form.
type Page struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title" yaml:"title"`
	Action      string            `json:"action" yaml:"action"`
	Method      string            `json:"method" yaml:"method"`
	SubmitLabel string            `json:"submitLabel" yaml:"submitLabel"`
	Hidden      map[string]string `json:"hidden" yaml:"hidden"`
	Widgets     []Widget          `json:"widgets" yaml:"widgets"`

	// Source records the file the page was loaded from.
	Source string `json:"-" yaml:"-"`
}

// Widget describes one list editor on the page.
type Widget struct {
	Name         string            `json:"name" yaml:"name"`
	Kind         string            `json:"kind" yaml:"kind"`
	Label        string            `json:"label" yaml:"label"`
	Help         string            `json:"help" yaml:"help"`
	Placeholders map[string]string `json:"placeholders" yaml:"placeholders"`
	AddLabel     string            `json:"addLabel" yaml:"addLabel"`
	RemoveLabel  string            `json:"removeLabel" yaml:"removeLabel"`
	AddIcon      string            `json:"addIcon" yaml:"addIcon"`
	RemoveIcon   string            `json:"removeIcon" yaml:"removeIcon"`
	// Initial is the starting payload: either JSON text or a list written
	// inline in the document.
	Initial any `json:"initial" yaml:"initial"`
}

// InitialJSON returns the starting payload as JSON text. A missing payload
// yields the empty string, which editors read as an empty list.
func (w Widget) InitialJSON() (string, error) {
	switch value := w.Initial.(type) {
	case nil:
		return "", nil
	case string:
		return value, nil
	default:
		raw, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("config: widget %q initial payload: %w", w.Name, err)
		}
		return string(raw), nil
	}
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

func normaliseMethod(method string) string {
	trimmed := strings.ToLower(strings.TrimSpace(method))
	if trimmed == "" {
		return "post"
	}
	return trimmed
}

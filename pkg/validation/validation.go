// Package validation checks serialized list editor payloads against OpenAPI
// schemas. Issues are reported, never corrected: editors keep coercing input
// at serialize time and the page owner decides what to do with the report.
package validation

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-listedit/pkg/listedit"
	"github.com/goliatone/go-listedit/pkg/model"
)

//go:embed schemas.yaml
var embeddedSchemas []byte

// Issue represents a validation error with optional location metadata. Field
// uses the submitted input path ("slot.rows.1.limit") so it can be fed to
// render.RenderOptions.Errors directly.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures the validation outcome for one widget payload.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Errors groups issue messages by field.
func (r Result) Errors() map[string][]string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string, len(r.Issues))
	for _, issue := range r.Issues {
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	return out
}

// ErrUnknownKind is returned by Validator.Schema for kinds without a schema.
var ErrUnknownKind = errors.New("validation: unknown widget kind")

// Validator holds the payload schemas keyed by schema name.
type Validator struct {
	schemas openapi3.Schemas
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
	defaultErr       error
)

// Default returns the validator built from the embedded schema document.
func Default() (*Validator, error) {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = New(context.Background(), embeddedSchemas)
	})
	return defaultValidator, defaultErr
}

// New loads an OpenAPI document whose components declare InfoEntries,
// SlotTuples and SlotEntries.
func New(ctx context.Context, document []byte) (*Validator, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("validation: load schemas: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("validation: validate schemas: %w", err)
	}
	if doc.Components == nil {
		return nil, errors.New("validation: document has no components")
	}
	for _, name := range []string{schemaInfo, schemaSlotTuples, schemaSlotEntries} {
		if ref := doc.Components.Schemas[name]; ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("validation: schema %q missing", name)
		}
	}
	return &Validator{schemas: doc.Components.Schemas}, nil
}

const (
	schemaInfo        = "InfoEntries"
	schemaSlotTuples  = "SlotTuples"
	schemaSlotEntries = "SlotEntries"
)

// Schema returns the entries schema used for kind.
func (v *Validator) Schema(kind string) (*openapi3.Schema, error) {
	var name string
	switch kind {
	case model.KindInfo:
		name = schemaInfo
	case model.KindSlot:
		name = schemaSlotEntries
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return v.schemas[name].Value, nil
}

// Validate checks the serialized payload of the widget named widget. An empty
// payload is an empty list.
func (v *Validator) Validate(kind, widget, raw string) Result {
	if strings.TrimSpace(raw) == "" {
		raw = "[]"
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return invalid(Issue{Field: widget, Message: "payload is not valid JSON: " + err.Error()})
	}

	switch kind {
	case model.KindInfo:
		return v.check(schemaInfo, widget, value, infoField)
	case model.KindSlot:
		result := v.check(schemaSlotTuples, widget, value, func(widget string, pointer []string) string {
			return rowField(widget, pointer, "")
		})
		if !result.Valid {
			return result
		}
		return v.check(schemaSlotEntries, widget, slotObjects(value), slotField)
	default:
		return invalid(Issue{Field: widget, Message: fmt.Sprintf("unknown widget kind %q", kind)})
	}
}

// ValidateWidget serializes w and validates the payload.
func (v *Validator) ValidateWidget(w listedit.Widget) (string, Result, error) {
	payload, err := w.SerializeJSON()
	if err != nil {
		return "", Result{}, err
	}
	return payload, v.Validate(w.Kind(), w.Name(), payload), nil
}

func (v *Validator) check(schema, widget string, value any, field func(string, []string) string) Result {
	err := v.schemas[schema].Value.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return Result{Valid: true}
	}

	result := Result{Valid: false}
	for _, schemaErr := range flatten(err) {
		var pointer []string
		message := strings.TrimSpace(schemaErr.Error())
		var typed *openapi3.SchemaError
		if errors.As(schemaErr, &typed) {
			pointer = typed.JSONPointer()
			if reason := strings.TrimSpace(typed.Reason); reason != "" {
				message = reason
			}
		}
		result.Issues = append(result.Issues, Issue{
			Path:    pointerString(pointer),
			Field:   field(widget, pointer),
			Message: message,
		})
	}
	return result
}

func flatten(err error) []error {
	if multi, ok := err.(openapi3.MultiError); ok {
		var out []error
		for _, item := range multi {
			out = append(out, flatten(item)...)
		}
		return out
	}
	return []error{err}
}

func invalid(issue Issue) Result {
	return Result{Valid: false, Issues: []Issue{issue}}
}

// slotObjects reshapes ["label", cap] tuples into {"label", "capacity"}
// objects so each position validates against its own property schema.
func slotObjects(value any) any {
	items, ok := value.([]any)
	if !ok {
		return value
	}
	out := make([]any, len(items))
	for idx, item := range items {
		pair, _ := item.([]any)
		entry := map[string]any{}
		if len(pair) > 0 {
			entry["label"] = pair[0]
		}
		if len(pair) > 1 {
			entry["capacity"] = pair[1]
		}
		out[idx] = entry
	}
	return out
}

func infoField(widget string, pointer []string) string {
	return rowField(widget, pointer, listedit.InfoColumn)
}

func slotField(widget string, pointer []string) string {
	column := ""
	if len(pointer) > 1 {
		switch pointer[1] {
		case "label":
			column = listedit.SlotLabelColumn
		case "capacity":
			column = listedit.SlotLimitColumn
		}
	}
	return rowField(widget, pointer, column)
}

func rowField(widget string, pointer []string, column string) string {
	if len(pointer) == 0 {
		return widget
	}
	idx, err := strconv.Atoi(pointer[0])
	if err != nil {
		return widget
	}
	path := listedit.RowPath(widget, idx)
	if column != "" {
		path += "." + column
	}
	return path
}

func pointerString(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	escaped := make([]string, len(segments))
	for idx, segment := range segments {
		segment = strings.ReplaceAll(segment, "~", "~0")
		escaped[idx] = strings.ReplaceAll(segment, "/", "~1")
	}
	return "/" + strings.Join(escaped, "/")
}

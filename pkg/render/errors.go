package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-listedit/pkg/model"
)

// ErrorMapping splits an error payload into widget-level messages keyed by
// dotted widget paths and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises form-level error slices,
// trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises error paths onto the widgets of a page. Accepted
// shapes include dotted paths ("slot.rows.1.limit"), JSON pointers into the
// submitted payload ("/slot/1/1") and bracket notation ("slot[1][1]"). Row
// segments resolve by index, column segments by position, key or class.
// Unknown widgets fall back to form-level errors so messages are not lost.
func MapErrorPayload(page model.Page, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		path, ok := mapErrorPath(page, rawPath)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[path] = append(mapping.Fields[path], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// Options folds the mapping into RenderOptions.Errors.
func (m ErrorMapping) Options() map[string][]string {
	if len(m.Fields) == 0 && len(m.Form) == 0 {
		return nil
	}
	out := make(map[string][]string, len(m.Fields)+1)
	for path, messages := range m.Fields {
		out[path] = append([]string(nil), messages...)
	}
	if len(m.Form) > 0 {
		out[FormErrorsKey] = append([]string(nil), m.Form...)
	}
	return out
}

func normalizeMessages(messages []string) []string {
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(page model.Page, raw string) (string, bool) {
	segments := dropWrapperSegments(parsePathSegments(raw))
	if len(segments) == 0 || isFormLevelKey(segments[0]) {
		return "", false
	}

	widget, ok := page.Widget(segments[0])
	if !ok {
		return "", false
	}
	path := widget.Name
	rest := segments[1:]
	if len(rest) > 0 && rest[0] == "rows" {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return path, true
	}

	row, err := strconv.Atoi(rest[0])
	if err != nil || row < 0 || row >= len(widget.Rows) {
		return path, true
	}
	path += ".rows." + strconv.Itoa(row)
	if len(rest) < 2 {
		return path, true
	}

	if key := resolveColumn(widget.Columns, rest[1]); key != "" {
		path += "." + key
	}
	return path, true
}

func resolveColumn(columns []model.Column, segment string) string {
	if idx, err := strconv.Atoi(segment); err == nil {
		if idx >= 0 && idx < len(columns) {
			return columns[idx].Key
		}
		return ""
	}
	for _, column := range columns {
		if column.Key == segment || column.Class == segment {
			return column.Key
		}
	}
	return ""
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}

	replacer := strings.NewReplacer("[", ".", "]", "")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	for len(segments) > 0 && isWrapperSegment(segments[0]) {
		segments = segments[1:]
	}
	return segments
}

func isWrapperSegment(segment string) bool {
	switch strings.ToLower(segment) {
	case "body", "request", "payload", "data":
		return true
	default:
		return false
	}
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", "form", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

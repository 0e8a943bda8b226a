package listedit

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-listedit/pkg/model"
)

const (
	// ActionField is the name of the submit buttons driving add/remove.
	ActionField = model.ActionField

	// VerbAdd appends a blank row.
	VerbAdd = "add"
	// VerbRemove removes the row named by Action.RowID.
	VerbRemove = "remove"

	rowsSegment = ".rows."
	rowIDKey    = "id"
)

// Action is a decoded add/remove request: "<widget>:add" or
// "<widget>:remove:<rowID>".
type Action struct {
	Widget string
	Verb   string
	RowID  string
}

// IsZero reports whether no action was submitted.
func (a Action) IsZero() bool {
	return a.Widget == "" && a.Verb == "" && a.RowID == ""
}

func (a Action) String() string {
	if a.IsZero() {
		return ""
	}
	if a.Verb == VerbRemove {
		return a.Widget + ":" + a.Verb + ":" + a.RowID
	}
	return a.Widget + ":" + a.Verb
}

// ParseAction decodes a submitted action value. An empty value yields the zero
// Action and no error.
func ParseAction(raw string) (Action, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Action{}, nil
	}

	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 || parts[0] == "" {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, raw)
	}

	action := Action{Widget: parts[0], Verb: parts[1]}
	switch action.Verb {
	case VerbAdd:
		if len(parts) == 3 {
			return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, raw)
		}
	case VerbRemove:
		if len(parts) != 3 || parts[2] == "" {
			return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, raw)
		}
		action.RowID = parts[2]
	default:
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, raw)
	}
	return action, nil
}

// ActionFromValues reads the submitted action, if any.
func ActionFromValues(values url.Values) (Action, error) {
	return ParseAction(values.Get(ActionField))
}

// Apply performs an action addressed to this editor. It reports false when the
// action targets another widget.
func (e *Editor[T]) Apply(action Action) (bool, error) {
	if action.Widget != e.cfg.Name {
		return false, nil
	}
	if !e.cfg.Editable {
		return false, ErrReadOnly
	}
	switch action.Verb {
	case VerbAdd:
		e.AddBlank()
	case VerbRemove:
		if err := e.Remove(action.RowID); err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownAction, action.Verb)
	}
	return true, nil
}

// Decode rebuilds the rows from a submitted form. The hidden field, when
// present, is the baseline: it holds the rows as they were rendered. Row
// inputs named "<widget>.rows.<index>.<column>" then overwrite that baseline
// in index order. Columns that were not posted (disabled inputs) keep the
// baseline text of the row at the same position. Read-only editors keep their
// row count; only posted texts are applied.
func (e *Editor[T]) Decode(values url.Values) error {
	baseline := e.currentTexts()
	if raw, ok := values[e.cfg.Name]; ok && len(raw) > 0 {
		entries, err := ParseList[T](e.cfg.Name, raw[0])
		if err != nil {
			return err
		}
		baseline = make([][]string, 0, len(entries))
		for _, entry := range entries {
			baseline = append(baseline, e.strategy.Format(entry))
		}
		e.value = entries
		e.hidden = raw[0]
	}

	groups := collectRowGroups(values, e.cfg.Name+rowsSegment)

	count := len(groups)
	if !e.cfg.Editable || count == 0 {
		count = len(baseline)
	}

	rows := make([]*Row, 0, count)
	for pos := 0; pos < count; pos++ {
		var texts []string
		if pos < len(baseline) {
			texts = baseline[pos]
		} else {
			texts = e.strategy.Format(e.strategy.Blank())
		}

		id := ""
		if pos < len(groups) {
			group := groups[pos]
			for idx, column := range e.columns {
				if !e.cfg.Editable && column.ReadOnlyDisabled {
					continue
				}
				if text, ok := group.values[column.Key]; ok {
					texts[idx] = text
				}
			}
			id = group.values[rowIDKey]
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		rows = append(rows, newRow(id, e.columns, texts))
	}
	e.rows = rows
	return nil
}

func (e *Editor[T]) currentTexts() [][]string {
	out := make([][]string, 0, len(e.rows))
	for _, row := range e.rows {
		out = append(out, row.Texts())
	}
	return out
}

type rowGroup struct {
	index  int
	values map[string]string
}

func collectRowGroups(values url.Values, prefix string) []rowGroup {
	byIndex := make(map[int]map[string]string)
	for key, posted := range values {
		if len(posted) == 0 || !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := strings.TrimPrefix(key, prefix)
		rawIndex, column, ok := strings.Cut(rest, ".")
		if !ok || column == "" {
			continue
		}
		index, err := strconv.Atoi(rawIndex)
		if err != nil || index < 0 {
			continue
		}
		group, exists := byIndex[index]
		if !exists {
			group = make(map[string]string)
			byIndex[index] = group
		}
		group[column] = posted[0]
	}

	groups := make([]rowGroup, 0, len(byIndex))
	for index, group := range byIndex {
		groups = append(groups, rowGroup{index: index, values: group})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].index < groups[j].index
	})
	return groups
}

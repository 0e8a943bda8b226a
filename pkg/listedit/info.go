package listedit

import (
	"strings"

	"github.com/goliatone/go-listedit/pkg/model"
)

const (
	// InfoColumn is the only column of an info row.
	InfoColumn = "value"

	infoPlaceholder = "Group Name"
)

type infoStrategy struct{}

// Info returns the strategy for group name lists. Entries are plain strings.
func Info() Strategy[string] {
	return infoStrategy{}
}

// NewInfo builds an info editor from an initial JSON payload such as
// ["Group A", "Group B"].
func NewInfo(cfg Config, initialJSON string) (*Editor[string], error) {
	return New(Info(), cfg, initialJSON)
}

func (infoStrategy) Kind() string {
	return model.KindInfo
}

// The input class follows the widget name so a page can host several info
// lists side by side.
func (infoStrategy) Columns(name string) []model.Column {
	class := strings.TrimSpace(name)
	if class == "" {
		class = model.KindInfo
	}
	return []model.Column{
		{
			Key:         InfoColumn,
			Class:       class,
			InputType:   "text",
			Placeholder: infoPlaceholder,
		},
	}
}

func (infoStrategy) Blank() string {
	return ""
}

func (infoStrategy) Format(value string) []string {
	return []string{value}
}

func (infoStrategy) Parse(texts []string) string {
	return textAt(texts, 0)
}

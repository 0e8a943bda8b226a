package listedit

import (
	"slices"

	"github.com/goliatone/go-listedit/pkg/model"
)

// Row is the view model of one entry: a stable id plus the raw text of each
// column, exactly as a user would have typed it.
type Row struct {
	id      string
	columns []model.Column
	texts   []string
}

func newRow(id string, columns []model.Column, texts []string) *Row {
	row := &Row{
		id:      id,
		columns: columns,
		texts:   make([]string, len(columns)),
	}
	copy(row.texts, texts)
	return row
}

// ID returns the row identifier used by remove actions.
func (r *Row) ID() string {
	return r.id
}

// Get returns the text of the column with the given key.
func (r *Row) Get(key string) string {
	return textAt(r.texts, columnIndex(r.columns, key))
}

// Set overwrites the text of a column. It reports false for unknown keys.
func (r *Row) Set(key, text string) bool {
	idx := columnIndex(r.columns, key)
	if idx < 0 {
		return false
	}
	r.texts[idx] = text
	return true
}

// Texts returns a copy of the column texts in column order.
func (r *Row) Texts() []string {
	return slices.Clone(r.texts)
}

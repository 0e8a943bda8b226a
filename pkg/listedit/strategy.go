package listedit

import "github.com/goliatone/go-listedit/pkg/model"

// Strategy describes how one entry type maps onto row inputs. Format and Parse
// must agree on the column order returned by Columns.
type Strategy[T any] interface {
	// Kind names the widget kind ("info", "slot").
	Kind() string
	// Columns declares the inputs of a row for a widget with the given name.
	Columns(name string) []model.Column
	// Blank is the value a freshly added row starts with.
	Blank() T
	// Format converts an entry into one raw text per column.
	Format(value T) []string
	// Parse converts raw column texts back into an entry. It never fails:
	// malformed texts are coerced.
	Parse(texts []string) T
}

func columnIndex(columns []model.Column, key string) int {
	for idx, column := range columns {
		if column.Key == key {
			return idx
		}
	}
	return -1
}

func textAt(texts []string, idx int) string {
	if idx < 0 || idx >= len(texts) {
		return ""
	}
	return texts[idx]
}

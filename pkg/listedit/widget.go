package listedit

import (
	"net/url"

	"github.com/goliatone/go-listedit/pkg/model"
	"github.com/goliatone/go-listedit/pkg/render"
)

// Widget is the type-erased surface of an Editor. HTTP handlers and the
// terminal front end work against it so they can host any entry type.
type Widget interface {
	Name() string
	Kind() string
	Editable() bool
	Columns() []model.Column
	Rows() []*Row
	Row(id string) (*Row, bool)
	Len() int

	AddBlank() *Row
	Remove(id string) error
	Set(id, column, text string) error

	Decode(values url.Values) error
	Apply(action Action) (bool, error)

	SerializeJSON() (string, error)
	HiddenField() render.HiddenField
	Model() model.Widget
}

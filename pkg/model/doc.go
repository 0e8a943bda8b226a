// Package model defines the view model renderers consume. A Page groups the
// list editor widgets of one form; each Widget is a pure projection of a
// listedit.Editor (its hidden payload, declared columns and current rows).
// Struct fields carry JSON tags because the template adapter converts the
// model into a pongo2 context through encoding/json, so the tag names are the
// identifiers templates use (widget.hidden.value, row.cells, ...).
package model

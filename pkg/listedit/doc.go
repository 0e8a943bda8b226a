// Package listedit implements repeatable form field groups: list editors that
// own an ordered collection of rows, render as a set of inputs plus a hidden
// field, and serialize their rows back into a JSON array.
//
// One generic Editor is parameterised by a Strategy describing the row
// columns and the conversion between a typed entry and the raw input texts.
// Two strategies ship with the package:
//
//   - Info: a single "Group Name" text input per row, entries are strings.
//   - Slots: a label and a capacity per row, entries are Slot values encoded
//     as ["label", 3] pairs.
//
// The editor is the source of truth between serializations. Rows are added
// and removed through the editor itself; Serialize walks the owned rows, stores
// the typed value, and refreshes the hidden field payload that a form
// submission carries.
package listedit

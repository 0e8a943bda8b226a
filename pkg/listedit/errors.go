package listedit

import (
	"errors"
	"fmt"
)

var (
	// ErrReadOnly is returned when an edit targets a widget rendered without
	// add/remove affordances, or a column disabled in read-only mode.
	ErrReadOnly = errors.New("listedit: widget is read-only")
	// ErrRowNotFound signals an unknown row id.
	ErrRowNotFound = errors.New("listedit: row not found")
	// ErrUnknownColumn signals a column key the widget does not declare.
	ErrUnknownColumn = errors.New("listedit: unknown column")
	// ErrUnknownAction is returned for malformed or unsupported submit actions.
	ErrUnknownAction = errors.New("listedit: unknown action")
	// ErrUnknownKind is returned by the registry for unregistered widget kinds.
	ErrUnknownKind = errors.New("listedit: unknown widget kind")
)

// ParseError reports a payload that is not a JSON array of the widget's entry
// type. Construction aborts when the initial payload is malformed.
type ParseError struct {
	Widget string
	Input  string
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("listedit: parse %s payload: %v", e.Widget, e.Err)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

package tui

import (
	"encoding/json"

	"github.com/goliatone/go-listedit/pkg/listedit"
)

// OutputFormat controls how collected payloads are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits a JSON object keyed by widget name.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits the hidden fields as
	// application/x-www-form-urlencoded pairs.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one "name: payload" line per widget.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional formatting hints applied to informational
// messages. Keep minimal to avoid coupling renderer logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// SubmitTransformer mutates the collected payloads before serialization.
type SubmitTransformer func(map[string]json.RawMessage) (map[string]json.RawMessage, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithRegistry sets the kind registry used to rebuild editors from a page
// model.
func WithRegistry(registry *listedit.Registry) Option {
	return func(r *Renderer) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// WithSubmitTransformer allows callers to mutate collected payloads prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

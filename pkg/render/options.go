package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the page model.
type RenderOptions struct {
	// Errors surfaces validation feedback keyed by widget path ("slot",
	// "slot.rows.1", "slot.rows.1.limit"). Use MapErrorPayload to normalise
	// JSON pointer style paths first. The empty key holds form-level messages.
	Errors map[string][]string
	// HiddenFields are emitted next to the widgets (CSRF tokens and the like).
	HiddenFields map[string]string
	// Theme carries the resolved go-theme selection: partial overrides, tokens,
	// CSS variables and asset URLs.
	Theme *theme.RendererConfig
}

// FormErrorsKey is the Errors key holding form-level messages.
const FormErrorsKey = ""

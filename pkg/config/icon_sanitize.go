package config

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

// SanitizeIcon strips everything but inline SVG and icon-font markup
// (<i>/<span> with classes) from raw.
func SanitizeIcon(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(iconSanitizer().Sanitize(trimmed))
}

func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("i", "span")
		policy.AllowAttrs("class", "aria-hidden").OnElements("i", "span")

		shapes := []string{"path", "circle", "rect", "line", "polyline", "polygon"}
		policy.AllowElements(append([]string{"svg", "g", "title"}, shapes...)...)
		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "fill", "stroke",
			"stroke-width", "aria-hidden", "role", "focusable", "class",
		).OnElements("svg")
		policy.AllowAttrs(
			"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
			"points", "rx", "ry", "fill", "stroke", "stroke-width", "class",
		).OnElements(shapes...)

		iconPolicy = policy
	})
	return iconPolicy
}

// Package template defines the template rendering seam used by the HTML
// renderer. The gotemplate subpackage provides the default pongo2-backed
// engine; callers can inject any implementation of TemplateRenderer.
package template

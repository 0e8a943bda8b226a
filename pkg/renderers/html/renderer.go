package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-listedit/pkg/model"
	"github.com/goliatone/go-listedit/pkg/render"
	rendertemplate "github.com/goliatone/go-listedit/pkg/render/template"
	gotemplate "github.com/goliatone/go-listedit/pkg/render/template/gotemplate"
)

// Theme partial keys resolved from theme.RendererConfig.Partials.
const (
	PartialPage   = "lists.page"
	PartialWidget = "lists.widget"
	// AssetStylesheet is the theme asset key for the page stylesheet.
	AssetStylesheet = "lists.stylesheet"
)

var defaultPartials = map[string]string{
	PartialPage:   "templates/page.tmpl",
	PartialWidget: "templates/widget.tmpl",
}

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	assetURLPrefix   string
}

// WithAssetURLPrefix links the embedded stylesheet under prefix
// (e.g. "/assets"). Without it no stylesheet link is emitted unless the theme
// resolves one.
func WithAssetURLPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetURLPrefix = strings.TrimSpace(prefix)
	}
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer emits the signup form markup: one block per widget holding the
// hidden payload input, one row per entry, and submit buttons for add/remove
// so the page works without client script.
type Renderer struct {
	templates      rendertemplate.TemplateRenderer
	assetURLPrefix string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, assetURLPrefix: cfg.assetURLPrefix}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page model.Page, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	partials := resolvePartials(opts.Theme)
	classes := defaultChromeClasses()

	widgets := make([]string, 0, len(page.Widgets))
	for _, widget := range page.Widgets {
		markup, err := r.templates.RenderTemplate(partials[PartialWidget], map[string]any{
			"widget":      attachErrors(widget, opts.Errors),
			"classes":     classes,
			"actionField": model.ActionField,
		})
		if err != nil {
			return nil, fmt.Errorf("html renderer: render widget %q: %w", widget.Name, err)
		}
		widgets = append(widgets, markup)
	}

	if strings.TrimSpace(page.Method) == "" {
		page.Method = "post"
	}
	if strings.TrimSpace(page.SubmitLabel) == "" {
		page.SubmitLabel = "Submit"
	}

	hidden := make([]model.Hidden, 0, len(opts.HiddenFields))
	for _, field := range render.SortedHiddenFields(opts.HiddenFields) {
		hidden = append(hidden, model.Hidden{Name: field.Name, Value: field.Value})
	}

	payload := map[string]any{
		"page":        page,
		"widgets":     widgets,
		"hidden":      hidden,
		"errors":      opts.Errors[render.FormErrorsKey],
		"classes":     classes,
		"actionField": model.ActionField,
		"theme":       map[string]string{"name": "", "variant": ""},
		"cssVars":     map[string]string{},
		"stylesheet":  r.stylesheetURL(opts.Theme),
	}
	if cfg := opts.Theme; cfg != nil {
		payload["theme"] = map[string]string{"name": cfg.Theme, "variant": cfg.Variant}
		if len(cfg.CSSVars) > 0 {
			payload["cssVars"] = cfg.CSSVars
		}
	}

	result, err := r.templates.RenderTemplate(partials[PartialPage], payload)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render page: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) stylesheetURL(cfg *theme.RendererConfig) string {
	if cfg != nil && cfg.AssetURL != nil {
		if resolved := strings.TrimSpace(cfg.AssetURL(AssetStylesheet)); resolved != "" {
			return resolved
		}
	}
	if r.assetURLPrefix == "" {
		return ""
	}
	return expandAssetURL(r.assetURLPrefix, StylesheetName)
}

func expandAssetURL(prefix, name string) string {
	if strings.HasPrefix(name, "http://") ||
		strings.HasPrefix(name, "https://") ||
		strings.HasPrefix(name, "/") {
		return name
	}
	p := strings.TrimRight(prefix, "/")
	if p == "" {
		return "/" + strings.TrimLeft(name, "/")
	}
	return p + "/" + strings.TrimLeft(name, "/")
}

func resolvePartials(cfg *theme.RendererConfig) map[string]string {
	out := make(map[string]string, len(defaultPartials))
	for key, value := range defaultPartials {
		out[key] = value
	}
	if cfg == nil {
		return out
	}
	for key := range defaultPartials {
		if candidate := strings.TrimSpace(cfg.Partials[key]); candidate != "" {
			out[key] = candidate
		}
	}
	return out
}

// attachErrors copies messages keyed by widget, row ("<name>.rows.<i>") and
// cell input name onto the projection.
func attachErrors(widget model.Widget, errs map[string][]string) model.Widget {
	if len(errs) == 0 {
		return widget
	}
	widget.Errors = append(widget.Errors, errs[widget.Name]...)

	rows := make([]model.Row, len(widget.Rows))
	for idx, row := range widget.Rows {
		row.Errors = append(row.Errors, errs[widget.Name+".rows."+strconv.Itoa(row.Index)]...)
		cells := make([]model.Cell, len(row.Cells))
		for c, cell := range row.Cells {
			cell.Errors = append(cell.Errors, errs[cell.Name]...)
			cells[c] = cell
		}
		row.Cells = cells
		rows[idx] = row
	}
	widget.Rows = rows
	return widget
}

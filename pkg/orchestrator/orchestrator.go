package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-listedit/pkg/config"
	"github.com/goliatone/go-listedit/pkg/listedit"
	"github.com/goliatone/go-listedit/pkg/model"
	"github.com/goliatone/go-listedit/pkg/render"
	"github.com/goliatone/go-listedit/pkg/renderers/html"
	"github.com/goliatone/go-listedit/pkg/validation"
)

const defaultRendererName = "html"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithPages injects an already loaded page store.
func WithPages(store *config.Store) Option {
	return func(o *Orchestrator) {
		o.pages = store
	}
}

// WithPagesFS loads page documents from fsys instead of the embedded defaults.
func WithPagesFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.pagesFS = fsys
	}
}

// WithKinds injects the widget kind registry.
func WithKinds(kinds *listedit.Registry) Option {
	return func(o *Orchestrator) {
		o.kinds = kinds
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithValidator injects the payload validator used on submit.
func WithValidator(validator *validation.Validator) Option {
	return func(o *Orchestrator) {
		o.validator = validator
	}
}

// WithTransformer registers a Transformer that can mutate page models before
// rendering.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithThemeSelector resolves theme/variant selections into renderer
// configuration ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks overrides the partials used when a theme does not
// provide its own templates.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

// Orchestrator coordinates the pipeline from page configuration to rendered
// output. It applies defaults (embedded signup page, html renderer, default
// kinds and schemas) while remaining open to dependency injection.
type Orchestrator struct {
	pages           *config.Store
	pagesFS         fs.FS
	kinds           *listedit.Registry
	registry        *render.Registry
	validator       *validation.Validator
	defaultRenderer string
	transformer     Transformer
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render of a configured page.
type Request struct {
	// PageID selects the configured page.
	PageID string
	// Renderer names the renderer to use; empty falls back to the default.
	Renderer string
	// Editable is the page environment flag.
	Editable bool
	// Payloads overrides the configured initial payload per widget.
	Payloads map[string]string

	ThemeName    string
	ThemeVariant string

	// RenderOptions carries server-side errors, extra hidden fields and an
	// explicit theme configuration. An explicit Theme wins over the selector.
	RenderOptions render.RenderOptions
}

// Page returns the configured page.
func (o *Orchestrator) Page(id string) (config.Page, error) {
	if err := o.initialiseErr; err != nil {
		return config.Page{}, err
	}
	page, ok := o.pages.Page(id)
	if !ok {
		return config.Page{}, fmt.Errorf("%w: %q", ErrPageNotFound, id)
	}
	return page, nil
}

// Build constructs the editors of a configured page.
func (o *Orchestrator) Build(pageID string, editable bool, payloads map[string]string) (config.Page, []listedit.Widget, error) {
	page, err := o.Page(pageID)
	if err != nil {
		return config.Page{}, nil, err
	}
	widgets, err := page.Build(config.BuildOptions{
		Registry: o.kinds,
		Editable: editable,
		Payloads: payloads,
	})
	if err != nil {
		return config.Page{}, nil, fmt.Errorf("orchestrator: build page %q: %w", pageID, err)
	}
	return page, widgets, nil
}

// Generate builds the page editors and renders them.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.PageID == "" {
		return nil, errors.New("orchestrator: page id is required")
	}

	page, widgets, err := o.Build(req.PageID, req.Editable, req.Payloads)
	if err != nil {
		return nil, err
	}
	return o.Render(ctx, RenderRequest{
		Page:          page,
		Widgets:       widgets,
		Renderer:      req.Renderer,
		ThemeName:     req.ThemeName,
		ThemeVariant:  req.ThemeVariant,
		RenderOptions: req.RenderOptions,
	})
}

// RenderRequest renders editors that already exist, e.g. after a submit.
type RenderRequest struct {
	Page          config.Page
	Widgets       []listedit.Widget
	Renderer      string
	ThemeName     string
	ThemeVariant  string
	RenderOptions render.RenderOptions
}

// Render serializes every editor so hidden fields reflect the current rows,
// projects the page and hands it to the renderer.
func (o *Orchestrator) Render(ctx context.Context, req RenderRequest) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	for _, widget := range req.Widgets {
		if _, err := widget.SerializeJSON(); err != nil {
			return nil, fmt.Errorf("orchestrator: serialize %s: %w", widget.Name(), err)
		}
	}

	form := req.Page.Model(req.Widgets)
	if err := o.applyTransformer(ctx, &form); err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	opts.HiddenFields = render.MergeHiddenFields(req.Page.Hidden, render.SortedHiddenFields(opts.HiddenFields)...)
	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}

	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderer resolves a renderer by name, falling back to the default.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	return o.rendererFor(name)
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, page *model.Page) error {
	if o.transformer == nil || page == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, page); err != nil {
		return fmt.Errorf("orchestrator: transform page: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.pages == nil {
		fsys := o.pagesFS
		if fsys == nil {
			fsys = config.EmbeddedFS()
		}
		store, err := config.LoadFS(fsys)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load pages: %w", err)
			return
		}
		o.pages = store
	}
	if o.kinds == nil {
		o.kinds = listedit.NewDefaultRegistry()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
	}
	if o.validator == nil {
		validator, err := validation.Default()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default validator: %w", err)
			return
		}
		o.validator = validator
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = defaultThemeFallbacks()
	}
}

package signup

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-listedit/pkg/orchestrator"
)

type GuardFunc func(r *http.Request) error

// SubmitFunc receives a completed submission before the JSON response is
// written. Returning an error aborts the response.
type SubmitFunc func(ctx context.Context, sub *orchestrator.Submission) error

type Options struct {
	RoutePath string
	PageID    string
	Renderer  string
	Editable  bool
	// RejectInvalid re-renders the page with its validation issues instead of
	// answering with the payloads.
	RejectInvalid bool
	ThemeName     string
	ThemeVariant  string
	Guard         GuardFunc
	OnSubmit      SubmitFunc
	Logger        *slog.Logger

	Orchestrator *orchestrator.Orchestrator
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: "/signup",
		PageID:    "signup",
		Renderer:  "html",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/signup"
	}
	if opts.PageID == "" {
		opts.PageID = "signup"
	}
	if opts.Renderer == "" {
		opts.Renderer = "html"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Orchestrator == nil {
		opts.Orchestrator = orchestrator.New()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithPageID(id string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.PageID = id
	}
}

func WithRenderer(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = name
	}
}

// WithEditable sets the page environment flag controlling the add/remove
// affordances.
func WithEditable(editable bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Editable = editable
	}
}

func WithRejectInvalid(reject bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RejectInvalid = reject
	}
}

func WithTheme(name, variant string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ThemeName = name
		o.ThemeVariant = variant
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithOnSubmit(fn SubmitFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OnSubmit = fn
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithOrchestrator(orch *orchestrator.Orchestrator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Orchestrator = orch
	}
}

package signup

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-listedit/pkg/listedit"
	"github.com/goliatone/go-listedit/pkg/orchestrator"
	"github.com/goliatone/go-listedit/pkg/render"
	"github.com/goliatone/go-listedit/pkg/validation"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Response is the JSON document answered for a final submit.
type Response struct {
	Page     string                       `json:"page"`
	Valid    bool                         `json:"valid"`
	Payloads map[string]json.RawMessage   `json:"payloads"`
	Results  map[string]validation.Result `json:"results"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value. Defaults are applied again so a zero Options value is usable.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	h := &handler{opts: opts}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeError(w, err, http.StatusForbidden)
				return
			}
		}

		switch r.Method {
		case http.MethodGet, http.MethodHead:
			h.render(w, r)
		case http.MethodPost:
			h.submit(w, r)
		default:
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead+", "+http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	})
}

type handler struct {
	opts Options
}

func (h *handler) render(w http.ResponseWriter, r *http.Request) {
	out, err := h.opts.Orchestrator.Generate(r.Context(), orchestrator.Request{
		PageID:       h.opts.PageID,
		Renderer:     h.opts.Renderer,
		Editable:     h.opts.Editable,
		ThemeName:    h.opts.ThemeName,
		ThemeVariant: h.opts.ThemeVariant,
	})
	if err != nil {
		h.fail(w, "render page", err)
		return
	}
	h.writeDocument(w, r, http.StatusOK, out)
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, StatusError{Code: http.StatusBadRequest, Err: err}, http.StatusBadRequest)
		return
	}

	sub, err := h.opts.Orchestrator.Submit(r.Context(), orchestrator.SubmitRequest{
		PageID:   h.opts.PageID,
		Editable: h.opts.Editable,
		Values:   r.PostForm,

		ThemeName:    h.opts.ThemeName,
		ThemeVariant: h.opts.ThemeVariant,
	})
	if err != nil {
		h.fail(w, "submit page", err)
		return
	}

	if !sub.Completed() {
		h.rerender(w, r, http.StatusOK, sub)
		return
	}

	if !sub.Valid() {
		h.opts.Logger.Info("signup payload has validation issues",
			"page", h.opts.PageID,
			"errors", sub.Errors(),
		)
		if h.opts.RejectInvalid {
			h.rerender(w, r, http.StatusUnprocessableEntity, sub)
			return
		}
	}

	if h.opts.OnSubmit != nil {
		if err := h.opts.OnSubmit(r.Context(), sub); err != nil {
			h.fail(w, "handle submission", err)
			return
		}
	}

	resp := Response{
		Page:     h.opts.PageID,
		Valid:    sub.Valid(),
		Payloads: make(map[string]json.RawMessage, len(sub.Payloads)),
		Results:  sub.Results,
	}
	for name, payload := range sub.Payloads {
		resp.Payloads[name] = json.RawMessage(payload)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(resp)
}

func (h *handler) rerender(w http.ResponseWriter, r *http.Request, status int, sub *orchestrator.Submission) {
	out, err := h.opts.Orchestrator.RenderSubmission(r.Context(), sub, h.opts.Renderer, render.RenderOptions{})
	if err != nil {
		h.fail(w, "render submission", err)
		return
	}
	h.writeDocument(w, r, status, out)
}

func (h *handler) writeDocument(w http.ResponseWriter, r *http.Request, status int, body []byte) {
	contentType := "text/html; charset=utf-8"
	if renderer, err := h.opts.Orchestrator.Renderer(h.opts.Renderer); err == nil {
		contentType = renderer.ContentType()
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func (h *handler) fail(w http.ResponseWriter, op string, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.opts.Logger.Error("signup handler failed", "op", op, "page", h.opts.PageID, "error", err)
	} else {
		h.opts.Logger.Warn("signup request rejected", "op", op, "page", h.opts.PageID, "error", err)
	}
	writeError(w, err, code)
}

func statusFor(err error) int {
	var httpErr HTTPError
	var parseErr *listedit.ParseError
	switch {
	case errors.As(err, &httpErr) && httpErr != nil:
		return httpErr.StatusCode()
	case errors.Is(err, orchestrator.ErrPageNotFound):
		return http.StatusNotFound
	case errors.Is(err, listedit.ErrReadOnly):
		return http.StatusForbidden
	case errors.As(err, &parseErr),
		errors.Is(err, listedit.ErrUnknownAction),
		errors.Is(err, listedit.ErrRowNotFound),
		errors.Is(err, listedit.ErrUnknownColumn):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error, fallback int) {
	if w == nil {
		return
	}
	code := fallback
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	if code <= 0 {
		code = http.StatusInternalServerError
	}
	http.Error(w, http.StatusText(code), code)
}

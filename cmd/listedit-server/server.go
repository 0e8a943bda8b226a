package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	listedit "github.com/goliatone/go-listedit"
	"github.com/goliatone/go-listedit/components/signup"
	"github.com/goliatone/go-listedit/pkg/config"
	"github.com/goliatone/go-listedit/pkg/orchestrator"
	"github.com/goliatone/go-listedit/pkg/render"
	"github.com/goliatone/go-listedit/pkg/renderers/html"
)

const assetsPath = "/assets"

// Config holds the command line settings.
type Config struct {
	Addr          string
	Editable      bool
	PagesDir      string
	PageID        string
	ThemesFile    string
	Theme         string
	Variant       string
	RejectInvalid bool
}

// Server wires the signup component and the stylesheet to a mux.
type Server struct {
	cfg    Config
	page   *signup.Component
	logger *slog.Logger
}

// NewServer builds the orchestrator and signup component from cfg.
func NewServer(cfg Config) (*Server, error) {
	logger := slog.Default()

	renderer, err := html.New(html.WithAssetURLPrefix(assetsPath))
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	options := []orchestrator.Option{orchestrator.WithRegistry(registry)}

	if dir := strings.TrimSpace(cfg.PagesDir); dir != "" {
		store, err := listedit.LoadPages(os.DirFS(dir))
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithPages(store))
	}

	if path := strings.TrimSpace(cfg.ThemesFile); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read themes: %w", err)
		}
		themes, err := config.LoadThemes(data, path)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithThemeSelector(themes))
	}

	orch := listedit.NewOrchestrator(options...)
	if _, err := orch.Page(cfg.PageID); err != nil {
		return nil, err
	}

	page := signup.New(
		signup.WithOrchestrator(orch),
		signup.WithPageID(cfg.PageID),
		signup.WithEditable(cfg.Editable),
		signup.WithRejectInvalid(cfg.RejectInvalid),
		signup.WithTheme(cfg.Theme, cfg.Variant),
		signup.WithLogger(logger),
	)
	return &Server{cfg: cfg, page: page, logger: logger}, nil
}

// SetupRoutes returns the request router. The page route also answers "/".
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()
	pattern, _ := s.page.RegisterRoutes(mux, "/")
	mux.Handle(assetsPath+"/", http.StripPrefix(assetsPath+"/", http.FileServerFS(listedit.StylesheetFS())))
	mux.HandleFunc("/{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, pattern, http.StatusSeeOther)
	})
	return s.logRequests(mux)
}

// Start begins listening and serving HTTP requests on the configured address.
// Returns an *http.Server that can be used for graceful shutdown.
func (s *Server) Start() *http.Server {
	s.logger.Info("starting web server", "addr", s.cfg.Addr, "page", s.cfg.PageID, "editable", s.cfg.Editable)

	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.SetupRoutes(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()

	return srv
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

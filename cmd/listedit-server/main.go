// Command listedit-server serves a configured signup page with list editors.
//
// Usage:
//
//	listedit-server [-addr :8080] [-editable] [-pages dir] [-themes themes.yaml]
//
// Without -pages the embedded signup page is served.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	cfg := Config{}
	flag.StringVar(&cfg.Addr, "addr", ":8080", "HTTP listen address")
	flag.BoolVar(&cfg.Editable, "editable", false, "render add/remove affordances")
	flag.StringVar(&cfg.PagesDir, "pages", "", "directory with page definitions (embedded signup page if empty)")
	flag.StringVar(&cfg.PageID, "page", "signup", "page id to serve")
	flag.StringVar(&cfg.ThemesFile, "themes", "", "themes document (YAML or JSON)")
	flag.StringVar(&cfg.Theme, "theme", "", "theme name")
	flag.StringVar(&cfg.Variant, "variant", "", "theme variant")
	flag.BoolVar(&cfg.RejectInvalid, "reject-invalid", false, "re-render submissions with validation issues")
	flag.Parse()

	srv, err := NewServer(cfg)
	if err != nil {
		slog.Error("failed to configure server", "error", err)
		os.Exit(1)
	}
	httpServer := srv.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("HTTP server shutdown error", "error", err)
	}
	slog.Info("shutdown complete")
}

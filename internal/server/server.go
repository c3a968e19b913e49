// Package server exposes the shared game over HTTP and WebSocket.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/park285/glinski-chess/internal/config"
	"github.com/park285/glinski-chess/internal/fanout"
	"github.com/park285/glinski-chess/internal/match"
	"github.com/park285/glinski-chess/internal/obslog"
	"github.com/park285/glinski-chess/internal/render"
	"go.uber.org/zap"
)

type Server struct {
	cfg      *config.AppConfig
	store    *match.Store
	hub      *fanout.Hub
	renderer *render.Renderer

	conns sync.WaitGroup
}

func New(cfg *config.AppConfig, store *match.Store, hub *fanout.Hub, renderer *render.Renderer) *Server {
	return &Server{cfg: cfg, store: store, hub: hub, renderer: renderer}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+s.cfg.WS.Path, s.handleWS)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /board.png", s.handleBoard)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("GET /", http.FileServer(http.Dir(s.cfg.AssetsDir)))
	return mux
}

// Run serves until ctx is cancelled, then shuts down and waits for open
// WebSocket connections to finish.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// Requests inherit ctx so hijacked WebSocket connections stop on shutdown.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	obslog.L().Info("http_listen", zap.String("addr", s.cfg.ListenAddr), zap.String("assets_dir", s.cfg.AssetsDir))

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	done := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		obslog.L().Warn("ws_shutdown_timeout")
	}
	obslog.L().Info("http_stopped")
	return err
}

// Package server publishes the documentation page and the route listing
// over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"venomdocs/internal/docs"
	"venomdocs/internal/model"
)

const shutdownTimeout = 5 * time.Second

// Config configures a Server.
type Config struct {
	Addr    string
	Title   string
	Version string
	Routes  []*model.Route
	Logger  *zap.Logger
}

// Server serves one fixed set of routes. Every page request builds its own
// docs.App, so handlers share nothing mutable.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	cfg        Config
	log        *zap.Logger
	byGUID     map[string]*model.Route
}

// New checks that the routes render and sets up the router.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		log:    cfg.Logger.Named("server"),
		byGUID: make(map[string]*model.Route, len(cfg.Routes)),
	}

	if _, err := s.newApp(); err != nil {
		return nil, fmt.Errorf("build documentation: %w", err)
	}
	for _, r := range cfg.Routes {
		s.byGUID[r.GUID()] = r
	}

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(requestLogger(s.log))
	s.router.Use(recovery(s.log))
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/routes/{guid}", s.handleRoutePage)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/routes", func(r chi.Router) {
		r.Get("/", s.handleListRoutes)
		r.Get("/{guid}", s.handleGetRoute)
	})
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.httpServer.Addr), zap.Int("routes", len(s.cfg.Routes)))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("stopped")
	return <-errCh
}

func (s *Server) newApp() (*docs.App, error) {
	return docs.NewApp(s.cfg.Routes, docs.Options{
		Title:     s.cfg.Title,
		Version:   s.cfg.Version,
		RouteLink: routeLink,
		Logger:    s.log.Sugar(),
	})
}

func routeLink(guid string) string {
	return "/routes/" + guid
}

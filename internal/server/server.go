// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer: it connects handlers, middleware, and routes.
// It decides:
// - Which database backend to open (SQLite or Postgres, from config)
// - Which URL patterns map to which handler functions
// - How the server starts and stops gracefully
//
// DEPENDENCY INJECTION FLOW:
// main.go loads config.Config and builds a logger, then:
//
//	Server.New() creates: store → services → handlers → routes
//
// This is the "composition root" pattern: all dependencies are wired
// in one place (New/setupRoutes), rather than scattered across the codebase.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/venue-booking/internal/config"
	"github.com/sakif/venue-booking/internal/flash"
	"github.com/sakif/venue-booking/internal/handler"
	"github.com/sakif/venue-booking/internal/middleware"
	"github.com/sakif/venue-booking/internal/repository/postgres"
	sqliteRepo "github.com/sakif/venue-booking/internal/repository/sqlite"
	"github.com/sakif/venue-booking/internal/repository/sqlstore"
	"github.com/sakif/venue-booking/internal/service"
	"github.com/sakif/venue-booking/web"
)

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the database connection pool. When the server shuts down,
// we must close it to flush pending writes and release the SQLite file lock.
// This is handled in Start() during graceful shutdown.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	store  *sqlstore.Store
	clock  service.Clock
}

// New opens the configured database and wires every route.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s, err := newWithStore(cfg, logger, store, web.FS, nil)
	if err != nil {
		store.Close() // Clean up DB if route setup fails
		return nil, err
	}
	return s, nil
}

// newWithStore wires a server around an already-open store. Tests use it
// with an in-memory database and a pinned clock.
func newWithStore(cfg config.Config, logger *slog.Logger, store *sqlstore.Store, assets fs.FS, clock service.Clock) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
		clock:  clock,
	}

	if err := s.setupRoutes(assets); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

func openStore(cfg config.Config) (*sqlstore.Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DatabaseURL)
	default:
		// os.MkdirAll creates all parent directories if needed (like `mkdir -p`).
		if dir := filepath.Dir(cfg.DBPath); cfg.DBPath != ":memory:" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
			}
		}
		return sqliteRepo.Open(cfg.DBPath)
	}
}

// Handler exposes the router, e.g. for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET    /                        → Home page (recent venues and artists)
// GET    /healthz                 → Database ping
// GET    /static/*                → Embedded CSS
// GET    /venues                  → Venues grouped by area
// POST   /venues/search           → Venue search
// GET    /venues/create           → New venue form
// POST   /venues/create           → Create venue
// GET    /venues/{id}             → Venue detail
// DELETE /venues/{id}             → Delete venue, 204
// GET    /venues/{id}/edit        → Edit venue form
// POST   /venues/{id}/edit        → Update venue
// GET    /venues/{id}/delete      → Delete venue, redirect home
// (the same shape for /artists, without DELETE)
// GET    /shows                   → All shows
// GET    /shows/create            → New show form
// POST   /shows/create            → Create show
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID: assigns unique ID to each request (for tracing)
// 2. RealIP: extracts real client IP from proxy headers
// 3. Logger: logs each request with timing info and the request ID
// 4. Recoverer: catches panics and renders the 500 page instead of crashing
func (s *Server) setupRoutes(assets fs.FS) error {
	flashes, err := flash.NewStore(s.config.FlashSecret, s.config.IsProduction())
	if err != nil {
		return fmt.Errorf("creating flash store: %w", err)
	}

	render, err := handler.NewRenderer(assets, flashes, s.logger)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	// === Global Middleware ===
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Recoverer(s.logger, render.ServerError))

	s.router.NotFound(render.NotFound)
	s.router.MethodNotAllowed(render.MethodNotAllowed)

	// === Static Files ===
	// GET /static/css/main.css → serves static/css/main.css from the embedded FS
	static, err := fs.Sub(assets, "static")
	if err != nil {
		return fmt.Errorf("opening static assets: %w", err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// DEPENDENCY CHAIN:
	//   s.store.Venues / Artists / Shows → repository interfaces
	//   services receive the interfaces, handlers receive the services
	venueService := service.NewVenueService(s.store.Venues, s.store.Shows, s.logger, s.clock)
	artistService := service.NewArtistService(s.store.Artists, s.store.Shows, s.logger, s.clock)
	showService := service.NewShowService(s.store.Shows, s.logger, s.clock)

	pages := handler.NewPageHandler(venueService, artistService, s.store, render, s.logger)
	venues := handler.NewVenueHandler(venueService, render, s.logger)
	artists := handler.NewArtistHandler(artistService, render, s.logger)
	shows := handler.NewShowHandler(showService, artistService, venueService, render, s.logger)

	s.router.Get("/", pages.HandleHome)
	s.router.Get("/healthz", pages.HandleHealth)

	s.router.Route("/venues", func(r chi.Router) {
		r.Get("/", venues.HandleList)
		r.Post("/search", venues.HandleSearch)
		r.Get("/create", venues.HandleNew)
		r.Post("/create", venues.HandleCreate)
		r.Get("/{id}", venues.HandleShow)
		r.Delete("/{id}", venues.HandleDeleteAPI)
		r.Get("/{id}/edit", venues.HandleEdit)
		r.Post("/{id}/edit", venues.HandleUpdate)
		r.Get("/{id}/delete", venues.HandleDelete)
	})

	s.router.Route("/artists", func(r chi.Router) {
		r.Get("/", artists.HandleList)
		r.Post("/search", artists.HandleSearch)
		r.Get("/create", artists.HandleNew)
		r.Post("/create", artists.HandleCreate)
		r.Get("/{id}", artists.HandleShow)
		r.Get("/{id}/edit", artists.HandleEdit)
		r.Post("/{id}/edit", artists.HandleUpdate)
		r.Get("/{id}/delete", artists.HandleDelete)
	})

	s.router.Route("/shows", func(r chi.Router) {
		r.Get("/", shows.HandleList)
		r.Get("/create", shows.HandleNew)
		r.Post("/create", shows.HandleCreate)
	})

	return nil
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the database connection (flushes WAL, releases file lock)
//
// The `defer s.store.Close()` ensures step 3 happens on every exit path.
func (s *Server) Start() error {
	defer s.store.Close()

	srv := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("driver", s.store.Dialect().Name()),
			slog.String("env", s.config.Env),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

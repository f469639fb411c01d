// Package api exposes the tracker over HTTP/JSON.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mesh-intelligence/qatrack/internal/auth"
	"github.com/mesh-intelligence/qatrack/pkg/types"
)

// Options tunes the HTTP surface.
type Options struct {
	// RequireToken puts entity and metrics routes behind a bearer token.
	RequireToken bool
	// ExposeErrors returns raw storage errors to clients instead of a
	// generic message.
	ExposeErrors bool
	// AuthRateLimit is the number of /register and /login calls allowed
	// per client IP per minute. Zero disables the limit.
	AuthRateLimit int
}

type Server struct {
	tracker     types.Tracker
	gate        *auth.Gate
	tokens      *auth.Tokens
	logger      *slog.Logger
	opts        Options
	instruments *instruments
}

func NewServer(tracker types.Tracker, gate *auth.Gate, tokens *auth.Tokens, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		tracker:     tracker,
		gate:        gate,
		tokens:      tokens,
		logger:      logger,
		opts:        opts,
		instruments: newInstruments(),
	}
}

// collection binds a URL path segment to a tracker table.
type collection struct {
	path  string
	table string
}

var collections = []collection{
	{path: "projects", table: types.ProjectsTable},
	{path: "test-plans", table: types.TestPlansTable},
	{path: "test-cases", table: types.TestCasesTable},
	{path: "test-executions", table: types.TestExecutionsTable},
	{path: "defects", table: types.DefectsTable},
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(s.instruments.middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("qatrack API is running"))
	})
	r.Handle("/internal/metrics", promhttp.HandlerFor(s.instruments.registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		if s.opts.AuthRateLimit > 0 {
			r.Use(httprate.LimitByIP(s.opts.AuthRateLimit, time.Minute))
		}
		r.Post("/register", s.register)
		r.Post("/login", s.login)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.tokens.Verifier())
		r.Use(s.tokens.Authenticator())
		r.Get("/session", s.session)
	})

	r.Group(func(r chi.Router) {
		if s.opts.RequireToken {
			r.Use(s.tokens.Verifier())
			r.Use(s.tokens.Authenticator())
		}
		for _, c := range collections {
			r.Mount("/"+c.path, s.collectionRoutes(c))
		}
		r.Get("/metrics", s.metrics)
	})

	return r
}

// Serve runs the API on addr until ctx is cancelled, then shuts down,
// giving in-flight requests shutdownTimeout to finish.
func (s *Server) Serve(ctx context.Context, addr string, readTimeout, writeTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting api server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down api server: %w", err)
	}
	return nil
}

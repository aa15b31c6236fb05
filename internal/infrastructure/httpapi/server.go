package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"account-automator/internal/application/port/input"
	"account-automator/internal/application/port/output"
	"account-automator/internal/domain/entity"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
)

const (
	maxBodyBytes    = 1 << 20
	maxGenerate     = 100
	shutdownTimeout = 10 * time.Second
)

// AccountGenerator is the part of the credential generator the API exposes.
type AccountGenerator interface {
	Batch(count int, req entity.GenerateRequest) ([]entity.GeneratedAccount, error)
}

type Config struct {
	Addr string
	// AccessLog enables httplog request logging.
	AccessLog bool
}

// Server exposes the automation manager over JSON. Automation requests are
// serialised: at most one browser runs at a time.
type Server struct {
	cfg       Config
	manager   input.AutomationManager
	generator AccountGenerator
	opts      entity.Options
	logger    output.LoggerPort

	automation sync.Mutex
	router     chi.Router
}

func NewServer(cfg Config, manager input.AutomationManager, generator AccountGenerator, opts entity.Options, logger output.LoggerPort) *Server {
	s := &Server{
		cfg:       cfg,
		manager:   manager,
		generator: generator,
		opts:      opts,
		logger:    logger.WithField("component", "httpapi"),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	if s.cfg.AccessLog {
		r.Use(httplog.RequestLogger(httplog.NewLogger("automator", httplog.Options{JSON: true})))
	} else {
		r.Use(middleware.RequestID)
	}
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/services", func(r chi.Router) {
		r.Get("/", s.handleListServices)
		r.Route("/{type}", func(r chi.Router) {
			r.Get("/", s.handleServiceInfo)
			r.Post("/register", s.handleRegister)
			r.Post("/register-generated", s.handleRegisterGenerated)
			r.Post("/login", s.handleLogin)
		})
	})
	r.Post("/generate", s.handleGenerate)
	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until ctx is cancelled or the listener fails, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP API listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	s.logger.Info("HTTP API stopped")
	return nil
}

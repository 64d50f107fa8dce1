// Package api serves the practice core over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pawsitive/mathcat/internal/config"
	"github.com/pawsitive/mathcat/internal/homework"
	"github.com/pawsitive/mathcat/internal/logger"
	"github.com/pawsitive/mathcat/internal/practice"
	"github.com/pawsitive/mathcat/internal/tutor"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP API server
type Server struct {
	config      config.ServerConfig
	router      *chi.Mux
	practice    *practice.Service
	chat        *tutor.Chat
	homework    *homework.Service
	store       Pinger
	log         *logger.Logger
	defaultUser string
}

// Option configures a Server.
type Option func(*Server)

// WithHomework enables POST /api/v1/homework. Without it the endpoint
// answers 503.
func WithHomework(h *homework.Service) Option {
	return func(s *Server) { s.homework = h }
}

// WithLogger sets the request and error logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithDefaultUser sets the player used when a request body has no userId.
func WithDefaultUser(id string) Option {
	return func(s *Server) { s.defaultUser = id }
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	svc *practice.Service,
	chat *tutor.Chat,
	store Pinger,
	opts ...Option,
) *Server {
	s := &Server{
		config:      cfg,
		practice:    svc,
		chat:        chat,
		store:       store,
		log:         logger.Nop(),
		defaultUser: "local",
	}
	for _, o := range opts {
		o(s)
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// HTTPServer wraps the router with the configured address and timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	if s.config.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.config.RequestTimeout))
	}

	origins := s.config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api/v1", func(r chi.Router) {
		// Catalog
		r.Get("/standards", s.handleListStandards)
		r.Get("/standards/{id}", s.handleGetStandard)
		r.Get("/domains", s.handleListDomains)
		r.Get("/levels", s.handleListLevels)
		r.Get("/badges", s.handleListBadges)

		// Practice
		r.Post("/problems", s.handleNextProblem)
		r.Post("/answers", s.handleSubmitAnswer)

		r.Route("/players/{userId}", func(r chi.Router) {
			r.Get("/", s.handleGetPlayer)
			r.Delete("/", s.handleResetPlayer)
			r.Get("/progress", s.handleGetProgress)
			r.Get("/attempts", s.handleListAttempts)
			r.Post("/sessions", s.handleStartSession)
			r.Post("/sessions/{id}/end", s.handleEndSession)
			r.Get("/chat", s.handleChatHistory)
			r.Delete("/chat", s.handleClearChat)
		})

		// Helpers
		r.Post("/tutor", s.handleTutor)
		r.Post("/homework", s.handleHomework)
	})

	s.router = r
}

// loggingMiddleware logs one line per request.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.log.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

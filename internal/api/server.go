// Package api exposes the insight engine and the voice interpreter over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"fjacquet/finsight/internal/apperror"
	"fjacquet/finsight/internal/insights"
	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/models"
	"fjacquet/finsight/internal/store"
	"fjacquet/finsight/internal/voice"
)

// Config for the server.
type Config struct {
	Address        string
	AllowedOrigins []string
	Store          store.TransactionStore
	Engine         *insights.Engine
	Voice          *voice.Manager
	// Profile supplies per-user display settings; nil uses the zero profile.
	Profile func(userID string) models.UserProfile
	Logger  logging.Logger
}

// Server is the HTTP API server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server

	store   store.TransactionStore
	engine  *insights.Engine
	voice   *voice.Manager
	profile func(userID string) models.UserProfile
	logger  logging.Logger
}

// New creates a new API server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	profile := cfg.Profile
	if profile == nil {
		profile = func(userID string) models.UserProfile { return models.UserProfile{UserID: userID} }
	}

	s := &Server{
		store:   cfg.Store,
		engine:  cfg.Engine,
		voice:   cfg.Voice,
		profile: profile,
		logger:  logger.WithField(logging.FieldComponent, "api"),
	}
	s.setupRouter(cfg.AllowedOrigins)

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called. It returns nil after a graceful
// shutdown.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", logging.F("address", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) setupRouter(origins []string) {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/voice/commands", s.handleVoiceCommands)

		r.Route("/users/{userID}", func(r chi.Router) {
			// Transactions
			r.Get("/transactions", s.handleListTransactions)
			r.Post("/transactions", s.handleCreateTransaction)
			r.Patch("/transactions/{txID}", s.handleUpdateTransaction)
			r.Delete("/transactions/{txID}", s.handleDeleteTransaction)

			// Insights
			r.Get("/insights", s.handleGetInsights)
			r.Get("/health-score", s.handleGetHealthScore)

			// Voice
			r.Post("/voice/transcripts", s.handleVoiceTranscript)
			r.Post("/voice/confirm", s.handleVoiceConfirm)
			r.Post("/voice/errors", s.handleVoiceError)
			r.Get("/voice/history", s.handleVoiceHistory)
			r.Get("/voice/state", s.handleVoiceState)
		})
	})

	s.router = r
}

// requestLogger logs one line per request through the application logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("HTTP request",
			logging.F("method", r.Method),
			logging.F(logging.FieldPath, r.URL.Path),
			logging.F("status", ww.Status()),
			logging.F(logging.FieldDuration, time.Since(start).String()),
			logging.F("request_id", middleware.GetReqID(r.Context())))
	})
}

// --- Response helpers ---

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Warn("Failed to encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// respondFailure maps an application error to its HTTP status.
func (s *Server) respondFailure(w http.ResponseWriter, err error) {
	switch {
	case apperror.IsValidation(err):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperror.ErrNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperror.ErrNoPendingCommand):
		s.respondError(w, http.StatusConflict, err.Error())
	default:
		s.logger.WithError(err).Error("Request failed")
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

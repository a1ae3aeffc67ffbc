// Package server exposes the screener over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/ats-screener/internal/ats"
	"github.com/spigell/ats-screener/internal/scoring"
)

const (
	DefaultAddr     = ":8080"
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

type Config struct {
	Addr    string
	Service *ats.Service
	Logger  *zap.Logger
}

type Server struct {
	cfg      Config
	service  *ats.Service
	router   chi.Router
	validate *validator.Validate
	logger   *zap.Logger
}

func NewServer(cfg Config) (*Server, error) {
	if cfg.Service == nil {
		return nil, fmt.Errorf("ats service is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	s := &Server{
		cfg:      cfg,
		service:  cfg.Service,
		router:   chi.NewRouter(),
		validate: validator.New(),
		logger:   cfg.Logger,
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/score", s.handleScore)
		r.Post("/resumes/parse", s.handleParseResume)
		r.Post("/jobs/parse", s.handleParseJob)
		r.Post("/assessments", s.handleAssess)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
	}
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := s.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", srv.Addr), zap.Bool("ai_enabled", s.service.AIEnabled()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}

	if err := s.validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

// writeServiceError maps service failures onto HTTP status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ats.ErrAINotConfigured):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, ats.ErrInvalidModelOutput):
		s.logger.Warn("model returned unusable scores",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, ats.ErrEmptyDocument),
		errors.Is(err, scoring.ErrInvalidScoreRange),
		errors.Is(err, scoring.ErrInvalidWeightSum):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, err.Error())
	default:
		s.logger.Warn("request failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

// --- HTTP handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"ai_enabled": s.service.AIEnabled(),
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var body ScoreRequest
	if !s.decode(w, r, &body) {
		return
	}

	result, err := s.service.ScoreOnly(body.Input())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ScoreResponse{
		OverallWeightedScore: result.OverallWeightedScore,
		MatchPercentage:      result.MatchPercentageString(),
		QualificationStatus:  result.Qualification,
		EffectiveWeights:     result.EffectiveWeights,
	})
}

func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	if !s.service.AIEnabled() {
		writeError(w, http.StatusServiceUnavailable, ats.ErrAINotConfigured.Error())
		return
	}

	var body ParseRequest
	if !s.decode(w, r, &body) {
		return
	}

	resume, err := s.service.ParseResume(r.Context(), body.Text)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resume)
}

func (s *Server) handleParseJob(w http.ResponseWriter, r *http.Request) {
	if !s.service.AIEnabled() {
		writeError(w, http.StatusServiceUnavailable, ats.ErrAINotConfigured.Error())
		return
	}

	var body ParseRequest
	if !s.decode(w, r, &body) {
		return
	}

	job, err := s.service.ParseJob(r.Context(), body.Text)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	if !s.service.AIEnabled() {
		writeError(w, http.StatusServiceUnavailable, ats.ErrAINotConfigured.Error())
		return
	}

	var body AssessmentRequest
	if !s.decode(w, r, &body) {
		return
	}

	assessment, err := s.service.Assess(r.Context(), body.Resume, body.Job)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info("assessment created",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("assessment_id", assessment.ID),
	)
	writeJSON(w, http.StatusCreated, assessment)
}

// Package server exposes the rendering pipeline over HTTP.
//
// Routes:
//
//	GET /healthz                                   liveness and build version
//	GET /render?url=...&format=bordered|plain|json  run the pipeline on url
//
// Text formats return the grid as text/plain. The json format returns the
// full pipeline result: entries, bounds, skipped rows, both renderings and
// stage statistics. Every /render response carries an X-Run-ID header.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/glyphgrid/pkg/buildinfo"
	"github.com/matzehuels/glyphgrid/pkg/errors"
	"github.com/matzehuels/glyphgrid/pkg/pipeline"
)

const (
	// RequestTimeout bounds one /render request, fetch included.
	RequestTimeout = 60 * time.Second

	shutdownTimeout = 10 * time.Second
	runIDHeader     = "X-Run-ID"
)

// Options configures a [Server].
type Options struct {
	// DefaultURL is rendered when a request omits url. Empty makes url required.
	DefaultURL string

	Logger *log.Logger
}

// Server is the HTTP rendering service.
type Server struct {
	router     chi.Router
	runner     *pipeline.Runner
	logger     *log.Logger
	defaultURL string
}

// New creates a server that runs requests through runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{
		router:     chi.NewRouter(),
		runner:     runner,
		logger:     logger,
		defaultURL: opts.DefaultURL,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)
	s.router.Use(securityHeaders)

	s.router.Get("/healthz", s.handleHealth)
	s.router.With(middleware.Timeout(RequestTimeout)).Get("/render", s.handleRender)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// --- Handlers ---

// GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// GET /render
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	url := q.Get("url")
	if url == "" {
		url = s.defaultURL
	}
	if url == "" {
		jsonError(w, errors.New(errors.ErrCodeInvalidURL, "url is required"), "")
		return
	}

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatBordered
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		jsonError(w, err, "")
		return
	}

	refresh, _ := strconv.ParseBool(q.Get("refresh"))

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		URL:     url,
		Refresh: refresh,
		Logger:  s.logger.With("request", middleware.GetReqID(r.Context())),
	})
	runID := ""
	if res != nil {
		runID = res.RunID
		w.Header().Set(runIDHeader, runID)
	}
	if err != nil {
		s.logger.Warn("Render failed", "url", url, "run", runID, "err", err)
		jsonError(w, err, runID)
		return
	}

	switch format {
	case pipeline.FormatJSON:
		writeJSON(w, http.StatusOK, res)
	case pipeline.FormatPlain:
		writeText(w, res.Plain)
	default:
		writeText(w, res.Bordered)
	}
}

// --- Middleware ---

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// --- Responses ---

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
	RunID string      `json:"run_id,omitempty"`
}

// StatusCode maps an error code to the HTTP status returned for it.
func StatusCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidURL, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNoTables, errors.ErrCodeNoData:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeNetwork, errors.ErrCodeInvalidDocument:
		return http.StatusBadGateway
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func jsonError(w http.ResponseWriter, err error, runID string) {
	code := errors.GetCode(err)
	writeJSON(w, StatusCode(code), errorBody{
		Error: errors.UserMessage(err),
		Code:  code,
		RunID: runID,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}

package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourusername/friday/internal/config"
	"github.com/yourusername/friday/internal/llm"
	"github.com/yourusername/friday/internal/metrics"
)

// DefaultPath is where the proxy listens for prompts
const DefaultPath = "/api/vapi/generate"

// StandingBy is the health probe message
const StandingBy = "F.R.I.D.A.Y. standing by."

const maxBodyBytes = 1 << 20

// GenerateRequest is the body of a prompt request
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateResponse is the body of every proxy response
type GenerateResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Server answers prompts over HTTP with a Generator
type Server struct {
	gen        llm.Generator
	path       string
	metrics    *metrics.Metrics
	log        zerolog.Logger
	httpServer *http.Server
}

// NewServer creates the proxy HTTP server
func NewServer(cfg config.ProxyConfig, gen llm.Generator, m *metrics.Metrics, log zerolog.Logger) *Server {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if m == nil {
		m = metrics.New()
	}

	s := &Server{
		gen:     gen,
		path:    path,
		metrics: m,
		log:     log,
	}

	mux := http.NewServeMux()
	mux.Handle(path, s.instrument(http.HandlerFunc(s.generateHandler)))
	mux.Handle("/metrics", m.Handler())

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Listen,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start listens on the configured address
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Str("path", s.path).Msg("proxy server starting")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve accepts connections on ln
func (s *Server) Serve(ln net.Listener) error {
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) generateHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, GenerateResponse{Success: true, Message: StandingBy})

	case http.MethodPost:
		s.generate(w, r)

	default:
		w.Header().Set("Allow", "GET, POST")
		writeJSON(w, http.StatusMethodNotAllowed, GenerateResponse{Error: "Method Not Allowed"})
	}
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, GenerateResponse{Error: "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, GenerateResponse{Error: "Prompt is required"})
		return
	}

	s.metrics.InFlight.Inc()
	defer s.metrics.InFlight.Dec()

	start := time.Now()
	text, err := s.gen.Generate(r.Context(), BuildPrompt(req.Prompt))
	s.metrics.GenerationLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.GenerationErrors.Inc()
		s.log.Error().Err(err).Msg("generation failed")
		writeJSON(w, http.StatusInternalServerError, GenerateResponse{Error: "Internal Server Error"})
		return
	}

	s.log.Debug().Dur("took", time.Since(start)).Int("chars", len(text)).Msg("prompt answered")
	writeJSON(w, http.StatusOK, GenerateResponse{Success: true, Response: strings.TrimSpace(text)})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.metrics.RequestCount.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		s.metrics.RequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

func writeJSON(w http.ResponseWriter, status int, body GenerateResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

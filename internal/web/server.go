// Package web serves the browser UI and the HTTP/WebSocket analysis API.
//
// The server mounts four application routes (the embedded single-page UI,
// POST /api/analyze, GET /api/demo, and the live GET /ws endpoint) beside the
// operational endpoints /healthz, /readyz, and /metrics. All routes run
// through [observe.Middleware] for tracing, request metrics, and correlation
// IDs.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrWong99/rapport/internal/demo"
	"github.com/MrWong99/rapport/internal/health"
	"github.com/MrWong99/rapport/internal/observe"
	"github.com/MrWong99/rapport/internal/report"
	"github.com/MrWong99/rapport/pkg/depth"
)

// maxTranscriptBytes caps request bodies and WebSocket messages. A transcript
// larger than this is almost certainly not a conversation log.
const maxTranscriptBytes = 1 << 20

// shutdownTimeout bounds the graceful drain when Run's context is cancelled.
const shutdownTimeout = 10 * time.Second

// Server hosts the web UI, the JSON analysis API, the live WebSocket
// endpoint, and the operational endpoints. The analyzer can be swapped at
// runtime (config reload) via [Server.SetAnalyzer]; in-flight requests keep
// the instance they started with.
type Server struct {
	addr     string
	analyzer atomic.Pointer[depth.Analyzer]
	metrics  *observe.Metrics
	httpSrv  *http.Server
}

// New creates a Server listening on addr. The health handler is mounted as-is
// so the caller controls which readiness checkers run.
func New(addr string, analyzer *depth.Analyzer, m *observe.Metrics, h *health.Handler) *Server {
	s := &Server{
		addr:    addr,
		metrics: m,
	}
	s.analyzer.Store(analyzer)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/demo", s.handleDemo)
	mux.HandleFunc("GET /ws", s.handleWS)
	h.Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           observe.Middleware(m)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// SetAnalyzer swaps the analyzer used for subsequent requests.
func (s *Server) SetAnalyzer(a *depth.Analyzer) {
	s.analyzer.Store(a)
}

// current returns the analyzer for this request.
func (s *Server) current() *depth.Analyzer {
	return s.analyzer.Load()
}

// Handler returns the fully assembled handler chain. Exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Run starts the HTTP listener and blocks until ctx is cancelled or the
// listener fails. On cancellation the server drains gracefully for up to
// [shutdownTimeout]; a clean drain returns nil.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("web server listening", "addr", s.addr)
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	slog.Info("web server stopped")
	return nil
}

// handleIndex serves the embedded single-page UI.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, indexHTML)
}

// analyzeRequest is the JSON body form of POST /api/analyze. Raw text bodies
// are accepted too; the Content-Type header decides.
type analyzeRequest struct {
	Transcript string `json:"transcript"`
}

// handleAnalyze scores the transcript in the request body and responds with
// the JSON report. A transcript without recognised turns is not an error; it
// yields the all-zero report.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxTranscriptBytes+1))
	if err != nil {
		http.Error(w, "read request body", http.StatusBadRequest)
		return
	}
	if len(body) > maxTranscriptBytes {
		http.Error(w, "transcript too large", http.StatusRequestEntityTooLarge)
		return
	}

	transcript := string(body)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req analyzeRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		transcript = req.Transcript
	}

	start := time.Now()
	analysis, err := s.current().Analyze(r.Context(), transcript)
	if err != nil {
		// Analyze fails only on context cancellation; the client is gone.
		return
	}
	s.metrics.RecordAnalysis(r.Context(), "web", analysis, time.Since(start))

	writeJSON(w, http.StatusOK, report.FromAnalysis(analysis))
}

// demoResponse pairs the two built-in fixtures for the UI's compare view.
type demoResponse struct {
	Low  report.Result `json:"low"`
	High report.Result `json:"high"`
}

// handleDemo analyzes both demo fixtures and returns them side by side.
func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	a := s.current()
	low, err := a.Analyze(r.Context(), demo.Low)
	if err != nil {
		return
	}
	high, err := a.Analyze(r.Context(), demo.High)
	if err != nil {
		return
	}
	writeJSON(w, http.StatusOK, demoResponse{
		Low:  report.FromAnalysis(low),
		High: report.FromAnalysis(high),
	})
}

// writeJSON encodes v with the JSON content type. Encoding failures are
// logged, not surfaced; headers are already written by then.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("web: encode response", "err", err)
	}
}

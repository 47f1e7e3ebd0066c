package server

import (
	"context"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/fathom-mcp/internal/instrumentation"
)

// HTTPServer serves an MCP server over the streamable HTTP transport,
// alongside health check endpoints for orchestration.
type HTTPServer struct {
	mcpServer        *mcpserver.MCPServer
	httpServer       *http.Server
	healthChecker    *HealthChecker
	metrics          *instrumentation.Metrics
	sessions         *SessionTracker
	disableStreaming bool
}

// HTTPServerConfig holds configuration for the streamable HTTP server.
type HTTPServerConfig struct {
	// DisableStreaming falls back to plain request/response exchanges
	// for clients that cannot consume streamed responses.
	DisableStreaming bool
}

// NewHTTPServer creates a streamable HTTP server for the given MCP server.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, config HTTPServerConfig) *HTTPServer {
	return &HTTPServer{
		mcpServer:        mcpServer,
		disableStreaming: config.DisableStreaming,
	}
}

// SetHealthChecker wires liveness and readiness endpoints into the server.
func (s *HTTPServer) SetHealthChecker(h *HealthChecker) {
	s.healthChecker = h
}

// SetMetrics enables HTTP request metrics and active session tracking.
func (s *HTTPServer) SetMetrics(m *instrumentation.Metrics) {
	s.metrics = m
}

// SetSessionTracker wires a session tracker for the active session gauge.
func (s *HTTPServer) SetSessionTracker(st *SessionTracker) {
	s.sessions = st
}

// Start starts the HTTP server on addr. It blocks until the server stops.
func (s *HTTPServer) Start(addr string) error {
	mux := http.NewServeMux()

	var streamable http.Handler
	if s.disableStreaming {
		streamable = mcpserver.NewStreamableHTTPServer(s.mcpServer,
			mcpserver.WithEndpointPath("/mcp"),
			mcpserver.WithDisableStreaming(true),
		)
	} else {
		streamable = mcpserver.NewStreamableHTTPServer(s.mcpServer,
			mcpserver.WithEndpointPath("/mcp"),
		)
	}

	handler := s.instrumentationMiddleware(streamable)
	if s.sessions != nil {
		handler = s.sessions.Middleware(handler)
	}
	mux.Handle("/mcp", handler)

	if s.healthChecker != nil {
		s.healthChecker.RegisterHealthEndpoints(mux)
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.sessions != nil {
		s.sessions.Stop()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// responseWriter captures the status code written to the underlying writer.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Flush forwards flushes so streamed responses are not buffered.
func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// instrumentationMiddleware records request metrics. When no metrics are
// configured it passes requests through untouched.
func (s *HTTPServer) instrumentationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)
		s.metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, rw.statusCode, time.Since(start))
	})
}

package server

import (
	"context"
	"sync"

	"github.com/teemow/fathom-mcp/internal/fathom"
	"github.com/teemow/fathom-mcp/internal/instrumentation"
	"github.com/teemow/fathom-mcp/internal/output"
	"github.com/teemow/fathom-mcp/internal/search"
)

// Config holds the settings needed to build a ServerContext.
type Config struct {
	// APIKey authenticates against the Fathom external API. Required.
	APIKey string

	// ClientOptions are passed through to the Fathom client (timeout,
	// base URL overrides, logger).
	ClientOptions []fathom.Option

	// OutputFormat selects how tool results are rendered (json or yaml).
	OutputFormat output.Format

	// PerPage is the default page size for meeting listings and search
	// pagination. Zero leaves the choice to the API.
	PerPage int
}

// ServerContext holds the shared state for the MCP server: the Fathom API
// client, the search service, the result encoder, and observability hooks.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	fathomClient  *fathom.Client
	searchService *search.Service
	encoder       *output.Encoder
	perPage       int

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context. The Fathom client is
// constructed eagerly so a missing or empty API key fails at startup
// rather than on the first tool call.
func NewServerContext(ctx context.Context, cfg Config) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	client, err := fathom.NewClient(cfg.APIKey, cfg.ClientOptions...)
	if err != nil {
		cancel()
		return nil, err
	}

	searchCfg := search.Config{}
	if cfg.PerPage > 0 {
		searchCfg.PerPage = cfg.PerPage
	}

	return &ServerContext{
		ctx:           shutdownCtx,
		cancel:        cancel,
		fathomClient:  client,
		searchService: search.NewService(client, searchCfg),
		encoder:       output.NewEncoder(cfg.OutputFormat),
		perPage:       cfg.PerPage,
		shutdown:      false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// FathomClient returns the Fathom API client.
func (sc *ServerContext) FathomClient() *fathom.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.fathomClient
}

// SetFathomClient replaces the Fathom API client. Used by tests to inject
// a client pointed at a local server.
func (sc *ServerContext) SetFathomClient(client *fathom.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.fathomClient = client
}

// SearchService returns the meeting search service.
func (sc *ServerContext) SearchService() *search.Service {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.searchService
}

// SetSearchService replaces the search service. Used by tests.
func (sc *ServerContext) SetSearchService(svc *search.Service) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.searchService = svc
}

// PerPage returns the configured default page size, or zero when the
// API's own default applies.
func (sc *ServerContext) PerPage() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.perPage
}

// Encoder returns the tool result encoder.
func (sc *ServerContext) Encoder() *output.Encoder {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.encoder
}

// Metrics returns the metrics recorder, or nil when instrumentation is off.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// AuditLogger returns the audit logger, or nil when audit logging is off.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger sets the audit logger.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}

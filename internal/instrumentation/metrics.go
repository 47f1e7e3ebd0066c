package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency and DRY
const (
	// Common attributes (reused across metrics)
	attrMethod     = "method"
	attrPath       = "path"
	attrStatus     = "status"
	attrOperation  = "operation"
	attrService    = "service"
	attrTool       = "tool"
	attrTranscript = "include_transcript"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
	activeSessions      metric.Int64UpDownCounter

	// Fathom API metrics
	fathomAPIOperationsTotal   metric.Int64Counter
	fathomAPIOperationDuration metric.Float64Histogram

	// Search metrics
	searchesTotal      metric.Int64Counter
	searchPagesFetched metric.Int64Histogram
	searchMatches      metric.Int64Histogram

	// MCP Tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// Configuration
	// detailedLabels controls whether high-cardinality labels are included
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether high-cardinality labels are included.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	// HTTP Metrics
	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.activeSessions, err = meter.Int64UpDownCounter(
		"active_sessions",
		metric.WithDescription("Number of active MCP sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create active_sessions gauge: %w", err)
	}

	// Fathom API Metrics
	m.fathomAPIOperationsTotal, err = meter.Int64Counter(
		"fathom_api_operations_total",
		metric.WithDescription("Total number of Fathom API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create fathom_api_operations_total counter: %w", err)
	}

	m.fathomAPIOperationDuration, err = meter.Float64Histogram(
		"fathom_api_operation_duration_seconds",
		metric.WithDescription("Fathom API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create fathom_api_operation_duration_seconds histogram: %w", err)
	}

	// Search Metrics
	m.searchesTotal, err = meter.Int64Counter(
		"meeting_searches_total",
		metric.WithDescription("Total number of meeting searches"),
		metric.WithUnit("{search}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create meeting_searches_total counter: %w", err)
	}

	m.searchPagesFetched, err = meter.Int64Histogram(
		"meeting_search_pages_fetched",
		metric.WithDescription("Number of meeting list pages fetched per search"),
		metric.WithUnit("{page}"),
		metric.WithExplicitBucketBoundaries(1, 2, 3, 5, 8, 10),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create meeting_search_pages_fetched histogram: %w", err)
	}

	m.searchMatches, err = meter.Int64Histogram(
		"meeting_search_matches",
		metric.WithDescription("Number of matching meetings per search"),
		metric.WithUnit("{meeting}"),
		metric.WithExplicitBucketBoundaries(0, 1, 5, 10, 25, 50, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create meeting_search_matches histogram: %w", err)
	}

	// MCP Tool Metrics
	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordFathomAPIOperation records a Fathom API operation with operation name,
// status, and duration.
//
// Parameters:
//   - operation: API operation (list_meetings, get_summary, get_transcript, list_teams, list_team_members)
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the operation
func (m *Metrics) RecordFathomAPIOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m.fathomAPIOperationsTotal == nil || m.fathomAPIOperationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrService, ServiceFathom),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.fathomAPIOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.fathomAPIOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordSearch records the outcome of one meeting search: how many list pages
// were fetched, how many meetings matched, and whether transcripts were searched.
func (m *Metrics) RecordSearch(ctx context.Context, pagesFetched, matches int, includeTranscript bool) {
	if m.searchesTotal == nil || m.searchPagesFetched == nil || m.searchMatches == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.Bool(attrTranscript, includeTranscript),
	}

	m.searchesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.searchPagesFetched.Record(ctx, int64(pagesFetched), metric.WithAttributes(attrs...))
	m.searchMatches.Record(ctx, int64(matches), metric.WithAttributes(attrs...))
}

// RecordToolInvocation records an MCP tool invocation with tool name, status, and duration.
//
// Parameters:
//   - toolName: Name of the MCP tool (e.g., "list_meetings", "search_meetings")
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the tool execution
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// IncrementActiveSessions increments the active sessions counter.
func (m *Metrics) IncrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return // Instrumentation not initialized
	}

	m.activeSessions.Add(ctx, 1)
}

// DecrementActiveSessions decrements the active sessions counter.
func (m *Metrics) DecrementActiveSessions(ctx context.Context) {
	if m.activeSessions == nil {
		return // Instrumentation not initialized
	}

	m.activeSessions.Add(ctx, -1)
}

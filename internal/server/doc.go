// Package server provides the MCP server context, health checks, and the
// dedicated metrics server for the fathom-mcp application.
//
// # Key Components
//
// ServerContext holds the shared state every tool handler needs: the Fathom
// API client, the meeting search service, the result encoder, and the
// observability hooks (metrics recorder and audit logger). It is created once
// at startup; constructing it fails fast when no API key is configured.
//
// HealthChecker exposes /healthz and /readyz endpoints for Kubernetes probes.
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolating
// operational metrics from MCP traffic.
package server

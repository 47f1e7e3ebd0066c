package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/fathom-mcp/internal/fathom"
	"github.com/teemow/fathom-mcp/internal/instrumentation"
	"github.com/teemow/fathom-mcp/internal/output"
	"github.com/teemow/fathom-mcp/internal/resources"
	"github.com/teemow/fathom-mcp/internal/server"
	"github.com/teemow/fathom-mcp/internal/tools/meeting_tools"
	"github.com/teemow/fathom-mcp/internal/tools/recording_tools"
	"github.com/teemow/fathom-mcp/internal/tools/team_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

// serveOptions holds the resolved serve configuration after flags and
// environment variables have been merged.
type serveOptions struct {
	transport        string
	httpAddr         string
	debug            bool
	disableStreaming bool
	apiKey           string
	timeout          time.Duration
	outputFormat     string
	perPage          int
	metrics          MetricsConfig
}

func newServeCmd() *cobra.Command {
	var (
		debugMode        bool
		transport        string
		httpAddr         string
		disableStreaming bool
		apiKey           string
		timeout          time.Duration
		outputFormat     string
		perPage          int
		metricsEnabled   bool
		metricsAddr      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing Fathom meeting
intelligence tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Authentication:
  The server authenticates to the Fathom API with a single API key:
    --api-key flag OR FATHOM_API_KEY env var
  Generate a key in the Fathom settings under API Access.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := serveOptions{
				transport:        transport,
				httpAddr:         httpAddr,
				debug:            debugMode,
				disableStreaming: disableStreaming,
				apiKey:           apiKey,
				timeout:          timeout,
				outputFormat:     outputFormat,
				perPage:          perPage,
				metrics: MetricsConfig{
					Enabled: metricsEnabled,
					Addr:    metricsAddr,
				},
			}

			// Environment variables apply only where flags were not
			// explicitly set.
			if opts.apiKey == "" {
				opts.apiKey = os.Getenv("FATHOM_API_KEY")
			}
			if !cmd.Flags().Changed("timeout") {
				if env := os.Getenv("FATHOM_TIMEOUT"); env != "" {
					parsed, err := parseTimeout(env)
					if err != nil {
						return fmt.Errorf("invalid FATHOM_TIMEOUT: %w", err)
					}
					opts.timeout = parsed
				}
			}
			if !cmd.Flags().Changed("output-format") {
				if env := os.Getenv("OUTPUT_FORMAT"); env != "" {
					opts.outputFormat = env
				}
			}
			if !cmd.Flags().Changed("per-page") {
				if env := os.Getenv("DEFAULT_PER_PAGE"); env != "" {
					n, err := strconv.Atoi(env)
					if err != nil || n < 1 {
						return fmt.Errorf("invalid DEFAULT_PER_PAGE: %q", env)
					}
					opts.perPage = n
				}
			}
			if !cmd.Flags().Changed("metrics-enabled") {
				if os.Getenv("METRICS_ENABLED") == "false" {
					opts.metrics.Enabled = false
				}
			}
			if !cmd.Flags().Changed("metrics-addr") {
				if env := os.Getenv("METRICS_ADDR"); env != "" {
					opts.metrics.Addr = env
				}
			}

			return runServe(opts)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&disableStreaming, "disable-streaming", false, "Disable streaming for HTTP transport (for compatibility with certain clients)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Fathom API key. Can also use FATHOM_API_KEY env var.")
	cmd.Flags().DurationVar(&timeout, "timeout", fathom.DefaultTimeout, "Timeout for Fathom API requests. Can also use FATHOM_TIMEOUT env var (seconds or Go duration).")
	cmd.Flags().StringVar(&outputFormat, "output-format", string(output.FormatJSON), "Tool result format: json or yaml. Can also use OUTPUT_FORMAT env var.")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Page size for search pagination (0 lets the API decide). Can also use DEFAULT_PER_PAGE env var.")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

// parseTimeout accepts either a bare number of seconds ("30") or a Go
// duration string ("30s", "1m").
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("timeout cannot be empty")
	}
	if seconds, err := strconv.ParseFloat(s, 64); err == nil {
		if seconds <= 0 {
			return 0, fmt.Errorf("timeout must be positive, got %q", s)
		}
		return time.Duration(seconds * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %q", s)
	}
	return d, nil
}

func runServe(opts serveOptions) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if opts.debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	format := output.ParseFormat(opts.outputFormat)

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			if opts.transport != "stdio" {
				log.Printf("Error during instrumentation shutdown: %v", err)
			}
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if opts.transport != "stdio" && opts.metrics.Enabled && provider.Enabled() {
		var err error
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    opts.metrics.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		select {
		case <-metricsReady:
			log.Printf("Metrics server started on %s", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}
	}

	// Create server context. A missing API key fails here, before any
	// transport is started.
	serverContext, err := server.NewServerContext(shutdownCtx, server.Config{
		APIKey:        opts.apiKey,
		ClientOptions: []fathom.Option{fathom.WithTimeout(opts.timeout)},
		OutputFormat:  format,
		PerPage:       opts.perPage,
	})
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}

	// Set metrics and audit logger on server context for tool instrumentation
	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
		serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging))
	}
	defer func() {
		// Shutdown metrics server first
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			if opts.transport != "stdio" {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("fathom-mcp", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false),
	)

	// Register all tools and resources
	if err := registerAllTools(mcpSrv, serverContext); err != nil {
		return err
	}

	// Start the appropriate server based on transport type
	switch opts.transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		fmt.Printf("Starting fathom-mcp server with %s transport...\n", opts.transport)
		return runStreamableHTTPServer(mcpSrv, serverContext, shutdownCtx, opts, provider)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", opts.transport)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// registerAllTools registers all MCP tools and resources
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext) error {
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Meetings",
			register: func() error {
				return meeting_tools.RegisterMeetingTools(mcpSrv, ctx)
			},
		},
		{
			name: "Recordings",
			register: func() error {
				return recording_tools.RegisterRecordingTools(mcpSrv, ctx)
			},
		},
		{
			name: "Teams",
			register: func() error {
				return team_tools.RegisterTeamTools(mcpSrv, ctx)
			},
		},
		{
			name: "Server Resources",
			register: func() error {
				return resources.RegisterServerResources(mcpSrv, ctx, version)
			},
		},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}

func runStreamableHTTPServer(mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, ctx context.Context, opts serveOptions, instrProvider *instrumentation.Provider) error {
	httpServer := server.NewHTTPServer(mcpSrv, server.HTTPServerConfig{
		DisableStreaming: opts.disableStreaming,
	})

	// Set up health checker for health check endpoints
	healthChecker := server.NewHealthChecker(serverContext)
	httpServer.SetHealthChecker(healthChecker)

	// Set up HTTP instrumentation for metrics
	if instrProvider != nil && instrProvider.Enabled() {
		httpServer.SetMetrics(instrProvider.Metrics())
		httpServer.SetSessionTracker(server.NewSessionTracker(instrProvider.Metrics()))
	}

	fmt.Printf("Streamable HTTP server starting on %s\n", opts.httpAddr)
	fmt.Printf("  MCP endpoint: /mcp\n")
	fmt.Printf("  Health endpoints: /healthz, /readyz\n")
	if opts.metrics.Enabled {
		fmt.Printf("  Metrics endpoint: %s/metrics\n", opts.metrics.Addr)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.Start(opts.httpAddr); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("Shutdown signal received, stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
		fmt.Println("HTTP server stopped normally")
	}

	fmt.Println("HTTP server gracefully stopped")
	return nil
}

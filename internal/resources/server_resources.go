package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/fathom-mcp/internal/server"
)

// RegisterServerResources registers informational MCP resources.
// These give clients a cheap way to inspect the workspace without
// invoking a tool.
func RegisterServerResources(s *mcpserver.MCPServer, sc *server.ServerContext, version string) error {
	// Server info resource
	infoResource := mcp.NewResource(
		"fathom://server/info",
		"Fathom MCP Server Info",
		mcp.WithResourceDescription("Version and configuration of this server"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(infoResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleServerInfo(ctx, request, sc, version)
	})

	// Teams resource
	teamsResource := mcp.NewResource(
		"fathom://teams",
		"Fathom Teams",
		mcp.WithResourceDescription("Teams in the Fathom workspace"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(teamsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleTeams(ctx, request, sc)
	})

	return nil
}

func handleServerInfo(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext, version string) ([]mcp.ResourceContents, error) {
	info := map[string]interface{}{
		"name":          "fathom-mcp",
		"version":       version,
		"output_format": string(sc.Encoder().Format()),
	}

	jsonData, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal server info: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

// handleTeams returns the first page of workspace teams. Clients wanting
// full pagination use the fathom_list_teams tool instead.
func handleTeams(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	page, err := sc.FathomClient().ListTeams(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	jsonData, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal teams: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

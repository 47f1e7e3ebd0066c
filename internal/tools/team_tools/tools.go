package team_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/fathom-mcp/internal/fathom"
	"github.com/teemow/fathom-mcp/internal/instrumentation"
	"github.com/teemow/fathom-mcp/internal/server"
	"github.com/teemow/fathom-mcp/internal/tools/common"
)

// RegisterTeamTools registers team listing tools with the MCP server
func RegisterTeamTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List teams
	listTeamsTool := mcp.NewTool("fathom_list_teams",
		mcp.WithDescription("List the teams in the Fathom workspace. Returns one page plus a cursor for the next."),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous page"),
		),
		mcp.WithString("limit",
			mcp.Description("Page size (number of teams per page)"),
		),
	)

	s.AddTool(listTeamsTool, common.InstrumentedToolHandlerWithOperation(
		"fathom_list_teams", instrumentation.OperationListTeams, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListTeams(ctx, request, sc)
		}))

	// List team members
	listTeamMembersTool := mcp.NewTool("fathom_list_team_members",
		mcp.WithDescription("List team members in the Fathom workspace, optionally filtered to a single team. Returns one page plus a cursor for the next."),
		mcp.WithString("team",
			mcp.Description("Only members of this team"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous page"),
		),
		mcp.WithString("limit",
			mcp.Description("Page size (number of members per page)"),
		),
	)

	s.AddTool(listTeamMembersTool, common.InstrumentedToolHandlerWithOperation(
		"fathom_list_team_members", instrumentation.OperationListTeamMembers, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListTeamMembers(ctx, request, sc)
		}))

	return nil
}

func handleListTeams(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	params := &fathom.ListTeamsParams{}
	if v, ok := args["cursor"].(string); ok {
		params.Cursor = v
	}
	if n, ok := common.IntFromArg(args["limit"]); ok {
		if n < 1 {
			return mcp.NewToolResultError("limit must be a positive number"), nil
		}
		params.PerPage = n
	}

	page, err := sc.FathomClient().ListTeams(ctx, params)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list teams: %v", err)), nil
	}

	encoded, err := sc.Encoder().Encode(page)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode teams: %v", err)), nil
	}

	return mcp.NewToolResultText(encoded), nil
}

func handleListTeamMembers(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	params := &fathom.ListTeamMembersParams{}
	if v, ok := args["team"].(string); ok {
		params.Team = v
	}
	if v, ok := args["cursor"].(string); ok {
		params.Cursor = v
	}
	if n, ok := common.IntFromArg(args["limit"]); ok {
		if n < 1 {
			return mcp.NewToolResultError("limit must be a positive number"), nil
		}
		params.PerPage = n
	}

	page, err := sc.FathomClient().ListTeamMembers(ctx, params)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list team members: %v", err)), nil
	}

	encoded, err := sc.Encoder().Encode(page)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode team members: %v", err)), nil
	}

	return mcp.NewToolResultText(encoded), nil
}

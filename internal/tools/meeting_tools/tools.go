package meeting_tools

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

// RegisterMeetingTools registers meeting listing and search tools with the MCP server
func RegisterMeetingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List meetings
	listMeetingsTool := mcp.NewTool("fathom_list_meetings",
		mcp.WithDescription("List Fathom meetings, optionally filtered by attendees, recorder, team, or creation time. Returns one page plus a cursor for the next."),
		mcp.WithString("calendar_invitees",
			mcp.Description("Filter by attendee email addresses (array or comma-separated)"),
		),
		mcp.WithString("calendar_invitees_domains",
			mcp.Description("Filter by attendee email domains (array or comma-separated)"),
		),
		mcp.WithString("calendar_invitees_domains_type",
			mcp.Description("Narrow the domain filter: 'all', 'only_internal', or 'one_or_more_external'"),
		),
		mcp.WithString("created_after",
			mcp.Description("Only meetings created after this ISO 8601 timestamp"),
		),
		mcp.WithString("created_before",
			mcp.Description("Only meetings created before this ISO 8601 timestamp"),
		),
		mcp.WithString("recorded_by",
			mcp.Description("Filter by recorder email addresses (array or comma-separated)"),
		),
		mcp.WithString("teams",
			mcp.Description("Filter by team names (array or comma-separated)"),
		),
		mcp.WithBoolean("include_summary",
			mcp.Description("Embed the AI summary in each meeting"),
		),
		mcp.WithBoolean("include_transcript",
			mcp.Description("Embed the full transcript in each meeting"),
		),
		mcp.WithBoolean("include_action_items",
			mcp.Description("Embed action items in each meeting"),
		),
		mcp.WithBoolean("include_crm_matches",
			mcp.Description("Embed CRM matches in each meeting"),
		),
		mcp.WithString("cursor",
			mcp.Description("Pagination cursor from a previous page"),
		),
		mcp.WithString("limit",
			mcp.Description("Page size (number of meetings per page)"),
		),
	)

	s.AddTool(listMeetingsTool, common.InstrumentedToolHandlerWithOperation(
		"fathom_list_meetings", instrumentation.OperationListMeetings, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListMeetings(ctx, request, sc)
		}))

	// Search meetings
	searchMeetingsTool := mcp.NewTool("fathom_search_meetings",
		mcp.WithDescription("Search Fathom meetings by keyword across titles, attendee names and emails, team names, topics, and summaries. Set include_transcript to also search transcript text."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search term matched case-insensitively against meeting metadata"),
		),
		mcp.WithBoolean("include_transcript",
			mcp.Description("Also search transcript text (slower, fetches transcripts as needed). Default: false."),
		),
	)

	s.AddTool(searchMeetingsTool, common.InstrumentedToolHandlerWithOperation(
		"fathom_search_meetings", instrumentation.OperationSearch, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchMeetings(ctx, request, sc)
		}))

	return nil
}

// listMeetingsParamsFromArgs builds the upstream listing parameters from
// tool arguments. Absent arguments leave the corresponding filter unset.
func listMeetingsParamsFromArgs(args map[string]interface{}) (*fathom.ListMeetingsParams, error) {
	params := &fathom.ListMeetingsParams{
		CalendarInvitees:        common.StringListFromArg(args["calendar_invitees"]),
		CalendarInviteesDomains: common.StringListFromArg(args["calendar_invitees_domains"]),
		RecordedBy:              common.StringListFromArg(args["recorded_by"]),
		Teams:                   common.StringListFromArg(args["teams"]),
	}
	if v, ok := args["calendar_invitees_domains_type"].(string); ok {
		params.CalendarInviteesDomainsType = v
	}
	if v, ok := args["created_after"].(string); ok {
		params.CreatedAfter = v
	}
	if v, ok := args["created_before"].(string); ok {
		params.CreatedBefore = v
	}
	if v, ok := args["cursor"].(string); ok {
		params.Cursor = v
	}
	if v, ok := args["include_summary"].(bool); ok {
		params.IncludeSummary = fathom.Bool(v)
	}
	if v, ok := args["include_transcript"].(bool); ok {
		params.IncludeTranscript = fathom.Bool(v)
	}
	if v, ok := args["include_action_items"].(bool); ok {
		params.IncludeActionItems = fathom.Bool(v)
	}
	if v, ok := args["include_crm_matches"].(bool); ok {
		params.IncludeCRMMatches = fathom.Bool(v)
	}
	if n, ok := common.IntFromArg(args["limit"]); ok {
		if n < 1 {
			return nil, fmt.Errorf("limit must be a positive number")
		}
		params.PerPage = n
	}
	return params, nil
}

func handleListMeetings(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	params, err := listMeetingsParamsFromArgs(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// A limit argument overrides the configured default page size.
	if params.PerPage == 0 {
		params.PerPage = sc.PerPage()
	}

	page, err := sc.FathomClient().ListMeetings(ctx, params)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list meetings: %v", err)), nil
	}

	encoded, err := sc.Encoder().Encode(page)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode meetings: %v", err)), nil
	}

	return mcp.NewToolResultText(encoded), nil
}

func handleSearchMeetings(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	// An empty string is a valid query: Search answers it with the
	// empty envelope. Only an absent argument is a caller error.
	query, ok := args["query"].(string)
	if !ok {
		return mcp.NewToolResultError("query is required"), nil
	}

	includeTranscript := false
	if v, ok := args["include_transcript"].(bool); ok {
		includeTranscript = v
	}

	resp, err := sc.SearchService().Search(ctx, query, includeTranscript)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search meetings: %v", err)), nil
	}

	if metrics := sc.Metrics(); metrics != nil {
		metrics.RecordSearch(ctx, resp.PagesFetched, resp.TotalMatches, includeTranscript)
	}

	encoded, err := sc.Encoder().Encode(resp)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode search results: %v", err)), nil
	}

	return mcp.NewToolResultText(encoded), nil
}

package recording_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/fathom-mcp/internal/instrumentation"
	"github.com/teemow/fathom-mcp/internal/server"
	"github.com/teemow/fathom-mcp/internal/tools/batch"
	"github.com/teemow/fathom-mcp/internal/tools/common"
)

// RegisterRecordingTools registers summary and transcript retrieval tools
// with the MCP server
func RegisterRecordingTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Get summary
	getSummaryTool := mcp.NewTool("fathom_get_summary",
		mcp.WithDescription("Get the AI-generated summary of one or more Fathom recordings. Accepts a single recording ID or an array of IDs for batch retrieval."),
		mcp.WithString("recording_id",
			mcp.Required(),
			mcp.Description("Recording ID (number or numeric string), or an array of IDs"),
		),
		mcp.WithString("destination_url",
			mcp.Description("Optional destination URL for CRM-targeted summary templates"),
		),
	)

	s.AddTool(getSummaryTool, common.InstrumentedToolHandlerWithOperation(
		"fathom_get_summary", instrumentation.OperationGetSummary, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetSummary(ctx, request, sc)
		}))

	// Get transcript
	getTranscriptTool := mcp.NewTool("fathom_get_transcript",
		mcp.WithDescription("Get the full transcript of one or more Fathom recordings with speaker names and timestamps. Accepts a single recording ID or an array of IDs for batch retrieval."),
		mcp.WithString("recording_id",
			mcp.Required(),
			mcp.Description("Recording ID (number or numeric string), or an array of IDs"),
		),
		mcp.WithString("destination_url",
			mcp.Description("Optional destination URL for CRM-targeted transcript templates"),
		),
	)

	s.AddTool(getTranscriptTool, common.InstrumentedToolHandlerWithOperation(
		"fathom_get_transcript", instrumentation.OperationGetTranscript, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetTranscript(ctx, request, sc)
		}))

	return nil
}

// fetchRecordings runs fetch for every requested recording ID. A single ID
// returns the encoded payload directly; multiple IDs return a batch report
// that tolerates per-recording failures.
func fetchRecordings(args map[string]interface{}, sc *server.ServerContext, fetch func(id int64, destinationURL string) (any, error)) (*mcp.CallToolResult, error) {
	ids, err := batch.ParseRecordingIDs(args["recording_id"], "recording_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	destinationURL := ""
	if v, ok := args["destination_url"].(string); ok {
		destinationURL = v
	}

	encode := func(id int64) (string, error) {
		payload, err := fetch(id, destinationURL)
		if err != nil {
			return "", err
		}
		return sc.Encoder().Encode(payload)
	}

	if len(ids) == 1 {
		encoded, err := encode(ids[0])
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get recording %d: %v", ids[0], err)), nil
		}
		return mcp.NewToolResultText(encoded), nil
	}

	results := batch.ProcessBatch(ids, encode)
	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleGetSummary(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return fetchRecordings(request.GetArguments(), sc, func(id int64, destinationURL string) (any, error) {
		return sc.FathomClient().GetSummary(ctx, id, destinationURL)
	})
}

func handleGetTranscript(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return fetchRecordings(request.GetArguments(), sc, func(id int64, destinationURL string) (any, error) {
		return sc.FathomClient().GetTranscript(ctx, id, destinationURL)
	})
}

package recording_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/fathom-mcp/internal/fathom"
	"github.com/teemow/fathom-mcp/internal/output"
	"github.com/teemow/fathom-mcp/internal/server"
	"github.com/teemow/fathom-mcp/internal/tools/batch"
)

// newTestServerContext points the Fathom client at a stub API.
func newTestServerContext(t *testing.T, handler http.Handler) *server.ServerContext {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	sc, err := server.NewServerContext(context.Background(), server.Config{
		APIKey:        "test-key",
		ClientOptions: []fathom.Option{fathom.WithBaseURL(ts.URL)},
		OutputFormat:  output.FormatJSON,
	})
	if err != nil {
		t.Fatalf("NewServerContext: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func callToolRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("content is not text: %+v", result.Content[0])
	}
	return text.Text
}

func TestHandleGetSummary_SingleID(t *testing.T) {
	sc := newTestServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recordings/42/summary" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"summary": {"markdown_formatted": "# Notes"}}`))
	}))

	result, err := handleGetSummary(context.Background(), callToolRequest(map[string]interface{}{
		"recording_id": float64(42),
	}), sc)
	if err != nil {
		t.Fatalf("handleGetSummary: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %+v", result)
	}

	var resp fathom.SummaryResponse
	if err := json.Unmarshal([]byte(resultText(t, result)), &resp); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if resp.Summary.MarkdownFormatted != "# Notes" {
		t.Errorf("Summary = %+v", resp.Summary)
	}
}

func TestHandleGetSummary_DestinationURL(t *testing.T) {
	sc := newTestServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("destination_url"); got != "https://crm.example.com/deal/7" {
			t.Errorf("destination_url = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"summary": {}}`))
	}))

	result, err := handleGetSummary(context.Background(), callToolRequest(map[string]interface{}{
		"recording_id":    "42",
		"destination_url": "https://crm.example.com/deal/7",
	}), sc)
	if err != nil {
		t.Fatalf("handleGetSummary: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %+v", result)
	}
}

func TestHandleGetTranscript_BatchPartialFailure(t *testing.T) {
	sc := newTestServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/recordings/2/transcript" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "recording not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"transcript": [{"speaker": {"display_name": "Ada"}, "text": "hello"}]}`))
	}))

	result, err := handleGetTranscript(context.Background(), callToolRequest(map[string]interface{}{
		"recording_id": []interface{}{float64(1), float64(2), float64(3)},
	}), sc)
	if err != nil {
		t.Fatalf("handleGetTranscript: %v", err)
	}
	if result.IsError {
		t.Fatalf("batch with partial failures should not be an error result: %+v", result)
	}

	var br batch.BatchResult
	if err := json.Unmarshal([]byte(resultText(t, result)), &br); err != nil {
		t.Fatalf("result is not a batch report: %v", err)
	}
	if br.Total != 3 || br.Successful != 2 || br.Failed != 1 {
		t.Errorf("batch counts = %+v", br)
	}
	for _, r := range br.Results {
		if r.RecordingID == 2 && r.Status != "error" {
			t.Errorf("recording 2 should have failed: %+v", r)
		}
	}
}

func TestHandleGetTranscript_SingleFailure(t *testing.T) {
	sc := newTestServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "invalid api key"}`))
	}))

	result, err := handleGetTranscript(context.Background(), callToolRequest(map[string]interface{}{
		"recording_id": float64(1),
	}), sc)
	if err != nil {
		t.Fatalf("handleGetTranscript: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result for a failed single fetch")
	}
}

func TestHandleGetSummary_InvalidID(t *testing.T) {
	sc := newTestServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected for an invalid ID")
	}))

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{name: "missing", args: map[string]interface{}{}},
		{name: "non-numeric", args: map[string]interface{}{"recording_id": "not-a-number"}},
		{name: "empty array", args: map[string]interface{}{"recording_id": []interface{}{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleGetSummary(context.Background(), callToolRequest(tt.args), sc)
			if err != nil {
				t.Fatalf("handleGetSummary: %v", err)
			}
			if !result.IsError {
				t.Fatal("expected an error result")
			}
		})
	}
}

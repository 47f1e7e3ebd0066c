package team_tools

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
)

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

func TestHandleListTeams(t *testing.T) {
	sc := newTestServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/teams" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("cursor"); got != "page2" {
			t.Errorf("cursor = %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": [{"name": "Sales"}, {"name": "Support"}], "cursor": "page3"}`))
	}))

	result, err := handleListTeams(context.Background(), callToolRequest(map[string]interface{}{
		"cursor": "page2",
		"limit":  float64(5),
	}), sc)
	if err != nil {
		t.Fatalf("handleListTeams: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %+v", result)
	}

	var page fathom.TeamsPage
	if err := json.Unmarshal([]byte(resultText(t, result)), &page); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].Name != "Sales" {
		t.Errorf("Items = %+v", page.Items)
	}
	if page.Cursor != "page3" {
		t.Errorf("Cursor = %q", page.Cursor)
	}
}

func TestHandleListTeamMembers_TeamFilter(t *testing.T) {
	sc := newTestServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/team_members" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("team"); got != "Sales" {
			t.Errorf("team = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": [{"name": "Ada", "email": "ada@example.com", "team": "Sales"}]}`))
	}))

	result, err := handleListTeamMembers(context.Background(), callToolRequest(map[string]interface{}{
		"team": "Sales",
	}), sc)
	if err != nil {
		t.Fatalf("handleListTeamMembers: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %+v", result)
	}

	var page fathom.TeamMembersPage
	if err := json.Unmarshal([]byte(resultText(t, result)), &page); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Email != "ada@example.com" {
		t.Errorf("Items = %+v", page.Items)
	}
}

func TestHandleListTeams_UpstreamError(t *testing.T) {
	sc := newTestServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message": "rate limited"}`))
	}))

	result, err := handleListTeams(context.Background(), callToolRequest(map[string]interface{}{}), sc)
	if err != nil {
		t.Fatalf("handleListTeams: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result for a rate-limited upstream")
	}
}

func TestHandleListTeams_InvalidLimit(t *testing.T) {
	sc := newTestServerContext(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected for an invalid limit")
	}))

	result, err := handleListTeams(context.Background(), callToolRequest(map[string]interface{}{
		"limit": float64(-1),
	}), sc)
	if err != nil {
		t.Fatalf("handleListTeams: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result")
	}
}

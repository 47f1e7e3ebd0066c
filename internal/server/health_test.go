package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/teemow/fathom-mcp/internal/fathom"
)

func newHealthTestContext(t *testing.T, upstreamURL string) *ServerContext {
	t.Helper()
	sc, err := NewServerContext(context.Background(), Config{
		APIKey:        "test-key",
		ClientOptions: []fathom.Option{fathom.WithBaseURL(upstreamURL)},
	})
	if err != nil {
		t.Fatalf("NewServerContext: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestLivenessHandler(t *testing.T) {
	h := NewHealthChecker(nil)

	rec := httptest.NewRecorder()
	h.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if resp.Status != healthStatusOK {
		t.Errorf("Status = %q", resp.Status)
	}
}

func TestReadinessHandler(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	defer ts.Close()

	sc := newHealthTestContext(t, ts.URL)
	h := NewHealthChecker(sc)

	rec := httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if resp.Checks["fathom_client"] != healthStatusOK {
		t.Errorf("fathom_client check = %q", resp.Checks["fathom_client"])
	}

	// Not ready flips the endpoint to 503.
	h.SetReady(false)
	rec = httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when not ready", rec.Code)
	}
}

func TestReadinessHandler_Shutdown(t *testing.T) {
	sc := newHealthTestContext(t, "http://127.0.0.1:0")
	h := NewHealthChecker(sc)

	_ = sc.Shutdown()

	rec := httptest.NewRecorder()
	h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 after shutdown", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if resp.Checks["shutdown"] != healthStatusShuttingDown {
		t.Errorf("shutdown check = %q", resp.Checks["shutdown"])
	}
}

func TestDetailedHealthHandler_ProbesUpstream(t *testing.T) {
	var probed bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		probed = true
		if r.URL.Path != "/teams" {
			t.Errorf("probe path = %q, want /teams", r.URL.Path)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("probe limit = %q, want 1", got)
		}
		w.Write([]byte(`{"items": []}`))
	}))
	defer ts.Close()

	sc := newHealthTestContext(t, ts.URL)
	h := NewHealthChecker(sc)

	rec := httptest.NewRecorder()
	h.DetailedHealthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz/detailed", nil))

	if !probed {
		t.Fatal("detailed health did not call the Fathom API")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp DetailedHealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if resp.Status != healthStatusOK || resp.Upstream != healthStatusOK {
		t.Errorf("Status = %q, Upstream = %q", resp.Status, resp.Upstream)
	}
	if resp.Uptime == "" {
		t.Error("uptime missing")
	}
}

func TestDetailedHealthHandler_UpstreamFailureIsDegraded(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	sc := newHealthTestContext(t, ts.URL)
	h := NewHealthChecker(sc)

	rec := httptest.NewRecorder()
	h.DetailedHealthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz/detailed", nil))

	// An unreachable upstream degrades the report but keeps the server
	// alive; 503 is reserved for not-ready and shutdown.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp DetailedHealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if resp.Status != healthStatusDegraded {
		t.Errorf("Status = %q, want %q", resp.Status, healthStatusDegraded)
	}
	if resp.Upstream == healthStatusOK {
		t.Error("upstream should report the failure")
	}
}

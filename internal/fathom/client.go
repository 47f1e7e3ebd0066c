package fathom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/teemow/fathom-mcp/internal/logging"
)

const (
	// DefaultBaseURL is the production endpoint of the Fathom external API.
	DefaultBaseURL = "https://api.fathom.ai/external/v1"

	// DefaultTimeout is the request timeout used when none is configured.
	DefaultTimeout = 30 * time.Second

	userAgent = "fathom-mcp/1.0"
)

// Client is an HTTP client for the Fathom external API. It is safe for
// concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used by tests to point the
// client at a local server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger for request-level debug logging.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Fathom API client authenticated with the given key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("fathom: API key is required (set FATHOM_API_KEY)")
	}

	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		logger:     logging.ComponentLogger("fathom"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// get performs a GET request against the API and decodes the JSON body
// into out. Non-success statuses are mapped to *APIError.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("fathom request failed", "path", path, "error", err)
		return &APIError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	c.logger.Debug("fathom request",
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &APIError{Message: fmt.Sprintf("decode response: %v", err)}
		}
		return nil

	case resp.StatusCode == http.StatusTooManyRequests:
		return &APIError{
			StatusCode: resp.StatusCode,
			Message: fmt.Sprintf("rate limit exceeded (limit: %s, remaining: %s, reset: %s)",
				headerOrUnknown(resp, "RateLimit-Limit"),
				headerOrUnknown(resp, "RateLimit-Remaining"),
				headerOrUnknown(resp, "RateLimit-Reset")),
		}

	case resp.StatusCode == http.StatusUnauthorized:
		return &APIError{StatusCode: resp.StatusCode, Message: "unauthorized: invalid API key"}

	case resp.StatusCode == http.StatusNotFound:
		return &APIError{StatusCode: resp.StatusCode, Message: "resource not found"}

	default:
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp)}
	}
}

// headerOrUnknown returns the named response header, or "unknown".
func headerOrUnknown(resp *http.Response, name string) string {
	if v := resp.Header.Get(name); v != "" {
		return v
	}
	return "unknown"
}

// errorMessage extracts a message from an error response body, falling
// back to the raw body when it is not the usual {"message": ...} shape.
func errorMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(body) == 0 {
		return "unknown error"
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(body)
}

// ListMeetings retrieves one page of meetings matching the given filters.
func (c *Client) ListMeetings(ctx context.Context, params *ListMeetingsParams) (*MeetingsPage, error) {
	var page MeetingsPage
	if err := c.get(ctx, "/meetings", params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetMeeting retrieves a single meeting by recording ID. The API has no
// single-meeting endpoint, so this lists meetings and filters client-side.
func (c *Client) GetMeeting(ctx context.Context, recordingID int64) (*Meeting, error) {
	page, err := c.ListMeetings(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i := range page.Items {
		if page.Items[i].RecordingID == recordingID {
			return &page.Items[i], nil
		}
	}
	return nil, &APIError{
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("meeting with recording_id %d not found", recordingID),
	}
}

// GetSummary retrieves the AI-generated summary for a recording.
// destinationURL optionally tailors link formatting and may be empty.
func (c *Client) GetSummary(ctx context.Context, recordingID int64, destinationURL string) (*SummaryResponse, error) {
	query := url.Values{}
	if destinationURL != "" {
		query.Set("destination_url", destinationURL)
	}
	var out SummaryResponse
	path := "/recordings/" + strconv.FormatInt(recordingID, 10) + "/summary"
	if err := c.get(ctx, path, query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTranscript retrieves the timestamped transcript for a recording.
// destinationURL optionally tailors link formatting and may be empty.
func (c *Client) GetTranscript(ctx context.Context, recordingID int64, destinationURL string) (*TranscriptResponse, error) {
	query := url.Values{}
	if destinationURL != "" {
		query.Set("destination_url", destinationURL)
	}
	var out TranscriptResponse
	path := "/recordings/" + strconv.FormatInt(recordingID, 10) + "/transcript"
	if err := c.get(ctx, path, query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTeams retrieves one page of teams.
func (c *Client) ListTeams(ctx context.Context, params *ListTeamsParams) (*TeamsPage, error) {
	var page TeamsPage
	if err := c.get(ctx, "/teams", params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListTeamMembers retrieves one page of team members.
func (c *Client) ListTeamMembers(ctx context.Context, params *ListTeamMembersParams) (*TeamMembersPage, error) {
	var page TeamMembersPage
	if err := c.get(ctx, "/team_members", params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/teemow/fathom-mcp/internal/fathom"
	"github.com/teemow/fathom-mcp/internal/logging"
)

const (
	// DefaultMaxPages caps how many listing pages one search walks.
	DefaultMaxPages = 10

	// DefaultHydrationConcurrency bounds in-flight transcript fetches.
	DefaultHydrationConcurrency = 4
)

// MeetingAPI is the subset of the Fathom client the search service needs.
// Tests substitute a fake implementation.
type MeetingAPI interface {
	ListMeetings(ctx context.Context, params *fathom.ListMeetingsParams) (*fathom.MeetingsPage, error)
	GetTranscript(ctx context.Context, recordingID int64, destinationURL string) (*fathom.TranscriptResponse, error)
}

// Config tunes a search Service. Zero values select the defaults above.
type Config struct {
	// MaxPages is the hard cap on listing pages per search.
	MaxPages int

	// PerPage is the page size requested from the listing endpoint.
	// Zero leaves the choice to the API.
	PerPage int

	// HydrationConcurrency bounds concurrent transcript fetches.
	HydrationConcurrency int

	// Logger receives progress and error notices. nil uses slog.Default.
	Logger *slog.Logger
}

// Service performs searches over Fathom meetings. It holds no per-search
// state and is safe for concurrent use.
type Service struct {
	api                  MeetingAPI
	logger               *slog.Logger
	maxPages             int
	perPage              int
	hydrationConcurrency int
}

// NewService creates a search service backed by the given API client.
func NewService(api MeetingAPI, cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	concurrency := cfg.HydrationConcurrency
	if concurrency <= 0 {
		concurrency = DefaultHydrationConcurrency
	}
	return &Service{
		api:                  api,
		logger:               logger,
		maxPages:             maxPages,
		perPage:              cfg.PerPage,
		hydrationConcurrency: concurrency,
	}
}

// Result is the public shape of one matched meeting.
type Result struct {
	Title              string            `json:"title,omitempty"`
	RecordingID        int64             `json:"recording_id,omitempty"`
	URL                string            `json:"url,omitempty"`
	ShareURL           string            `json:"share_url,omitempty"`
	CreatedAt          string            `json:"created_at,omitempty"`
	ScheduledStartTime string            `json:"scheduled_start_time,omitempty"`
	ScheduledEndTime   string            `json:"scheduled_end_time,omitempty"`
	RecordingStartTime string            `json:"recording_start_time,omitempty"`
	RecordingEndTime   string            `json:"recording_end_time,omitempty"`
	TranscriptLanguage string            `json:"transcript_language,omitempty"`
	CalendarInvitees   []fathom.Invitee  `json:"calendar_invitees,omitempty"`
	RecordedBy         *fathom.Invitee   `json:"recorded_by,omitempty"`
	Teams              []fathom.NameRef  `json:"teams,omitempty"`
	Topics             []fathom.NameRef  `json:"topics,omitempty"`
	Summary            string            `json:"summary,omitempty"`

	// FoundInTranscript is present only when the match came from
	// transcript text rather than metadata.
	FoundInTranscript bool `json:"found_in_transcript,omitempty"`
}

// Response is the envelope returned by Search.
type Response struct {
	Items               []Result `json:"items"`
	Query               string   `json:"query"`
	TotalMatches        int      `json:"total_matches"`
	SearchedTranscripts bool     `json:"searched_transcripts"`

	// PagesFetched counts the listing pages walked. Carried for metrics,
	// not part of the wire envelope.
	PagesFetched int `json:"-"`
}

// Search runs a full search: collect all candidate meetings, optionally
// hydrate missing transcripts, filter, and project. A blank query is a
// terminal success with zero matches and no upstream calls. Upstream
// errors during collection abort the search and propagate unchanged.
func (s *Service) Search(ctx context.Context, query string, includeTranscript bool) (*Response, error) {
	resp := &Response{
		Items:               []Result{},
		Query:               query,
		SearchedTranscripts: includeTranscript,
	}

	if strings.TrimSpace(query) == "" {
		s.logger.Warn("search query is empty, returning no matches")
		return resp, nil
	}

	normalizedQuery := Normalize(query)

	meetings, pagesFetched, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}
	resp.PagesFetched = pagesFetched

	if includeTranscript {
		meetings = s.hydrate(ctx, meetings)
	}

	for i := range meetings {
		var ok, foundInTranscript bool
		if includeTranscript {
			ok, foundInTranscript = matches(&meetings[i], normalizedQuery)
		} else {
			ok = matchesMetadata(&meetings[i], normalizedQuery)
		}
		if ok {
			resp.Items = append(resp.Items, project(&meetings[i], foundInTranscript))
		}
	}
	resp.TotalMatches = len(resp.Items)

	s.logger.Info("search completed",
		logging.QueryHash(query),
		slog.Int("candidates", len(meetings)),
		slog.Int("matches", resp.TotalMatches),
		slog.Bool("searched_transcripts", includeTranscript))

	return resp, nil
}

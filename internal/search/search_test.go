package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/teemow/fathom-mcp/internal/fathom"
)

// fakeAPI serves canned listing pages in order and transcripts by
// recording ID. It counts calls so tests can assert pagination behavior.
type fakeAPI struct {
	mu sync.Mutex

	pages          []*fathom.MeetingsPage
	listErrAtCall  int
	listErr        error
	transcripts    map[int64]fathom.Transcript
	transcriptErrs map[int64]error

	listCalls       int
	transcriptCalls int
	cursorsSeen     []string
	lastParams      *fathom.ListMeetingsParams
}

func (f *fakeAPI) ListMeetings(ctx context.Context, params *fathom.ListMeetingsParams) (*fathom.MeetingsPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	f.cursorsSeen = append(f.cursorsSeen, params.Cursor)
	f.lastParams = params

	if f.listErr != nil && f.listCalls == f.listErrAtCall {
		return nil, f.listErr
	}
	if f.listCalls <= len(f.pages) {
		return f.pages[f.listCalls-1], nil
	}
	// Past the canned pages keep handing back the last one so cap tests
	// can simulate an endless cursor.
	if len(f.pages) > 0 {
		return f.pages[len(f.pages)-1], nil
	}
	return &fathom.MeetingsPage{}, nil
}

func (f *fakeAPI) GetTranscript(ctx context.Context, recordingID int64, destinationURL string) (*fathom.TranscriptResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.transcriptCalls++
	if err, ok := f.transcriptErrs[recordingID]; ok {
		return nil, err
	}
	if transcript, ok := f.transcripts[recordingID]; ok {
		return &fathom.TranscriptResponse{Transcript: transcript}, nil
	}
	return &fathom.TranscriptResponse{}, nil
}

func meeting(id int64, title string) fathom.Meeting {
	return fathom.Meeting{RecordingID: id, Title: title}
}

func page(cursor string, meetings ...fathom.Meeting) *fathom.MeetingsPage {
	return &fathom.MeetingsPage{Items: meetings, Cursor: cursor}
}

func TestSearch_BlankQuery(t *testing.T) {
	api := &fakeAPI{pages: []*fathom.MeetingsPage{page("", meeting(1, "Planning"))}}
	svc := NewService(api, Config{})

	resp, err := svc.Search(context.Background(), "   ", true)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.TotalMatches != 0 || len(resp.Items) != 0 {
		t.Errorf("blank query should match nothing, got %+v", resp)
	}
	if !resp.SearchedTranscripts {
		t.Error("SearchedTranscripts should reflect the request")
	}
	if api.listCalls != 0 || api.transcriptCalls != 0 {
		t.Errorf("blank query must not call upstream: %d list, %d transcript calls",
			api.listCalls, api.transcriptCalls)
	}
}

func TestSearch_MetadataMatch(t *testing.T) {
	api := &fakeAPI{pages: []*fathom.MeetingsPage{page("",
		meeting(1, "Q3 Planning"),
		meeting(2, "Weekly Standup"),
	)}}
	svc := NewService(api, Config{})

	resp, err := svc.Search(context.Background(), "planning", false)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.TotalMatches != 1 || resp.Items[0].RecordingID != 1 {
		t.Errorf("unexpected matches: %+v", resp.Items)
	}
	if resp.Items[0].FoundInTranscript {
		t.Error("metadata match must not be attributed to the transcript")
	}
	if resp.PagesFetched != 1 {
		t.Errorf("PagesFetched = %d, want 1", resp.PagesFetched)
	}
	if api.transcriptCalls != 0 {
		t.Error("metadata search must not fetch transcripts")
	}
}

func TestSearch_NormalizedTeamMatch(t *testing.T) {
	m := meeting(5, "Demo Day")
	m.Teams = []fathom.NameRef{fathom.NamedRef("acme-lab")}
	api := &fakeAPI{pages: []*fathom.MeetingsPage{page("", m)}}
	svc := NewService(api, Config{})

	// "Labs" folds to "lab" and "acme-lab" to "acmelab", so the
	// normalized query is a substring of the normalized team name.
	resp, err := svc.Search(context.Background(), "Labs", false)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.TotalMatches != 1 {
		t.Errorf("expected team name match, got %+v", resp.Items)
	}
}

func TestSearch_EmailMatchIsCaseFoldOnly(t *testing.T) {
	m := meeting(6, "Sync")
	m.CalendarInvitees = []fathom.Invitee{{Email: "Jane_Doe@Example.com"}}
	api := &fakeAPI{pages: []*fathom.MeetingsPage{page("", m)}}
	svc := NewService(api, Config{})

	// The query is separator-stripped but the email address is not, so
	// "janedoe" must not match "jane_doe@example.com".
	resp, err := svc.Search(context.Background(), "JaneDoe", false)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.TotalMatches != 0 {
		t.Errorf("underscore in the address is significant, got %+v", resp.Items)
	}

	resp, err = svc.Search(context.Background(), "jane_doe@example.com", false)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.TotalMatches != 1 {
		t.Errorf("case-folded address should match, got %+v", resp.Items)
	}
}

func TestSearch_SummaryMatch(t *testing.T) {
	m := meeting(7, "Sync")
	m.DefaultSummary = &fathom.Summary{MarkdownFormatted: "Discussed the migration rollout"}
	api := &fakeAPI{pages: []*fathom.MeetingsPage{page("", m)}}
	svc := NewService(api, Config{})

	resp, err := svc.Search(context.Background(), "migration", false)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.TotalMatches != 1 || resp.Items[0].Summary != "Discussed the migration rollout" {
		t.Errorf("unexpected result: %+v", resp.Items)
	}
}

func TestSearch_TranscriptProvenance(t *testing.T) {
	transcriptOnly := meeting(10, "Untitled")
	metadataAndTranscript := meeting(11, "Budget Review")

	api := &fakeAPI{
		pages: []*fathom.MeetingsPage{page("", transcriptOnly, metadataAndTranscript)},
		transcripts: map[int64]fathom.Transcript{
			10: {Entries: []fathom.TranscriptEntry{{Text: "let's revisit the budget"}}},
			11: {Entries: []fathom.TranscriptEntry{{Text: "budget looks fine"}}},
		},
	}
	svc := NewService(api, Config{})

	resp, err := svc.Search(context.Background(), "budget", true)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.TotalMatches != 2 {
		t.Fatalf("TotalMatches = %d, want 2", resp.TotalMatches)
	}

	byID := map[int64]Result{}
	for _, item := range resp.Items {
		byID[item.RecordingID] = item
	}
	if !byID[10].FoundInTranscript {
		t.Error("transcript-only match should be flagged")
	}
	// A metadata hit wins even when the transcript also contains the query.
	if byID[11].FoundInTranscript {
		t.Error("metadata match must not be flagged as a transcript match")
	}
}

func TestSearch_MetadataOnlySkipsTranscriptMatches(t *testing.T) {
	transcriptOnly := meeting(12, "Untitled")
	transcriptOnly.Transcript = &fathom.Transcript{
		Entries: []fathom.TranscriptEntry{{Text: "let's revisit the budget"}},
	}
	api := &fakeAPI{pages: []*fathom.MeetingsPage{page("", transcriptOnly)}}
	svc := NewService(api, Config{})

	// Without transcript search the record matches nowhere, so it is
	// excluded entirely even though its transcript contains the query.
	resp, err := svc.Search(context.Background(), "budget", false)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.TotalMatches != 0 || len(resp.Items) != 0 {
		t.Errorf("transcript text must be invisible to metadata search, got %+v", resp.Items)
	}
}

func TestSearch_MetadataMatchOmitsProvenanceKey(t *testing.T) {
	api := &fakeAPI{pages: []*fathom.MeetingsPage{page("", meeting(13, "Budget Review"))}}
	svc := NewService(api, Config{})

	resp, err := svc.Search(context.Background(), "budget", true)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if resp.TotalMatches != 1 {
		t.Fatalf("TotalMatches = %d, want 1", resp.TotalMatches)
	}

	encoded, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	// found_in_transcript appears only when true; a false value must
	// leave the key out of the serialized item entirely.
	if strings.Contains(string(encoded), "found_in_transcript") {
		t.Errorf("metadata match leaked the provenance key:\n%s", encoded)
	}
}

func TestSearch_HydrationFailureTolerated(t *testing.T) {
	broken := meeting(20, "Untitled")
	healthy := meeting(21, "Untitled")

	api := &fakeAPI{
		pages: []*fathom.MeetingsPage{page("", broken, healthy)},
		transcripts: map[int64]fathom.Transcript{
			21: {Entries: []fathom.TranscriptEntry{{Text: "roadmap discussion"}}},
		},
		transcriptErrs: map[int64]error{
			20: &fathom.APIError{StatusCode: 404, Message: "resource not found"},
		},
	}
	svc := NewService(api, Config{})

	resp, err := svc.Search(context.Background(), "roadmap", true)
	if err != nil {
		t.Fatalf("one unavailable transcript must not abort the search: %v", err)
	}
	if resp.TotalMatches != 1 || resp.Items[0].RecordingID != 21 {
		t.Errorf("unexpected matches: %+v", resp.Items)
	}
}

func TestSearch_ListErrorAborts(t *testing.T) {
	api := &fakeAPI{
		pages:         []*fathom.MeetingsPage{page("cursor-2", meeting(1, "Planning"))},
		listErrAtCall: 2,
		listErr:       &fathom.APIError{StatusCode: 500, Message: "boom"},
	}
	svc := NewService(api, Config{})

	resp, err := svc.Search(context.Background(), "planning", false)
	if err == nil {
		t.Fatal("expected page fetch error to propagate")
	}
	if resp != nil {
		t.Errorf("partial results must be discarded, got %+v", resp)
	}
}

func TestCollect_PageCap(t *testing.T) {
	// Every page hands back a cursor, so only the cap stops the walk.
	var pages []*fathom.MeetingsPage
	for i := 0; i < 15; i++ {
		pages = append(pages, page(fmt.Sprintf("cursor-%d", i+1), meeting(int64(i+1), "Sync")))
	}
	api := &fakeAPI{pages: pages}
	svc := NewService(api, Config{MaxPages: 10})

	meetings, pagesFetched, err := svc.collect(context.Background())
	if err != nil {
		t.Fatalf("collect() error = %v", err)
	}
	if api.listCalls != 10 {
		t.Errorf("listCalls = %d, want 10", api.listCalls)
	}
	if pagesFetched != 10 || len(meetings) != 10 {
		t.Errorf("pagesFetched = %d, meetings = %d", pagesFetched, len(meetings))
	}
}

func TestCollect_StopsOnEmptyCursor(t *testing.T) {
	api := &fakeAPI{pages: []*fathom.MeetingsPage{
		page("cursor-2", meeting(1, "A")),
		page("", meeting(2, "B")),
	}}
	svc := NewService(api, Config{})

	meetings, pagesFetched, err := svc.collect(context.Background())
	if err != nil {
		t.Fatalf("collect() error = %v", err)
	}
	if pagesFetched != 2 || len(meetings) != 2 {
		t.Errorf("pagesFetched = %d, meetings = %d", pagesFetched, len(meetings))
	}
	want := []string{"", "cursor-2"}
	for i, cursor := range want {
		if api.cursorsSeen[i] != cursor {
			t.Errorf("cursor on call %d = %q, want %q", i+1, api.cursorsSeen[i], cursor)
		}
	}
}

func TestCollect_StopsOnEmptyPage(t *testing.T) {
	api := &fakeAPI{pages: []*fathom.MeetingsPage{
		page("cursor-2", meeting(1, "A")),
		page("cursor-3"),
	}}
	svc := NewService(api, Config{})

	meetings, pagesFetched, err := svc.collect(context.Background())
	if err != nil {
		t.Fatalf("collect() error = %v", err)
	}
	// The empty page still counts as fetched but ends the walk even
	// though it carried a cursor.
	if pagesFetched != 2 || len(meetings) != 1 {
		t.Errorf("pagesFetched = %d, meetings = %d", pagesFetched, len(meetings))
	}
}

func TestCollect_DeduplicatesAcrossPages(t *testing.T) {
	first := meeting(1, "Original title")
	duplicate := meeting(1, "Shifted copy")
	api := &fakeAPI{pages: []*fathom.MeetingsPage{
		page("cursor-2", first, meeting(2, "B")),
		page("", duplicate, meeting(3, "C")),
	}}
	svc := NewService(api, Config{})

	meetings, _, err := svc.collect(context.Background())
	if err != nil {
		t.Fatalf("collect() error = %v", err)
	}
	if len(meetings) != 3 {
		t.Fatalf("len(meetings) = %d, want 3", len(meetings))
	}
	if meetings[0].Title != "Original title" {
		t.Errorf("dedup must keep the first occurrence, got %q", meetings[0].Title)
	}
}

func TestCollect_RequestsSummaries(t *testing.T) {
	api := &fakeAPI{pages: []*fathom.MeetingsPage{page("", meeting(1, "A"))}}
	svc := NewService(api, Config{PerPage: 50})

	if _, _, err := svc.collect(context.Background()); err != nil {
		t.Fatalf("collect() error = %v", err)
	}
	// Summaries ride along on the listing so metadata matching covers
	// them without per-recording calls.
	if api.lastParams.IncludeSummary == nil || !*api.lastParams.IncludeSummary {
		t.Error("listing must request summaries")
	}
	if api.lastParams.PerPage != 50 {
		t.Errorf("PerPage = %d, want 50", api.lastParams.PerPage)
	}
}

func TestHydrate_SkipsExistingAndUnidentified(t *testing.T) {
	withTranscript := meeting(30, "A")
	withTranscript.Transcript = &fathom.Transcript{Text: "already here"}
	unidentified := fathom.Meeting{Title: "no recording id"}
	needsFetch := meeting(31, "B")

	api := &fakeAPI{
		transcripts: map[int64]fathom.Transcript{31: {Text: "fetched"}},
	}
	svc := NewService(api, Config{})

	input := []fathom.Meeting{withTranscript, unidentified, needsFetch}
	hydrated := svc.hydrate(context.Background(), input)

	if api.transcriptCalls != 1 {
		t.Errorf("transcriptCalls = %d, want 1", api.transcriptCalls)
	}
	if hydrated[0].Transcript.Text != "already here" {
		t.Error("existing transcript must be kept")
	}
	if hydrated[1].Transcript != nil {
		t.Error("meetings without a recording ID must be skipped")
	}
	if hydrated[2].Transcript == nil || hydrated[2].Transcript.Text != "fetched" {
		t.Errorf("transcript not hydrated: %+v", hydrated[2].Transcript)
	}
	if input[2].Transcript != nil {
		t.Error("hydrate must not mutate its input")
	}
}

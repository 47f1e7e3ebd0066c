package fathom

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Meeting represents a recorded meeting as returned by the listing endpoint.
// Timestamps are kept as the ISO 8601 strings the API returns; this package
// passes them through rather than interpreting them.
type Meeting struct {
	// Title is the meeting title as shown in Fathom
	Title string `json:"title,omitempty"`

	// MeetingTitle is the original calendar event title
	MeetingTitle string `json:"meeting_title,omitempty"`

	// RecordingID uniquely identifies the recording of this meeting
	RecordingID int64 `json:"recording_id,omitempty"`

	// URL is the Fathom URL of the recording
	URL string `json:"url,omitempty"`

	// ShareURL is the public share link of the recording
	ShareURL string `json:"share_url,omitempty"`

	CreatedAt          string `json:"created_at,omitempty"`
	ScheduledStartTime string `json:"scheduled_start_time,omitempty"`
	ScheduledEndTime   string `json:"scheduled_end_time,omitempty"`
	RecordingStartTime string `json:"recording_start_time,omitempty"`
	RecordingEndTime   string `json:"recording_end_time,omitempty"`

	// TranscriptLanguage is the BCP 47 code of the transcript language
	TranscriptLanguage string `json:"transcript_language,omitempty"`

	// CalendarInvitees lists the attendees from the calendar event
	CalendarInvitees []Invitee `json:"calendar_invitees,omitempty"`

	// CalendarInviteesDomainsType classifies the invitee domains
	// (all, only_internal, one_or_more_external)
	CalendarInviteesDomainsType string `json:"calendar_invitees_domains_type,omitempty"`

	// RecordedBy identifies the team member who recorded the meeting
	RecordedBy *Invitee `json:"recorded_by,omitempty"`

	// Teams and Topics reference organizational entities. The API returns
	// them either as bare name strings or as objects with a name field.
	Teams  []NameRef `json:"teams,omitempty"`
	Topics []NameRef `json:"topics,omitempty"`

	// DefaultSummary is present when summaries were requested
	DefaultSummary *Summary `json:"default_summary,omitempty"`

	// Transcript is present when transcripts were requested inline
	Transcript *Transcript `json:"transcript,omitempty"`

	// ActionItems and CRMMatches are passed through untouched
	ActionItems json.RawMessage `json:"action_items,omitempty"`
	CRMMatches  json.RawMessage `json:"crm_matches,omitempty"`
}

// Invitee is one calendar attendee. The same shape is used for the
// recorded_by field.
type Invitee struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	EmailDomain string `json:"email_domain,omitempty"`
	IsExternal  bool   `json:"is_external,omitempty"`
}

// NameRef is a reference to a named entity (team or topic). The upstream
// API is inconsistent: depending on the endpoint revision the value is
// either a bare string or an object carrying a name field. NameRef keeps
// track of which variant was decoded so it re-encodes the same way.
type NameRef struct {
	Name string

	// bare records whether the value was decoded from a bare string
	bare bool
}

// StringRef returns a NameRef that encodes as a bare string.
func StringRef(name string) NameRef {
	return NameRef{Name: name, bare: true}
}

// NamedRef returns a NameRef that encodes as an object with a name field.
func NamedRef(name string) NameRef {
	return NameRef{Name: name}
}

// UnmarshalJSON accepts either "Sales" or {"name": "Sales"}.
func (r *NameRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		r.bare = true
		return json.Unmarshal(data, &r.Name)
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("name reference must be a string or an object: %w", err)
	}
	r.Name = obj.Name
	r.bare = false
	return nil
}

// MarshalJSON re-encodes the variant that was decoded.
func (r NameRef) MarshalJSON() ([]byte, error) {
	if r.bare {
		return json.Marshal(r.Name)
	}
	return json.Marshal(struct {
		Name string `json:"name"`
	}{Name: r.Name})
}

// Summary is an AI-generated meeting summary. Older API revisions return
// the summary as a plain markdown string, newer ones as an object with a
// markdown_formatted field.
type Summary struct {
	MarkdownFormatted string `json:"markdown_formatted,omitempty"`
	TemplateName      string `json:"template_name,omitempty"`
}

// UnmarshalJSON accepts either a plain string or an object.
func (s *Summary) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.MarkdownFormatted)
	}
	type plain Summary
	return json.Unmarshal(data, (*plain)(s))
}

// Markdown returns the summary text regardless of which shape was decoded.
func (s *Summary) Markdown() string {
	if s == nil {
		return ""
	}
	return s.MarkdownFormatted
}

// TranscriptEntry is one timestamped utterance in a transcript.
type TranscriptEntry struct {
	Speaker   *Speaker `json:"speaker,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
	Text      string   `json:"text,omitempty"`
}

// Speaker identifies who spoke a transcript entry.
type Speaker struct {
	DisplayName            string `json:"display_name,omitempty"`
	MatchedCalendarInvitee string `json:"matched_calendar_invitee_email,omitempty"`
}

// Transcript holds the transcript of a recording. The API returns either
// a list of timestamped entries or, for some older recordings, a single
// plain-text string.
type Transcript struct {
	Entries []TranscriptEntry
	Text    string
}

// UnmarshalJSON accepts either an entry array or a plain string.
func (t *Transcript) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		t.Entries = nil
		return json.Unmarshal(data, &t.Text)
	}
	t.Text = ""
	return json.Unmarshal(data, &t.Entries)
}

// MarshalJSON re-encodes the variant that was decoded.
func (t Transcript) MarshalJSON() ([]byte, error) {
	if t.Entries == nil && t.Text != "" {
		return json.Marshal(t.Text)
	}
	return json.Marshal(t.Entries)
}

// Team is one team in the organization.
type Team struct {
	Name      string `json:"name,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// TeamMember is one member of a team.
type TeamMember struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Team      string `json:"team,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// MeetingsPage is one page of the meetings listing. An empty Cursor means
// there are no further pages.
type MeetingsPage struct {
	Items  []Meeting `json:"items"`
	Limit  int       `json:"limit,omitempty"`
	Cursor string    `json:"cursor,omitempty"`
}

// TeamsPage is one page of the teams listing.
type TeamsPage struct {
	Items  []Team `json:"items"`
	Limit  int    `json:"limit,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

// TeamMembersPage is one page of the team members listing.
type TeamMembersPage struct {
	Items  []TeamMember `json:"items"`
	Limit  int          `json:"limit,omitempty"`
	Cursor string       `json:"cursor,omitempty"`
}

// SummaryResponse is the response of the recording summary endpoint.
type SummaryResponse struct {
	Summary Summary `json:"summary"`
}

// TranscriptResponse is the response of the recording transcript endpoint.
type TranscriptResponse struct {
	Transcript Transcript `json:"transcript"`
}

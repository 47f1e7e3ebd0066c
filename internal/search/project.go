package search

import "github.com/teemow/fathom-mcp/internal/fathom"

// project maps a matched meeting to the public result shape. The summary
// object is flattened to its markdown text; invitees, recorder, teams,
// and topics pass through unchanged. FoundInTranscript is set only from
// a transcript-provenance match, and its omitempty tag keeps the key out
// of the output entirely when false.
func project(m *fathom.Meeting, foundInTranscript bool) Result {
	return Result{
		Title:              m.Title,
		RecordingID:        m.RecordingID,
		URL:                m.URL,
		ShareURL:           m.ShareURL,
		CreatedAt:          m.CreatedAt,
		ScheduledStartTime: m.ScheduledStartTime,
		ScheduledEndTime:   m.ScheduledEndTime,
		RecordingStartTime: m.RecordingStartTime,
		RecordingEndTime:   m.RecordingEndTime,
		TranscriptLanguage: m.TranscriptLanguage,
		CalendarInvitees:   m.CalendarInvitees,
		RecordedBy:         m.RecordedBy,
		Teams:              m.Teams,
		Topics:             m.Topics,
		Summary:            m.DefaultSummary.Markdown(),
		FoundInTranscript:  foundInTranscript,
	}
}

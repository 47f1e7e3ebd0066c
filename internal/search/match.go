package search

import (
	"strings"

	"github.com/teemow/fathom-mcp/internal/fathom"
)

// matchesMetadata reports whether the meeting's structured fields contain
// the normalized query. Fields are checked in a fixed order and the scan
// short-circuits on the first hit. Missing fields contribute no match.
func matchesMetadata(m *fathom.Meeting, normalizedQuery string) bool {
	if strings.Contains(Normalize(m.Title), normalizedQuery) {
		return true
	}
	if strings.Contains(Normalize(m.MeetingTitle), normalizedQuery) {
		return true
	}

	for _, invitee := range m.CalendarInvitees {
		if strings.Contains(Normalize(invitee.Name), normalizedQuery) {
			return true
		}
		// Emails are only case-folded: hyphens and underscores are
		// significant in addresses and must not be stripped.
		if strings.Contains(strings.ToLower(invitee.Email), normalizedQuery) {
			return true
		}
	}

	for _, team := range m.Teams {
		if strings.Contains(Normalize(team.Name), normalizedQuery) {
			return true
		}
	}

	for _, topic := range m.Topics {
		if strings.Contains(Normalize(topic.Name), normalizedQuery) {
			return true
		}
	}

	if strings.Contains(Normalize(m.DefaultSummary.Markdown()), normalizedQuery) {
		return true
	}

	return false
}

// matches extends matchesMetadata with transcript text. A metadata hit
// always wins for provenance purposes: foundInTranscript is true only
// when the meeting matched in its transcript and nowhere else.
func matches(m *fathom.Meeting, normalizedQuery string) (ok, foundInTranscript bool) {
	if matchesMetadata(m, normalizedQuery) {
		return true, false
	}
	if m.Transcript == nil {
		return false, false
	}

	for _, entry := range m.Transcript.Entries {
		if strings.Contains(Normalize(entry.Text), normalizedQuery) {
			return true, true
		}
	}
	if m.Transcript.Text != "" && strings.Contains(Normalize(m.Transcript.Text), normalizedQuery) {
		return true, true
	}

	return false, false
}

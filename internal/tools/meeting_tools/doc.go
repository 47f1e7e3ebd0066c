// Package meeting_tools provides MCP tools for listing and searching
// Fathom meetings.
//
// Available tools:
//
//   - fathom_list_meetings - List meetings with optional filters (attendees,
//     attendee domains, recorder, teams, creation time window) and pagination
//   - fathom_search_meetings - Keyword search across meeting titles, attendee
//     names and emails, team names, topics, and summaries, optionally
//     extended into transcript text
//
// Search walks the meetings listing page by page (capped at ten pages),
// matches case-insensitively on normalized text, and when transcript search
// is requested fetches missing transcripts concurrently. Matches found only
// in transcript text are flagged with found_in_transcript in the result.
//
// Example usage:
//
//	# List meetings recorded by a teammate this quarter
//	fathom_list_meetings(
//	    recorded_by="jane@example.com",
//	    created_after="2026-07-01T00:00:00Z"
//	)
//
//	# Find every meeting that mentioned the Acme renewal
//	fathom_search_meetings(
//	    query="acme renewal",
//	    include_transcript=true
//	)
package meeting_tools

// Package search implements client-side fuzzy search over Fathom meetings.
//
// The upstream API has no search endpoint, so the service paginates the
// meetings listing (summaries included), accumulates the candidate set,
// and filters it locally. Matching is case-insensitive substring
// containment over normalized text: spaces, hyphens, and underscores are
// stripped and a trailing plural "s" is folded, so "Labs" finds a team
// named "Acme Labs".
//
// Matching covers meeting titles, invitee names and emails, team and
// topic names, and summary markdown. When transcript search is requested,
// meetings whose metadata did not match are additionally searched in
// their transcript text; transcripts missing from the listing are fetched
// per recording first ("hydration"). A single recording's transcript
// being unavailable never fails the search; that meeting is simply
// searched on metadata only.
//
// Results preserve the upstream listing order. Upstream API errors abort
// the search and propagate to the caller unchanged; there are no retries.
package search

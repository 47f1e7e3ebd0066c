package fathom

import (
	"net/url"
	"strconv"
)

// Bool returns a pointer to b, for the optional boolean parameters below.
func Bool(b bool) *bool { return &b }

// ListMeetingsParams are the optional filters for ListMeetings. Zero-value
// fields are omitted from the request.
type ListMeetingsParams struct {
	// CalendarInvitees filters by attendee email addresses
	CalendarInvitees []string

	// CalendarInviteesDomains filters by attendee email domains
	CalendarInviteesDomains []string

	// CalendarInviteesDomainsType narrows the domain filter
	// (all, only_internal, one_or_more_external)
	CalendarInviteesDomainsType string

	// CreatedAfter and CreatedBefore are ISO 8601 timestamps
	CreatedAfter  string
	CreatedBefore string

	// Cursor is the pagination token from a previous page
	Cursor string

	// Include flags control which content is embedded in each item.
	// nil means "let the API decide".
	IncludeActionItems *bool
	IncludeCRMMatches  *bool
	IncludeSummary     *bool
	IncludeTranscript  *bool

	// RecordedBy filters by recorder email addresses
	RecordedBy []string

	// Teams filters by team names
	Teams []string

	// PerPage sets the page size (the API calls this "limit")
	PerPage int
}

// Values marshals the parameters into URL query values, skipping any
// that were not provided.
func (p *ListMeetingsParams) Values() url.Values {
	v := url.Values{}
	if p == nil {
		return v
	}
	for _, invitee := range p.CalendarInvitees {
		v.Add("calendar_invitees[]", invitee)
	}
	for _, domain := range p.CalendarInviteesDomains {
		v.Add("calendar_invitees_domains[]", domain)
	}
	if p.CalendarInviteesDomainsType != "" {
		v.Set("calendar_invitees_domains_type", p.CalendarInviteesDomainsType)
	}
	if p.CreatedAfter != "" {
		v.Set("created_after", p.CreatedAfter)
	}
	if p.CreatedBefore != "" {
		v.Set("created_before", p.CreatedBefore)
	}
	if p.Cursor != "" {
		v.Set("cursor", p.Cursor)
	}
	if p.IncludeActionItems != nil {
		v.Set("include_action_items", strconv.FormatBool(*p.IncludeActionItems))
	}
	if p.IncludeCRMMatches != nil {
		v.Set("include_crm_matches", strconv.FormatBool(*p.IncludeCRMMatches))
	}
	if p.IncludeSummary != nil {
		v.Set("include_summary", strconv.FormatBool(*p.IncludeSummary))
	}
	if p.IncludeTranscript != nil {
		v.Set("include_transcript", strconv.FormatBool(*p.IncludeTranscript))
	}
	for _, recorder := range p.RecordedBy {
		v.Add("recorded_by[]", recorder)
	}
	for _, team := range p.Teams {
		v.Add("teams[]", team)
	}
	if p.PerPage > 0 {
		v.Set("limit", strconv.Itoa(p.PerPage))
	}
	return v
}

// ListTeamsParams are the optional parameters for ListTeams.
type ListTeamsParams struct {
	Cursor  string
	PerPage int
}

// Values marshals the parameters into URL query values.
func (p *ListTeamsParams) Values() url.Values {
	v := url.Values{}
	if p == nil {
		return v
	}
	if p.Cursor != "" {
		v.Set("cursor", p.Cursor)
	}
	if p.PerPage > 0 {
		v.Set("limit", strconv.Itoa(p.PerPage))
	}
	return v
}

// ListTeamMembersParams are the optional parameters for ListTeamMembers.
type ListTeamMembersParams struct {
	Cursor  string
	Team    string
	PerPage int
}

// Values marshals the parameters into URL query values.
func (p *ListTeamMembersParams) Values() url.Values {
	v := url.Values{}
	if p == nil {
		return v
	}
	if p.Cursor != "" {
		v.Set("cursor", p.Cursor)
	}
	if p.Team != "" {
		v.Set("team", p.Team)
	}
	if p.PerPage > 0 {
		v.Set("limit", strconv.Itoa(p.PerPage))
	}
	return v
}

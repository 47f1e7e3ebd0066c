package instrumentation

import "testing"

func TestExtractUserDomain(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"jane@example.com", "example.com"},
		{"user@gmail.com", "gmail.com"},
		{"admin@company.org", "company.org"},
		{"test@subdomain.example.com", "subdomain.example.com"},
		{"invalid", "unknown"},
		{"", "unknown"},
		{"@", "unknown"},
		{"user@", "unknown"},
		{"@domain.com", "domain.com"},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			result := ExtractUserDomain(tt.email)
			if result != tt.expected {
				t.Errorf("ExtractUserDomain(%q) = %q, want %q", tt.email, result, tt.expected)
			}
		})
	}
}

func TestHashQuery(t *testing.T) {
	if HashQuery("") != "" {
		t.Error("HashQuery of empty string should be empty")
	}

	h1 := HashQuery("quarterly planning")
	h2 := HashQuery("quarterly planning")
	if h1 != h2 {
		t.Errorf("HashQuery is not stable: %q vs %q", h1, h2)
	}

	if len(h1) != 16 {
		t.Errorf("HashQuery length = %d, want 16", len(h1))
	}

	if HashQuery("quarterly planning") == HashQuery("weekly sync") {
		t.Error("different queries should produce different hashes")
	}
}

func TestOperationConstants(t *testing.T) {
	operations := map[string]string{
		OperationListMeetings:    "list_meetings",
		OperationGetMeeting:      "get_meeting",
		OperationGetSummary:      "get_summary",
		OperationGetTranscript:   "get_transcript",
		OperationListTeams:       "list_teams",
		OperationListTeamMembers: "list_team_members",
		OperationSearch:          "search",
	}

	for constant, expected := range operations {
		if constant != expected {
			t.Errorf("Operation constant = %q, want %q", constant, expected)
		}
	}
}

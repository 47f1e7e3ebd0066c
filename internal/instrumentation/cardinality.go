package instrumentation

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Cardinality management helpers for metrics and logs.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when recording metrics with user-supplied values.

// ExtractUserDomain extracts the domain part from an email address.
// This reduces cardinality by using the domain instead of the full email.
//
// Example:
//
//	ExtractUserDomain("jane@example.com")  // "example.com"
//	ExtractUserDomain("user@gmail.com")    // "gmail.com"
//	ExtractUserDomain("invalid")           // "unknown"
//	ExtractUserDomain("")                  // "unknown"
func ExtractUserDomain(email string) string {
	if email == "" {
		return "unknown"
	}

	parts := strings.Split(email, "@")
	if len(parts) == 2 && parts[1] != "" {
		return parts[1]
	}

	return "unknown"
}

// HashQuery returns a short stable hash of a search query. Queries may quote
// meeting content, so only the hash is suitable for metrics and general logs.
//
// Example:
//
//	HashQuery("quarterly planning")  // "3f8a0c12e5b79d44"
//	HashQuery("")                    // ""
func HashQuery(query string) string {
	if query == "" {
		return ""
	}

	sum := sha256.Sum256([]byte(query))
	return hex.EncodeToString(sum[:8])
}

// Common operation types for Fathom API metrics.
// Status and Service constants are defined in config.go.
const (
	OperationListMeetings    = "list_meetings"
	OperationGetMeeting      = "get_meeting"
	OperationGetSummary      = "get_summary"
	OperationGetTranscript   = "get_transcript"
	OperationListTeams       = "list_teams"
	OperationListTeamMembers = "list_team_members"
	OperationSearch          = "search"
)

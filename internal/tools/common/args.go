package common

import (
	"strconv"
	"strings"
)

// QueryFromArgs extracts the search query from request arguments.
// Returns the empty string when no query argument is present.
func QueryFromArgs(args map[string]interface{}) string {
	if query, ok := args["query"].(string); ok {
		return query
	}
	return ""
}

// RecordingIDFromArgs extracts a recording ID from request arguments.
// JSON numbers arrive as float64 and MCP clients frequently send IDs as
// strings, so both shapes are accepted.
func RecordingIDFromArgs(args map[string]interface{}) (int64, bool) {
	return ParseRecordingID(args["recording_id"])
}

// StringListFromArg extracts a list of strings from an argument value.
// Clients send either a JSON array of strings or a single comma-separated
// string. Blank entries are dropped.
func StringListFromArg(value interface{}) []string {
	var raw []string
	switch v := value.(type) {
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	case string:
		raw = strings.Split(v, ",")
	default:
		return nil
	}

	var out []string
	for _, s := range raw {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// IntFromArg extracts an integer from an argument value, accepting JSON
// numbers and numeric strings.
func IntFromArg(value interface{}) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// ParseRecordingID converts a single recording ID value of any supported
// JSON shape (number or numeric string) to int64.
func ParseRecordingID(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

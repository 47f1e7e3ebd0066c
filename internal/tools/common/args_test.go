package common

import "testing"

func TestQueryFromArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		expected string
	}{
		{"present", map[string]interface{}{"query": "acme"}, "acme"},
		{"missing", map[string]interface{}{}, ""},
		{"wrong type", map[string]interface{}{"query": 42}, ""},
		{"empty", map[string]interface{}{"query": ""}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QueryFromArgs(tt.args); got != tt.expected {
				t.Errorf("QueryFromArgs() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseRecordingID(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected int64
		ok       bool
	}{
		{"float64", float64(12345), 12345, true},
		{"int", 42, 42, true},
		{"int64", int64(7), 7, true},
		{"numeric string", "98765", 98765, true},
		{"non-numeric string", "abc", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRecordingID(tt.value)
			if ok != tt.ok {
				t.Fatalf("ParseRecordingID(%v) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("ParseRecordingID(%v) = %d, want %d", tt.value, got, tt.expected)
			}
		})
	}
}

func TestRecordingIDFromArgs(t *testing.T) {
	id, ok := RecordingIDFromArgs(map[string]interface{}{"recording_id": float64(555)})
	if !ok || id != 555 {
		t.Errorf("RecordingIDFromArgs() = %d, %v; want 555, true", id, ok)
	}

	_, ok = RecordingIDFromArgs(map[string]interface{}{})
	if ok {
		t.Error("RecordingIDFromArgs() should report false when argument missing")
	}
}

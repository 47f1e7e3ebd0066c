package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the serialization format for tool responses.
type Format string

const (
	// FormatJSON renders indented JSON. This is the default.
	FormatJSON Format = "json"

	// FormatYAML renders YAML, which costs fewer tokens for the
	// list-heavy responses this server produces.
	FormatYAML Format = "yaml"
)

// ParseFormat maps a configuration string to a Format, defaulting to
// JSON for anything unrecognized.
func ParseFormat(s string) Format {
	if Format(strings.ToLower(strings.TrimSpace(s))) == FormatYAML {
		return FormatYAML
	}
	return FormatJSON
}

// Encoder serializes tool response values after sanitization.
type Encoder struct {
	format Format
}

// NewEncoder creates an encoder for the given format.
func NewEncoder(format Format) *Encoder {
	if format != FormatYAML {
		format = FormatJSON
	}
	return &Encoder{format: format}
}

// Format returns the encoder's configured format.
func (e *Encoder) Format() Format {
	return e.format
}

// Encode sanitizes and serializes v. Strings pass through untouched so
// handlers can return preformatted text. Any other value is round-tripped
// through JSON to a generic tree first, which lets Sanitize work on one
// representation regardless of the source struct type.
func (e *Encoder) Encode(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal response: %w", err)
	}
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return "", fmt.Errorf("decode response tree: %w", err)
	}

	cleaned := Sanitize(tree)

	switch e.format {
	case FormatYAML:
		out, err := yaml.Marshal(cleaned)
		if err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		return strings.TrimRight(string(out), "\n"), nil
	default:
		out, err := json.MarshalIndent(cleaned, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(out), nil
	}
}

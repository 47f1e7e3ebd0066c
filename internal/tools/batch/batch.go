package batch

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Result represents the result of a single operation in a batch
type Result struct {
	RecordingID int64  `json:"recording_id"`
	Status      string `json:"status"` // "success" or "error"
	Result      string `json:"result,omitempty"`
	Error       string `json:"error,omitempty"`
}

// BatchResult represents the aggregated results of a batch operation
type BatchResult struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Results    []Result `json:"results"`
}

// ParseRecordingIDs parses a parameter that can be a single recording ID or
// an array of recording IDs. IDs may be JSON numbers or numeric strings.
func ParseRecordingIDs(param interface{}, paramName string) ([]int64, error) {
	if param == nil {
		return nil, fmt.Errorf("%s is required", paramName)
	}

	switch v := param.(type) {
	case []interface{}:
		if len(v) == 0 {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		result := make([]int64, 0, len(v))
		for i, item := range v {
			id, err := parseOne(item)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", paramName, i, err)
			}
			result = append(result, id)
		}
		return result, nil
	default:
		id, err := parseOne(param)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", paramName, err)
		}
		return []int64{id}, nil
	}
}

func parseOne(value interface{}) (int64, error) {
	switch v := value.(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		if v == "" {
			return 0, fmt.Errorf("recording ID cannot be empty")
		}
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("recording ID %q is not a number", v)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("recording ID must be a number or numeric string")
	}
}

// FormatResults creates a formatted JSON string from batch results
func FormatResults(results []Result) string {
	br := BatchResult{
		Total:   len(results),
		Results: results,
	}

	for _, r := range results {
		if r.Status == "success" {
			br.Successful++
		} else {
			br.Failed++
		}
	}

	jsonBytes, _ := json.MarshalIndent(br, "", "  ")
	return string(jsonBytes)
}

// ProcessBatch executes a function on each recording and collects results.
// A failed recording does not stop processing of the remaining IDs.
func ProcessBatch(ids []int64, fn func(id int64) (string, error)) []Result {
	results := make([]Result, 0, len(ids))

	for _, id := range ids {
		res, err := fn(id)
		if err != nil {
			results = append(results, NewErrorResult(id, err))
		} else {
			results = append(results, NewSuccessResult(id, res))
		}
	}

	return results
}

// NewSuccessResult creates a success result
func NewSuccessResult(id int64, message string) Result {
	return Result{
		RecordingID: id,
		Status:      "success",
		Result:      message,
	}
}

// NewErrorResult creates an error result
func NewErrorResult(id int64, err error) Result {
	return Result{
		RecordingID: id,
		Status:      "error",
		Error:       err.Error(),
	}
}

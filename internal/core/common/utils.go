package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON unmarshals a generative backend's reply into T. Backends wrap
// JSON in markdown fences or surround it with prose no matter how firmly the
// prompt forbids it, so everything outside the outermost object is stripped
// before decoding.
func ParseJSON[T any](response string) (T, error) {
	var result T

	start := strings.Index(response, "{")
	if start < 0 {
		return result, fmt.Errorf("no JSON object found in response (missing '{')")
	}
	end := strings.LastIndex(response, "}")
	if end < start {
		end = len(response) - 1
	}
	payload := response[start : end+1]

	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, payload)
	}
	return result, nil
}

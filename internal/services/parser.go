package services

import (
	"encoding/json"
	"strings"
)

// ParseStatus makes the malformed-but-recovered path visible in the result
// type instead of hiding it behind an error.
type ParseStatus int

const (
	// StatusOk means the response matched the declared output contract.
	StatusOk ParseStatus = iota
	// StatusDegraded means the response was usable but did not match the
	// contract: missing delimiters, or invalid JSON wrapped as raw text.
	// Downstream still gets data, just unvalidated.
	StatusDegraded
)

type TextResult struct {
	Text   string
	Status ParseStatus
}

type JSONResult struct {
	// Object is the decoded JSON, or {"raw_response": <text>} when decoding
	// failed. Fields may be absent; callers access defensively.
	Object map[string]interface{}
	// Raw holds the matched object bytes exactly as received, preserving key
	// order and nesting. Nil when degraded.
	Raw    json.RawMessage
	Status ParseStatus
}

// ExtractDelimited returns the trimmed substring between the start and end
// markers. When either marker is absent the raw text comes back unmodified
// with a degraded status; that is a warning, not a failure.
func ExtractDelimited(raw, startMarker, endMarker string) TextResult {
	start := strings.Index(raw, startMarker)
	if start < 0 {
		return TextResult{Text: raw, Status: StatusDegraded}
	}

	rest := raw[start+len(startMarker):]
	end := strings.Index(rest, endMarker)
	if end < 0 {
		return TextResult{Text: raw, Status: StatusDegraded}
	}

	return TextResult{Text: strings.TrimSpace(rest[:end]), Status: StatusOk}
}

// ExtractJSON locates a JSON object in the completion text via a greedy
// brace-matched substring and decodes it. A malformed response never fails
// the pipeline: the result degrades to a raw-text wrapper so the data is not
// lost.
func ExtractJSON(raw string) JSONResult {
	candidate := jsonCandidate(raw)

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return JSONResult{
			Object: map[string]interface{}{"raw_response": raw},
			Status: StatusDegraded,
		}
	}

	return JSONResult{
		Object: obj,
		Raw:    json.RawMessage(candidate),
		Status: StatusOk,
	}
}

// jsonCandidate strips markdown fences and cuts the text down to the
// outermost object boundaries.
func jsonCandidate(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}

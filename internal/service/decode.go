package service

import (
	"encoding/json"
	"strings"
)

// snippetLimit bounds the raw-output snippet kept when decoding fails.
const snippetLimit = 300

// DecodeResult is the outcome of decoding model output into a JSON object.
// Exactly one branch is meaningful: when Parsed is true, JSON holds the first
// well-formed object found in the text; otherwise Snippet holds the head of
// the raw output for diagnosis. The two cases are kept distinct so callers
// can tell "nothing extracted" apart from a validly empty object.
type DecodeResult struct {
	Parsed  bool
	JSON    string
	Snippet string
}

// DecodeFirstJSON extracts the first JSON object embedded in model output.
// Markdown code fences are stripped first; any prose before the opening
// brace or after the matching close brace is ignored.
func DecodeFirstJSON(text string) DecodeResult {
	cleaned := StripFences(text)

	start := strings.IndexByte(cleaned, '{')
	if start >= 0 {
		if obj, ok := firstObject(cleaned[start:]); ok {
			return DecodeResult{Parsed: true, JSON: obj}
		}
	}

	return DecodeResult{Snippet: snippet(text)}
}

// StripFences removes markdown code fences around model output.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// firstObject decodes the first complete JSON value from s, which must start
// at an opening brace. Trailing text after the object is tolerated.
func firstObject(s string) (string, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	var obj map[string]interface{}
	if err := dec.Decode(&obj); err != nil {
		return "", false
	}
	return s[:dec.InputOffset()], true
}

func snippet(text string) string {
	s := strings.TrimSpace(text)
	if len(s) > snippetLimit {
		return s[:snippetLimit]
	}
	return s
}

package service

import (
	"strings"
	"testing"
)

func TestDecodeFirstJSON(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantParsed bool
		wantJSON   string
	}{
		{
			name:       "plain object",
			input:      `{"total_score": 80}`,
			wantParsed: true,
			wantJSON:   `{"total_score": 80}`,
		},
		{
			name:       "json fence",
			input:      "```json\n{\"total_score\": 80}\n```",
			wantParsed: true,
			wantJSON:   `{"total_score": 80}`,
		},
		{
			name:       "bare fence",
			input:      "```\n{\"a\": 1}\n```",
			wantParsed: true,
			wantJSON:   `{"a": 1}`,
		},
		{
			name:       "prose around the object",
			input:      "Here is the evaluation: {\"a\": 1} hope this helps",
			wantParsed: true,
			wantJSON:   `{"a": 1}`,
		},
		{
			name:       "empty sentinel is validly empty",
			input:      "{}",
			wantParsed: true,
			wantJSON:   "{}",
		},
		{
			name:       "nested objects stop at the matching brace",
			input:      `{"outer": {"inner": 1}} {"second": 2}`,
			wantParsed: true,
			wantJSON:   `{"outer": {"inner": 1}}`,
		},
		{
			name:       "no json at all",
			input:      "I could not produce a structured answer.",
			wantParsed: false,
		},
		{
			name:       "truncated object",
			input:      `{"total_score": 80`,
			wantParsed: false,
		},
		{
			name:       "empty input",
			input:      "",
			wantParsed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DecodeFirstJSON(tt.input)

			if result.Parsed != tt.wantParsed {
				t.Fatalf("expected parsed=%v, got %v (snippet %q)", tt.wantParsed, result.Parsed, result.Snippet)
			}
			if tt.wantParsed && result.JSON != tt.wantJSON {
				t.Errorf("expected JSON %q, got %q", tt.wantJSON, result.JSON)
			}
			if !tt.wantParsed && tt.input != "" && result.Snippet == "" {
				t.Error("expected a non-empty snippet for undecodable input")
			}
		})
	}
}

func TestDecodeFirstJSON_SnippetTruncation(t *testing.T) {
	long := strings.Repeat("x", 1000)
	result := DecodeFirstJSON(long)

	if result.Parsed {
		t.Fatal("expected fallback for non-JSON input")
	}
	if len(result.Snippet) != snippetLimit {
		t.Errorf("expected snippet of %d chars, got %d", snippetLimit, len(result.Snippet))
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{input: "```\n{}\n```", want: "{}"},
		{input: "  {\"a\":1}  ", want: `{"a":1}`},
		{input: "{}", want: "{}"},
	}

	for _, tt := range tests {
		if got := StripFences(tt.input); got != tt.want {
			t.Errorf("StripFences(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

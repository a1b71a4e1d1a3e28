package agents

import (
	"context"
	"testing"

	"github.com/merrysway/baristabot/internal/core"
)

func TestParseJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		required []string
		wantErr  bool
		wantKey  string
		wantVal  string
	}{
		{
			name:    "plain object",
			input:   `{"decision": "allowed", "message": ""}`,
			wantKey: "decision",
			wantVal: "allowed",
		},
		{
			name:    "fenced object",
			input:   "```json\n{\"decision\": \"allowed\"}\n```",
			wantKey: "decision",
			wantVal: "allowed",
		},
		{
			name:    "surrounding prose",
			input:   "Here is the JSON you asked for:\n{\"decision\": \"not_allowed\"}\nHope that helps!",
			wantKey: "decision",
			wantVal: "not_allowed",
		},
		{
			name:    "single quotes repaired locally",
			input:   `{'decision': 'allowed', 'message': ''}`,
			wantKey: "decision",
			wantVal: "allowed",
		},
		{
			name:    "trailing comma repaired locally",
			input:   `{"decision": "allowed",}`,
			wantKey: "decision",
			wantVal: "allowed",
		},
		{
			name:     "missing required key",
			input:    `{"message": "hi"}`,
			required: []string{"decision"},
			wantErr:  true,
		},
		{
			name:    "empty output",
			input:   "",
			wantErr: true,
		},
		{
			name:    "no object at all",
			input:   "sure, I'd say allowed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := parseJSONObject(tt.input, tt.required...)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseJSONObject(%q) expected error, got %v", tt.input, fields)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseJSONObject(%q) error: %v", tt.input, err)
			}
			if got := fieldString(fields[tt.wantKey]); got != tt.wantVal {
				t.Errorf("field %q = %q, want %q", tt.wantKey, got, tt.wantVal)
			}
		})
	}
}

func TestCompleteJSONFirstAttempt(t *testing.T) {
	llm := &scriptedLLM{replies: []string{`{"decision": "allowed"}`}}

	fields, err := completeJSON(context.Background(), llm, []core.Message{{Role: core.RoleUser, Content: "hi"}}, "decision")
	if err != nil {
		t.Fatalf("completeJSON error: %v", err)
	}
	if got := fieldString(fields["decision"]); got != "allowed" {
		t.Errorf("decision = %q, want allowed", got)
	}
	if len(llm.calls) != 1 {
		t.Errorf("completion calls = %d, want 1", len(llm.calls))
	}
}

func TestCompleteJSONCorrectionRound(t *testing.T) {
	// First reply misses a required key; the correction round fixes
	// it. The loop must return the corrected value after exactly two
	// round trips.
	llm := &scriptedLLM{replies: []string{
		`{"message": "hi"}`,
		`{"decision": "allowed", "message": "hi"}`,
	}}

	fields, err := completeJSON(context.Background(), llm, []core.Message{{Role: core.RoleUser, Content: "hi"}}, "decision")
	if err != nil {
		t.Fatalf("completeJSON error: %v", err)
	}
	if got := fieldString(fields["decision"]); got != "allowed" {
		t.Errorf("decision = %q, want allowed", got)
	}
	if len(llm.calls) != 2 {
		t.Fatalf("completion calls = %d, want 2", len(llm.calls))
	}

	// The correction request must carry the broken output back.
	correction := llm.calls[1]
	if correction[len(correction)-1].Content != `{"message": "hi"}` {
		t.Errorf("correction round did not echo the invalid output: %q", correction[len(correction)-1].Content)
	}
}

func TestCompleteJSONBothAttemptsInvalid(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"not json", "still not json"}}

	if _, err := completeJSON(context.Background(), llm, []core.Message{{Role: core.RoleUser, Content: "hi"}}, "decision"); err == nil {
		t.Fatal("completeJSON expected error after two invalid attempts")
	}
	if len(llm.calls) != 2 {
		t.Errorf("completion calls = %d, want 2 (no further retries)", len(llm.calls))
	}
}

func TestCompleteJSONEmptyOutput(t *testing.T) {
	// Empty output is a failure signal, never valid content. One
	// corrective round still applies.
	llm := &scriptedLLM{replies: []string{"", `{"decision": "allowed"}`}}

	fields, err := completeJSON(context.Background(), llm, []core.Message{{Role: core.RoleUser, Content: "hi"}}, "decision")
	if err != nil {
		t.Fatalf("completeJSON error: %v", err)
	}
	if got := fieldString(fields["decision"]); got != "allowed" {
		t.Errorf("decision = %q, want allowed", got)
	}
}

package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/merrysway/baristabot/internal/core"
	"github.com/merrysway/baristabot/pkg/log"
)

const correctionPrompt = `You will check this JSON string and correct any mistakes that will make it invalid. Then you will return the corrected JSON string. Nothing else.
If the JSON is correct just return it.

Do NOT return a single character outside of the JSON string.
If the JSON is missing any of these keys, add them: %s.
`

// completeJSON asks the model for a JSON object and returns its fields.
// A malformed or incomplete reply goes through one local mechanical
// repair and, if that is not enough, one corrective completion round.
// Two round trips is the hard ceiling per call.
func completeJSON(ctx context.Context, llm core.Completer, messages []core.Message, required ...string) (map[string]json.RawMessage, error) {
	out, err := llm.Complete(ctx, messages, core.DefaultCompleteOptions())
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	fields, parseErr := parseJSONObject(out, required...)
	if parseErr == nil {
		return fields, nil
	}

	log.FromCtx(ctx).Debug().Err(parseErr).Str("output", out).Msg("invalid agent output, requesting correction")

	corrected, err := llm.Complete(ctx, []core.Message{
		{Role: core.RoleSystem, Content: fmt.Sprintf(correctionPrompt, strings.Join(required, ", "))},
		{Role: core.RoleUser, Content: out},
	}, core.DefaultCompleteOptions())
	if err != nil {
		return nil, fmt.Errorf("correction completion failed: %w", err)
	}

	fields, parseErr = parseJSONObject(corrected, required...)
	if parseErr != nil {
		return nil, fmt.Errorf("output invalid after correction: %w", parseErr)
	}
	return fields, nil
}

// parseJSONObject extracts the fields of a JSON object from raw model
// output. Code fences and leading prose are stripped, and syntax errors
// are run through jsonrepair before giving up.
func parseJSONObject(out string, required ...string) (map[string]json.RawMessage, error) {
	cleaned := stripToObject(out)
	if cleaned == "" {
		return nil, fmt.Errorf("no JSON object in output")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(cleaned)
		if repairErr != nil {
			return nil, fmt.Errorf("unmarshal failed: %w (repair: %v)", err, repairErr)
		}
		if err := json.Unmarshal([]byte(repaired), &fields); err != nil {
			return nil, fmt.Errorf("unmarshal of repaired output failed: %w", err)
		}
	}

	for _, key := range required {
		if _, ok := fields[key]; !ok {
			return nil, fmt.Errorf("missing required key %q", key)
		}
	}
	return fields, nil
}

// stripToObject removes markdown code fences and any text surrounding
// the outermost {...} of the output.
func stripToObject(out string) string {
	s := strings.TrimSpace(out)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return s[start : end+1]
}

// fieldString decodes a field that may arrive as a JSON string, number
// or bool, returning its text form.
func fieldString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

package core

import (
	"encoding/json"
	"strconv"
	"strings"
)

const (
	BotName          = "BaristaBot"
	BotUserAgent     = "BaristaBot/0.1"
	BotRepositoryURL = "https://github.com/merrysway/baristabot"
	BotVersion       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Agent names as they appear in the memory record on the wire.
const (
	AgentGuard          = "guard_agent"
	AgentClassification = "classification_agent"
	AgentDetails        = "details_agent"
	AgentRecommendation = "recommendation_agent"
	AgentOrderTaking    = "order_taking_agent"
)

const (
	GuardAllowed    = "allowed"
	GuardNotAllowed = "not_allowed"
)

// Message is one turn of a conversation. Memory is set only on
// assistant messages produced by an agent; the caller owns the history
// and appends each envelope unchanged.
type Message struct {
	Role    string  `json:"role"`
	Content string  `json:"content"`
	Memory  *Memory `json:"memory,omitempty"`
}

// Memory is the per-turn record an agent attaches to its envelope.
// Which fields are populated depends on the producing agent.
type Memory struct {
	Agent                  string      `json:"agent"`
	GuardDecision          string      `json:"guard_decision,omitempty"`
	ClassificationDecision string      `json:"classification_decision,omitempty"`
	StepNumber             string      `json:"step_number,omitempty"`
	Order                  []OrderLine `json:"order,omitempty"`
	AskedRecommendation    bool        `json:"asked_recommendation_before,omitempty"`
}

// OrderLine is a single item of an order. Price is the line total as
// produced by the generator; it is passed through without a menu
// lookup.
type OrderLine struct {
	Item     string  `json:"item"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// UnmarshalJSON tolerates quantity and price arriving as quoted
// numbers, which chat models produce routinely.
func (l *OrderLine) UnmarshalJSON(data []byte) error {
	var raw struct {
		Item     string          `json:"item"`
		Quantity json.RawMessage `json:"quantity"`
		Price    json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Item = raw.Item
	if q, ok := flexFloat(raw.Quantity); ok {
		l.Quantity = int(q)
	}
	if p, ok := flexFloat(raw.Price); ok {
		l.Price = p
	}
	return nil
}

func flexFloat(raw json.RawMessage) (float64, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, false
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CloneHistory copies the message slice so an agent can rewrite the
// latest message (e.g. to prepend retrieved context) without mutating
// the caller's history.
func CloneHistory(history []Message) []Message {
	out := make([]Message, len(history))
	copy(out, history)
	return out
}

// LastN returns the trailing n messages of history, or all of them if
// the history is shorter.
func LastN(history []Message, n int) []Message {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

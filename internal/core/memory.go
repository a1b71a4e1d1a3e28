package core

import (
	"fmt"
	"strings"
)

// OrderState is the order-taking agent's cumulative state, threaded
// through the otherwise stateless request cycle via message memory.
type OrderState struct {
	Step                string
	Order               []OrderLine
	AskedRecommendation bool
}

// DefaultOrderState is the state of a conversation that has not placed
// an order yet.
func DefaultOrderState() OrderState {
	return OrderState{Step: "1"}
}

// LatestOrderState scans history backward from the newest message and
// returns the state carried by the most recent assistant turn authored
// by the order-taking agent. Turns from other agents in between are
// skipped. The latest occurrence is authoritative; no other turn's
// memory is consulted.
func LatestOrderState(history []Message) OrderState {
	for i := len(history) - 1; i >= 0; i-- {
		msg := history[i]
		if msg.Role != RoleAssistant || msg.Memory == nil {
			continue
		}
		if msg.Memory.Agent != AgentOrderTaking {
			continue
		}
		return OrderState{
			Step:                msg.Memory.StepNumber,
			Order:               msg.Memory.Order,
			AskedRecommendation: msg.Memory.AskedRecommendation,
		}
	}
	return DefaultOrderState()
}

// Render formats the state the way the order-taking prompt expects it,
// ready to be prepended to the latest user message.
func (s OrderState) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "step number: %s\n", s.Step)
	b.WriteString("order: [")
	for i, line := range s.Order {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, `{"item": %q, "quantity": %d, "price": %.2f}`, line.Item, line.Quantity, line.Price)
	}
	b.WriteString("]")
	return b.String()
}

package agents

import (
	"context"
	"fmt"

	"github.com/merrysway/baristabot/internal/core"
	"github.com/merrysway/baristabot/pkg/log"
)

// lastMessagesWindow is how many trailing history messages the
// classification-style agents send along with their system prompt.
const lastMessagesWindow = 3

// Guard filters the incoming message before any other agent sees it.
// Anything not related to the coffee shop is refused with a canned
// reply carried in the envelope content.
type Guard struct {
	llm core.Completer
}

func NewGuard(llm core.Completer) *Guard {
	return &Guard{llm: llm}
}

func (g *Guard) GetResponse(ctx context.Context, history []core.Message) (core.Message, error) {
	input := append([]core.Message{
		{Role: core.RoleSystem, Content: guardPrompt},
	}, core.LastN(history, lastMessagesWindow)...)

	fields, err := completeJSON(ctx, g.llm, input, "decision")
	if err != nil {
		// A broken guard reply must not block the whole
		// conversation; let the turn through and log it.
		log.FromCtx(ctx).Warn().Err(err).Msg("guard output unusable, allowing turn")
		return core.Message{
			Role:   core.RoleAssistant,
			Memory: &core.Memory{Agent: core.AgentGuard, GuardDecision: core.GuardAllowed},
		}, nil
	}

	decision := fieldString(fields["decision"])
	switch decision {
	case core.GuardAllowed, core.GuardNotAllowed:
	default:
		return core.Message{}, fmt.Errorf("unexpected guard decision %q", decision)
	}

	var content string
	if decision == core.GuardNotAllowed {
		content = fieldString(fields["message"])
		if content == "" {
			content = "Sorry, I can't help with that. Can I help you with your order?"
		}
	}

	return core.Message{
		Role:    core.RoleAssistant,
		Content: content,
		Memory:  &core.Memory{Agent: core.AgentGuard, GuardDecision: decision},
	}, nil
}

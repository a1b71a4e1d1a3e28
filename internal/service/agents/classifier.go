package agents

import (
	"context"

	"github.com/merrysway/baristabot/internal/core"
	"github.com/merrysway/baristabot/pkg/log"
)

// Classifier picks the terminal agent for an allowed message. Its
// envelope carries no content; the chosen agent produces the reply.
type Classifier struct {
	llm core.Completer
}

func NewClassifier(llm core.Completer) *Classifier {
	return &Classifier{llm: llm}
}

func (c *Classifier) GetResponse(ctx context.Context, history []core.Message) (core.Message, error) {
	input := append([]core.Message{
		{Role: core.RoleSystem, Content: classifierPrompt},
	}, core.LastN(history, lastMessagesWindow)...)

	decision := core.AgentDetails
	fields, err := completeJSON(ctx, c.llm, input, "decision")
	if err != nil {
		// Safe default rather than a failed turn. The details
		// agent can field almost anything conversationally.
		log.FromCtx(ctx).Warn().Err(err).Msg("classifier output unusable, defaulting to details agent")
	} else {
		decision = fieldString(fields["decision"])
	}

	return core.Message{
		Role:   core.RoleAssistant,
		Memory: &core.Memory{Agent: core.AgentClassification, ClassificationDecision: decision},
	}, nil
}

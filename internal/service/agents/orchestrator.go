package agents

import (
	"context"
	"fmt"

	"github.com/merrysway/baristabot/internal/core"
	"github.com/merrysway/baristabot/pkg/log"
)

// Agent is one conversational capability: it consumes the history and
// produces a single assistant envelope for this turn.
type Agent interface {
	GetResponse(ctx context.Context, history []core.Message) (core.Message, error)
}

// Outcome is the orchestrator's boundary type. Refused means the guard
// blocked the turn and Envelope carries the refusal text; transports
// decide how to render that.
type Outcome struct {
	Refused  bool
	Envelope core.Message
}

// Orchestrator sequences guard, classifier and the chosen terminal
// agent. The terminal registry is fixed at construction; the
// classifier's output schema is the only source of dispatch keys, so an
// unknown key is an integration bug, not user input.
type Orchestrator struct {
	guard      Agent
	classifier Agent
	terminals  map[string]Agent
}

func NewOrchestrator(guard, classifier, details, recommender, orderTaker Agent) *Orchestrator {
	return &Orchestrator{
		guard:      guard,
		classifier: classifier,
		terminals: map[string]Agent{
			core.AgentDetails:        details,
			core.AgentRecommendation: recommender,
			core.AgentOrderTaking:    orderTaker,
		},
	}
}

func (o *Orchestrator) Handle(ctx context.Context, history []core.Message) (Outcome, error) {
	logger := log.FromCtx(ctx)

	guardMsg, err := o.guard.GetResponse(ctx, history)
	if err != nil {
		return Outcome{}, fmt.Errorf("guard failed: %w", err)
	}
	if guardMsg.Memory != nil && guardMsg.Memory.GuardDecision == core.GuardNotAllowed {
		logger.Info().Msg("message refused by guard")
		return Outcome{Refused: true, Envelope: guardMsg}, nil
	}

	clsMsg, err := o.classifier.GetResponse(ctx, history)
	if err != nil {
		return Outcome{}, fmt.Errorf("classification failed: %w", err)
	}

	decision := ""
	if clsMsg.Memory != nil {
		decision = clsMsg.Memory.ClassificationDecision
	}
	agent, ok := o.terminals[decision]
	if !ok {
		return Outcome{}, fmt.Errorf("no agent registered for classification decision %q", decision)
	}
	logger.Debug().Str("agent", decision).Msg("dispatching turn")

	envelope, err := agent.GetResponse(ctx, history)
	if err != nil {
		return Outcome{}, fmt.Errorf("%s failed: %w", decision, err)
	}
	return Outcome{Envelope: envelope}, nil
}

package agents

import (
	"context"
	"encoding/json"

	"github.com/merrysway/baristabot/internal/core"
	"github.com/merrysway/baristabot/pkg/log"
)

const defaultOrderReply = "Sorry, I couldn't process your order right now. Can you please repeat it?"

// OrderTaker runs the ordering conversation. The step progression is
// decided by the model as prose (intake, validate against the menu,
// ask if more, finalize and total); the agent's job is to thread the
// cumulative order state through the stateless request cycle and to
// keep every failure recoverable.
type OrderTaker struct {
	llm         core.Completer
	recommender *Recommender
}

func NewOrderTaker(llm core.Completer, recommender *Recommender) *OrderTaker {
	return &OrderTaker{llm: llm, recommender: recommender}
}

func (o *OrderTaker) GetResponse(ctx context.Context, history []core.Message) (core.Message, error) {
	if len(history) == 0 {
		return defaultOrderEnvelope(), nil
	}

	state := core.LatestOrderState(history)

	rewritten := core.CloneHistory(history)
	rewritten[len(rewritten)-1].Content = state.Render() + "\n" + rewritten[len(rewritten)-1].Content

	input := append([]core.Message{
		{Role: core.RoleSystem, Content: orderTakingPrompt},
	}, rewritten...)

	fields, err := completeJSON(ctx, o.llm, input, "order", "response", "step_number")
	if err != nil {
		// Local recovery: the default envelope keeps the memory
		// resumable so the next turn starts clean.
		log.FromCtx(ctx).Warn().Err(err).Msg("order output unusable, returning default envelope")
		return defaultOrderEnvelope(), nil
	}

	order := parseOrder(ctx, fields["order"])
	response := fieldString(fields["response"])
	step := fieldString(fields["step_number"])
	asked := state.AskedRecommendation

	// Surface companion suggestions at most once per order
	// lifecycle, replacing this turn's reply.
	if !asked && len(order) > 0 {
		recMsg, recErr := o.recommender.RecommendFromOrder(ctx, history, order)
		if recErr != nil {
			log.FromCtx(ctx).Warn().Err(recErr).Msg("order recommendation failed, keeping original response")
		} else {
			response = recMsg.Content
			asked = true
		}
	}

	return core.Message{
		Role:    core.RoleAssistant,
		Content: response,
		Memory: &core.Memory{
			Agent:               core.AgentOrderTaking,
			StepNumber:          step,
			Order:               order,
			AskedRecommendation: asked,
		},
	}, nil
}

func defaultOrderEnvelope() core.Message {
	return core.Message{
		Role:    core.RoleAssistant,
		Content: defaultOrderReply,
		Memory: &core.Memory{
			Agent:      core.AgentOrderTaking,
			StepNumber: "1",
			Order:      []core.OrderLine{},
		},
	}
}

// parseOrder accepts the order either as a structured list or as a
// JSON-encoded string containing one. Anything unparseable coerces to
// an empty order; this never fails the turn.
func parseOrder(ctx context.Context, raw json.RawMessage) []core.OrderLine {
	if len(raw) == 0 {
		return []core.OrderLine{}
	}

	var order []core.OrderLine
	if err := json.Unmarshal(raw, &order); err == nil {
		return order
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		if err := json.Unmarshal([]byte(s), &order); err == nil {
			return order
		}
	}

	log.FromCtx(ctx).Warn().Str("order", string(raw)).Msg("unparseable order field, coercing to empty")
	return []core.OrderLine{}
}

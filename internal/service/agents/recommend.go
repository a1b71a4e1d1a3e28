package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/merrysway/baristabot/internal/core"
	"github.com/merrysway/baristabot/internal/recommend"
	"github.com/merrysway/baristabot/pkg/log"
)

const noRecommendationReply = "Sorry, I don't have a recommendation for that right now. Can I help you with your order?"

const (
	recTypeApriori           = "apriori"
	recTypePopular           = "popular"
	recTypePopularByCategory = "popular_by_category"
)

// Recommender turns the static ranking tables into conversational
// suggestions. The model only chooses the ranking mode and phrases the
// result; the product selection itself is deterministic.
type Recommender struct {
	llm    core.Completer
	tables *recommend.Tables
}

func NewRecommender(llm core.Completer, tables *recommend.Tables) *Recommender {
	return &Recommender{llm: llm, tables: tables}
}

func (r *Recommender) GetResponse(ctx context.Context, history []core.Message) (core.Message, error) {
	if len(history) == 0 {
		return core.Message{}, fmt.Errorf("empty history")
	}

	recType, params := r.classifyRecommendation(ctx, history)

	var items []string
	switch recType {
	case recTypeApriori:
		items = r.tables.Apriori(params, recommend.DefaultTopK)
	case recTypePopular:
		items = r.tables.Popular(nil, recommend.DefaultTopK)
	case recTypePopularByCategory:
		items = r.tables.Popular(params, recommend.DefaultTopK)
	default:
		log.FromCtx(ctx).Warn().Str("type", recType).Msg("unknown recommendation type, using popular")
		items = r.tables.Popular(nil, recommend.DefaultTopK)
	}

	if len(items) == 0 {
		return core.Message{
			Role:    core.RoleAssistant,
			Content: noRecommendationReply,
			Memory:  &core.Memory{Agent: core.AgentRecommendation},
		}, nil
	}

	msg, err := r.phrase(ctx, history[len(history)-1].Content, items)
	if err != nil {
		// The products are already chosen; render them directly
		// instead of failing the turn over a phrasing round.
		log.FromCtx(ctx).Warn().Err(err).Msg("phrasing unusable, rendering ranked items directly")
		return core.Message{
			Role:    core.RoleAssistant,
			Content: plainRecommendationReply(items),
			Memory:  &core.Memory{Agent: core.AgentRecommendation},
		}, nil
	}
	return msg, nil
}

func plainRecommendationReply(items []string) string {
	return "You might also like: " + strings.Join(items, ", ") + "."
}

// RecommendFromOrder suggests companions for a confirmed order. The
// mode-classification round is skipped; the order's item names feed the
// association ranker directly.
func (r *Recommender) RecommendFromOrder(ctx context.Context, history []core.Message, order []core.OrderLine) (core.Message, error) {
	products := make([]string, 0, len(order))
	for _, line := range order {
		products = append(products, line.Item)
	}

	items := r.tables.Apriori(products, recommend.DefaultTopK)
	if len(items) == 0 {
		return core.Message{
			Role:    core.RoleAssistant,
			Content: noRecommendationReply,
			Memory:  &core.Memory{Agent: core.AgentRecommendation},
		}, nil
	}

	userMessage := ""
	if len(history) > 0 {
		userMessage = history[len(history)-1].Content
	}
	return r.phrase(ctx, userMessage, items)
}

// classifyRecommendation asks the model which ranking mode fits the
// request. Any parse failure degrades to the popularity ranking over
// the full table, never a failed turn.
func (r *Recommender) classifyRecommendation(ctx context.Context, history []core.Message) (string, []string) {
	input := append([]core.Message{
		{Role: core.RoleSystem, Content: recommendTypePrompt(r.tables.Products(), r.tables.Categories())},
	}, core.LastN(history, lastMessagesWindow)...)

	fields, err := completeJSON(ctx, r.llm, input, "recommendation_type")
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("recommendation classification unusable, using popular")
		return recTypePopular, nil
	}

	return fieldString(fields["recommendation_type"]), parseParameters(fields["parameters"])
}

func (r *Recommender) phrase(ctx context.Context, userMessage string, items []string) (core.Message, error) {
	input := []core.Message{
		{Role: core.RoleSystem, Content: recommendPhrasePrompt},
		{Role: core.RoleUser, Content: recommendPhraseMessage(userMessage, items)},
	}

	content, err := r.llm.Complete(ctx, input, core.DefaultCompleteOptions())
	if err != nil {
		return core.Message{}, fmt.Errorf("completion failed: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		return core.Message{}, fmt.Errorf("empty completion output")
	}

	return core.Message{
		Role:    core.RoleAssistant,
		Content: content,
		Memory:  &core.Memory{Agent: core.AgentRecommendation},
	}, nil
}

// parseParameters accepts a list of strings, a bare string (treated as
// a singleton) or a JSON-encoded list inside a string.
func parseParameters(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	if s == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), &list); err == nil {
		return list
	}
	return []string{s}
}

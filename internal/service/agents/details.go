package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/merrysway/baristabot/internal/core"
	"github.com/merrysway/baristabot/pkg/log"
)

const detailsTopK = 2

// Details answers questions about the shop (location, hours, menu item
// details) grounded on passages retrieved from the knowledge base. The
// reply is free prose, so no repair loop applies.
type Details struct {
	llm       core.Completer
	embedder  core.Embedder
	search    core.VectorSearch
	namespace string
}

func NewDetails(llm core.Completer, embedder core.Embedder, search core.VectorSearch, namespace string) *Details {
	return &Details{llm: llm, embedder: embedder, search: search, namespace: namespace}
}

func (d *Details) GetResponse(ctx context.Context, history []core.Message) (core.Message, error) {
	if len(history) == 0 {
		return core.Message{}, fmt.Errorf("empty history")
	}

	question := history[len(history)-1].Content

	vector, err := d.embedder.EncodeQuery(ctx, question)
	if err != nil {
		return core.Message{}, fmt.Errorf("failed to embed question: %w", err)
	}

	// Retrieval failure fails the turn. Answering without grounding
	// would invite the model to invent shop facts.
	matches, err := d.search.Query(ctx, vector, detailsTopK, d.namespace)
	if err != nil {
		return core.Message{}, fmt.Errorf("knowledge base query failed: %w", err)
	}

	texts := make([]string, 0, len(matches))
	for _, m := range matches {
		texts = append(texts, strings.TrimSpace(m.Text))
	}
	log.FromCtx(ctx).Debug().Int("matches", len(matches)).Msg("retrieved grounding passages")

	rewritten := core.CloneHistory(history)
	rewritten[len(rewritten)-1].Content = detailsContextPrompt(strings.Join(texts, "\n"), question)

	input := append([]core.Message{
		{Role: core.RoleSystem, Content: detailsPrompt},
	}, core.LastN(rewritten, lastMessagesWindow)...)

	answer, err := d.llm.Complete(ctx, input, core.DefaultCompleteOptions())
	if err != nil {
		return core.Message{}, fmt.Errorf("completion failed: %w", err)
	}
	// An empty completion is a provider failure, same class as a
	// retrieval error: fail the turn rather than emit a blank reply.
	if strings.TrimSpace(answer) == "" {
		return core.Message{}, fmt.Errorf("empty completion output")
	}

	return core.Message{
		Role:    core.RoleAssistant,
		Content: answer,
		Memory:  &core.Memory{Agent: core.AgentDetails},
	}, nil
}

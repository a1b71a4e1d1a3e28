package core

import "context"

// HistoryRepository persists conversation turns per session. The
// pipeline itself is stateless; transports use this to thread history
// across turns.
type HistoryRepository interface {
	AddMessage(ctx context.Context, sessionID string, msg Message) error
	GetMessages(ctx context.Context, sessionID string, limit int) ([]Message, error)
}

// Passage is a unit of grounding text stored in the knowledge base.
type Passage struct {
	ID        int64
	Namespace string
	Text      string
	Embedding []float32
}

// PassageRepository stores embedded knowledge-base passages.
type PassageRepository interface {
	AddPassage(ctx context.Context, p Passage) error
	GetPassages(ctx context.Context, namespace string) ([]Passage, error)
}

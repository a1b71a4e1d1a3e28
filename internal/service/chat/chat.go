package chat

import (
	"context"
	"fmt"

	"github.com/merrysway/baristabot/internal/core"
	"github.com/merrysway/baristabot/internal/service/agents"
	"github.com/merrysway/baristabot/pkg/log"
)

type HistoryRepository interface {
	AddMessage(ctx context.Context, sessionID string, msg core.Message) error
	GetMessages(ctx context.Context, sessionID string, limit int) ([]core.Message, error)
}

type Orchestrator interface {
	Handle(ctx context.Context, history []core.Message) (agents.Outcome, error)
}

// Service runs one conversation turn per call: persist the user
// message, hand the session window to the orchestrator, persist the
// envelope, return the reply text. The pipeline itself stays stateless;
// all continuity lives in the stored history.
type Service struct {
	repo         HistoryRepository
	orchestrator Orchestrator
	windowSize   int
}

func NewService(repo HistoryRepository, orchestrator Orchestrator, windowSize int) *Service {
	return &Service{repo: repo, orchestrator: orchestrator, windowSize: windowSize}
}

func (s *Service) Run(ctx context.Context, sessionID string, input string) (string, error) {
	logger := log.FromCtx(ctx)

	userMsg := core.Message{Role: core.RoleUser, Content: input}
	if err := s.repo.AddMessage(ctx, sessionID, userMsg); err != nil {
		return "", fmt.Errorf("failed to save user message: %w", err)
	}

	history, err := s.repo.GetMessages(ctx, sessionID, s.windowSize)
	if err != nil {
		return "", fmt.Errorf("failed to fetch history: %w", err)
	}

	outcome, err := s.orchestrator.Handle(ctx, history)
	if err != nil {
		return "", fmt.Errorf("turn failed: %w", err)
	}
	if outcome.Refused {
		logger.Info().Str("session", sessionID).Msg("turn refused by guard")
	}

	if err := s.repo.AddMessage(ctx, sessionID, outcome.Envelope); err != nil {
		logger.Error().Err(err).Msg("failed to save assistant message")
	}

	return outcome.Envelope.Content, nil
}

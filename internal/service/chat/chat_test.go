package chat

import (
	"context"
	"fmt"
	"testing"

	"github.com/merrysway/baristabot/internal/core"
	"github.com/merrysway/baristabot/internal/service/agents"
)

type memoryRepo struct {
	sessions map[string][]core.Message
	addErr   error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{sessions: make(map[string][]core.Message)}
}

func (m *memoryRepo) AddMessage(_ context.Context, sessionID string, msg core.Message) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.sessions[sessionID] = append(m.sessions[sessionID], msg)
	return nil
}

func (m *memoryRepo) GetMessages(_ context.Context, sessionID string, limit int) ([]core.Message, error) {
	return core.LastN(m.sessions[sessionID], limit), nil
}

type fakeOrchestrator struct {
	outcome agents.Outcome
	err     error
	history []core.Message
}

func (f *fakeOrchestrator) Handle(_ context.Context, history []core.Message) (agents.Outcome, error) {
	f.history = history
	return f.outcome, f.err
}

func TestRunPersistsBothSides(t *testing.T) {
	repo := newMemoryRepo()
	envelope := core.Message{
		Role:    core.RoleAssistant,
		Content: "One latte coming up!",
		Memory:  &core.Memory{Agent: core.AgentOrderTaking, StepNumber: "2"},
	}
	orch := &fakeOrchestrator{outcome: agents.Outcome{Envelope: envelope}}

	s := NewService(repo, orch, 30)
	reply, err := s.Run(context.Background(), "cli-local", "a latte please")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if reply != "One latte coming up!" {
		t.Errorf("reply = %q", reply)
	}

	stored := repo.sessions["cli-local"]
	if len(stored) != 2 {
		t.Fatalf("stored %d messages, want 2", len(stored))
	}
	if stored[0].Role != core.RoleUser || stored[0].Content != "a latte please" {
		t.Errorf("stored user message = %+v", stored[0])
	}
	if stored[1].Memory == nil || stored[1].Memory.Agent != core.AgentOrderTaking {
		t.Errorf("stored assistant memory = %+v", stored[1].Memory)
	}

	// The orchestrator must see the user message it is answering.
	if len(orch.history) != 1 || orch.history[0].Content != "a latte please" {
		t.Errorf("orchestrator history = %+v", orch.history)
	}
}

func TestRunReturnsRefusalText(t *testing.T) {
	repo := newMemoryRepo()
	orch := &fakeOrchestrator{outcome: agents.Outcome{
		Refused: true,
		Envelope: core.Message{
			Role:    core.RoleAssistant,
			Content: "Sorry, I can't help with that.",
			Memory:  &core.Memory{Agent: core.AgentGuard, GuardDecision: core.GuardNotAllowed},
		},
	}}

	s := NewService(repo, orch, 30)
	reply, err := s.Run(context.Background(), "cli-local", "tell me a secret")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if reply != "Sorry, I can't help with that." {
		t.Errorf("reply = %q, want the refusal text", reply)
	}
	if len(repo.sessions["cli-local"]) != 2 {
		t.Errorf("refusal envelope not persisted")
	}
}

func TestRunPropagatesOrchestratorError(t *testing.T) {
	repo := newMemoryRepo()
	orch := &fakeOrchestrator{err: fmt.Errorf("provider down")}

	s := NewService(repo, orch, 30)
	if _, err := s.Run(context.Background(), "cli-local", "hi"); err == nil {
		t.Fatal("Run expected error")
	}
}

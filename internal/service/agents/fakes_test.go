package agents

import (
	"context"
	"fmt"

	"github.com/merrysway/baristabot/internal/core"
)

// scriptedLLM replays canned completions in order and records every
// request it received.
type scriptedLLM struct {
	replies []string
	err     error
	calls   [][]core.Message
}

func (s *scriptedLLM) Complete(_ context.Context, messages []core.Message, _ core.CompleteOptions) (string, error) {
	s.calls = append(s.calls, messages)
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "", fmt.Errorf("no scripted reply for call %d", len(s.calls))
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) EncodeQuery(context.Context, string) ([]float32, error) {
	return f.vector, f.err
}

func (f *fakeEmbedder) EncodePassage(context.Context, string) ([]float32, error) {
	return f.vector, f.err
}

type fakeSearch struct {
	matches []core.SearchMatch
	err     error
}

func (f *fakeSearch) Query(context.Context, []float32, int, string) ([]core.SearchMatch, error) {
	return f.matches, f.err
}

// stubAgent is a terminal agent with a fixed envelope, for orchestrator
// dispatch tests.
type stubAgent struct {
	envelope core.Message
	err      error
	calls    int
}

func (s *stubAgent) GetResponse(context.Context, []core.Message) (core.Message, error) {
	s.calls++
	return s.envelope, s.err
}

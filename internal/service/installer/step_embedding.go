package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// EmbeddingURLStep collects the embedding endpoint used by the details
// agent's retrieval.
type EmbeddingURLStep struct {
	input textinput.Model
}

func NewEmbeddingURLStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "http://localhost:8080"

	return &EmbeddingURLStep{
		input: ti,
	}
}

func (s *EmbeddingURLStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *EmbeddingURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" && s.input.Value() != "" {
			state.EnvVars["EMBEDDING_BASE_URL"] = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *EmbeddingURLStep) View(state *InstallState) string {
	return "Enter the base URL of your embedding endpoint:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

// EmbeddingModelStep collects the embedding model name
type EmbeddingModelStep struct {
	input textinput.Model
}

func NewEmbeddingModelStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "intfloat/multilingual-e5-base"

	return &EmbeddingModelStep{
		input: ti,
	}
}

func (s *EmbeddingModelStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *EmbeddingModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" && s.input.Value() != "" {
			state.EnvVars["EMBEDDING_MODEL_NAME"] = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *EmbeddingModelStep) View(state *InstallState) string {
	return "Enter the embedding model name:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// modelVar maps a provider to the env var its model name is stored under.
var modelVar = map[string]string{
	"openrouter": "OPENROUTER_MODEL",
	"openai":     "OPENAI_MODEL",
	"ollama":     "OLLAMA_MODEL",
	"custom":     "MODEL_NAME",
}

// ModelStep collects the chat model name
type ModelStep struct {
	input textinput.Model
}

func NewModelStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "google/gemma-3-27b-it:free"

	return &ModelStep{
		input: ti,
	}
}

func (s *ModelStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" && s.input.Value() != "" {
			provider := state.EnvVars["LLM_PROVIDER"]
			state.EnvVars[modelVar[provider]] = s.input.Value()
			return nil, nil
		}
	}
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	return "Enter the chat model name:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

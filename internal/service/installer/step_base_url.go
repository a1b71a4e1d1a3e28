package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// BaseURLStep collects the endpoint URL for the ollama and custom
// providers. OpenRouter and OpenAI have fixed endpoints, so the step
// skips itself for them.
type BaseURLStep struct {
	input textinput.Model
}

func NewBaseURLStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "http://localhost:11434"

	return &BaseURLStep{
		input: ti,
	}
}

func (s *BaseURLStep) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return nextMsg{} })
}

func (s *BaseURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	provider := state.EnvVars["LLM_PROVIDER"]
	if provider != "ollama" && provider != "custom" {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" && s.input.Value() != "" {
			if provider == "ollama" {
				state.EnvVars["OLLAMA_BASE_URL"] = s.input.Value()
			} else {
				state.EnvVars["CHATBOT_URL"] = s.input.Value()
			}
			return nil, nil
		}
	}
	return s, cmd
}

func (s *BaseURLStep) View(state *InstallState) string {
	return "Enter the base URL of your LLM endpoint:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

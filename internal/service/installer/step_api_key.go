package installer

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// apiKeyVar maps a provider to the env var its key is stored under.
var apiKeyVar = map[string]string{
	"openrouter": "OPENROUTER_API_KEY",
	"openai":     "OPENAI_API_KEY",
	"ollama":     "OLLAMA_API_KEY",
	"custom":     "CHATBOT_API_KEY",
}

// APIKeyStep collects the provider API key. Local endpoints usually
// have none, so an empty value is accepted for ollama and custom.
type APIKeyStep struct {
	input textinput.Model
}

func NewAPIKeyStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "sk-or-v1-..."
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &APIKeyStep{
		input: ti,
	}
}

func (s *APIKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *APIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			provider := state.EnvVars["LLM_PROVIDER"]
			optional := provider == "ollama" || provider == "custom"
			if s.input.Value() == "" && !optional {
				return s, cmd
			}
			if s.input.Value() != "" {
				state.EnvVars[apiKeyVar[provider]] = s.input.Value()
			}
			return nil, nil
		}
	}
	return s, cmd
}

func (s *APIKeyStep) View(state *InstallState) string {
	return "Enter your API Key:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

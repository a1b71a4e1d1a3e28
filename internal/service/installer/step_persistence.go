package installer

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/merrysway/baristabot/internal/config"
	"github.com/merrysway/baristabot/pkg/env"
)

// envFileLayout fixes the order and naming of the generated .env file.
// Zero fields are omitted by the marshaller.
type envFileLayout struct {
	LLMProvider string `env:"LLM_PROVIDER"`

	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`
	OpenRouterModel  string `env:"OPENROUTER_MODEL"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIModel      string `env:"OPENAI_MODEL"`
	OllamaBaseURL    string `env:"OLLAMA_BASE_URL"`
	OllamaAPIKey     string `env:"OLLAMA_API_KEY"`
	OllamaModel      string `env:"OLLAMA_MODEL"`
	CustomBaseURL    string `env:"CHATBOT_URL"`
	CustomAPIKey     string `env:"CHATBOT_API_KEY"`
	CustomModel      string `env:"MODEL_NAME"`

	EmbeddingBaseURL string `env:"EMBEDDING_BASE_URL"`
	EmbeddingAPIKey  string `env:"EMBEDDING_API_KEY"`
	EmbeddingModel   string `env:"EMBEDDING_MODEL_NAME"`

	EnableTelegram  string `env:"ENABLE_TELEGRAM"`
	EnableCLI       string `env:"ENABLE_CLI"`
	TelegramToken   string `env:"TELEGRAM_TOKEN"`
	TelegramOwnerID string `env:"TELEGRAM_OWNER_ID"`
}

func layoutFromState(state *InstallState) *envFileLayout {
	get := func(key string) string { return state.EnvVars[key] }
	return &envFileLayout{
		LLMProvider:      get("LLM_PROVIDER"),
		OpenRouterAPIKey: get("OPENROUTER_API_KEY"),
		OpenRouterModel:  get("OPENROUTER_MODEL"),
		OpenAIAPIKey:     get("OPENAI_API_KEY"),
		OpenAIModel:      get("OPENAI_MODEL"),
		OllamaBaseURL:    get("OLLAMA_BASE_URL"),
		OllamaAPIKey:     get("OLLAMA_API_KEY"),
		OllamaModel:      get("OLLAMA_MODEL"),
		CustomBaseURL:    get("CHATBOT_URL"),
		CustomAPIKey:     get("CHATBOT_API_KEY"),
		CustomModel:      get("MODEL_NAME"),
		EmbeddingBaseURL: get("EMBEDDING_BASE_URL"),
		EmbeddingAPIKey:  get("EMBEDDING_API_KEY"),
		EmbeddingModel:   get("EMBEDDING_MODEL_NAME"),
		EnableTelegram:   get("ENABLE_TELEGRAM"),
		EnableCLI:        get("ENABLE_CLI"),
		TelegramToken:    get("TELEGRAM_TOKEN"),
		TelegramOwnerID:  get("TELEGRAM_OWNER_ID"),
	}
}

// SaveEnvStep writes the collected configuration to .env file
type SaveEnvStep struct {
	err   error
	saved bool
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}

	// Perform save synchronously (fast operation)
	path := config.GetRuntimePath()

	if err := os.MkdirAll(path, 0755); err != nil {
		s.err = fmt.Errorf("failed to create runtime directory: %w", err)
		return s, nil
	}

	envPath := filepath.Join(path, ".env")

	// Check if .env already exists
	if _, err := os.Stat(envPath); err == nil {
		s.err = fmt.Errorf(".env file already exists at %s", envPath)
		return s, nil
	}

	content, err := env.MarshalEnv(layoutFromState(state))
	if err != nil {
		s.err = err
		return s, nil
	}

	if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
		s.err = err
		return s, nil
	}

	s.saved = true
	return nil, nil // Signal completion
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

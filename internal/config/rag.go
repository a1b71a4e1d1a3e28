package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

type RAGConfig struct {
	BaseURL   string `env:"EMBEDDING_BASE_URL,required,notEmpty"`
	APIKey    string `env:"EMBEDDING_API_KEY"`
	ModelName string `env:"EMBEDDING_MODEL_NAME,required,notEmpty"`
	Namespace string `env:"SEARCH_NAMESPACE" envDefault:"ns1"`
}

func NewRAGConfig(ctx context.Context) *RAGConfig {
	cfg := &RAGConfig{}
	if err := env.Parse(cfg); err != nil {
		log.Ctx(ctx).Fatal().Err(err).Msg("failed to parse RAG config")
	}
	return cfg
}

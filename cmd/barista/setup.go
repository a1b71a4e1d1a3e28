package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/merrysway/baristabot/internal/config"
	"github.com/merrysway/baristabot/internal/providers/llm"
	"github.com/merrysway/baristabot/internal/providers/rag"
	"github.com/merrysway/baristabot/internal/recommend"
	"github.com/merrysway/baristabot/internal/service/agents"
	"github.com/merrysway/baristabot/internal/service/chat"
	"github.com/merrysway/baristabot/internal/storage/sqlite"
	"github.com/merrysway/baristabot/internal/transport/cli"
	"github.com/merrysway/baristabot/internal/transport/telegram"
	"github.com/merrysway/baristabot/pkg/log"
	"github.com/merrysway/baristabot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	ragCfg := config.NewRAGConfig(ctx)

	// 2. Storage
	db, historyRepo, passagesRepo, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// 3. Recommendation tables
	tables, err := recommend.Load(appCfg.AssociationRulesPath, appCfg.PopularityPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load recommendation tables")
	}

	// 4. LLM provider
	completer, err := llm.NewProvider(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 5. Embedder
	embedder := rag.NewEmbedder(ragCfg)

	// 6. Conversation pipeline
	recommender := agents.NewRecommender(completer, tables)
	orchestrator := agents.NewOrchestrator(
		agents.NewGuard(completer),
		agents.NewClassifier(completer),
		agents.NewDetails(completer, embedder, passagesRepo, ragCfg.Namespace),
		recommender,
		agents.NewOrderTaker(completer, recommender),
	)

	chatSvc := chat.NewService(historyRepo, orchestrator, appCfg.ContextWindowSize)

	// 7. Transports
	transports, err := initTransports(ctx, appCfg, chatSvc)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, *sqlite.HistoryRepo, *sqlite.PassagesRepo, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, nil, err
	}
	return db, sqlite.NewHistoryRepo(db), sqlite.NewPassagesRepo(db), nil
}

func initTransports(ctx context.Context, cfg *config.AppConfig, chatSvc *chat.Service) ([]srv.Service, error) {
	var services []srv.Service

	if cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, chatSvc)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if cfg.EnableCLI {
		services = append(services, cli.NewConsole(chatSvc))
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

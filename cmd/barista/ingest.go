package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/merrysway/baristabot/internal/config"
	"github.com/merrysway/baristabot/internal/core"
	"github.com/merrysway/baristabot/internal/providers/rag"
	"github.com/merrysway/baristabot/internal/storage/sqlite"
	"github.com/merrysway/baristabot/pkg/log"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Ingest text files into the knowledge base",
	Long:  `Chunks the given text files, embeds every passage and stores it in the knowledge base used by the details agent.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		appCfg := config.NewAppConfig(ctx)
		ragCfg := config.NewRAGConfig(ctx)

		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		repo := sqlite.NewPassagesRepo(db)
		embedder := rag.NewEmbedder(ragCfg)
		chunkCfg := rag.E5BaseChunkerConfig()

		total := 0
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			chunks := rag.ChunkText(string(data), chunkCfg)
			for _, chunk := range chunks {
				embedding, err := embedder.EncodePassage(ctx, chunk.Text)
				if err != nil {
					return fmt.Errorf("failed to embed chunk %d of %s: %w", chunk.Index, path, err)
				}

				err = repo.AddPassage(ctx, core.Passage{
					Namespace: ragCfg.Namespace,
					Text:      chunk.Text,
					Embedding: embedding,
				})
				if err != nil {
					return fmt.Errorf("failed to store chunk %d of %s: %w", chunk.Index, path, err)
				}
			}

			logger.Info().Str("file", path).Int("chunks", len(chunks)).Msg("ingested file")
			total += len(chunks)
		}

		logger.Info().Int("passages", total).Str("namespace", ragCfg.Namespace).Msg("ingestion complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

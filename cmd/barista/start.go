package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/merrysway/baristabot/pkg/log"
	"github.com/merrysway/baristabot/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the BaristaBot services",
	Long:  `Initializes and starts all configured transports (Telegram, CLI) on top of the shared conversation pipeline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting baristabot")

		services := NewServices(ctx)

		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("baristabot has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}

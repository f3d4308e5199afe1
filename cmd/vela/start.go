package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/velahq/vela/pkg/log"
	"github.com/velahq/vela/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Vela assistant",
	Long:  `Initializes storage, the LLM provider, the tool registry and the configured transports, then runs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting vela")

		// Define services using the setup.go logic
		services := NewServices(ctx)

		// Start services
		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("vela has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}

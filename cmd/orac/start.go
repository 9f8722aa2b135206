package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/orac/pkg/log"
	"github.com/sandevgo/orac/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the ORAC services",
	Long:  `Initializes and starts all configured services (dashboard, data feed, network probe, Telegram, HTTP API) until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// logger setup; the dashboard owns the terminal
		var flushLog func()
		if cfg.EnableTUI {
			ctx, flushLog, err = setupFileLogger(ctx, cfg.GetLogPath())
			if err != nil {
				return err
			}
		} else {
			ctx, flushLog = setupLogger(ctx)
		}
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting orac")

		services := NewServices(ctx, cfg, stop)

		srv.StartServices(ctx, services)

		// Wait for shutdown signal or the dashboard closing
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("orac has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}

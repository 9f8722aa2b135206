package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sandevgo/orac/internal/transport/cli"
	"github.com/sandevgo/orac/pkg/log"
	"github.com/sandevgo/orac/pkg/srv"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:          "chat",
	Short:        "Chat with ORAC in a line-based terminal session",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var flushLog func()
		ctx, flushLog, err = setupFileLogger(ctx, cfg.GetLogPath())
		if err != nil {
			return err
		}
		defer flushLog()

		s, err := newStack(ctx, cfg)
		if err != nil {
			return err
		}

		repl, err := cli.NewReadLine(s.oracle, s.router, cfg)
		if err != nil {
			return err
		}
		services := append(s.services, repl)

		srv.StartServices(ctx, s.services)
		err = repl.Start(ctx)

		stop()
		srv.StopServices(context.WithoutCancel(ctx), services)
		log.FromCtx(ctx).Info().Msg("chat session closed")
		return err
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

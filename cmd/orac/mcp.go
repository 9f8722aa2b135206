package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sandevgo/orac/internal/transport/mcp"
	"github.com/sandevgo/orac/pkg/log"
	"github.com/sandevgo/orac/pkg/srv"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:          "mcp",
	Short:        "Serve ORAC tools over MCP stdio",
	Long:         `Runs an MCP server on stdin/stdout exposing orac_query, orac_streams and orac_memory. Logs go to stderr.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var flushLog func()
		ctx, flushLog = setupStderrLogger(ctx)
		defer flushLog()

		s, err := newStack(ctx, cfg)
		if err != nil {
			return err
		}

		server := mcp.NewServer(s.oracle, os.Stdin, os.Stdout)
		services := append(s.services, server)

		srv.StartServices(ctx, s.services)
		err = server.Start(ctx)

		stop()
		srv.StopServices(context.WithoutCancel(ctx), services)
		log.FromCtx(ctx).Info().Msg("mcp server stopped")
		return err
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

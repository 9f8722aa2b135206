package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandevgo/orac/internal/config"
	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/internal/service/ui"
	"github.com/sandevgo/orac/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:     "orac",
	Short:   core.OracName + ": " + core.OracTagline,
	Long:    `ORAC is a demo assistant that blends synthetic real-time streams with session memory to answer questions in three reasoning modes.`,
	Version: core.OracVersion,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func isDebug() bool {
	return debug || config.IsDebug()
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	return log.NewContextWithLogger(ctx, isDebug())
}

// setupStderrLogger keeps stdout free for command output and protocols.
func setupStderrLogger(ctx context.Context) (context.Context, func()) {
	return log.NewContextWithWriter(ctx, isDebug(), os.Stderr)
}

// setupFileLogger is used whenever a full-screen or line interface owns
// the terminal.
func setupFileLogger(ctx context.Context, path string) (context.Context, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return ctx, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return ctx, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	ctx, flush := log.NewContextWithWriter(ctx, isDebug(), f)
	return ctx, func() {
		flush()
		_ = f.Close()
	}, nil
}

func CustomizeHelp(rootCmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleTitle", func(s string) string { return ui.TitleStyle.Render(s) })
	cobra.AddTemplateFunc("StyleUsage", func(s string) string { return ui.UsageStyle.Render(s) })
	cobra.AddTemplateFunc("StyleFlag", func(s string) string { return ui.FlagStyle.Render(s) })
	cobra.AddTemplateFunc("StyleDesc", func(s string) string { return ui.DescStyle.Render(s) })

	template := `
{{StyleTitle "USAGE"}}
  {{StyleUsage .UseLine}}
{{if gt (len .Commands) 0}}{{StyleTitle "AVAILABLE COMMANDS"}}
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{StyleDesc .Short}}{{end}}
{{end}}{{end}}
{{if .HasAvailableLocalFlags}}{{StyleTitle "FLAGS"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces | StyleFlag}}
{{end}}
`
	rootCmd.SetHelpTemplate(template)
}

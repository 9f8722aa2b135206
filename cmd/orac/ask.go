package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/internal/service/oracle"
	"github.com/sandevgo/orac/internal/service/ui"
	"github.com/spf13/cobra"
)

var (
	askMode    string
	askNoDelay bool
)

var askCmd = &cobra.Command{
	Use:          "ask <query...>",
	Short:        "Process a single query and print the prediction",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if askMode != "" {
			mode, err := core.ParseMode(askMode)
			if err != nil {
				return err
			}
			cfg.DefaultMode = string(mode)
		}

		var flushLog func()
		ctx, flushLog = setupStderrLogger(ctx)
		defer flushLog()

		var opts []oracle.Option
		if askNoDelay {
			opts = append(opts, oracle.WithThinkDelay(0))
		}
		s, err := newStack(ctx, cfg, opts...)
		if err != nil {
			return err
		}
		defer func() {
			for _, svc := range s.services {
				_ = svc.Shutdown(ctx)
			}
		}()

		// one refresh so every stream has data
		s.feed.Refresh(ctx)

		res, err := s.oracle.Process(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		printResult(cmd, res)
		return nil
	},
}

func printResult(cmd *cobra.Command, res *oracle.Result) {
	mode := res.Reply.Mode
	head := lipgloss.NewStyle().Bold(true).Foreground(ui.ModeColor(mode))
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, head.Render(fmt.Sprintf("%s %s · %s", ui.ModeIcon(mode), mode.Title(), res.Prediction.Scenario)))
	fmt.Fprintln(out, ui.DescStyle.Render(fmt.Sprintf("Confidence: %d%% · %d context items", res.Prediction.Confidence, len(res.Context))))
	fmt.Fprintln(out)
	fmt.Fprintln(out, res.Reply.Content)
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.DescStyle.Render("Reasoning: "+res.Prediction.Reasoning))
}

func init() {
	askCmd.Flags().StringVarP(&askMode, "mode", "m", "", "reasoning mode (assistant, strategist, analyst)")
	askCmd.Flags().BoolVar(&askNoDelay, "no-delay", false, "skip the simulated think delay")
	rootCmd.AddCommand(askCmd)
}

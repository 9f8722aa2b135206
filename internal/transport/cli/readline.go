package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/orac/internal/config"
	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/internal/service/oracle"
	"github.com/sandevgo/orac/pkg/log"
)

type engine interface {
	core.Session
	Process(ctx context.Context, query string) (*oracle.Result, error)
}

type ReadLine struct {
	cfg    *config.AppConfig
	engine engine
	router core.CmdRouter
	rl     *readline.Instance
}

func NewReadLine(engine engine, router core.CmdRouter, cfg *config.AppConfig) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt(engine.Mode()),
		HistoryFile:     cfg.GetHistoryPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:    cfg,
		engine: engine,
		router: router,
		rl:     rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("ORAC chat started. Type /help for commands, 'exit' to quit.")
	fmt.Fprintln(r.rl.Stdout(), oracle.ExamplesHint)

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		r.handle(ctx, line, r.rl.Stdout())
		r.rl.SetPrompt(prompt(r.engine.Mode()))
	}
}

// handle runs a slash command or a query and prints the outcome to out.
func (r *ReadLine) handle(ctx context.Context, line string, out io.Writer) {
	if res, ok := r.router.Execute(ctx, line); ok {
		fmt.Fprintln(out, res)
		return
	}

	fmt.Fprintln(out, "\033[38;5;240m[Processing Context & Real-Time Data...]\033[0m")

	res, err := r.engine.Process(ctx, line)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("query failed")
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(out, "\033[38;5;240m[%s | %d%% confidence | %d context items]\033[0m\n",
		res.Prediction.Scenario, res.Prediction.Confidence, len(res.Context))
	fmt.Fprintf(out, "%s\n", res.Reply.Content)
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

func prompt(m core.Mode) string {
	return fmt.Sprintf("%s >>> ", m)
}

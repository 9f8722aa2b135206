package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/orac/internal/config"
	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/internal/service/oracle"
	"github.com/sandevgo/orac/pkg/log"
	"github.com/sandevgo/orac/pkg/retry"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type engine interface {
	core.Session
	Process(ctx context.Context, query string) (*oracle.Result, error)
}

type Bot struct {
	bot     *tele.Bot
	engine  engine
	router  core.CmdRouter
	sender  *sender
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	engine engine,
	router core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		engine:  engine,
		router:  router,
		sender:  newSender(b, retry.NewDefaultRetrier()),
		ownerID: cfg.OwnerID,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Int64("owner", b.ownerID).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	// Notify user we are working
	_ = c.Notify(tele.Typing)

	return b.sender.sendMarkdown(ctx, c.Chat(), b.respond(ctx, c.Text()))
}

// respond turns one incoming text into the Markdown reply.
func (b *Bot) respond(ctx context.Context, text string) string {
	if out, ok := b.router.Execute(ctx, text); ok {
		return out
	}

	res, err := b.engine.Process(ctx, text)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("query failed")
		return fmt.Sprintf("❌ **Error**: %v", err)
	}

	return fmt.Sprintf("**%s** · `%d%%`\n\n%s\n\n_%s_",
		res.Prediction.Scenario, res.Prediction.Confidence, res.Reply.Content, res.Prediction.Reasoning)
}

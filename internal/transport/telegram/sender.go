package telegram

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sandevgo/orac/pkg/conv"
	"github.com/sandevgo/orac/pkg/log"
	"github.com/sandevgo/orac/pkg/retry"
	tele "gopkg.in/telebot.v3"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

type poster interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type sender struct {
	bot     poster
	retrier *retry.Retrier
}

func newSender(bot poster, retrier *retry.Retrier) *sender {
	return &sender{bot: bot, retrier: retrier}
}

// sendMarkdown converts Markdown to Telegram HTML and sends it in chunks.
// A chunk Telegram refuses to parse is resent as plain text.
func (s *sender) sendMarkdown(ctx context.Context, to tele.Recipient, md string) error {
	logger := log.FromCtx(ctx)
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))
	if html == "" {
		return nil
	}

	for i, chunk := range conv.Split(html, maxTelegramMsgLen) {
		err := s.send(ctx, to, chunk, tele.ModeHTML)
		if err == nil {
			continue
		}
		if !isBadRequest(err) {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}

		logger.Warn().Err(err).Int("chunk", i).Msg("telegram rejected html, falling back to plain text")
		if err := s.send(ctx, to, conv.HTMLToText(chunk)); err != nil {
			logger.Error().Err(err).Int("chunk", i).Msg("failed to send plain text chunk")
			return err
		}
	}
	return nil
}

func (s *sender) send(ctx context.Context, to tele.Recipient, text string, opts ...interface{}) error {
	return s.retrier.Do(ctx, func() error {
		_, err := s.bot.Send(to, text, opts...)
		if isBadRequest(err) {
			return retry.Permanent(err)
		}
		return err
	})
}

func isBadRequest(err error) bool {
	var terr *tele.Error
	return errors.As(err, &terr) && terr.Code == http.StatusBadRequest
}

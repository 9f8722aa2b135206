package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/orac/internal/core"
)

type ModeCommand struct {
	session   core.Session
	formatter *ResponseFormatter
}

func NewModeCommand(session core.Session) *ModeCommand {
	return &ModeCommand{
		session:   session,
		formatter: NewResponseFormatter(),
	}
}

func (c *ModeCommand) Name() string {
	return "mode"
}

func (c *ModeCommand) Description() string {
	return "Show or change the reasoning mode"
}

func (c *ModeCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		names := make([]string, len(core.Modes))
		for i, m := range core.Modes {
			names[i] = fmt.Sprintf("**%s** (%s)", m.Title(), m)
		}
		return c.formatter.Combine(
			c.formatter.Info("Current Mode"),
			c.formatter.Label("Mode", string(c.session.Mode())),
			c.formatter.List(names),
			c.formatter.Usage("/mode [assistant|strategist|analyst]"),
		), nil
	}

	mode, err := core.ParseMode(args[0])
	if err != nil {
		return "", err
	}
	if err := c.session.SetMode(mode); err != nil {
		return "", fmt.Errorf("failed to set mode: %w", err)
	}

	return c.formatter.Combine(
		c.formatter.Success(fmt.Sprintf("Mode changed to: `%s`", mode)),
	), nil
}

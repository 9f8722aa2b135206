package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/orac/internal/core"
)

type ResetCommand struct {
	session   core.Session
	formatter *ResponseFormatter
}

func NewResetCommand(session core.Session) core.Command {
	return &ResetCommand{
		session:   session,
		formatter: NewResponseFormatter(),
	}
}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Description() string {
	return "Clear memory, conversation and the latest prediction"
}

func (c *ResetCommand) Execute(ctx context.Context, args []string) (string, error) {
	if err := c.session.Reset(ctx); err != nil {
		return "", fmt.Errorf("failed to reset session: %w", err)
	}
	return c.formatter.Success("Session cleared"), nil
}

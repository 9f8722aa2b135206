package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/pkg/ring"
)

const memoryPreview = 5

type MemoryCommand struct {
	session   core.Session
	formatter *ResponseFormatter
}

func NewMemoryCommand(session core.Session) core.Command {
	return &MemoryCommand{
		session:   session,
		formatter: NewResponseFormatter(),
	}
}

func (c *MemoryCommand) Name() string {
	return "memory"
}

func (c *MemoryCommand) Description() string {
	return "Show recent memory items"
}

func (c *MemoryCommand) Execute(ctx context.Context, args []string) (string, error) {
	items, err := c.session.Memory(ctx)
	if err != nil {
		return "", err
	}

	if len(items) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Memory"),
			c.formatter.Label("Items", "0"),
			c.formatter.Tip("Ask a question to start building context"),
		), nil
	}

	recent := ring.Tail(items, memoryPreview)
	lines := make([]string, len(recent))
	for i, item := range recent {
		lines[i] = fmt.Sprintf("%s [%s] %s", item.Timestamp.Format("15:04:05"), item.Mode, item.Content)
	}

	return c.formatter.Combine(
		c.formatter.Info("Memory"),
		c.formatter.Label("Items", fmt.Sprintf("%d", len(items))),
		c.formatter.List(lines),
	), nil
}

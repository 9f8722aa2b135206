package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/internal/service/oracle"
)

type ExamplesCommand struct {
	formatter *ResponseFormatter
}

func NewExamplesCommand() core.Command {
	return &ExamplesCommand{formatter: NewResponseFormatter()}
}

func (c *ExamplesCommand) Name() string {
	return "examples"
}

func (c *ExamplesCommand) Description() string {
	return "List example queries"
}

func (c *ExamplesCommand) Execute(ctx context.Context, args []string) (string, error) {
	lines := make([]string, len(oracle.Examples))
	for i, ex := range oracle.Examples {
		lines[i] = fmt.Sprintf("%d. %s", i+1, ex)
	}
	return c.formatter.Combine(
		c.formatter.Info("Example Queries"),
		c.formatter.List(lines),
		c.formatter.Tip(oracle.ExamplesHint),
	), nil
}

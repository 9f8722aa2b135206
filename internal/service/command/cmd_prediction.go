package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/orac/internal/core"
)

const contextPreview = 3

type PredictionCommand struct {
	session   core.Session
	formatter *ResponseFormatter
}

func NewPredictionCommand(session core.Session) core.Command {
	return &PredictionCommand{
		session:   session,
		formatter: NewResponseFormatter(),
	}
}

func (c *PredictionCommand) Name() string {
	return "prediction"
}

func (c *PredictionCommand) Description() string {
	return "Show the latest prediction and its context"
}

func (c *PredictionCommand) Execute(ctx context.Context, args []string) (string, error) {
	p := c.session.LatestPrediction()
	if p == nil {
		return c.formatter.Combine(
			c.formatter.Info("Latest Prediction"),
			c.formatter.Label("Status", "No prediction yet"),
		), nil
	}

	items := c.session.LatestContext()
	preview := items
	if len(preview) > contextPreview {
		preview = preview[:contextPreview]
	}
	lines := make([]string, len(preview))
	for i, item := range preview {
		lines[i] = DescribeContext(item)
	}

	return c.formatter.Combine(
		c.formatter.Info("Latest Prediction"),
		c.formatter.Label("Scenario", p.Scenario),
		c.formatter.Label("Confidence", fmt.Sprintf("%d%%", p.Confidence)),
		c.formatter.Section("📝", "Narrative", p.Narrative),
		c.formatter.Section("🧠", "Reasoning", p.Reasoning),
		c.formatter.Label("Active context", fmt.Sprintf("%d", len(items))),
		c.formatter.List(lines),
	), nil
}

// DescribeContext renders one context item as a single line.
func DescribeContext(item core.ContextItem) string {
	switch {
	case item.Kind == core.ContextRealtime && item.Snapshot != nil:
		return fmt.Sprintf("realtime: %s - %s", item.Source, item.Snapshot.Status)
	case item.Kind == core.ContextMemory && item.Memory != nil:
		return fmt.Sprintf("memory: %s", item.Memory.Content)
	default:
		return string(item.Kind)
	}
}

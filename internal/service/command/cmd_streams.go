package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/orac/internal/core"
)

type StreamsCommand struct {
	session   core.Session
	formatter *ResponseFormatter
}

func NewStreamsCommand(session core.Session) core.Command {
	return &StreamsCommand{
		session:   session,
		formatter: NewResponseFormatter(),
	}
}

func (c *StreamsCommand) Name() string {
	return "streams"
}

func (c *StreamsCommand) Description() string {
	return "Show the real-time data streams"
}

func (c *StreamsCommand) Execute(ctx context.Context, args []string) (string, error) {
	sections := []string{c.formatter.Info("Real-Time Streams")}

	for _, snap := range c.session.Snapshots() {
		updated := "never"
		if snap.Loaded() {
			updated = snap.Timestamp.Format("15:04:05")
		}
		sections = append(sections, c.formatter.Label(string(snap.Source), fmt.Sprintf("%s (updated %s)", snap.Status, updated)))

		if snap.Market != nil {
			quotes := make([]string, 0, len(snap.Market.Stocks))
			for _, sym := range sortedSymbols(snap.Market.Stocks) {
				q := snap.Market.Stocks[sym]
				quotes = append(quotes, fmt.Sprintf("%s $%.2f (%+.2f)", sym, q.Price, q.Change))
			}
			sections = append(sections, c.formatter.List(quotes))
		}
	}

	return c.formatter.Combine(sections...), nil
}

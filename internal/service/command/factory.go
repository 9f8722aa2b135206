package command

import (
	"github.com/sandevgo/orac/internal/core"
)

func NewCommands(session core.Session) []core.Command {
	return []core.Command{
		NewModeCommand(session),
		NewStreamsCommand(session),
		NewMemoryCommand(session),
		NewExamplesCommand(),
		NewPredictionCommand(session),
		NewResetCommand(session),
	}
}

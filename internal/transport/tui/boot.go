package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type bootStage int

const (
	stageInitializing bootStage = iota
	stageLoadingModels
	stageConnectingStreams
	stageReady
)

// welcomeLinger is how long the overlay stays up once the system is ready.
const welcomeLinger = 2 * time.Second

// bootDelays is how long each stage lasts before the next one begins.
var bootDelays = map[bootStage]time.Duration{
	stageInitializing:      1000 * time.Millisecond,
	stageLoadingModels:     800 * time.Millisecond,
	stageConnectingStreams: 600 * time.Millisecond,
}

type bootMsg struct {
	stage bootStage
}

type hideWelcomeMsg struct{}

func (s bootStage) message() string {
	switch s {
	case stageInitializing:
		return "Initializing ORAC Systems..."
	case stageLoadingModels:
		return "Loading Cognitive Models..."
	case stageConnectingStreams:
		return "Connecting Real-Time Streams..."
	case stageReady:
		return "ORAC Systems Online"
	default:
		return "System Status Unknown"
	}
}

func (s bootStage) percent() float64 {
	switch s {
	case stageInitializing:
		return 0.25
	case stageLoadingModels:
		return 0.60
	case stageConnectingStreams:
		return 0.85
	default:
		return 1
	}
}

// advance schedules the stage after s, or the overlay hide once ready.
func (s bootStage) advance() tea.Cmd {
	if s == stageReady {
		return tea.Tick(welcomeLinger, func(time.Time) tea.Msg { return hideWelcomeMsg{} })
	}
	next := s + 1
	return tea.Tick(bootDelays[s], func(time.Time) tea.Msg { return bootMsg{stage: next} })
}

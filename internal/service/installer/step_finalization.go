package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep fills in values no step asked about
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(state)
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

func finalize(state *InstallState) {
	if state.Settings.DefaultMode == "" {
		state.Settings.DefaultMode = "assistant"
	}
	if state.Settings.EnableTUI == "" {
		state.Settings.EnableTUI = "true"
	}
	if state.Settings.EnableTelegram == "" {
		state.Settings.EnableTelegram = "false"
	}
	if state.Settings.EnableHTTP == "" {
		state.Settings.EnableHTTP = "false"
	}
	if state.Settings.Debug == "" {
		state.Settings.Debug = "0"
	}
}

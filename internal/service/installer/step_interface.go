package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

const (
	InterfaceDashboard = "dashboard"
	InterfaceTelegram  = "telegram"
	InterfaceHTTP      = "http"
)

// InterfaceStep toggles which surfaces `orac start` brings up
type InterfaceStep struct {
	choices []choice
	cursor  int
	err     string
}

func NewInterfaceStep() Step {
	return &InterfaceStep{
		choices: []choice{
			{id: InterfaceDashboard, title: "Terminal dashboard", desc: "full-screen interface"},
			{id: InterfaceTelegram, title: "Telegram", desc: "chat with ORAC from your phone"},
			{id: InterfaceHTTP, title: "HTTP API", desc: "JSON endpoints for scripts"},
		},
	}
}

func (s *InterfaceStep) Init() tea.Cmd {
	return nil
}

func (s *InterfaceStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || moveCursor(key, &s.cursor, len(s.choices)) {
		return s, nil
	}

	switch key.String() {
	case " ", "x":
		id := s.choices[s.cursor].id
		state.Interfaces[id] = !state.Interfaces[id]
		s.err = ""
	case "enter":
		if !state.Interfaces[InterfaceDashboard] && !state.Interfaces[InterfaceTelegram] && !state.Interfaces[InterfaceHTTP] {
			s.err = "Select at least one interface"
			return s, nil
		}
		state.Settings.EnableTUI = flag(state.Interfaces[InterfaceDashboard])
		state.Settings.EnableTelegram = flag(state.Interfaces[InterfaceTelegram])
		state.Settings.EnableHTTP = flag(state.Interfaces[InterfaceHTTP])
		return nil, nil
	}
	return s, nil
}

func (s *InterfaceStep) View(state *InstallState) string {
	out := renderChoices("Select the interfaces to start:", s.choices, s.cursor, func(id string) bool {
		return state.Interfaces[id]
	})
	if s.err != "" {
		out += "\n" + errorStyle.Render(s.err) + "\n"
	}
	return out + "\n(space to toggle, enter to confirm)\n"
}

func flag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

package installer

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/internal/service/ui"
)

// ModeStep picks the reasoning mode new sessions start in
type ModeStep struct {
	choices []choice
	cursor  int
}

func NewModeStep() Step {
	descs := map[core.Mode]string{
		core.ModeAssistant:  "balanced, plain-language guidance",
		core.ModeStrategist: "opportunities, timing and positioning",
		core.ModeAnalyst:    "numbers, ratios and risk metrics",
	}
	choices := make([]choice, len(core.Modes))
	for i, m := range core.Modes {
		choices[i] = choice{id: string(m), title: ui.ModeIcon(m) + " " + m.Title(), desc: descs[m]}
	}
	return &ModeStep{choices: choices}
}

func (s *ModeStep) Init() tea.Cmd {
	return nil
}

func (s *ModeStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || moveCursor(key, &s.cursor, len(s.choices)) {
		return s, nil
	}
	if key.String() == "enter" {
		state.Settings.DefaultMode = s.choices[s.cursor].id
		return nil, nil
	}
	return s, nil
}

func (s *ModeStep) View(state *InstallState) string {
	return renderChoices("Select the default ORAC mode:", s.choices, s.cursor, nil) +
		"\n(press ctrl+c to quit)\n"
}

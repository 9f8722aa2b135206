package installer

import (
	"net"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultHTTPAddr = "127.0.0.1:8088"

// HTTPAddrStep asks where the JSON API listens. Blank keeps the default.
type HTTPAddrStep struct {
	input textinput.Model
	err   string
}

func NewHTTPAddrStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40
	ti.Placeholder = defaultHTTPAddr

	return &HTTPAddrStep{input: ti}
}

func (s *HTTPAddrStep) Skip(state *InstallState) bool {
	return !state.Interfaces[InterfaceHTTP]
}

func (s *HTTPAddrStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *HTTPAddrStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		addr := strings.TrimSpace(s.input.Value())
		if addr == "" {
			return nil, nil
		}
		if _, _, err := net.SplitHostPort(addr); err != nil {
			s.err = "Use host:port, for example " + defaultHTTPAddr
			return s, nil
		}
		state.Settings.HTTPAddr = addr
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *HTTPAddrStep) View(state *InstallState) string {
	out := "Enter the HTTP API listen address:\n\n" + s.input.View() + "\n\n"
	if s.err != "" {
		out += errorStyle.Render(s.err) + "\n\n"
	}
	return out + "(press enter to keep " + defaultHTTPAddr + ")\n"
}

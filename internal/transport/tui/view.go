package tui

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/internal/service/oracle"
	"github.com/sandevgo/orac/internal/service/ui"
	"github.com/sandevgo/orac/pkg/log"
	"github.com/sandevgo/orac/pkg/ring"
)

const (
	wideLayout     = 120
	contextPreview = 3
	memoryPreview  = 5
	timeLayout     = "15:04:05"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.Muted).
			Padding(0, 1)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(ui.Accent)
	mutedStyle   = lipgloss.NewStyle().Foreground(ui.Muted)
	bannerStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(ui.Danger).
			Bold(true).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().Foreground(ui.Danger).Bold(true)
)

// View recovers from render panics and keeps showing the recovery screen
// until the next Update records the crash for good.
func (m Model) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%v", r)
			log.FromCtx(m.ctx).Error().
				Str("stack", string(debug.Stack())).
				Err(fmt.Errorf("panic: %w", err)).
				Msg("dashboard render failed")
			m.renderFault.set(err)
			out = m.recoveryView(err)
		}
	}()

	if err := m.renderFault.peek(); err != nil && m.crash == nil {
		return m.recoveryView(err)
	}
	switch {
	case m.crash != nil:
		return m.recoveryView(m.crash)
	case m.showWelcome:
		return m.welcomeView()
	default:
		return m.dashboardView()
	}
}

func (m Model) recoveryView(err error) string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("🔧 ORAC System Error"))
	b.WriteString("\n\n")
	b.WriteString("The Operational Reality Architect encountered an unexpected error.\n")
	b.WriteString("Our cognitive systems are working to resolve this issue.\n\n")
	b.WriteString(headingStyle.Render("Press r to Restart ORAC System"))
	b.WriteString(mutedStyle.Render("  ·  ctrl+c to quit"))

	if m.opts.Debug && err != nil {
		b.WriteString("\n\n")
		b.WriteString(ui.FlagStyle.Render("Development Error Details"))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(err.Error()))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		panelStyle.BorderForeground(ui.Danger).Padding(1, 3).Render(b.String()))
}

func (m Model) welcomeView() string {
	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("⚡ ORAC"))
	b.WriteString("\n")
	b.WriteString("Operational Reality Architect\n")
	b.WriteString(mutedStyle.Render("Experience next-generation AI with real-time context engineering"))
	b.WriteString("\n\n")

	if m.stage == stageReady {
		b.WriteString(lipgloss.NewStyle().Foreground(ui.Success).Bold(true).Render("● " + m.stage.message()))
		b.WriteString("\n")
		b.WriteString("Real-Time Streams Active\n\n")
		b.WriteString(headingStyle.Render("Press Enter to open the ORAC Interface"))
	} else {
		b.WriteString(m.stage.message())
		b.WriteString("\n")
		b.WriteString(m.progress.ViewAs(m.stage.percent()))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		panelStyle.Padding(1, 4).Render(b.String()))
}

func (m Model) dashboardView() string {
	sections := make([]string, 0, 6)
	if !m.online {
		sections = append(sections, bannerStyle.Render("ORAC Operating in Offline Mode - Real-time streams unavailable"))
	}
	sections = append(sections, m.headerView(), m.modeView())

	streams := m.streamsView()
	query := m.queryView()
	memory := m.contextView()
	if m.width >= wideLayout {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, streams, query, memory))
	} else {
		sections = append(sections, streams, query, memory)
	}

	sections = append(sections, m.examplesView())
	if m.notice != "" {
		sections = append(sections, panelStyle.Render(m.notice))
	}
	sections = append(sections, mutedStyle.Render("enter send · alt+enter newline · tab/F1-F3 mode · alt+1-7 example · /help commands · ctrl+c quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	status := lipgloss.NewStyle().Foreground(ui.Success).Render("● Online")
	if m.stage != stageReady {
		status = lipgloss.NewStyle().Foreground(ui.Warning).Render("● Initializing")
	}
	conn := lipgloss.NewStyle().Foreground(ui.Success).Render("Connected")
	if !m.online {
		conn = lipgloss.NewStyle().Foreground(ui.Danger).Render("Offline")
	}

	left := ui.TitleStyle.MarginBottom(0).Render("⚡ ORAC") + " " + mutedStyle.Render("Operational Reality Architect")
	right := status + "  " + conn

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) modeView() string {
	current := m.engine.Mode()
	buttons := make([]string, 0, len(core.Modes))
	for i, mode := range core.Modes {
		label := fmt.Sprintf("[F%d] %s %s", i+1, ui.ModeIcon(mode), mode.Title())
		style := lipgloss.NewStyle().Padding(0, 1)
		if mode == current {
			style = style.Bold(true).Foreground(lipgloss.Color("15")).Background(ui.ModeColor(mode))
		} else {
			style = style.Foreground(ui.ModeColor(mode))
		}
		buttons = append(buttons, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func (m Model) panelWidth() int {
	if m.width >= wideLayout {
		return m.width/3 - 2
	}
	return m.width - 2
}

func (m Model) panel(title, body string) string {
	return panelStyle.Width(m.panelWidth()).Render(headingStyle.Render(title) + "\n" + body)
}

func (m Model) streamsView() string {
	icons := map[core.Source]string{
		core.SourceMarket:  "📈",
		core.SourceWeather: "🌤️",
		core.SourceNews:    "📰",
	}

	lines := make([]string, 0, len(core.Sources)*2)
	for _, snap := range m.engine.Snapshots() {
		updated := core.StatusLoading
		if snap.Loaded() {
			updated = snap.Timestamp.Format(timeLayout)
		}
		lines = append(lines,
			fmt.Sprintf("%s %s", icons[snap.Source], snap.Status),
			mutedStyle.Render("   "+updated),
		)
	}
	return m.panel("Real-Time Streams", strings.Join(lines, "\n"))
}

func (m Model) queryView() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.processing {
		b.WriteString(m.spinner.View() + " Processing Context & Real-Time Data...")
	} else {
		b.WriteString(mutedStyle.Render("[Enter] Process Query"))
	}
	b.WriteString("\n\n")

	if len(m.conversation) == 0 {
		b.WriteString(mutedStyle.Render("Start a conversation to see ORAC's real-time analysis..."))
		return m.panel("Query Interface", b.String())
	}

	for _, msg := range m.conversation {
		sender := "👤 You"
		if msg.Role == core.RoleSystem {
			sender = "🧠 ORAC"
		}
		meta := fmt.Sprintf("%s · %s · %s", sender, msg.Mode.Title(), msg.Timestamp.Format(timeLayout))
		b.WriteString(lipgloss.NewStyle().Foreground(ui.ModeColor(msg.Mode)).Render(meta))
		b.WriteString("\n")
		b.WriteString(msg.Content)
		b.WriteString("\n\n")
	}
	return m.panel("Query Interface", strings.TrimRight(b.String(), "\n"))
}

func (m Model) contextView() string {
	var b strings.Builder

	if p := m.prediction; p != nil {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(p.Scenario))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d%% confidence", p.Confidence)))
		b.WriteString("\n")
		b.WriteString(p.Narrative)
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(p.Reasoning))
		b.WriteString("\n\n")
	}

	b.WriteString(headingStyle.Render(fmt.Sprintf("Active Context (%d)", len(m.context))))
	for i, item := range m.context {
		if i == contextPreview {
			break
		}
		b.WriteString("\n")
		b.WriteString(contextLabel(item))
	}

	b.WriteString("\n\n")
	b.WriteString(headingStyle.Render(fmt.Sprintf("Memory (%d)", len(m.memory))))
	for _, item := range ring.Tail(m.memory, memoryPreview) {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(truncate(item.Content, 40)))
	}

	return m.panel("Context & Memory", b.String())
}

func (m Model) examplesView() string {
	var b strings.Builder
	b.WriteString(mutedStyle.Render("Try these specific queries (results change based on active mode):"))
	for i, ex := range oracle.Examples {
		b.WriteString("\n")
		b.WriteString(ui.FlagStyle.Render(fmt.Sprintf("alt+%d", i+1)))
		b.WriteString(" " + ex)
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("💡 " + oracle.ExamplesHint))
	return panelStyle.Width(m.width - 2).Render(b.String())
}

func contextLabel(item core.ContextItem) string {
	if item.Kind == core.ContextMemory && item.Memory != nil {
		return "💾 " + truncate(item.Memory.Content, 30)
	}
	return "📡 " + string(item.Source)
}

// truncate cuts s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

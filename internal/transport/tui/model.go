package tui

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/internal/service/oracle"
	"github.com/sandevgo/orac/pkg/log"
)

type engine interface {
	core.Session
	Process(ctx context.Context, query string) (*oracle.Result, error)
}

type Options struct {
	DefaultMode core.Mode
	Debug       bool
	// Updates signals feed refreshes; Network publishes online changes.
	Updates <-chan struct{}
	Network <-chan bool
	Online  func() bool
}

// Model is the dashboard state. Session data is cached after every change
// so rendering never touches storage.
type Model struct {
	ctx    context.Context
	engine engine
	router core.CmdRouter
	opts   Options

	stage       bootStage
	showWelcome bool
	online      bool
	processing  bool
	crash       error
	// renderFault outlives the value copy View works on.
	renderFault *faultLatch

	input    textarea.Model
	spinner  spinner.Model
	progress progress.Model
	notice   string

	conversation []core.Message
	memory       []core.MemoryItem
	prediction   *core.Prediction
	context      []core.ContextItem

	width  int
	height int
}

func New(ctx context.Context, engine engine, router core.CmdRouter, opts Options) Model {
	if opts.DefaultMode == "" {
		opts.DefaultMode = core.ModeAssistant
	}
	online := true
	if opts.Online != nil {
		online = opts.Online()
	}

	m := Model{
		ctx:         ctx,
		engine:      engine,
		router:      router,
		opts:        opts,
		stage:       stageInitializing,
		showWelcome: true,
		online:      online,
		renderFault: &faultLatch{},
		input:       newInput(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		progress:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage()),
		width:       120,
		height:      40,
	}
	m.refresh()
	return m
}

func newInput() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Ask about investments, travel, decisions... (Press Enter to send)"
	ta.ShowLineNumbers = false
	ta.CharLimit = 1000
	ta.SetHeight(3)
	// Enter submits; Alt+Enter breaks the line
	ta.KeyMap.InsertNewline.SetKeys("alt+enter")
	ta.Focus()
	return ta
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.stage.advance(),
		waitForFeed(m.opts.Updates),
		waitForNet(m.opts.Network),
	)
}

// Update is the recover boundary: a panic anywhere below swaps the screen
// for the recovery view.
func (m Model) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			log.FromCtx(m.ctx).Error().
				Str("stack", string(debug.Stack())).
				Err(fmt.Errorf("panic: %v", r)).
				Msg("dashboard update failed")
			m.crash = fmt.Errorf("%v", r)
			model, cmd = m, nil
		}
	}()
	if err := m.renderFault.take(); err != nil {
		m.crash = err
		m.processing = false
	}
	return m.update(msg)
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(m.panelWidth() - 4)
		return m, nil

	case panicMsg:
		m.crash = msg.err
		m.processing = false
		return m, nil

	case feedMsg:
		return m, waitForFeed(m.opts.Updates)

	case netMsg:
		m.online = bool(msg)
		return m, waitForNet(m.opts.Network)

	case bootMsg:
		m.stage = msg.stage
		return m, m.stage.advance()

	case hideWelcomeMsg:
		m.showWelcome = false
		return m, nil

	case resultMsg:
		m.processing = false
		if msg.err != nil {
			m.notice = "Error: " + msg.err.Error()
			if !errors.Is(msg.err, core.ErrEmptyQuery) {
				log.FromCtx(m.ctx).Error().Err(msg.err).Msg("query failed")
			}
			return m, nil
		}
		m.notice = ""
		m.input.Reset()
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.processing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.crash != nil {
		if key == "r" {
			return m.restart()
		}
		return m, nil
	}

	if m.showWelcome {
		if key == "enter" && m.stage == stageReady {
			m.showWelcome = false
		}
		return m, nil
	}

	switch key {
	case "tab":
		return m.selectMode(m.engine.Mode().Next())
	case "f1", "f2", "f3":
		return m.selectMode(core.Modes[int(key[1]-'1')])
	case "alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7":
		idx := int(key[len(key)-1] - '1')
		m.input.SetValue(oracle.Examples[idx])
		return m, nil
	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) selectMode(mode core.Mode) (tea.Model, tea.Cmd) {
	if err := m.engine.SetMode(mode); err != nil {
		m.notice = "Error: " + err.Error()
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())
	if m.processing || query == "" {
		return m, nil
	}

	if out, ok := m.router.Execute(m.ctx, query); ok {
		m.notice = plain(out)
		m.input.Reset()
		m.refresh()
		return m, nil
	}

	m.processing = true
	m.notice = ""
	return m, tea.Batch(m.spinner.Tick, process(m.ctx, m.engine, query))
}

// restart is the full reload: session state is dropped and the boot
// sequence runs again.
func (m Model) restart() (tea.Model, tea.Cmd) {
	logger := log.FromCtx(m.ctx)
	if err := m.engine.Reset(m.ctx); err != nil {
		logger.Error().Err(err).Msg("failed to reset session")
	}
	if err := m.engine.SetMode(m.opts.DefaultMode); err != nil {
		logger.Error().Err(err).Msg("failed to restore default mode")
	}
	logger.Info().Msg("dashboard restarted")

	m.crash = nil
	m.processing = false
	m.notice = ""
	m.stage = stageInitializing
	m.showWelcome = true
	m.input.Reset()
	m.refresh()
	return m, m.stage.advance()
}

func (m *Model) refresh() {
	logger := log.FromCtx(m.ctx)

	conv, err := m.engine.Conversation(m.ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load conversation")
	}
	mem, err := m.engine.Memory(m.ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load memory")
	}

	m.conversation = conv
	m.memory = mem
	m.prediction = m.engine.LatestPrediction()
	m.context = m.engine.LatestContext()
}

func plain(md string) string {
	return strings.TrimSpace(strings.NewReplacer("**", "", "`", "").Replace(md))
}

package tui

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/orac/internal/service/oracle"
	"github.com/sandevgo/orac/pkg/log"
)

type feedMsg struct{}

type netMsg bool

type resultMsg struct {
	res *oracle.Result
	err error
}

type panicMsg struct {
	err error
}

// waitForFeed blocks on the next feed refresh signal.
func waitForFeed(updates <-chan struct{}) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return nil
		}
		return feedMsg{}
	}
}

func waitForNet(changes <-chan bool) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		online, ok := <-changes
		if !ok {
			return nil
		}
		return netMsg(online)
	}
}

func process(ctx context.Context, engine engine, query string) tea.Cmd {
	return guard(ctx, func() tea.Msg {
		res, err := engine.Process(ctx, query)
		return resultMsg{res: res, err: err}
	})
}

// guard turns a panic inside a command into a panicMsg so the dashboard can
// show its recovery screen instead of tearing the terminal down.
func guard(ctx context.Context, cmd func() tea.Msg) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				log.FromCtx(ctx).Error().
					Str("stack", string(debug.Stack())).
					Err(fmt.Errorf("panic: %v", r)).
					Msg("dashboard command failed")
				msg = panicMsg{err: fmt.Errorf("%v", r)}
			}
		}()
		return cmd()
	}
}

// faultLatch carries a render panic from View to the next Update.
type faultLatch struct {
	mu  sync.Mutex
	err error
}

func (l *faultLatch) set(err error) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err == nil {
		l.err = err
	}
}

func (l *faultLatch) peek() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *faultLatch) take() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.err
	l.err = nil
	return err
}

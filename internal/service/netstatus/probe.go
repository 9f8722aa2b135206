package netstatus

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/sandevgo/orac/pkg/log"
)

const DefaultInterval = 5 * time.Second

// CheckFunc reports whether the host currently looks connected.
type CheckFunc func() bool

// Probe polls the host network state and publishes online/offline changes.
// It starts optimistic: Online is true until the first check says otherwise.
type Probe struct {
	check    CheckFunc
	interval time.Duration

	mu      sync.RWMutex
	online  bool
	changes chan bool
}

func New(interval time.Duration) *Probe {
	return NewWithCheck(HasActiveInterface, interval)
}

func NewWithCheck(check CheckFunc, interval time.Duration) *Probe {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Probe{
		check:    check,
		interval: interval,
		online:   true,
		changes:  make(chan bool, 1),
	}
}

func (p *Probe) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Dur("interval", p.interval).Msg("starting network probe")

	p.Poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

func (p *Probe) Shutdown(ctx context.Context) error {
	return nil
}

// Poll runs one check and publishes the result if it changed.
func (p *Probe) Poll(ctx context.Context) {
	online := p.check()

	p.mu.Lock()
	changed := online != p.online
	p.online = online
	p.mu.Unlock()

	if !changed {
		return
	}

	logger := log.FromCtx(ctx)
	if online {
		logger.Info().Msg("network connection restored")
	} else {
		logger.Warn().Msg("network connection lost, operating offline")
	}

	// latest state wins
	select {
	case <-p.changes:
	default:
	}
	select {
	case p.changes <- online:
	default:
	}
}

func (p *Probe) Online() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.online
}

func (p *Probe) Changes() <-chan bool {
	return p.changes
}

// HasActiveInterface is true when any non-loopback interface is up and has
// at least one address.
func HasActiveInterface() bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil || len(addrs) == 0 {
			continue
		}
		return true
	}
	return false
}

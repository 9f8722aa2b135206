package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	OracName    = "ORAC"
	OracTagline = "Operational Reality Architect & Command"
	OracVersion = "0.1.0"
)

var (
	ErrEmptyQuery  = errors.New("query is empty")
	ErrUnknownMode = errors.New("unknown mode")
)

// Mode is the persona that flavours narratives and confidence ranges.
type Mode string

const (
	ModeAssistant  Mode = "assistant"
	ModeStrategist Mode = "strategist"
	ModeAnalyst    Mode = "analyst"
)

// Modes lists the personas in selector order.
var Modes = []Mode{ModeAssistant, ModeStrategist, ModeAnalyst}

func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Title is the display name used by the mode selector.
func (m Mode) Title() string {
	switch m {
	case ModeStrategist:
		return "Strategist"
	case ModeAnalyst:
		return "Analyst"
	default:
		return "Assistant"
	}
}

// Next cycles through Modes.
func (m Mode) Next() Mode {
	for i, known := range Modes {
		if known == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return ModeAssistant
}

// Source identifies one synthetic data stream.
type Source string

const (
	SourceMarket  Source = "market"
	SourceWeather Source = "weather"
	SourceNews    Source = "news"
)

// Sources is the fixed order realtime entries appear in.
var Sources = []Source{SourceMarket, SourceWeather, SourceNews}

const StatusLoading = "Loading..."

// Snapshot is the current state of one source. It is replaced wholesale on
// every refresh. Timestamp is zero until the first refresh.
type Snapshot struct {
	Source    Source      `json:"source"`
	Status    string      `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Market    *MarketData `json:"market,omitempty"`
}

func (s Snapshot) Loaded() bool {
	return !s.Timestamp.IsZero()
}

type MarketData struct {
	SP500      float64               `json:"sp500"`
	Trend      string                `json:"trend"`
	Volatility float64               `json:"volatility"`
	Stocks     map[string]StockQuote `json:"stocks"`
}

type StockQuote struct {
	Price  float64 `json:"price"`
	Change float64 `json:"change"`
}

type MemoryItem struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	ContextSize int       `json:"context_size"`
	Mode        Mode      `json:"mode"`
	Tags        []string  `json:"tags"`
}

type Role string

const (
	RoleUser   Role = "user"
	RoleSystem Role = "system"
)

type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Mode      Mode      `json:"mode"`
}

type ContextKind string

const (
	ContextRealtime ContextKind = "realtime"
	ContextMemory   ContextKind = "memory"
)

// ContextItem references either a snapshot or a memory item for a single
// synthesis pass.
type ContextItem struct {
	Kind     ContextKind `json:"kind"`
	Source   Source      `json:"source,omitempty"`
	Snapshot *Snapshot   `json:"snapshot,omitempty"`
	Memory   *MemoryItem `json:"memory,omitempty"`
}

type Prediction struct {
	Scenario   string `json:"scenario"`
	Confidence int    `json:"confidence"`
	Narrative  string `json:"narrative"`
	Reasoning  string `json:"reasoning"`
}

package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/orac/pkg/log"
)

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

type AppConfig struct {
	RuntimePath string `env:"ORAC_RUNTIME_PATH" envDefault:".orac"`
	DefaultMode string `env:"ORAC_DEFAULT_MODE" envDefault:"assistant"`

	// Pipeline timing
	TickInterval time.Duration `env:"ORAC_TICK_INTERVAL" envDefault:"8s"`
	ThinkDelay   time.Duration `env:"ORAC_THINK_DELAY" envDefault:"1200ms"`

	// Bounded logs
	MemoryCapacity       int `env:"ORAC_MEMORY_CAPACITY" envDefault:"50"`
	ConversationCapacity int `env:"ORAC_CONVERSATION_CAPACITY" envDefault:"20"`

	// Storage backend; sqlite defaults to an in-memory database
	Storage string `env:"ORAC_STORAGE" envDefault:"memory"`
	DBDSN   string `env:"ORAC_DB_DSN" envDefault:":memory:"`

	// Transport Flags
	EnableTUI      bool `env:"ORAC_ENABLE_TUI" envDefault:"true"`
	EnableTelegram bool `env:"ORAC_ENABLE_TELEGRAM" envDefault:"false"`
	EnableHTTP     bool `env:"ORAC_ENABLE_HTTP" envDefault:"false"`

	NetworkProbeInterval time.Duration `env:"ORAC_NETWORK_PROBE_INTERVAL" envDefault:"5s"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := ParseAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if !filepath.IsAbs(c.RuntimePath) {
		c.RuntimePath = GetRuntimePath()
	}
	return c, nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetLogPath() string {
	return filepath.Join(c.RuntimePath, "orac.log")
}

func (c AppConfig) GetHistoryPath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}

func (c AppConfig) IsSQLiteSelected() bool {
	return c.Storage == StorageSQLite
}

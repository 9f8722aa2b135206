package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sandevgo/orac/internal/config"
	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/internal/service/command"
	"github.com/sandevgo/orac/internal/service/feed"
	"github.com/sandevgo/orac/internal/service/memory"
	"github.com/sandevgo/orac/internal/service/netstatus"
	"github.com/sandevgo/orac/internal/service/oracle"
	"github.com/sandevgo/orac/internal/storage/sqlite"
	"github.com/sandevgo/orac/internal/transport/api"
	"github.com/sandevgo/orac/internal/transport/telegram"
	"github.com/sandevgo/orac/internal/transport/tui"
	"github.com/sandevgo/orac/pkg/log"
	"github.com/sandevgo/orac/pkg/srv"
)

// stack is the pipeline every command drives: the data feed, the oracle
// over its storage, and the slash command router.
type stack struct {
	cfg    *config.AppConfig
	mode   core.Mode
	feed   *feed.Feed
	oracle *oracle.Oracle
	router *command.Router

	// services owned by the stack itself: storage cleanup and the feed
	services []srv.Service
}

// loadConfig reads <runtime>/.env, if present, and parses AppConfig.
func loadConfig() (*config.AppConfig, error) {
	if err := initEnv(config.GetRuntimePath()); err != nil {
		return nil, fmt.Errorf("failed to init env: %w", err)
	}
	cfg, err := config.ParseAppConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func newStack(ctx context.Context, cfg *config.AppConfig, opts ...oracle.Option) (*stack, error) {
	logger := log.FromCtx(ctx)

	mode, err := core.ParseMode(cfg.DefaultMode)
	if err != nil {
		return nil, fmt.Errorf("invalid default mode: %w", err)
	}

	repo, cleanup, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	seed := uint64(time.Now().UnixNano())
	streams := feed.New(feed.DefaultGenerators(rand.New(rand.NewPCG(seed, seed>>1))), cfg.TickInterval)

	base := []oracle.Option{
		oracle.WithThinkDelay(cfg.ThinkDelay),
		oracle.WithMode(mode),
	}
	orac := oracle.New(streams, repo, append(base, opts...)...)

	s := &stack{
		cfg:    cfg,
		mode:   mode,
		feed:   streams,
		oracle: orac,
		router: command.New(command.NewCommands(orac)),
	}
	if cleanup != nil {
		s.services = append(s.services, cleanup)
	}
	s.services = append(s.services, streams)

	logger.Debug().
		Str("storage", cfg.Storage).
		Str("mode", string(mode)).
		Dur("tick", cfg.TickInterval).
		Msg("pipeline ready")
	return s, nil
}

// NewServices wires everything `orac start` runs. stop ends the process
// and is called when the dashboard closes.
func NewServices(ctx context.Context, cfg *config.AppConfig, stop func()) []srv.Service {
	logger := log.FromCtx(ctx)

	s, err := newStack(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build pipeline")
	}
	services := append([]srv.Service{}, s.services...)

	probe := netstatus.New(cfg.NetworkProbeInterval)
	services = append(services, probe)

	transports, err := initTransports(ctx, cfg, s, probe, stop)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		logger.Warn().Msg("no interface enabled, only the data feed will run")
	}
	return append(services, transports...)
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (core.InteractionRepository, srv.Service, error) {
	if !cfg.IsSQLiteSelected() {
		return memory.NewSession(cfg.MemoryCapacity, cfg.ConversationCapacity), nil, nil
	}

	db, err := sqlite.NewDB(ctx, cfg.DBDSN)
	if err != nil {
		return nil, nil, err
	}
	return sqlite.NewSessionRepo(db, cfg.MemoryCapacity, cfg.ConversationCapacity), srv.NewCleanup(db.Close), nil
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	s *stack,
	probe *netstatus.Probe,
	stop func(),
) ([]srv.Service, error) {
	var services []srv.Service

	if cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, s.oracle, s.router)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if cfg.EnableHTTP {
		services = append(services, api.NewServer(ctx, config.NewHTTPConfig(ctx), s.oracle))
	}

	if cfg.EnableTUI {
		dashboard := tui.NewDashboard(ctx, s.oracle, s.router, tui.Options{
			DefaultMode: s.mode,
			Debug:       isDebug(),
			Updates:     s.feed.Updates(),
			Network:     probe.Changes(),
			Online:      probe.Online,
		}, stop)
		services = append(services, dashboard)
	}

	return services, nil
}

func initEnv(runtimePath string) error {
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	return nil
}

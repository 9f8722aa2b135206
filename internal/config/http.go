package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/orac/pkg/log"
)

type HTTPConfig struct {
	Addr            string        `env:"ORAC_HTTP_ADDR" envDefault:"127.0.0.1:8088"`
	ShutdownTimeout time.Duration `env:"ORAC_HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

func NewHTTPConfig(ctx context.Context) *HTTPConfig {
	c := &HTTPConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse HTTP config")
	}
	return c
}

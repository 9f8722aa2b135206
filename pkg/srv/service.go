package srv

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/sandevgo/orac/pkg/log"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Go runs fn in a goroutine. A panic is logged and swallowed so a background
// worker can never take the process down with it.
func Go(ctx context.Context, name string, fn func()) {
	go func() {
		defer Recover(ctx, name)
		fn()
	}()
}

// Recover logs a recovered panic value. It must be deferred directly.
func Recover(ctx context.Context, name string) {
	if r := recover(); r != nil {
		log.FromCtx(ctx).Error().
			Str("worker", name).
			Str("stack", string(debug.Stack())).
			Err(fmt.Errorf("panic: %v", r)).
			Msg("unhandled failure in background worker")
	}
}

func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		Go(ctx, fmt.Sprintf("%T", service), func() {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%T failed to start", service)
			}
		})
	}
}

func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()
	StopServices(context.WithoutCancel(ctx), services)
}

// StopServices shuts services down in reverse start order.
func StopServices(ctx context.Context, services []Service) {
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}

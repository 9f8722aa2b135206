package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sandevgo/orac/internal/config"
	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/internal/service/oracle"
	"github.com/sandevgo/orac/pkg/log"
)

type engine interface {
	core.Session
	ProcessAs(ctx context.Context, mode core.Mode, query string) (*oracle.Result, error)
	Busy() bool
}

// Server exposes the oracle as a JSON API.
type Server struct {
	cfg    *config.HTTPConfig
	srv    *http.Server
	router *gin.Engine
}

func NewServer(ctx context.Context, cfg *config.HTTPConfig, engine engine) *Server {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(requestLogger(ctx), gin.Recovery())

	h := NewHandler(engine)
	r.GET("/health", h.Health)

	api := r.Group("/api/v1")
	{
		api.GET("/streams", h.Streams)
		api.POST("/query", h.Query)
		api.GET("/memory", h.Memory)
		api.GET("/conversation", h.Conversation)
		api.GET("/prediction", h.Prediction)
		api.GET("/mode", h.Mode)
		api.PUT("/mode", h.SetMode)
		api.GET("/examples", h.Examples)
		api.POST("/reset", h.Reset)
	}

	return &Server{
		cfg:    cfg,
		router: r,
		srv: &http.Server{
			Addr:              cfg.Addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext:       func(_ net.Listener) context.Context { return ctx },
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.cfg.Addr).Msg("starting http api")

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func requestLogger(ctx context.Context) gin.HandlerFunc {
	logger := log.FromCtx(ctx)
	return func(c *gin.Context) {
		start := time.Now()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
		c.Next()

		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	}
}

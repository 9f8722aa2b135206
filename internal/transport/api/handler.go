package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/internal/service/oracle"
)

type Handler struct {
	engine engine
}

func NewHandler(engine engine) *Handler {
	return &Handler{engine: engine}
}

type queryRequest struct {
	Query string `json:"query"`
	Mode  string `json:"mode,omitempty"`
}

type queryResponse struct {
	Prediction core.Prediction    `json:"prediction"`
	Reply      core.Message       `json:"reply"`
	Context    []core.ContextItem `json:"context"`
	MemoryID   int64              `json:"memory_id"`
}

type modeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": core.OracName,
		"version": core.OracVersion,
		"busy":    h.engine.Busy(),
	})
}

func (h *Handler) Streams(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"streams": h.engine.Snapshots()})
}

func (h *Handler) Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": core.ErrEmptyQuery.Error()})
		return
	}

	var mode core.Mode
	if req.Mode != "" {
		parsed, err := core.ParseMode(req.Mode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mode = parsed
	}

	res, err := h.engine.ProcessAs(c.Request.Context(), mode, req.Query)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, queryResponse{
		Prediction: res.Prediction,
		Reply:      res.Reply,
		Context:    res.Context,
		MemoryID:   res.Memory.ID,
	})
}

func (h *Handler) Memory(c *gin.Context) {
	items, err := h.engine.Memory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *Handler) Conversation(c *gin.Context) {
	msgs, err := h.engine.Conversation(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs, "total": len(msgs)})
}

func (h *Handler) Prediction(c *gin.Context) {
	p := h.engine.LatestPrediction()
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no prediction yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"prediction": p, "context": h.engine.LatestContext()})
}

func (h *Handler) Mode(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mode": h.engine.Mode(), "modes": core.Modes})
}

func (h *Handler) SetMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode is required"})
		return
	}
	mode, err := core.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.engine.SetMode(mode); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": mode})
}

func (h *Handler) Examples(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"examples": oracle.Examples, "hint": oracle.ExamplesHint})
}

func (h *Handler) Reset(c *gin.Context) {
	if err := h.engine.Reset(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrEmptyQuery), errors.Is(err, core.ErrUnknownMode):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

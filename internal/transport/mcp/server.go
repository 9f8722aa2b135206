package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/orac/internal/core"
	"github.com/sandevgo/orac/internal/service/oracle"
	"github.com/sandevgo/orac/pkg/log"
)

const (
	ToolQuery   = "orac_query"
	ToolStreams = "orac_streams"
	ToolMemory  = "orac_memory"
)

type engine interface {
	core.Session
	ProcessAs(ctx context.Context, mode core.Mode, query string) (*oracle.Result, error)
}

// Server publishes the oracle as MCP tools over stdio.
type Server struct {
	engine engine
	mcp    *server.MCPServer
	in     io.Reader
	out    io.Writer
}

func NewServer(engine engine, in io.Reader, out io.Writer) *Server {
	s := &Server{
		engine: engine,
		in:     in,
		out:    out,
		mcp: server.NewMCPServer(
			core.OracName,
			core.OracVersion,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}
	s.registerTools()
	return s
}

func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("serving mcp over stdio")
	stdio := server.NewStdioServer(s.mcp)
	if err := stdio.Listen(ctx, s.in, s.out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp stdio server failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return nil
}

func (s *Server) registerTools() {
	modes := make([]string, len(core.Modes))
	for i, m := range core.Modes {
		modes[i] = string(m)
	}

	s.mcp.AddTool(mcpproto.NewTool(ToolQuery,
		mcpproto.WithDescription("Ask ORAC a question. Combines the real-time streams with session memory and returns a prediction."),
		mcpproto.WithString("query",
			mcpproto.Required(),
			mcpproto.Description("Natural language question, e.g. \"What's Apple stock doing today?\""),
		),
		mcpproto.WithString("mode",
			mcpproto.Description("Reasoning mode for this answer only, defaults to the session mode"),
			mcpproto.Enum(modes...),
		),
	), s.handleQuery)

	s.mcp.AddTool(mcpproto.NewTool(ToolStreams,
		mcpproto.WithDescription("Current market, weather and news snapshots"),
	), s.handleStreams)

	s.mcp.AddTool(mcpproto.NewTool(ToolMemory,
		mcpproto.WithDescription("Queries remembered in this session, oldest first"),
	), s.handleMemory)
}

func (s *Server) handleQuery(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}

	var mode core.Mode
	if raw := req.GetString("mode", ""); raw != "" {
		if mode, err = core.ParseMode(raw); err != nil {
			return mcpproto.NewToolResultError(err.Error()), nil
		}
	}

	res, err := s.engine.ProcessAs(ctx, mode, query)
	if err != nil {
		return mcpproto.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

func (s *Server) handleStreams(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	return jsonResult(s.engine.Snapshots())
}

func (s *Server) handleMemory(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
	items, err := s.engine.Memory(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResult(items)
}

func jsonResult(v any) (*mcpproto.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return mcpproto.NewToolResultText(string(data)), nil
}

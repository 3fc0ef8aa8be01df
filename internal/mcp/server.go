package mcp

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolAdapter handles a single tool invocation.
type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Registration pairs a tool definition with the adapter serving it.
type Registration struct {
	Tool    mcp.Tool
	Adapter ToolAdapter
}

// Config describes one adapter server: its identity, tool set and
// transport options.
type Config struct {
	Name    string
	Version string
	Tools   []Registration
	Options []server.StreamableHTTPOption
	OnClose func()
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler

	onClose func()
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		cfg.Name,
		cfg.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	for _, reg := range cfg.Tools {
		adapter := reg.Adapter
		mcpServer.AddTool(reg.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return adapter.ToolAdapter(ctx, req)
		})
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: httpServer,
		onClose: cfg.OnClose,
	}
}

// ServeStdio runs the server over stdin/stdout until the client hangs
// up.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.MCP)
}

func (s *Server) Close() {
	if s.onClose != nil {
		s.onClose()
	}
}

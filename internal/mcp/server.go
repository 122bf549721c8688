// Package mcp exposes the converter as stateless MCP tools over stdio.
package mcp

import (
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

type Options struct {
	DefaultUnit     timestamp.Unit
	DefaultTimezone string
	Log             zerolog.Logger
	Now             func() time.Time
}

type Server struct {
	mcpServer *server.MCPServer
	unit      timestamp.Unit
	tz        string
	log       zerolog.Logger
	now       func() time.Time
}

// NewServer builds the MCP server with every tool registered.
func NewServer(version string, opts Options) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"epc",
			version,
			server.WithLogging(),
			server.WithRecovery(),
		),
		unit: opts.DefaultUnit,
		tz:   opts.DefaultTimezone,
		log:  opts.Log,
		now:  opts.Now,
	}
	if !s.unit.Valid() {
		s.unit = timestamp.Seconds
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.registerTools()
	return s
}

// Serve runs the stdio event loop until stdin closes.
func (s *Server) Serve() error {
	s.log.Info().Msg("mcp server listening on stdio")
	return server.ServeStdio(s.mcpServer)
}

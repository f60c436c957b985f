package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"n8nmcp/internal/api"
	"n8nmcp/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Transport names accepted by Config.Transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

const shutdownTimeout = 5 * time.Second

// Config configures the MCP server.
type Config struct {
	Name      string
	Version   string
	Transport string
	// HTTPAddr is the listen address of the http transport.
	HTTPAddr string
}

// Server wraps an mcp-go server with the registered tool providers.
type Server struct {
	config Config
	mcp    *mcpserver.MCPServer
	tools  []mcp.Tool

	// callMu serializes tool invocations.
	callMu sync.Mutex

	mu         sync.Mutex
	httpServer *mcpserver.StreamableHTTPServer
}

// New creates a server exposing the tools of all providers.
func New(cfg Config, providers ...api.ToolProvider) *Server {
	s := &Server{
		config: cfg,
		mcp: mcpserver.NewMCPServer(
			cfg.Name,
			cfg.Version,
			mcpserver.WithToolCapabilities(true),
			mcpserver.WithRecovery(),
		),
	}

	for _, provider := range providers {
		for _, meta := range provider.GetTools() {
			tool := convertToMCPTool(meta)
			s.mcp.AddTool(tool, s.toolHandler(provider, meta.Name))
			s.tools = append(s.tools, tool)
		}
	}
	logging.Info("Server", "Registered %d tools", len(s.tools))

	return s
}

// Tools returns the registered tool definitions in registration order.
func (s *Server) Tools() []mcp.Tool {
	return s.tools
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// Serve runs the configured transport until ctx is cancelled or the
// transport ends. A clean end returns nil.
func (s *Server) Serve(ctx context.Context) error {
	switch s.config.Transport {
	case TransportHTTP:
		return s.serveHTTP(ctx)
	case TransportStdio, "":
		return s.ServeStdio(ctx, os.Stdin, os.Stdout)
	default:
		return fmt.Errorf("unknown transport %q", s.config.Transport)
	}
}

// ServeStdio serves JSON-RPC over in and out until ctx is cancelled or in is
// exhausted.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	logging.Info("Server", "Starting MCP server %s %s on stdio", s.config.Name, s.config.Version)

	stdio := mcpserver.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))

	err := stdio.Listen(ctx, in, out)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("stdio transport: %w", err)
}

func (s *Server) serveHTTP(ctx context.Context) error {
	logging.Info("Server", "Starting MCP server %s %s with streamable-http transport on %s",
		s.config.Name, s.config.Version, s.config.HTTPAddr)

	httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
	s.mu.Lock()
	s.httpServer = httpServer
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start(s.config.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http transport: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// Shutdown stops the http transport if it is running. The stdio transport
// stops with its context.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	httpServer := s.httpServer
	s.httpServer = nil
	s.mu.Unlock()

	if httpServer == nil {
		return nil
	}
	logging.Info("Server", "Stopping streamable HTTP server")
	if err := httpServer.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to shut down http transport: %w", err)
	}
	return nil
}

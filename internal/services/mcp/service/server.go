package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/louisbranch/lootbag/internal/platform/branding"
	"github.com/louisbranch/lootbag/internal/services/loot/app"
	"github.com/louisbranch/lootbag/internal/services/loot/domain/catalog"
	"github.com/louisbranch/lootbag/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// serverVersion identifies the MCP server version.
const serverVersion = "0.1.0"

// serverName identifies this MCP server to clients.
var serverName = branding.AppName + " MCP"

// Config configures the MCP server.
type Config struct {
	// Locale is the default locale for sessions that do not pick one.
	Locale string
	// CatalogFile optionally replaces the built-in catalog with a JSON document.
	CatalogFile string
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	ctx       domain.Context
	ctxMu     sync.RWMutex
}

// New creates a configured MCP server backed by an in-process loot service.
func New(cfg Config) (*Server, error) {
	svc, err := newLootService(cfg)
	if err != nil {
		return nil, err
	}
	return newServer(svc)
}

func newLootService(cfg Config) (*app.Service, error) {
	opts := []app.Option{}
	if path := strings.TrimSpace(cfg.CatalogFile); path != "" {
		cat, err := catalog.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load catalog %s: %w", path, err)
		}
		opts = append(opts, app.WithCatalog(cat))
	}
	if locale := strings.TrimSpace(cfg.Locale); locale != "" {
		opts = append(opts, app.WithLocale(locale))
	}
	return app.NewService(opts...), nil
}

// newServer creates MCP tool/resource handler bindings once and keeps shared
// context for protocol state updates.
func newServer(svc domain.LootService) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("loot service is required")
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		CompletionHandler: completionHandler,
	})
	server := &Server{mcpServer: mcpServer}

	for _, module := range newRegistrationModules(server, svc) {
		if err := module.register(serverRegistrationAdapter{server: mcpServer}); err != nil {
			return nil, fmt.Errorf("register MCP module %q: %w", module.name, err)
		}
	}
	return server, nil
}

// completionHandler handles completion/complete requests with empty results.
// The server exposes no prompts or resource templates to complete against.
func completionHandler(_ context.Context, _ *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	return &mcp.CompleteResult{
		Completion: mcp.CompletionResultDetails{
			Values: []string{},
		},
	}, nil
}

// Run is the service entrypoint for MCP and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	return runWithTransport(ctx, cfg, &mcp.StdioTransport{})
}

func runWithTransport(ctx context.Context, cfg Config, transport mcp.Transport) error {
	server, err := New(cfg)
	if err != nil {
		return err
	}
	return server.serveWithTransport(ctx, transport)
}

// Serve starts the MCP server on stdio and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// setContext updates the server's context state.
func (s *Server) setContext(ctx domain.Context) {
	if s == nil {
		return
	}
	s.ctxMu.Lock()
	defer s.ctxMu.Unlock()
	s.ctx = ctx
}

// getContext returns the server's current context state.
func (s *Server) getContext() domain.Context {
	if s == nil {
		return domain.Context{}
	}
	s.ctxMu.RLock()
	defer s.ctxMu.RUnlock()
	return s.ctx
}

// serveWithTransport starts the MCP server using the provided transport.
// Cancellation is a normal shutdown and is not reported as an error.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

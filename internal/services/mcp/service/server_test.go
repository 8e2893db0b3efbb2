package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/lootbag/internal/services/loot/app"
	"github.com/louisbranch/lootbag/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func decodeStructuredContent[T any](t *testing.T, value any) T {
	t.Helper()
	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var output T
	if err := json.Unmarshal(data, &output); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	return output
}

// connect serves srv on an in-memory transport and returns a client session.
func connect(t *testing.T, srv *Server) *mcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})
	return session
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc := app.NewService(
		app.WithSeedGenerator(func() (int64, error) { return 3, nil }),
	)
	srv, err := newServer(svc)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	if result == nil {
		t.Fatalf("call %s: nil result", name)
	}
	return result
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	var parts []string
	for _, c := range result.Content {
		if text, ok := c.(*mcp.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func TestServerListsLootTools(t *testing.T) {
	session := connect(t, newTestServer(t))

	result, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	want := []string{
		"loot_apply_preset",
		"loot_build",
		"loot_catalog",
		"loot_clear",
		"loot_draw",
		"loot_history",
		"loot_remaining",
		"loot_reset",
		"loot_session_create",
		"loot_set_count",
	}
	slices.Sort(names)
	if !slices.Equal(names, want) {
		t.Fatalf("tools = %v, want %v", names, want)
	}
}

func TestServerPlaysThroughCurrentSession(t *testing.T) {
	session := connect(t, newTestServer(t))

	created := callTool(t, session, "loot_session_create", map[string]any{"preset": "sample"})
	if created.IsError {
		t.Fatalf("create failed: %s", textOf(t, created))
	}
	sess := decodeStructuredContent[domain.SessionResult](t, created.StructuredContent)
	if sess.ID == "" || sess.Seed != 3 || sess.ConfiguredSize != 17 {
		t.Fatalf("session = %+v", sess)
	}

	built := callTool(t, session, "loot_build", nil)
	if built.IsError {
		t.Fatalf("build failed: %s", textOf(t, built))
	}
	build := decodeStructuredContent[domain.BuildResult](t, built.StructuredContent)
	if build.Size != 17 || build.SessionID != sess.ID {
		t.Fatalf("build = %+v", build)
	}

	drawn := callTool(t, session, "loot_draw", map[string]any{"count": 4})
	if drawn.IsError {
		t.Fatalf("draw failed: %s", textOf(t, drawn))
	}
	draw := decodeStructuredContent[domain.DrawResult](t, drawn.StructuredContent)
	if len(draw.Tokens) != 4 || draw.Remaining != 13 {
		t.Fatalf("draw = %+v", draw)
	}

	tooMany := callTool(t, session, "loot_draw", map[string]any{"count": 14})
	if !tooMany.IsError {
		t.Fatalf("expected tool error, got %+v", tooMany)
	}
	if got := textOf(t, tooMany); !strings.Contains(got, "Only 13 remaining") {
		t.Fatalf("error text = %q", got)
	}

	history := callTool(t, session, "loot_history", nil)
	if history.IsError {
		t.Fatalf("history failed: %s", textOf(t, history))
	}
	entries := decodeStructuredContent[domain.HistoryResult](t, history.StructuredContent)
	if len(entries.Entries) != 1 || entries.Entries[0].Seq != 1 {
		t.Fatalf("history = %+v", entries)
	}

	resource, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: "context://current"})
	if err != nil {
		t.Fatalf("read context: %v", err)
	}
	if len(resource.Contents) != 1 || !strings.Contains(resource.Contents[0].Text, sess.ID) {
		t.Fatalf("context = %+v", resource.Contents)
	}
}

func TestServerToolErrorsAreLocalized(t *testing.T) {
	session := connect(t, newTestServer(t))

	created := callTool(t, session, "loot_session_create", map[string]any{"locale": "pt-BR"})
	if created.IsError {
		t.Fatalf("create failed: %s", textOf(t, created))
	}
	result := callTool(t, session, "loot_build", nil)
	if !result.IsError {
		t.Fatalf("expected empty composition error, got %+v", result)
	}
	if got := textOf(t, result); strings.Contains(got, "Please add") {
		t.Fatalf("error not localized: %q", got)
	}
}

func TestNewServerRequiresService(t *testing.T) {
	if _, err := newServer(nil); err == nil {
		t.Fatal("expected error for nil service")
	}
}

func TestAddToolRejectsUnknownHandler(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "v0"}, nil)
	err := addTool(server, &mcp.Tool{Name: "bogus"}, func() {})
	if err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("err = %v", err)
	}
}

func TestNewRejectsMissingCatalog(t *testing.T) {
	_, err := New(Config{CatalogFile: filepath.Join(t.TempDir(), "missing.json")})
	if err == nil {
		t.Fatal("expected error for missing catalog file")
	}
}

func TestNewLoadsCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{
  "templates": [{"id": "gem", "label": "Gem", "payload": {"gem": 1}}],
  "categories": [{"id": "gem", "label": "Gem", "kind": "direct"}]
}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	srv, err := New(Config{CatalogFile: path, Locale: "pt-BR"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	session := connect(t, srv)

	result := callTool(t, session, "loot_catalog", nil)
	if result.IsError {
		t.Fatalf("catalog failed: %s", textOf(t, result))
	}
	out := decodeStructuredContent[domain.CatalogResult](t, result.StructuredContent)
	if out.Locale != "pt-BR" || len(out.Categories) != 1 || out.Categories[0].CategoryID != "gem" {
		t.Fatalf("catalog = %+v", out)
	}
}

func TestRunWithTransportStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- runWithTransport(ctx, Config{}, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer clientCancel()
	session, err := client.Connect(clientCtx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	defer session.Close()

	cancel()

	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

func TestServeWithTransportRequiresServer(t *testing.T) {
	var srv *Server
	if err := srv.serveWithTransport(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil server")
	}
}

func TestContextAccessors(t *testing.T) {
	srv := &Server{}
	srv.setContext(domain.Context{SessionID: "abc"})
	if got := srv.getContext().SessionID; got != "abc" {
		t.Fatalf("session = %q", got)
	}
	var nilServer *Server
	nilServer.setContext(domain.Context{SessionID: "x"})
	if got := nilServer.getContext(); got.SessionID != "" {
		t.Fatalf("nil server context = %+v", got)
	}
}

package service

import (
	"fmt"

	"github.com/louisbranch/lootbag/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	sessionToolsModuleName     = "session-tools"
	compositionToolsModuleName = "composition-tools"
	playToolsModuleName        = "play-tools"
	catalogToolsModuleName     = "catalog-tools"
	contextResourceModuleName  = "context-resources"
)

type registrationModule struct {
	name     string
	register func(registrationTarget) error
}

type registrationTarget interface {
	AddTool(*mcp.Tool, any) error
	AddResource(*mcp.Resource, mcp.ResourceHandler)
}

type serverRegistrationAdapter struct {
	server *mcp.Server
}

func (r serverRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addTool(r.server, tool, handler)
}

func (r serverRegistrationAdapter) AddResource(resource *mcp.Resource, handler mcp.ResourceHandler) {
	r.server.AddResource(resource, handler)
}

type toolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newToolRegistrar[I any, O any]() toolRegistrar {
	return toolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var toolRegistrars = []toolRegistrar{
	newToolRegistrar[domain.SessionCreateInput, domain.SessionResult](),
	newToolRegistrar[domain.SessionRefInput, domain.SessionResult](),
	newToolRegistrar[domain.SetCountInput, domain.SessionResult](),
	newToolRegistrar[domain.ApplyPresetInput, domain.SessionResult](),
	newToolRegistrar[domain.SessionRefInput, domain.BuildResult](),
	newToolRegistrar[domain.DrawInput, domain.DrawResult](),
	newToolRegistrar[domain.SessionRefInput, domain.RemainingResult](),
	newToolRegistrar[domain.HistoryInput, domain.HistoryResult](),
	newToolRegistrar[domain.CatalogInput, domain.CatalogResult](),
}

func addTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range toolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("mcp registration adapter does not support handler type %T for tool %q", handler, toolName)
}

func newRegistrationModules(server *Server, svc domain.LootService) []registrationModule {
	return []registrationModule{
		{
			name: sessionToolsModuleName,
			register: func(registrar registrationTarget) error {
				return registerTools(registrar,
					toolRegistration{domain.SessionCreateTool(), domain.SessionCreateHandler(svc, server.setContext)},
					toolRegistration{domain.ResetTool(), domain.ResetHandler(svc, server.getContext)},
				)
			},
		},
		{
			name: compositionToolsModuleName,
			register: func(registrar registrationTarget) error {
				return registerTools(registrar,
					toolRegistration{domain.SetCountTool(), domain.SetCountHandler(svc, server.getContext)},
					toolRegistration{domain.ApplyPresetTool(), domain.ApplyPresetHandler(svc, server.getContext)},
					toolRegistration{domain.ClearTool(), domain.ClearHandler(svc, server.getContext)},
				)
			},
		},
		{
			name: playToolsModuleName,
			register: func(registrar registrationTarget) error {
				return registerTools(registrar,
					toolRegistration{domain.BuildTool(), domain.BuildHandler(svc, server.getContext)},
					toolRegistration{domain.DrawTool(), domain.DrawHandler(svc, server.getContext)},
					toolRegistration{domain.RemainingTool(), domain.RemainingHandler(svc, server.getContext)},
					toolRegistration{domain.HistoryTool(), domain.HistoryHandler(svc, server.getContext)},
				)
			},
		},
		{
			name: catalogToolsModuleName,
			register: func(registrar registrationTarget) error {
				return registerTools(registrar,
					toolRegistration{domain.CatalogTool(), domain.CatalogHandler(svc)},
				)
			},
		},
		{
			name: contextResourceModuleName,
			register: func(registrar registrationTarget) error {
				registrar.AddResource(domain.ContextResource(), domain.ContextResourceHandler(server.getContext))
				return nil
			},
		},
	}
}

type toolRegistration struct {
	tool    *mcp.Tool
	handler any
}

func registerTools(registrar registrationTarget, registrations ...toolRegistration) error {
	for _, r := range registrations {
		if err := registrar.AddTool(r.tool, r.handler); err != nil {
			return err
		}
	}
	return nil
}

package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/lootbag/internal/platform/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const contextResourceURI = "context://current"

// Context is the MCP server state shared across tool calls.
type Context struct {
	// SessionID is the session tools use when a call omits session_id.
	SessionID string
}

// resolveSessionID prefers the explicit ID and falls back to the context.
func resolveSessionID(explicit string, getContext func() Context) (string, error) {
	if id := strings.TrimSpace(explicit); id != "" {
		return id, nil
	}
	if getContext != nil {
		if id := getContext().SessionID; id != "" {
			return id, nil
		}
	}
	return "", apperrors.WithMetadata(apperrors.CodeNotFound, "session_id is required", map[string]string{
		"Session": "",
	})
}

// ContextResourcePayload is the readable form of the current context.
type ContextResourcePayload struct {
	Context struct {
		SessionID *string `json:"session_id"`
	} `json:"context"`
}

// ContextResource defines the MCP resource for the current context.
func ContextResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "context_current",
		Title:       "Current Context",
		Description: "Readable current MCP context (session_id)",
		MIMEType:    "application/json",
		URI:         contextResourceURI,
	}
}

// ContextResourceHandler returns a readable current context resource.
func ContextResourceHandler(getContext func() Context) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if getContext == nil {
			return nil, fmt.Errorf("context getter function is not configured")
		}
		uri := contextResourceURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		if uri != contextResourceURI {
			return nil, fmt.Errorf("invalid URI: expected %s, got %q", contextResourceURI, uri)
		}

		payload := ContextResourcePayload{}
		if current := getContext(); current.SessionID != "" {
			payload.Context.SessionID = &current.SessionID
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal context: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: uri, MIMEType: "application/json", Text: string(data)},
			},
		}, nil
	}
}

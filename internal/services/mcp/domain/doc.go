// Package domain translates MCP tool calls into loot bag operations.
//
// Each tool has an input and result type, a tool definition, and a handler
// that calls the loot application service. Handlers fall back to the
// current session from Context when a call omits session_id, so an agent
// can create a session once and keep drawing from it.
package domain

// Package branding holds product naming shared by commands and servers.
package branding

// AppName is the product name shown to players and MCP clients.
const AppName = "Lootbag"

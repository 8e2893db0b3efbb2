// Package app is the loot application service.
//
// It owns a registry of bag sessions keyed by generated IDs, resolves seeds
// so runs can be replayed, traces every operation, and renders results into
// localized views for the MCP tools, the REPL, and scenario scripts.
//
// The domain bag stays lenient about unknown identifiers. This layer is
// stricter: unknown categories and presets are reported as errors, and
// ignored preset keys are surfaced on the returned view.
package app

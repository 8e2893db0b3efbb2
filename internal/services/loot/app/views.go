package app

import "time"

// CountView is one category row of a composition.
type CountView struct {
	CategoryID string `json:"category_id"`
	Label      string `json:"label"`
	Kind       string `json:"kind"`
	Count      int    `json:"count"`
	Max        int    `json:"max,omitempty"`
}

// SessionView describes a session's configuration and pool state.
type SessionView struct {
	ID             string      `json:"id"`
	Seed           int64       `json:"seed"`
	SeedSource     string      `json:"seed_source"`
	Locale         string      `json:"locale"`
	ConfiguredSize int         `json:"configured_size"`
	PoolSize       int         `json:"pool_size"`
	Composition    []CountView `json:"composition"`
	// Ignored lists keys the last operation skipped.
	Ignored []string `json:"ignored,omitempty"`
}

// WarningView is a localized build shortfall.
type WarningView struct {
	CategoryID string `json:"category_id"`
	Requested  int    `json:"requested"`
	Available  int    `json:"available"`
	Message    string `json:"message"`
}

// BuildView is the result of building the pool.
type BuildView struct {
	SessionID string        `json:"session_id"`
	Size      int           `json:"size"`
	Warnings  []WarningView `json:"warnings,omitempty"`
}

// TokenView is a drawn or listed token.
type TokenView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// DrawView is the result of a draw.
type DrawView struct {
	SessionID string      `json:"session_id"`
	Tokens    []TokenView `json:"tokens"`
	Remaining int         `json:"remaining"`
}

// RemainingRow is one label of the remaining-count report.
type RemainingRow struct {
	CategoryID string `json:"category_id,omitempty"`
	Label      string `json:"label"`
	Count      int    `json:"count"`
	Fallback   bool   `json:"fallback,omitempty"`
}

// RemainingView reports the pool grouped by category label.
type RemainingView struct {
	SessionID string         `json:"session_id"`
	Total     int            `json:"total"`
	Rows      []RemainingRow `json:"rows"`
}

// EntryView is one draw log entry.
type EntryView struct {
	Seq       int         `json:"seq"`
	Timestamp time.Time   `json:"timestamp"`
	Tokens    []TokenView `json:"tokens"`
}

// HistoryView is the filtered draw log, most recent first, plus payload
// totals over the whole log.
type HistoryView struct {
	SessionID string         `json:"session_id"`
	Entries   []EntryView    `json:"entries"`
	Totals    map[string]int `json:"totals"`
}

// CatalogView lists categories and presets for display.
type CatalogView struct {
	Locale     string      `json:"locale"`
	Categories []CountView `json:"categories"`
	Presets    []string    `json:"presets"`
}

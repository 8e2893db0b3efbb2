// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// TelemetryShutdown caps how long a command waits for pending spans to flush.
const TelemetryShutdown = 5 * time.Second

// ScenarioStep caps a single scripted scenario step.
const ScenarioStep = 10 * time.Second

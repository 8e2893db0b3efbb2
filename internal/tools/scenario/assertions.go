package scenario

import (
	"fmt"
	"log"

	apperrors "github.com/louisbranch/lootbag/internal/platform/errors"
)

// AssertionMode selects how failed expectations are reported.
type AssertionMode int

const (
	// AssertionStrict fails the scenario on the first failed expectation.
	AssertionStrict AssertionMode = iota
	// AssertionLogOnly logs failed expectations and keeps running.
	AssertionLogOnly
)

// String returns the flag spelling of the mode.
func (m AssertionMode) String() string {
	if m == AssertionLogOnly {
		return "log"
	}
	return "strict"
}

// Assertions reports expectation failures according to Mode.
type Assertions struct {
	Mode   AssertionMode
	Logger *log.Logger
}

// Failf reports a failure that no mode can skip, such as a malformed step.
func (a Assertions) Failf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Assertf reports a failed expectation. It returns an error in strict mode
// and logs it otherwise.
func (a Assertions) Assertf(format string, args ...any) error {
	reason := fmt.Sprintf(format, args...)
	if a.Mode == AssertionLogOnly {
		if a.Logger != nil {
			a.Logger.Printf("expectation failed: %s", reason)
		}
		return nil
	}
	return apperrors.WithMetadata(apperrors.CodeScenarioExpectation, reason, map[string]string{
		"Reason": reason,
	})
}

package scenario

// scenarioState tracks the session a scenario run is driving.
type scenarioState struct {
	sessionID string
	seed      *uint64
	locale    string
	// expectErr is the error code the next step must fail with.
	expectErr string
}

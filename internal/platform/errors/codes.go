// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Draw errors
	CodeDrawInvalidRequest     Code = "DRAW_INVALID_REQUEST"
	CodeDrawInsufficientSupply Code = "DRAW_INSUFFICIENT_SUPPLY"

	// Build conditions. A shortfall never fails a build; the code renders the warning.
	CodeBuildShortfall   Code = "BUILD_SHORTFALL"
	CodeCompositionEmpty Code = "COMPOSITION_EMPTY"

	// Catalog and lookup errors
	CodeCatalogInvalid   Code = "CATALOG_INVALID"
	CodePresetNotFound   Code = "PRESET_NOT_FOUND"
	CodeCategoryNotFound Code = "CATEGORY_NOT_FOUND"
	CodeNotFound         Code = "NOT_FOUND"

	// Query, random and tooling errors
	CodeFilterInvalid       Code = "FILTER_INVALID"
	CodeSeedOutOfRange      Code = "SEED_OUT_OF_RANGE"
	CodeScenarioExpectation Code = "SCENARIO_EXPECTATION"
)

// Retryable reports whether the caller may retry the same session with a
// smaller or different request.
func (c Code) Retryable() bool {
	switch c {
	case CodeDrawInvalidRequest,
		CodeDrawInsufficientSupply,
		CodeCompositionEmpty,
		CodePresetNotFound,
		CodeCategoryNotFound,
		CodeFilterInvalid:
		return true
	default:
		return false
	}
}

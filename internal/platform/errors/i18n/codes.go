package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown                = "UNKNOWN"
	CodeDrawInvalidRequest     = "DRAW_INVALID_REQUEST"
	CodeDrawInsufficientSupply = "DRAW_INSUFFICIENT_SUPPLY"
	CodeBuildShortfall         = "BUILD_SHORTFALL"
	CodeCompositionEmpty       = "COMPOSITION_EMPTY"
	CodeCatalogInvalid         = "CATALOG_INVALID"
	CodePresetNotFound         = "PRESET_NOT_FOUND"
	CodeCategoryNotFound       = "CATEGORY_NOT_FOUND"
	CodeNotFound               = "NOT_FOUND"
	CodeFilterInvalid          = "FILTER_INVALID"
	CodeSeedOutOfRange         = "SEED_OUT_OF_RANGE"
	CodeScenarioExpectation    = "SCENARIO_EXPECTATION"
)

// AllCodes lists every code that must have a base-locale template.
var AllCodes = []Code{
	CodeUnknown,
	CodeDrawInvalidRequest,
	CodeDrawInsufficientSupply,
	CodeBuildShortfall,
	CodeCompositionEmpty,
	CodeCatalogInvalid,
	CodePresetNotFound,
	CodeCategoryNotFound,
	CodeNotFound,
	CodeFilterInvalid,
	CodeSeedOutOfRange,
	CodeScenarioExpectation,
}

package errors

import (
	"errors"

	"github.com/louisbranch/lootbag/internal/platform/errors/i18n"
)

// DefaultLocale is the default locale for error messages.
const DefaultLocale = "en-US"

// Localize renders the user-facing message for err in the given locale,
// defaulting to en-US when the locale is empty. Domain errors are rendered
// from the error catalog with their metadata; anything else gets a generic
// message so internal details never reach the player.
func Localize(err error, locale string) string {
	if err == nil {
		return ""
	}
	if locale == "" {
		locale = DefaultLocale
	}

	catalog := i18n.GetCatalog(locale)
	var appErr *Error
	if errors.As(err, &appErr) {
		return catalog.Format(string(appErr.Code), appErr.Metadata)
	}
	return catalog.Format(string(CodeUnknown), nil)
}

// Render formats the catalog message for a code that is not carried by an
// error value, such as a build shortfall warning.
func Render(code Code, metadata map[string]string, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}
	return i18n.GetCatalog(locale).Format(string(code), metadata)
}

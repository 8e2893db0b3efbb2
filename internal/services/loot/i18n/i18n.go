package i18n

import (
	"strings"

	"github.com/louisbranch/lootbag/internal/platform/i18n/catalog"
	lootcatalog "github.com/louisbranch/lootbag/internal/services/loot/domain/catalog"
	"golang.org/x/text/message"
)

const (
	namespace      = "loot"
	categoryPrefix = "loot.category."
	templatePrefix = "loot.template."
	uiPrefix       = "loot.ui."
)

// baseLabels holds the base-locale loot messages. A catalog label is only
// translated while it still equals the base text for its ID.
var baseLabels = catalog.Default().NamespaceMessages(catalog.BaseLocale, namespace)

// Localizer renders loot text for one locale.
type Localizer struct {
	locale  string
	printer *message.Printer
}

// New returns a Localizer for the best supported match of locale.
func New(locale string) *Localizer {
	bundle := catalog.Default()
	tag := bundle.Tag(strings.TrimSpace(locale))
	return &Localizer{
		locale:  tag.String(),
		printer: message.NewPrinter(tag),
	}
}

// Locale returns the resolved locale.
func (l *Localizer) Locale() string {
	return l.locale
}

// CategoryLabel returns the localized category label, or the catalog's own
// label when it differs from the built-in text for that ID.
func (l *Localizer) CategoryLabel(c lootcatalog.Category) string {
	return l.lookup(categoryPrefix+c.ID, c.Label)
}

// TemplateLabel returns the localized template label.
func (l *Localizer) TemplateLabel(t lootcatalog.Template) string {
	return l.lookup(templatePrefix+t.ID, t.Label)
}

// TokenLabel resolves a template ID through cat, falling back to the ID.
func (l *Localizer) TokenLabel(cat *lootcatalog.Catalog, id string) string {
	t, ok := cat.Template(id)
	if !ok {
		return id
	}
	return l.TemplateLabel(t)
}

// TokenLabels maps TokenLabel over ids.
func (l *Localizer) TokenLabels(cat *lootcatalog.Catalog, ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = l.TokenLabel(cat, id)
	}
	return out
}

// Text formats the interface message loot.ui.<name>.
func (l *Localizer) Text(name string, args ...any) string {
	return l.printer.Sprintf(uiPrefix+name, args...)
}

func (l *Localizer) lookup(key, label string) string {
	base, ok := baseLabels[key]
	if !ok || base != label {
		return label
	}
	return l.printer.Sprintf(key)
}

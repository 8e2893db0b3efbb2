// Package i18n localizes loot labels and interface text.
//
// Keys live in the embedded platform catalog under the loot namespace:
// loot.category.<id>, loot.template.<id>, and loot.ui.<name>. Catalog
// entries without a translation fall back to the catalog's own label.
package i18n

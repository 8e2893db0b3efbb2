package bag

import (
	"maps"
	"slices"
)

// SetCount sets the requested count for a known category. It reports false
// and changes nothing when the category is unknown or n is negative.
func (b *Bag) SetCount(categoryID string, n int) bool {
	if n < 0 {
		return false
	}
	if _, ok := b.composition[categoryID]; !ok {
		return false
	}
	b.composition[categoryID] = n
	return true
}

// Count returns the requested count for a category.
func (b *Bag) Count(categoryID string) int {
	return b.composition[categoryID]
}

// Composition returns a copy of the requested counts.
func (b *Bag) Composition() map[string]int {
	return maps.Clone(b.composition)
}

// ConfiguredSize returns the sum of all requested counts.
func (b *Bag) ConfiguredSize() int {
	total := 0
	for _, n := range b.composition {
		total += n
	}
	return total
}

// ClearCounts sets every category count to zero.
func (b *Bag) ClearCounts() {
	for id := range b.composition {
		b.composition[id] = 0
	}
}

// ApplyPreset clears the composition and then sets each known category from
// counts. Keys that are not categories, or carry negative counts, are skipped
// and returned sorted.
func (b *Bag) ApplyPreset(counts map[string]int) []string {
	b.ClearCounts()
	var ignored []string
	for id, n := range counts {
		if !b.SetCount(id, n) {
			ignored = append(ignored, id)
		}
	}
	slices.Sort(ignored)
	return ignored
}

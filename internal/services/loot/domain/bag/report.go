package bag

import "github.com/louisbranch/lootbag/internal/services/loot/domain/catalog"

// LabelCount is one row of a remaining-count report.
type LabelCount struct {
	// CategoryID is empty for fallback rows.
	CategoryID string
	Label      string
	Count      int
	// Fallback marks a token no category accounts for, counted under its
	// raw template ID.
	Fallback bool
}

// Tally is an ordered remaining-count report: category labels in catalog
// order, then fallback rows in first-seen order.
type Tally []LabelCount

// Map returns the report keyed by label.
func (t Tally) Map() map[string]int {
	out := make(map[string]int, len(t))
	for _, row := range t {
		out[row.Label] += row.Count
	}
	return out
}

// Total sums every row.
func (t Tally) Total() int {
	total := 0
	for _, row := range t {
		total += row.Count
	}
	return total
}

// RemainingCount counts pool tokens equal to templateID.
func (b *Bag) RemainingCount(templateID string) int {
	n := 0
	for _, id := range b.pool {
		if id == templateID {
			n++
		}
	}
	return n
}

// RemainingCounts aggregates the pool by category label.
func (b *Bag) RemainingCounts() Tally {
	return Aggregate(b.catalog, b.pool)
}

// Aggregate rolls tokens up under their owning category's label. Every
// category starts at zero; tokens with no owner get a fallback row keyed by
// their raw ID.
func Aggregate(cat *catalog.Catalog, tokens []string) Tally {
	var tally Tally
	rows := make(map[string]int)
	for _, c := range cat.Categories() {
		if _, ok := rows[c.Label]; ok {
			continue
		}
		rows[c.Label] = len(tally)
		tally = append(tally, LabelCount{CategoryID: c.ID, Label: c.Label})
	}
	for _, id := range tokens {
		key := id
		owner, ok := cat.OwnerOf(id)
		if ok {
			key = owner.Label
		}
		i, seen := rows[key]
		if !seen {
			i = len(tally)
			rows[key] = i
			tally = append(tally, LabelCount{Label: id, Fallback: true})
		}
		tally[i].Count++
	}
	return tally
}

// DrawnTotals sums template payloads over every token drawn since the last
// build or reset.
func (b *Bag) DrawnTotals() map[string]int {
	totals := make(map[string]int)
	for _, entry := range b.log {
		for _, id := range entry.Draws {
			t, ok := b.catalog.Template(id)
			if !ok {
				continue
			}
			for k, v := range t.Payload {
				totals[k] += v
			}
		}
	}
	return totals
}

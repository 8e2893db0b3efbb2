package bag

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/louisbranch/lootbag/internal/core/random"
	apperrors "github.com/louisbranch/lootbag/internal/platform/errors"
	"github.com/louisbranch/lootbag/internal/services/loot/domain/catalog"
)

// Shortfall reports a random category asked for more tokens than its supply
// holds. The build still uses every available token.
type Shortfall struct {
	CategoryID string
	Label      string
	Requested  int
	Available  int
}

// Err converts the shortfall into a BUILD_SHORTFALL error for rendering.
func (s Shortfall) Err() error {
	return apperrors.WithMetadata(apperrors.CodeBuildShortfall,
		fmt.Sprintf("requested %d %s but only %d available", s.Requested, s.Label, s.Available),
		map[string]string{
			"Category":  s.CategoryID,
			"Label":     s.Label,
			"Requested": strconv.Itoa(s.Requested),
			"Available": strconv.Itoa(s.Available),
		})
}

// BuildResult is the outcome of Build.
type BuildResult struct {
	// Size is the number of tokens in the new pool.
	Size     int
	Warnings []Shortfall
}

// Build replaces the pool from the current composition and clears the log.
//
// Direct categories add their template count times. Random categories shuffle
// a copy of their supply and take the first count cards, or the whole supply
// with a Shortfall when count exceeds it.
func (b *Bag) Build() BuildResult {
	var (
		pool     []string
		warnings []Shortfall
	)
	for _, cat := range b.catalog.Categories() {
		count := b.composition[cat.ID]
		if count <= 0 {
			continue
		}
		switch cat.Kind {
		case catalog.KindDirect:
			pool = append(pool, slices.Repeat([]string{cat.ID}, count)...)
		case catalog.KindRandom:
			supply, ok := b.catalog.Supply(cat.ID)
			if !ok {
				continue
			}
			cards := supply.Cards
			random.Shuffle(b.src, cards)
			if count > len(cards) {
				warnings = append(warnings, Shortfall{
					CategoryID: cat.ID,
					Label:      cat.Label,
					Requested:  count,
					Available:  len(cards),
				})
				count = len(cards)
			}
			pool = append(pool, cards[:count]...)
		}
	}

	b.pool = pool
	b.log = nil
	b.seq = 0
	return BuildResult{Size: len(pool), Warnings: warnings}
}

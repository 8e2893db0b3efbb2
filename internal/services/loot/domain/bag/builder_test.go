package bag

import (
	"slices"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/lootbag/internal/platform/errors"
	"github.com/louisbranch/lootbag/internal/services/loot/domain/catalog"
)

func TestBuildSingleMoneyToken(t *testing.T) {
	b := newSeededBag(t, 11)
	b.SetCount("money", 1)
	result := b.Build()
	if result.Size != 1 || len(result.Warnings) != 0 {
		t.Fatalf("result = %+v", result)
	}
	pool := b.Pool()
	if len(pool) != 1 || !slices.Contains([]string{"gold_1", "gold_2", "gold_3"}, pool[0]) {
		t.Fatalf("pool = %v", pool)
	}
	drawn, err := b.Draw(1)
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if b.PoolSize() != 0 {
		t.Fatalf("pool size = %d, want 0", b.PoolSize())
	}
	log := b.Log()
	if len(log) != 1 || len(log[0].Draws) != 1 || log[0].Draws[0] != drawn[0] {
		t.Fatalf("log = %+v", log)
	}
}

func TestBuildShortfallUsesWholeSupply(t *testing.T) {
	b := newSeededBag(t, 3)
	b.SetCount("money", 20)
	result := b.Build()
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %+v, want 1", result.Warnings)
	}
	w := result.Warnings[0]
	if w.CategoryID != "money" || w.Label != "Money" || w.Requested != 20 || w.Available != 9 {
		t.Fatalf("warning = %+v", w)
	}
	if b.PoolSize() != 9 {
		t.Fatalf("pool size = %d, want 9", b.PoolSize())
	}
	pool := b.Pool()
	slices.Sort(pool)
	supply, _ := catalog.Default().Supply("money")
	want := supply.Cards
	slices.Sort(want)
	if !slices.Equal(pool, want) {
		t.Fatalf("pool = %v, want whole supply %v", pool, want)
	}

	err := w.Err()
	if !apperrors.IsCode(err, apperrors.CodeBuildShortfall) {
		t.Fatalf("warning error code = %s", apperrors.GetCode(err))
	}
	if meta := apperrors.GetMetadata(err); meta["Requested"] != "20" || meta["Available"] != "9" {
		t.Fatalf("metadata = %v", meta)
	}
	if !strings.Contains(err.Error(), "Money") {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestBuildConservation(t *testing.T) {
	b := newSeededBag(t, 8)
	counts := map[string]int{"money": 12, "lumber": 8, "metal": 3, "hide": 0, "axenut": 4, "random_item": 2}
	b.ApplyPreset(counts)
	result := b.Build()

	want := 0
	for id, n := range counts {
		cat, _ := catalog.Default().Category(id)
		if cat.Kind == catalog.KindRandom && n > cat.Max {
			n = cat.Max
		}
		want += n
	}
	if b.PoolSize() != want || result.Size != want {
		t.Fatalf("pool size = %d (result %d), want %d", b.PoolSize(), result.Size, want)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].CategoryID != "money" {
		t.Fatalf("warnings = %+v", result.Warnings)
	}
	if got := b.RemainingCount("axenut"); got != 4 {
		t.Fatalf("axenut = %d, want 4", got)
	}
	for _, id := range b.Pool() {
		if _, ok := catalog.Default().Template(id); !ok {
			t.Fatalf("pool holds unknown template %q", id)
		}
	}
}

func TestBuildDirectCategoriesKeepCatalogOrder(t *testing.T) {
	b := New(catalog.Default(), WithSource(&scriptedSource{}))
	b.SetCount("snowthistle", 1)
	b.SetCount("arrowvine", 2)
	b.Build()
	if got, want := b.Pool(), []string{"arrowvine", "arrowvine", "snowthistle"}; !slices.Equal(got, want) {
		t.Fatalf("pool = %v, want %v", got, want)
	}
}

func TestBuildReplacesPoolAndClearsLog(t *testing.T) {
	b := newSeededBag(t, 21)
	b.SetCount("lumber", 4)
	b.Build()
	if _, err := b.Draw(2); err != nil {
		t.Fatalf("draw: %v", err)
	}
	b.SetCount("lumber", 1)
	result := b.Build()
	if result.Size != 1 || b.PoolSize() != 1 {
		t.Fatalf("pool size = %d", b.PoolSize())
	}
	if len(b.Log()) != 0 {
		t.Fatalf("log not cleared: %+v", b.Log())
	}
}

func TestBuildEmptyComposition(t *testing.T) {
	b := newSeededBag(t, 1)
	result := b.Build()
	if result.Size != 0 || len(result.Warnings) != 0 || b.PoolSize() != 0 {
		t.Fatalf("result = %+v", result)
	}
}

func TestBuildDoesNotMutateCatalogSupply(t *testing.T) {
	before, _ := catalog.Default().Supply("hide")
	b := newSeededBag(t, 77)
	b.SetCount("hide", 7)
	b.Build()
	after, _ := catalog.Default().Supply("hide")
	if !slices.Equal(before.Cards, after.Cards) {
		t.Fatalf("supply order changed: %v -> %v", before.Cards, after.Cards)
	}
}

func TestBuildSamplesSupplyUniformly(t *testing.T) {
	const (
		builds = 9000
		count  = 3
	)
	b := newSeededBag(t, 99)
	b.SetCount("money", count)
	seen := map[string]int{}
	for i := 0; i < builds; i++ {
		b.Build()
		for _, id := range b.Pool() {
			seen[id]++
		}
	}

	// Each of the 9 physical cards lands in the pool with probability 3/9.
	copies := map[string]int{"gold_1": 1, "gold_2": 6, "gold_3": 2}
	for id, n := range copies {
		expected := builds * count * n / 9
		got := seen[id]
		if got < expected*9/10 || got > expected*11/10 {
			t.Fatalf("%s seen %d times, expected about %d", id, got, expected)
		}
	}
}

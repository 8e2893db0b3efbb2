package bag

import (
	"slices"
	"testing"
	"time"

	"github.com/louisbranch/lootbag/internal/services/loot/domain/catalog"
)

// scriptedSource replays values modulo n, then returns zero.
type scriptedSource struct {
	values []int
	next   int
}

func (s *scriptedSource) Intn(n int) int {
	if s.next >= len(s.values) {
		return 0
	}
	v := s.values[s.next]
	s.next++
	return v % n
}

func newSeededBag(t *testing.T, seed int64) *Bag {
	t.Helper()
	return New(catalog.Default(), WithSeed(seed))
}

func TestNewStartsEmpty(t *testing.T) {
	b := New(nil)
	if b.Catalog() != catalog.Default() {
		t.Fatal("expected default catalog")
	}
	if b.ConfiguredSize() != 0 || b.PoolSize() != 0 || len(b.Log()) != 0 {
		t.Fatalf("new bag not empty: size=%d pool=%d log=%d", b.ConfiguredSize(), b.PoolSize(), len(b.Log()))
	}
	comp := b.Composition()
	if len(comp) != len(catalog.Default().Categories()) {
		t.Fatalf("composition has %d keys", len(comp))
	}
	for id, n := range comp {
		if n != 0 {
			t.Fatalf("composition[%s] = %d, want 0", id, n)
		}
	}
}

func TestSameSeedReplaysBuildAndDraws(t *testing.T) {
	run := func() ([]string, [][]string) {
		b := newSeededBag(t, 1234)
		b.ApplyPreset(map[string]int{"money": 5, "lumber": 3, "hide": 7, "axenut": 2})
		b.Build()
		pool := b.Pool()
		var draws [][]string
		for b.PoolSize() > 0 {
			drawn, err := b.Draw(1)
			if err != nil {
				t.Fatalf("draw: %v", err)
			}
			draws = append(draws, drawn)
		}
		return pool, draws
	}
	poolA, drawsA := run()
	poolB, drawsB := run()
	if !slices.Equal(poolA, poolB) {
		t.Fatalf("pools differ: %v vs %v", poolA, poolB)
	}
	if len(drawsA) != len(drawsB) {
		t.Fatalf("draw counts differ")
	}
	for i := range drawsA {
		if !slices.Equal(drawsA[i], drawsB[i]) {
			t.Fatalf("draw %d differs: %v vs %v", i, drawsA[i], drawsB[i])
		}
	}
}

func TestResetKeepsComposition(t *testing.T) {
	b := newSeededBag(t, 5)
	b.ApplyPreset(mustPreset(t, catalog.PresetSample))
	before := b.ConfiguredSize()
	b.Build()
	if _, err := b.Draw(2); err != nil {
		t.Fatalf("draw: %v", err)
	}

	b.Reset()
	b.Reset()

	if got := b.ConfiguredSize(); got != before {
		t.Fatalf("configured size = %d, want %d", got, before)
	}
	if b.PoolSize() != 0 || len(b.Log()) != 0 {
		t.Fatalf("reset left pool=%d log=%d", b.PoolSize(), len(b.Log()))
	}

	b.Build()
	drawn, err := b.Draw(1)
	if err != nil || len(drawn) != 1 {
		t.Fatalf("draw after reset: %v %v", drawn, err)
	}
	if seq := b.Log()[0].Seq; seq != 1 {
		t.Fatalf("seq after reset = %d, want 1", seq)
	}
}

func TestWithClockStampsEntries(t *testing.T) {
	at := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	b := New(catalog.Default(), WithSource(&scriptedSource{}), WithClock(func() time.Time { return at }))
	b.SetCount("rockroot", 1)
	b.Build()
	if _, err := b.Draw(1); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if got := b.Log()[0].Timestamp; !got.Equal(at) {
		t.Fatalf("timestamp = %v, want %v", got, at)
	}
}

func mustPreset(t *testing.T, name string) map[string]int {
	t.Helper()
	p, ok := catalog.Default().Preset(name)
	if !ok {
		t.Fatalf("missing preset %s", name)
	}
	return p.Counts
}

package bag

import (
	"errors"
	"slices"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/lootbag/internal/platform/errors"
	"github.com/louisbranch/lootbag/internal/services/loot/domain/catalog"
)

func TestDrawRejectsNonPositive(t *testing.T) {
	for _, n := range []int{0, -3} {
		b := newSeededBag(t, 1)
		b.SetCount("axenut", 2)
		b.Build()
		_, err := b.Draw(n)
		if !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("Draw(%d) err = %v, want ErrInvalidRequest", n, err)
		}
		if !strings.Contains(err.Error(), "at least 1") {
			t.Fatalf("message = %q", err.Error())
		}
		if b.PoolSize() != 2 || len(b.Log()) != 0 {
			t.Fatalf("failed draw mutated state")
		}
	}
}

func TestDrawFromEmptyPool(t *testing.T) {
	b := newSeededBag(t, 1)
	_, err := b.Draw(1)
	if !errors.Is(err, ErrInsufficientSupply) {
		t.Fatalf("err = %v, want ErrInsufficientSupply", err)
	}
	if !strings.Contains(err.Error(), "0 remaining") {
		t.Fatalf("message = %q", err.Error())
	}
	if meta := apperrors.GetMetadata(err); meta["Remaining"] != "0" || meta["Requested"] != "1" {
		t.Fatalf("metadata = %v", meta)
	}
}

func TestDrawMoreThanRemainingLeavesStateUnchanged(t *testing.T) {
	b := newSeededBag(t, 4)
	b.SetCount("metal", 3)
	b.Build()
	if _, err := b.Draw(1); err != nil {
		t.Fatalf("draw: %v", err)
	}
	pool := b.Pool()
	log := b.Log()

	_, err := b.Draw(3)
	if !errors.Is(err, ErrInsufficientSupply) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "only 2 remaining") {
		t.Fatalf("message = %q", err.Error())
	}
	if !slices.Equal(b.Pool(), pool) || len(b.Log()) != len(log) {
		t.Fatal("failed draw mutated state")
	}
}

func TestDrawRemovesChosenPositions(t *testing.T) {
	src := &scriptedSource{values: []int{1, 0}}
	b := New(catalog.Default(), WithSource(src))
	b.SetCount("arrowvine", 1)
	b.SetCount("axenut", 1)
	b.SetCount("corpsecap", 1)
	b.Build()

	drawn, err := b.Draw(2)
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if want := []string{"axenut", "arrowvine"}; !slices.Equal(drawn, want) {
		t.Fatalf("drawn = %v, want %v", drawn, want)
	}
	if got := b.Pool(); !slices.Equal(got, []string{"corpsecap"}) {
		t.Fatalf("pool = %v", got)
	}
}

func TestDrawNeverReplaces(t *testing.T) {
	b := newSeededBag(t, 42)
	b.ApplyPreset(mustPreset(t, catalog.PresetSample))
	b.Build()
	start := b.Pool()
	var all []string
	for _, n := range []int{1, 3, 2, 5, 6} {
		before := b.PoolSize()
		drawn, err := b.Draw(n)
		if err != nil {
			t.Fatalf("Draw(%d): %v", n, err)
		}
		if b.PoolSize() != before-n || len(drawn) != n {
			t.Fatalf("pool %d -> %d after drawing %d", before, b.PoolSize(), n)
		}
		all = append(all, drawn...)
	}
	if b.PoolSize() != 0 {
		t.Fatalf("pool size = %d, want 0", b.PoolSize())
	}
	slices.Sort(all)
	slices.Sort(start)
	if !slices.Equal(all, start) {
		t.Fatalf("drawn multiset differs from built pool")
	}
}

func TestLogIsMostRecentFirst(t *testing.T) {
	b := newSeededBag(t, 9)
	b.SetCount("lumber", 6)
	b.Build()
	first, _ := b.Draw(1)
	second, _ := b.Draw(2)

	log := b.Log()
	if len(log) != 2 {
		t.Fatalf("log = %+v", log)
	}
	if log[0].Seq != 2 || !slices.Equal(log[0].Draws, second) {
		t.Fatalf("head = %+v, want seq 2 %v", log[0], second)
	}
	if log[1].Seq != 1 || !slices.Equal(log[1].Draws, first) {
		t.Fatalf("tail = %+v, want seq 1 %v", log[1], first)
	}

	log[0].Draws[0] = "tampered"
	if b.Log()[0].Draws[0] == "tampered" {
		t.Fatal("log copy leaked")
	}
}

package bag

import (
	"time"

	"github.com/louisbranch/lootbag/internal/core/random"
	"github.com/louisbranch/lootbag/internal/services/loot/domain/catalog"
)

// Bag owns one session's composition, pool, and draw log.
type Bag struct {
	catalog     *catalog.Catalog
	src         random.Source
	now         func() time.Time
	composition map[string]int
	pool        []string
	log         []LogEntry
	seq         int
}

// Option configures a Bag.
type Option func(*Bag)

// WithSource sets the uniform random source.
func WithSource(src random.Source) Option {
	return func(b *Bag) {
		if src != nil {
			b.src = src
		}
	}
}

// WithSeed seeds a deterministic source.
func WithSeed(seed int64) Option {
	return func(b *Bag) {
		b.src = random.New(seed)
	}
}

// WithClock sets the clock used for draw log timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Bag) {
		if now != nil {
			b.now = now
		}
	}
}

// New creates a Bag over cat with every category count at zero.
func New(cat *catalog.Catalog, opts ...Option) *Bag {
	if cat == nil {
		cat = catalog.Default()
	}
	b := &Bag{
		catalog:     cat,
		now:         time.Now,
		composition: make(map[string]int),
	}
	for _, c := range cat.Categories() {
		b.composition[c.ID] = 0
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.src == nil {
		seed, err := random.NewSeed()
		if err != nil {
			seed = time.Now().UnixNano()
		}
		b.src = random.New(seed)
	}
	return b
}

// Catalog returns the catalog the bag was built over.
func (b *Bag) Catalog() *catalog.Catalog {
	return b.catalog
}

// Reset empties the pool and the draw log. The composition is kept.
func (b *Bag) Reset() {
	b.pool = nil
	b.log = nil
	b.seq = 0
}

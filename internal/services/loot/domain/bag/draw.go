package bag

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/louisbranch/lootbag/internal/core/random"
	apperrors "github.com/louisbranch/lootbag/internal/platform/errors"
)

var (
	// ErrInvalidRequest matches draws of fewer than one token.
	ErrInvalidRequest = apperrors.New(apperrors.CodeDrawInvalidRequest, "must draw at least 1 token")
	// ErrInsufficientSupply matches draws larger than the pool.
	ErrInsufficientSupply = apperrors.New(apperrors.CodeDrawInsufficientSupply, "not enough tokens remaining")
)

// LogEntry records one draw.
type LogEntry struct {
	// Seq numbers entries from 1 since the last build or reset.
	Seq       int
	Timestamp time.Time
	Draws     []string
}

// Draw removes n tokens, each chosen uniformly among those remaining, and
// records them in removal order. On error nothing changes.
func (b *Bag) Draw(n int) ([]string, error) {
	if n < 1 {
		return nil, apperrors.WithMetadata(apperrors.CodeDrawInvalidRequest, "must draw at least 1 token", map[string]string{
			"Requested": strconv.Itoa(n),
		})
	}
	if n > len(b.pool) {
		return nil, apperrors.WithMetadata(apperrors.CodeDrawInsufficientSupply,
			fmt.Sprintf("cannot draw %d tokens: only %d remaining", n, len(b.pool)),
			map[string]string{
				"Requested": strconv.Itoa(n),
				"Remaining": strconv.Itoa(len(b.pool)),
			})
	}

	drawn := make([]string, 0, n)
	for range n {
		i := random.Pick(b.src, len(b.pool))
		drawn = append(drawn, b.pool[i])
		b.pool = slices.Delete(b.pool, i, i+1)
	}

	b.seq++
	entry := LogEntry{Seq: b.seq, Timestamp: b.now(), Draws: drawn}
	b.log = slices.Insert(b.log, 0, entry)
	return slices.Clone(drawn), nil
}

// Pool returns a copy of the undrawn tokens.
func (b *Bag) Pool() []string {
	return slices.Clone(b.pool)
}

// PoolSize returns the number of undrawn tokens.
func (b *Bag) PoolSize() int {
	return len(b.pool)
}

// Log returns the draw log, most recent first.
func (b *Bag) Log() []LogEntry {
	out := make([]LogEntry, len(b.log))
	for i, e := range b.log {
		e.Draws = slices.Clone(e.Draws)
		out[i] = e
	}
	return out
}

// Package random provides seed generation and the uniform random source used
// by pool construction and draws.
//
// Seeds come from crypto/rand; the source itself is a seeded math/rand
// generator so a run can be replayed from its reported seed.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// SeedSource records where a resolved seed came from.
type SeedSource string

const (
	// SeedSourceClient marks a seed supplied by the caller for replay.
	SeedSourceClient SeedSource = "client"
	// SeedSourceServer marks a seed generated by NewSeed.
	SeedSourceServer SeedSource = "server"
)

const maxSeedInt64 = math.MaxInt64

var errSeedOutOfRange = errors.New("seed exceeds int64 range")

// ErrSeedOutOfRange is returned when a requested seed does not fit in int64.
func ErrSeedOutOfRange() error {
	return errSeedOutOfRange
}

// NewSeed generates a non-negative random seed using crypto/rand.
//
// The sign bit is cleared so every generated seed round-trips through
// ResolveSeed as a client seed.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:]) & maxSeedInt64), nil
}

// ResolveSeed picks the seed for a run. A requested seed wins; otherwise
// newSeed is called.
func ResolveSeed(requested *uint64, newSeed func() (int64, error)) (int64, SeedSource, error) {
	if requested != nil {
		if *requested > maxSeedInt64 {
			return 0, "", fmt.Errorf("resolve seed %d: %w", *requested, errSeedOutOfRange)
		}
		return int64(*requested), SeedSourceClient, nil
	}
	if newSeed == nil {
		newSeed = NewSeed
	}
	seed, err := newSeed()
	if err != nil {
		return 0, "", err
	}
	return seed, SeedSourceServer, nil
}

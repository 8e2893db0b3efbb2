// Package bag implements the loot bag: a composition of requested counts per
// category, a pool materialized from it, and draws without replacement.
//
// State lives on an explicit Bag value. The lifecycle is:
//   - configure: SetCount, ApplyPreset, ClearCounts
//   - build: Build replaces the pool and clears the draw log
//   - play: Draw removes tokens uniformly at random and records a log entry
//   - reset: Reset empties pool and log but keeps the composition
//
// A Bag is not safe for concurrent use. Callers that share one across
// goroutines must serialize access.
//
// Randomness comes from an injected random.Source so runs are reproducible
// from a seed.
package bag

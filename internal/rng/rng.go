// Package rng provides the deterministic random provider abstraction the
// simulation engine rolls every at-bat, clash, and baserunning attempt
// against. Three variants share one interface: a nondeterministic system
// source, a seeded deterministic source that reproduces bit-identical
// sequences for a given seed, and a scripted mock for tests.
package rng

import (
	"math/rand"
	"sync"
)

// Provider is the capability set every roll in the engine consumes.
// Implementations need not be safe for concurrent use by multiple
// goroutines; callers running simulations in parallel must give each
// goroutine its own Provider.
type Provider interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntRange returns an integer in [lo, hi) (half-open).
	IntRange(lo, hi int) int
	// IntRangeInclusive returns an integer in [lo, hi].
	IntRangeInclusive(lo, hi int) int
}

// System is backed by the runtime's nondeterministic source.
type System struct {
	r *rand.Rand
}

// NewSystem constructs a System provider seeded from the runtime's entropy.
func NewSystem() *System {
	return &System{r: rand.New(rand.NewSource(rand.Int63()))}
}

func (s *System) Float64() float64 { return s.r.Float64() }

func (s *System) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo)
}

func (s *System) IntRangeInclusive(lo, hi int) int {
	return s.IntRange(lo, hi+1)
}

// Seeded is a deterministic generator: for any seed, two Seeded instances
// constructed with that seed produce bit-identical sequences. It wraps a
// math/rand source seeded directly with seed, which gives uniform [0,1) coverage
// well within the ±20% / 10-bucket tolerance over large sample counts.
type Seeded struct {
	seed int64
	r    *rand.Rand
}

// NewSeeded constructs a Seeded provider with the given seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{seed: seed, r: rand.New(rand.NewSource(seed))}
}

func (s *Seeded) Float64() float64 { return s.r.Float64() }

func (s *Seeded) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo)
}

func (s *Seeded) IntRangeInclusive(lo, hi int) int {
	return s.IntRange(lo, hi+1)
}

// SetSeed reinitializes the sequence from the given seed.
func (s *Seeded) SetSeed(seed int64) {
	s.seed = seed
	s.r = rand.New(rand.NewSource(seed))
}

// Seed returns the seed this provider was last initialized with.
func (s *Seeded) Seed() int64 { return s.seed }

// Mock is constructed with a fixed, non-empty sequence of [0,1) values
// that is cycled indefinitely. It is meant for pinning exact rolls in
// unit tests of the at-bat resolver and baserunning resolver.
type Mock struct {
	values    []float64
	pos       int
	callCount int
}

// NewMock constructs a Mock provider over values, which must be non-empty.
// A nil or empty slice panics: a mock with nothing to return is a test
// authoring bug, not a runtime condition to handle gracefully.
func NewMock(values []float64) *Mock {
	if len(values) == 0 {
		panic("rng: NewMock requires at least one value")
	}
	cp := make([]float64, len(values))
	copy(cp, values)
	return &Mock{values: cp}
}

func (m *Mock) Float64() float64 {
	v := m.values[m.pos]
	m.pos = (m.pos + 1) % len(m.values)
	m.callCount++
	return v
}

func (m *Mock) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	f := m.Float64()
	return lo + int(f*float64(hi-lo))
}

func (m *Mock) IntRangeInclusive(lo, hi int) int {
	return m.IntRange(lo, hi+1)
}

// Reset rewinds the cursor to the start of the sequence without resetting
// the call count.
func (m *Mock) Reset() { m.pos = 0 }

// GetCallCount returns the number of Float64/IntRange/IntRangeInclusive
// calls served since construction. Reset rewinds the cursor, not the
// call accounting, so the counter is never cleared.
func (m *Mock) GetCallCount() int { return m.callCount }

var (
	defaultMu       sync.Mutex
	defaultProvider Provider = NewSystem()
)

// Default returns the process-wide default provider for legacy call
// sites that do not thread a Provider explicitly.
func Default() Provider {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultProvider
}

// SetDefault installs p as the process-wide default provider.
func SetDefault(p Provider) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultProvider = p
}

// ResetDefault restores the process-wide default provider to a fresh
// System variant.
func ResetDefault() {
	SetDefault(NewSystem())
}

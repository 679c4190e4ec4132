package console

import (
	"math/rand"
	"time"
)

// Rand is the random source injected into the telemetry simulators so tests
// can substitute a deterministic generator.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand returns a seeded pseudo-random source. Seed 0 means "seed from the
// clock". Callers must serialize access; the simulators guard it with their
// own mutex.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

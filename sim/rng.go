package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible batch of simulations.
// Two batches with the same SimulationKey, data and predictor MUST produce
// identical results regardless of how seasons are scheduled across goroutines.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// SubsystemSeason returns the RNG subsystem name for one season's predictor.
func SubsystemSeason(season int) string {
	return fmt.Sprintf("season_%d", season)
}

// ForSubsystem returns a freshly seeded RNG for the named subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Each call returns a new *rand.Rand, so the key itself carries no state and
// may be shared between goroutines; the returned RNG may not.
func (k SimulationKey) ForSubsystem(name string) *rand.Rand {
	return rand.New(rand.NewSource(int64(k) ^ fnv1a64(name)))
}

// ForSeason returns the RNG a season's predictor draws tie-breaks from.
func (k SimulationKey) ForSeason(season int) *rand.Rand {
	return k.ForSubsystem(SubsystemSeason(season))
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

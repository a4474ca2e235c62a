package sim

import (
	"fmt"
	"math/bits"
)

// SeedOrder is a regional seeding order. Adjacent entries meet in round 1 and
// every aligned block of 2^r entries is the sub-bracket whose survivors meet
// in round r.
type SeedOrder []int

// NCAASeedOrder is the 16-seed ordering used by every NCAA region.
var NCAASeedOrder = SeedOrder{1, 16, 8, 9, 5, 12, 4, 13, 6, 11, 3, 14, 7, 10, 2, 15}

// SeedPair is two seed numbers that can legally meet in a given round.
// A is drawn from the upper half of the sub-bracket ("pivot"), B from the lower half.
type SeedPair struct {
	A int
	B int
}

// Contains reports whether the pair matches the two seeds in either order.
func (p SeedPair) Contains(x, y int) bool {
	return (p.A == x && p.B == y) || (p.A == y && p.B == x)
}

// MatchupSource produces the seed pairs that can meet in a regional round.
// SeedOrder is the only production implementation; tests wrap it to observe calls.
type MatchupSource interface {
	Matchups(round int) ([]SeedPair, error)
}

// GenerateMatchups returns the NCAA matchup table for the given round (1..4).
func GenerateMatchups(round int) ([]SeedPair, error) {
	return NCAASeedOrder.Matchups(round)
}

// Rounds returns the number of regional rounds the order supports (log2 of its length).
func (o SeedOrder) Rounds() int {
	return bits.Len(uint(len(o))) - 1
}

// Validate checks that the order is a permutation of 1..N with N a power of two ≥ 2.
func (o SeedOrder) Validate() error {
	n := len(o)
	if n < 2 || n&(n-1) != 0 {
		return fmt.Errorf("seed order length must be a power of two >= 2, got %d", n)
	}
	seen := make([]bool, n+1)
	for _, s := range o {
		if s < 1 || s > n {
			return fmt.Errorf("seed %d out of range 1..%d", s, n)
		}
		if seen[s] {
			return fmt.Errorf("seed %d appears more than once", s)
		}
		seen[s] = true
	}
	return nil
}

// Matchups returns every seed pair that can meet in the given round.
//
// The order is split into groups of 2^round; the first half of each group are
// pivots and the second half leaves, and the full pivots × leaves cross product
// is emitted group by group. Round r therefore yields len(o)/2 · 2^(r-1) pairs,
// and pair k belongs to game slot k / PairsPerGame(r) within the region.
func (o SeedOrder) Matchups(round int) ([]SeedPair, error) {
	if round < 1 || round > o.Rounds() {
		return nil, fmt.Errorf("round %d out of range 1..%d", round, o.Rounds())
	}
	half := 1 << (round - 1)
	step := half * 2
	out := make([]SeedPair, 0, len(o)/2*half)
	for start := 0; start+step <= len(o); start += step {
		pivots := o[start : start+half]
		leaves := o[start+half : start+step]
		for _, p := range pivots {
			for _, l := range leaves {
				out = append(out, SeedPair{A: p, B: l})
			}
		}
	}
	return out, nil
}

// PairsPerGame returns how many consecutive matchup-table entries map onto one
// game slot in the given round: (2^(r-1))^2.
func PairsPerGame(round int) int {
	return 1 << (2 * (round - 1))
}

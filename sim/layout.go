package sim

import (
	"fmt"
	"math/bits"
)

// Layout fixes the topology of a single-elimination bracket: the ordered
// regions, the seeding order inside each region, and how national-round games
// are recognized in historical data.
//
// Canonical node order is round by round. Within a regional round the regions
// appear in Regions order and each region's games follow its matchup table.
// National rounds (semifinals, final) follow, then play-in games.
type Layout struct {
	Regions []Region
	Seeds   SeedOrder

	// NationalDays maps a day number to a national level (1 = semifinal).
	// Games on other days between different regions fall back to the
	// highest differing bit of their region indices.
	NationalDays map[int]int

	// Table overrides the matchup source; nil means Seeds.
	Table MatchupSource
}

// NCAA returns the 64-team, four-region layout (63 main games).
func NCAA() Layout {
	return Layout{
		Regions:      []Region{"W", "X", "Y", "Z"},
		Seeds:        NCAASeedOrder,
		NationalDays: map[int]int{152: 1, 154: 2},
	}
}

// Validate checks that regions and seeds describe a well-formed bracket.
func (l Layout) Validate() error {
	n := len(l.Regions)
	if n < 1 || n&(n-1) != 0 {
		return fmt.Errorf("%w: region count must be a power of two, got %d", ErrMalformedTopology, n)
	}
	seen := make(map[Region]bool, n)
	for _, r := range l.Regions {
		if seen[r] {
			return fmt.Errorf("%w: duplicate region %q", ErrMalformedTopology, r)
		}
		seen[r] = true
	}
	if err := l.Seeds.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTopology, err)
	}
	for day, level := range l.NationalDays {
		if level < 1 || level > l.NationalRounds() {
			return fmt.Errorf("%w: day %d maps to national level %d, want 1..%d",
				ErrMalformedTopology, day, level, l.NationalRounds())
		}
	}
	return nil
}

// RegionRounds is the number of rounds played inside a region.
func (l Layout) RegionRounds() int { return l.Seeds.Rounds() }

// NationalRounds is the number of rounds played between region champions.
func (l Layout) NationalRounds() int { return bits.Len(uint(len(l.Regions))) - 1 }

// Rounds is the total number of main-bracket rounds.
func (l Layout) Rounds() int { return l.RegionRounds() + l.NationalRounds() }

// MainGames is the number of main-bracket games (63 for NCAA).
func (l Layout) MainGames() int { return len(l.Regions)*len(l.Seeds) - 1 }

// RegionIndex returns the position of r in Regions.
func (l Layout) RegionIndex(r Region) (int, bool) {
	for i, x := range l.Regions {
		if x == r {
			return i, true
		}
	}
	return 0, false
}

// GamesInRound returns the number of main games in a round (1-based).
func (l Layout) GamesInRound(round int) int {
	return len(l.Regions) * len(l.Seeds) >> round
}

// RoundOffset returns the canonical index of the first game of a round.
func (l Layout) RoundOffset(round int) int {
	offset := 0
	for r := 1; r < round; r++ {
		offset += l.GamesInRound(r)
	}
	return offset
}

// SectionMultiplier returns the number of games one region contributes to a
// regional round.
func (l Layout) SectionMultiplier(round int) int { return len(l.Seeds) >> round }

// MatchupsDivisor returns how many matchup-table entries collapse onto one game
// slot in a regional round.
func (l Layout) MatchupsDivisor(round int) int { return PairsPerGame(round) }

// RegionalIndex is the canonical index of a regional game:
// round offset + region × section multiplier + pairing / matchups divisor.
func (l Layout) RegionalIndex(round, region, pairing int) int {
	return l.RoundOffset(round) + region*l.SectionMultiplier(round) + pairing/l.MatchupsDivisor(round)
}

// NationalIndex is the canonical index of the national-level game reached by
// the champion of the given region.
func (l Layout) NationalIndex(level, region int) int {
	return l.RoundOffset(l.RegionRounds()+level) + region>>level
}

// RoundOf returns the round (1-based) of a main-bracket index.
func (l Layout) RoundOf(index int) int {
	for r := 1; r <= l.Rounds(); r++ {
		if index < l.RoundOffset(r+1) {
			return r
		}
	}
	return 0
}

func (l Layout) matchups(round int) ([]SeedPair, error) {
	if l.Table != nil {
		return l.Table.Matchups(round)
	}
	return l.Seeds.Matchups(round)
}

// nationalLevel derives the national level two region champions meet at.
func nationalLevel(a, b int) int {
	return bits.Len(uint(a ^ b))
}

package sim

import "fmt"

type pairKey [2]int

func newPairKey(x, y int) pairKey {
	if x > y {
		x, y = y, x
	}
	return pairKey{x, y}
}

type regionalSlot struct {
	round   int
	pairing int
}

// regionalSlots maps every seed pair to the regional round and matchup-table
// position where the two seeds can meet. A pair appearing twice is a broken table.
func regionalSlots(layout Layout) (map[pairKey]regionalSlot, error) {
	slots := make(map[pairKey]regionalSlot)
	for round := 1; round <= layout.RegionRounds(); round++ {
		pairs, err := layout.matchups(round)
		if err != nil {
			return nil, fmt.Errorf("round %d matchups: %w", round, err)
		}
		for k, p := range pairs {
			key := newPairKey(p.A, p.B)
			if prev, dup := slots[key]; dup {
				return nil, fmt.Errorf("%w: seeds %d and %d meet in rounds %d and %d",
					ErrAmbiguousSlot, p.A, p.B, prev.round, round)
			}
			slots[key] = regionalSlot{round: round, pairing: k}
		}
	}
	return slots, nil
}

// canonicalIndex places a non-play-in game into the main bracket.
func canonicalIndex(layout Layout, slots map[pairKey]regionalSlot, g TourneyGame) (int, error) {
	wr, _ := layout.RegionIndex(g.WinnerSeed.Region)
	lr, _ := layout.RegionIndex(g.LoserSeed.Region)
	if level, ok := layout.NationalDays[g.DayNum]; ok {
		return layout.NationalIndex(level, wr), nil
	}
	if wr != lr {
		return layout.NationalIndex(nationalLevel(wr, lr), wr), nil
	}
	pos, ok := slots[newPairKey(g.WinnerSeed.Number, g.LoserSeed.Number)]
	if !ok {
		return 0, fmt.Errorf("%w: seeds %s and %s never meet in a regional round",
			ErrAmbiguousSlot, g.WinnerSeed, g.LoserSeed)
	}
	return layout.RegionalIndex(pos.round, wr, pos.pairing), nil
}

// ActualWinners lists a season's historical winners in the same canonical
// order Bracket.Simulate produces: main games by index, then play-ins sorted
// by region and seed.
func ActualWinners(layout Layout, games []TourneyGame) ([]TeamID, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	playIns, regular, err := partitionGames(layout, games)
	if err != nil {
		return nil, err
	}
	slots, err := regionalSlots(layout)
	if err != nil {
		return nil, err
	}

	out := make([]TeamID, layout.MainGames(), layout.MainGames()+len(playIns))
	for _, g := range regular {
		idx, err := canonicalIndex(layout, slots, g)
		if err != nil {
			return nil, err
		}
		if out[idx] != 0 {
			return nil, fmt.Errorf("%w: slot %d claimed by winners %d and %d",
				ErrAmbiguousSlot, idx, out[idx], g.WinnerID)
		}
		out[idx] = g.WinnerID
	}
	for i, w := range out {
		if w == 0 {
			return nil, fmt.Errorf("%w: no game for slot %d (round %d)", ErrIncompleteSeason, i, layout.RoundOf(i))
		}
	}
	for _, g := range playIns {
		out = append(out, g.WinnerID)
	}
	return out, nil
}

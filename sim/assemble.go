package sim

import (
	"fmt"
	"sort"
)

// partitionGames splits a season into play-in games, sorted canonically by
// (region order, seed number), and every other game in input order.
func partitionGames(layout Layout, games []TourneyGame) (playIns, regular []TourneyGame, err error) {
	for _, g := range games {
		for _, s := range []Seed{g.WinnerSeed, g.LoserSeed} {
			if _, ok := layout.RegionIndex(s.Region); !ok {
				return nil, nil, fmt.Errorf("%w: game %d vs %d: unknown region %q",
					ErrAmbiguousSlot, g.WinnerID, g.LoserID, s.Region)
			}
		}
		if g.IsPlayIn() {
			playIns = append(playIns, g)
		} else {
			regular = append(regular, g)
		}
	}
	sort.SliceStable(playIns, func(i, j int) bool {
		ri, _ := layout.RegionIndex(playIns[i].WinnerSeed.Region)
		rj, _ := layout.RegionIndex(playIns[j].WinnerSeed.Region)
		if ri != rj {
			return ri < rj
		}
		return playIns[i].WinnerSeed.Number < playIns[j].WinnerSeed.Number
	})
	return playIns, regular, nil
}

// firstRoundSlot locates the leaf slot a seed number occupies in a region.
func firstRoundSlot(layout Layout, round1 []SeedPair, region, seed int) (int, Side, bool) {
	for k, pair := range round1 {
		switch seed {
		case pair.A:
			return layout.RegionalIndex(1, region, k), SideA, true
		case pair.B:
			return layout.RegionalIndex(1, region, k), SideB, true
		}
	}
	return 0, SideA, false
}

// Assemble builds one season's bracket from its tournament games.
//
// Play-in games become extra nodes spliced into the first-round slot of the
// seed they decide. First-round games fix both leaf teams, with the matchup
// table's pivot seed in slot A; slots already fed by a play-in keep their
// predecessor. Games from later rounds only tell us who won, so they are
// ignored here. Every leaf slot must end up filled.
func Assemble(layout Layout, games []TourneyGame, p Predictor, stats StatsView) (*Bracket, error) {
	b, err := NewBracket(layout, p, stats)
	if err != nil {
		return nil, err
	}
	round1, err := layout.matchups(1)
	if err != nil {
		return nil, fmt.Errorf("round 1 matchups: %w", err)
	}
	playIns, regular, err := partitionGames(layout, games)
	if err != nil {
		return nil, err
	}

	for _, g := range playIns {
		region, _ := layout.RegionIndex(g.WinnerSeed.Region)
		idx, side, ok := firstRoundSlot(layout, round1, region, g.WinnerSeed.Number)
		if !ok {
			return nil, fmt.Errorf("%w: play-in seed %s has no first-round slot", ErrAmbiguousSlot, g.WinnerSeed)
		}
		if !b.SlotEmpty(idx, side) {
			return nil, fmt.Errorf("%w: second play-in for seed %s", ErrAmbiguousSlot, g.WinnerSeed)
		}
		playIn, err := b.AddPlayIn(g.WinnerID, g.LoserID)
		if err != nil {
			return nil, err
		}
		if err := b.Attach(idx, side, playIn); err != nil {
			return nil, err
		}
	}

	for _, g := range regular {
		if g.WinnerSeed.Region != g.LoserSeed.Region {
			continue
		}
		k := -1
		for i, pair := range round1 {
			if pair.Contains(g.WinnerSeed.Number, g.LoserSeed.Number) {
				k = i
				break
			}
		}
		if k < 0 {
			continue
		}
		region, _ := layout.RegionIndex(g.WinnerSeed.Region)
		idx := layout.RegionalIndex(1, region, k)
		teamA, teamB := g.WinnerID, g.LoserID
		if round1[k].A != g.WinnerSeed.Number {
			teamA, teamB = teamB, teamA
		}
		for side, team := range [2]TeamID{teamA, teamB} {
			gn, _ := b.Node(idx)
			prior, fixed := gn.PriorA, gn.TeamA
			if Side(side) == SideB {
				prior, fixed = gn.PriorB, gn.TeamB
			}
			if prior != noNode {
				continue // claimed by a play-in
			}
			if fixed != 0 {
				return nil, fmt.Errorf("%w: two first-round games for %s%d vs %s%d",
					ErrAmbiguousSlot, g.WinnerSeed.Region, round1[k].A, g.WinnerSeed.Region, round1[k].B)
			}
			if err := b.SetTeam(idx, Side(side), team); err != nil {
				return nil, err
			}
		}
	}

	for i := 0; i < layout.GamesInRound(1); i++ {
		for _, side := range []Side{SideA, SideB} {
			if b.SlotEmpty(i, side) {
				return nil, fmt.Errorf("%w: first-round node %d slot %s has no team", ErrIncompleteSeason, i, side)
			}
		}
	}
	return b, nil
}

// Package testutil provides shared test infrastructure for the bracket
// simulator: synthetic seasons with known results, an oracle predictor,
// and an in-memory StatsProvider.
package testutil

import (
	"fmt"
	"sort"

	"github.com/bracket-sim/bracket-sim/sim"
)

// PlayIn names a seed decided by a play-in game between ranks 'a' and 'b'.
type PlayIn struct {
	Region sim.Region
	Seed   int
}

// Season is a synthetic tournament where the better seed always wins. Two
// region champions share seed 1, so national games go to the region listed
// first in the layout. Play-ins go to rank 'a'.
type Season struct {
	Season   int
	Layout   sim.Layout
	Rows     []sim.TeamSeason
	Games    []sim.TourneyGame
	Expected []sim.TeamID // canonical order, built without Layout index math
}

// TeamID encodes region index, seed number and play-in rank:
// 1000·(region+1) + 10·seed + rank. W01 is 1010, Z16b is 4162.
func TeamID(region, seed, playIn int) sim.TeamID {
	return sim.TeamID(1000*(region+1) + 10*seed + playIn)
}

type entrant struct {
	id   sim.TeamID
	seed sim.Seed
}

// better reports whether x beats y in a chalk tournament.
func better(x, y entrant) bool {
	if x.seed.Number != y.seed.Number {
		return x.seed.Number < y.seed.Number
	}
	return x.id < y.id
}

// regionalDay is the day number used for regional round r.
func regionalDay(r int) int {
	return [...]int{134, 136, 138, 143, 145, 147, 149}[min(r, 6)]
}

// ChalkSeason builds an NCAA chalk season.
func ChalkSeason(season int, playIns ...PlayIn) *Season {
	return ChalkSeasonWithLayout(season, sim.NCAA(), playIns...)
}

// ChalkSeasonWithLayout builds a chalk season for any valid layout.
func ChalkSeasonWithLayout(season int, layout sim.Layout, playIns ...PlayIn) *Season {
	s := &Season{Season: season, Layout: layout}
	isPlayIn := make(map[PlayIn]bool, len(playIns))
	for _, p := range playIns {
		isPlayIn[p] = true
	}

	addTeam := func(region, number, rank int) entrant {
		e := entrant{
			id:   TeamID(region, number, rank),
			seed: sim.Seed{Region: layout.Regions[region], Number: number, PlayIn: rank},
		}
		strength := len(layout.Seeds) - number
		box := sim.BoxTotals{
			FGM: 800 + 10*strength - rank, FGA: 1800, FGM3: 200 + strength, FGA3: 600,
			FTM: 400 + strength, FTA: 550, OR: 300, DR: 700 + strength, Ast: 450 + strength,
			TO: 380, Stl: 180 + strength, Blk: 100 + strength, PF: 500,
		}
		s.Rows = append(s.Rows, sim.TeamSeason{
			Season:        season,
			TeamID:        e.id,
			Name:          fmt.Sprintf("%s Team", e.seed),
			Seed:          e.seed,
			Wins:          10 + 2*strength - rank,
			Losses:        2 + number + rank,
			PointsFor:     2000 + 20*strength - rank,
			PointsAgainst: 1900 - 10*strength + rank,
			Box:           &box,
		})
		return e
	}
	game := func(day int, x, y entrant) entrant {
		w, l := x, y
		if better(y, x) {
			w, l = y, x
		}
		s.Games = append(s.Games, sim.TourneyGame{
			Season: season, DayNum: day,
			WinnerID: w.id, WinnerScore: 70, WinnerSeed: w.seed,
			LoserID: l.id, LoserScore: 60, LoserSeed: l.seed,
		})
		return w
	}

	// Play-ins come first in the game list, but last in canonical order.
	survivors := make([][]entrant, len(layout.Regions))
	for q, region := range layout.Regions {
		for _, number := range layout.Seeds {
			if isPlayIn[PlayIn{Region: region, Seed: number}] {
				w := game(regionalDay(0), addTeam(q, number, 1), addTeam(q, number, 2))
				survivors[q] = append(survivors[q], w)
				continue
			}
			survivors[q] = append(survivors[q], addTeam(q, number, 0))
		}
	}
	sort.Slice(s.Games, func(i, j int) bool {
		ri, rj := s.Games[i].WinnerID/1000, s.Games[j].WinnerID/1000
		if ri != rj {
			return ri < rj
		}
		return s.Games[i].WinnerSeed.Number < s.Games[j].WinnerSeed.Number
	})
	sortedPlayIns := make([]sim.TeamID, 0, len(s.Games))
	for _, g := range s.Games {
		sortedPlayIns = append(sortedPlayIns, g.WinnerID)
	}

	for r := 1; r <= layout.RegionRounds(); r++ {
		for q := range layout.Regions {
			var next []entrant
			for j := 0; j+1 < len(survivors[q]); j += 2 {
				w := game(regionalDay(r), survivors[q][j], survivors[q][j+1])
				next = append(next, w)
				s.Expected = append(s.Expected, w.id)
			}
			survivors[q] = next
		}
	}

	days := make(map[int]int, len(layout.NationalDays))
	for day, level := range layout.NationalDays {
		days[level] = day
	}
	champs := make([]entrant, len(layout.Regions))
	for q := range survivors {
		champs[q] = survivors[q][0]
	}
	for level := 1; len(champs) > 1; level++ {
		day, ok := days[level]
		if !ok {
			day = 150 + 2*level
		}
		var next []entrant
		for j := 0; j+1 < len(champs); j += 2 {
			w := game(day, champs[j], champs[j+1])
			next = append(next, w)
			s.Expected = append(s.Expected, w.id)
		}
		champs = next
	}
	s.Expected = append(s.Expected, sortedPlayIns...)
	return s
}

// Stats returns the season's StatsView.
func (s *Season) Stats() *sim.SeasonStats {
	st, err := sim.NewSeasonStats(s.Season, s.Rows)
	if err != nil {
		panic(err)
	}
	return st
}

// Champion returns the expected tournament winner.
func (s *Season) Champion() sim.TeamID {
	return s.Expected[s.Layout.MainGames()-1]
}

// Oracle returns a predictor that picks each pairing's historical winner.
// Pairings that never happened are an error.
func Oracle(games []sim.TourneyGame) sim.Predictor {
	winners := make(map[[2]sim.TeamID]sim.TeamID, len(games))
	for _, g := range games {
		winners[[2]sim.TeamID{g.WinnerID, g.LoserID}] = g.WinnerID
		winners[[2]sim.TeamID{g.LoserID, g.WinnerID}] = g.WinnerID
	}
	return sim.PredictorFunc(func(a, b sim.TeamID, _ sim.StatsView) (sim.TeamID, error) {
		w, ok := winners[[2]sim.TeamID{a, b}]
		if !ok {
			return 0, fmt.Errorf("%d and %d never met", a, b)
		}
		return w, nil
	})
}

// LowerID always picks the smaller team id, which is the better seed for
// ids built by TeamID within one region.
var LowerID = sim.PredictorFunc(func(a, b sim.TeamID, stats sim.StatsView) (sim.TeamID, error) {
	if _, err := stats.Team(a); err != nil {
		return 0, err
	}
	if _, err := stats.Team(b); err != nil {
		return 0, err
	}
	return min(a, b), nil
})

// Provider is an in-memory StatsProvider over synthetic seasons. Seasons
// listed in Broken fail with the given error.
type Provider struct {
	Seasons map[int]*Season
	Broken  map[int]error
}

// NewProvider indexes seasons by number.
func NewProvider(seasons ...*Season) *Provider {
	p := &Provider{Seasons: make(map[int]*Season), Broken: make(map[int]error)}
	for _, s := range seasons {
		p.Seasons[s.Season] = s
	}
	return p
}

// StatsForSeason implements sim.StatsProvider.
func (p *Provider) StatsForSeason(season int) (*sim.SeasonStats, error) {
	if err := p.Broken[season]; err != nil {
		return nil, err
	}
	s, ok := p.Seasons[season]
	if !ok {
		return nil, fmt.Errorf("no season %d", season)
	}
	return sim.NewSeasonStats(season, s.Rows)
}

// GamesForSeason implements sim.StatsProvider.
func (p *Provider) GamesForSeason(season int) ([]sim.TourneyGame, error) {
	if err := p.Broken[season]; err != nil {
		return nil, err
	}
	s, ok := p.Seasons[season]
	if !ok {
		return nil, fmt.Errorf("no season %d", season)
	}
	return append([]sim.TourneyGame(nil), s.Games...), nil
}

package stats

import (
	"sort"

	"github.com/bracket-sim/bracket-sim/sim"
)

// GameResult is one regular-season game. Box scores are nil when only
// compact results are available.
type GameResult struct {
	Season      int
	DayNum      int
	WinnerID    sim.TeamID
	WinnerScore int
	LoserID     sim.TeamID
	LoserScore  int
	WinnerBox   *sim.BoxTotals
	LoserBox    *sim.BoxTotals
}

// Accumulate folds a season's regular-season results into one TeamSeason per
// team. Every seeded team gets a row even without games. A team's Box totals
// are kept only when every one of its games carried a box score.
func Accumulate(season int, games []GameResult, seeds map[sim.TeamID]sim.Seed, names map[sim.TeamID]string) []sim.TeamSeason {
	type acc struct {
		row      sim.TeamSeason
		box      sim.BoxTotals
		complete bool
	}
	teams := make(map[sim.TeamID]*acc)
	get := func(id sim.TeamID) *acc {
		a, ok := teams[id]
		if !ok {
			a = &acc{row: sim.TeamSeason{Season: season, TeamID: id, Name: names[id], Seed: seeds[id]}, complete: true}
			teams[id] = a
		}
		return a
	}
	for id := range seeds {
		get(id)
	}
	for _, g := range games {
		if g.Season != season {
			continue
		}
		w, l := get(g.WinnerID), get(g.LoserID)
		w.row.Wins++
		w.row.PointsFor += g.WinnerScore
		w.row.PointsAgainst += g.LoserScore
		l.row.Losses++
		l.row.PointsFor += g.LoserScore
		l.row.PointsAgainst += g.WinnerScore
		if g.WinnerBox != nil && g.LoserBox != nil {
			w.box.Add(*g.WinnerBox)
			l.box.Add(*g.LoserBox)
		} else {
			w.complete = false
			l.complete = false
		}
	}

	out := make([]sim.TeamSeason, 0, len(teams))
	for _, a := range teams {
		if a.complete && a.row.Games() > 0 {
			box := a.box
			a.row.Box = &box
		}
		out = append(out, a.row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out
}

// Package stats provides the in-memory StatsProvider, regular-season
// aggregation, and loaders for Kaggle-format competition data.
package stats

import (
	"fmt"
	"sort"

	"github.com/bracket-sim/bracket-sim/sim"
)

// Dataset is an in-memory StatsProvider. It must not be mutated once handed
// to an Engine; concurrent reads are safe.
type Dataset struct {
	teams map[sim.TeamID]string
	rows  map[int][]sim.TeamSeason
	games map[int][]sim.TourneyGame
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		teams: make(map[sim.TeamID]string),
		rows:  make(map[int][]sim.TeamSeason),
		games: make(map[int][]sim.TourneyGame),
	}
}

// AddTeam records a team name.
func (d *Dataset) AddTeam(id sim.TeamID, name string) { d.teams[id] = name }

// AddSeason stores a season's team rows and tournament games, replacing any
// earlier data for that season. Rows and games must belong to the season.
func (d *Dataset) AddSeason(season int, rows []sim.TeamSeason, games []sim.TourneyGame) error {
	for _, r := range rows {
		if r.Season != season {
			return fmt.Errorf("team %d row belongs to season %d, not %d", r.TeamID, r.Season, season)
		}
	}
	for _, g := range games {
		if g.Season != season {
			return fmt.Errorf("game %d vs %d belongs to season %d, not %d", g.WinnerID, g.LoserID, g.Season, season)
		}
	}
	d.rows[season] = append([]sim.TeamSeason(nil), rows...)
	d.games[season] = append([]sim.TourneyGame(nil), games...)
	return nil
}

// StatsForSeason implements sim.StatsProvider.
func (d *Dataset) StatsForSeason(season int) (*sim.SeasonStats, error) {
	rows, ok := d.rows[season]
	if !ok {
		return nil, fmt.Errorf("no team stats for season %d", season)
	}
	return sim.NewSeasonStats(season, rows)
}

// GamesForSeason implements sim.StatsProvider. The returned slice is a copy.
func (d *Dataset) GamesForSeason(season int) ([]sim.TourneyGame, error) {
	games, ok := d.games[season]
	if !ok {
		return nil, fmt.Errorf("no tournament games for season %d", season)
	}
	return append([]sim.TourneyGame(nil), games...), nil
}

// Seasons returns the seasons that have team rows, sorted.
func (d *Dataset) Seasons() []int {
	out := make([]int, 0, len(d.rows))
	for s := range d.rows {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// TeamName returns a team's name, or "" when unknown.
func (d *Dataset) TeamName(id sim.TeamID) string { return d.teams[id] }

// TeamNames returns a copy of the id to name table.
func (d *Dataset) TeamNames() map[sim.TeamID]string {
	out := make(map[sim.TeamID]string, len(d.teams))
	for id, n := range d.teams {
		out[id] = n
	}
	return out
}

// Rows returns a copy of a season's team rows.
func (d *Dataset) Rows(season int) []sim.TeamSeason {
	return append([]sim.TeamSeason(nil), d.rows[season]...)
}

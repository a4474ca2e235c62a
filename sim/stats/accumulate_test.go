package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bracket-sim/bracket-sim/sim"
)

func TestAccumulate_RecordsAndPoints(t *testing.T) {
	// GIVEN three games between teams 1, 2 and 3
	games := []GameResult{
		{Season: 2019, WinnerID: 1, WinnerScore: 80, LoserID: 2, LoserScore: 70},
		{Season: 2019, WinnerID: 1, WinnerScore: 66, LoserID: 3, LoserScore: 60},
		{Season: 2019, WinnerID: 3, WinnerScore: 75, LoserID: 2, LoserScore: 74},
		{Season: 2018, WinnerID: 2, WinnerScore: 99, LoserID: 1, LoserScore: 1},
	}
	seeds := map[sim.TeamID]sim.Seed{1: {Region: "W", Number: 4}, 9: {Region: "X", Number: 16}}

	// WHEN accumulated for 2019
	rows := Accumulate(2019, games, seeds, map[sim.TeamID]string{1: "Alpha"})

	// THEN each team has its record, other seasons are ignored, and seeded teams always appear
	require.Len(t, rows, 4)
	byID := make(map[sim.TeamID]sim.TeamSeason)
	for _, r := range rows {
		byID[r.TeamID] = r
	}
	one := byID[1]
	assert.Equal(t, 2, one.Wins)
	assert.Equal(t, 0, one.Losses)
	assert.Equal(t, 146, one.PointsFor)
	assert.Equal(t, 130, one.PointsAgainst)
	assert.Equal(t, "Alpha", one.Name)
	assert.Equal(t, 4, one.Seed.Number)

	two := byID[2]
	assert.Equal(t, 0, two.Wins)
	assert.Equal(t, 2, two.Losses)
	assert.Equal(t, 144, two.PointsFor)

	nine := byID[9]
	assert.Equal(t, 0, nine.Games())
	assert.Nil(t, nine.Box)

	assert.Equal(t, sim.TeamID(1), rows[0].TeamID, "rows sorted by id")
}

func TestAccumulate_BoxTotalsOnlyWhenComplete(t *testing.T) {
	box := func(fgm int) *sim.BoxTotals { return &sim.BoxTotals{FGM: fgm, FGA: 2 * fgm} }
	games := []GameResult{
		{Season: 2019, WinnerID: 1, WinnerScore: 70, LoserID: 2, LoserScore: 60, WinnerBox: box(30), LoserBox: box(20)},
		{Season: 2019, WinnerID: 1, WinnerScore: 70, LoserID: 2, LoserScore: 60, WinnerBox: box(28), LoserBox: box(22)},
		{Season: 2019, WinnerID: 3, WinnerScore: 70, LoserID: 2, LoserScore: 60},
	}
	rows := Accumulate(2019, games, nil, nil)
	byID := make(map[sim.TeamID]sim.TeamSeason)
	for _, r := range rows {
		byID[r.TeamID] = r
	}

	require.NotNil(t, byID[1].Box)
	assert.Equal(t, 58, byID[1].Box.FGM)
	assert.Equal(t, 116, byID[1].Box.FGA)
	assert.Nil(t, byID[2].Box, "team 2 played a game without a box score")
	assert.Nil(t, byID[3].Box)
}

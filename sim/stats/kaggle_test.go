package stats

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bracket-sim/bracket-sim/sim"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(strings.TrimLeft(body, "\n")), 0o644))
	}
}

const (
	teamsCSV = `
TeamID,TeamName,FirstD1Season,LastD1Season
1101,Alpha,1985,2024
1102,Bravo,1985,2024
1103,Charlie,1985,2024
`
	seedsCSV = `
Season,Seed,TeamID
2019,W01,1101
2019,W16a,1102
2019,W16b,1103
`
	tourneyCSV = `
Season,DayNum,WTeamID,WScore,LTeamID,LScore,WLoc,NumOT
2019,134,1103,70,1102,65,N,0
`
	detailedCSV = `
Season,DayNum,WTeamID,WScore,LTeamID,LScore,WLoc,NumOT,WFGM,WFGA,WFGM3,WFGA3,WFTM,WFTA,WOR,WDR,WAst,WTO,WStl,WBlk,WPF,LFGM,LFGA,LFGM3,LFGA3,LFTM,LFTA,LOR,LDR,LAst,LTO,LStl,LBlk,LPF
2019,10,1101,80,1102,60,H,0,30,60,8,20,12,16,10,25,15,10,7,4,15,22,58,6,22,10,14,8,20,10,14,5,2,18
2019,12,1101,75,1103,70,A,0,28,55,7,18,12,15,9,24,14,11,6,3,16,26,60,8,24,10,12,9,22,12,13,6,3,17
`
	compactCSV = `
Season,DayNum,WTeamID,WScore,LTeamID,LScore,WLoc,NumOT
2019,10,1101,80,1102,60,H,0
`
)

func TestLoadKaggleDir_Detailed(t *testing.T) {
	// GIVEN a Kaggle directory with detailed regular-season results
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"MTeams.csv":                        teamsCSV,
		"MNCAATourneySeeds.csv":             seedsCSV,
		"MNCAATourneyCompactResults.csv":    tourneyCSV,
		"MRegularSeasonDetailedResults.csv": detailedCSV,
	})

	// WHEN loaded
	ds, err := LoadKaggleDir(dir, DefaultKagglePrefix)
	require.NoError(t, err)

	// THEN seeds, games and aggregated box scores are available
	assert.Equal(t, []int{2019}, ds.Seasons())
	stats, err := ds.StatsForSeason(2019)
	require.NoError(t, err)

	alpha, err := stats.Team(1101)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", alpha.Name)
	assert.Equal(t, 2, alpha.Wins)
	assert.Equal(t, 155, alpha.PointsFor)
	require.NotNil(t, alpha.Box)
	assert.Equal(t, 58, alpha.Box.FGM)
	assert.Equal(t, sim.Seed{Region: "W", Number: 1}, alpha.Seed)

	bravo, err := stats.Team(1102)
	require.NoError(t, err)
	assert.Equal(t, 1, bravo.Seed.PlayIn)
	assert.Equal(t, 22, bravo.Box.FGM)

	games, err := ds.GamesForSeason(2019)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.True(t, games[0].IsPlayIn())
	assert.Equal(t, sim.TeamID(1103), games[0].WinnerID)
	assert.InDelta(t, 16.2, games[0].WinnerSeed.Value(), 1e-9)
}

func TestLoadKaggleDir_CompactFallback(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"MTeams.csv":                       teamsCSV,
		"MNCAATourneySeeds.csv":            seedsCSV,
		"MNCAATourneyCompactResults.csv":   tourneyCSV,
		"MRegularSeasonCompactResults.csv": compactCSV,
	})

	ds, err := LoadKaggleDir(dir, "M")
	require.NoError(t, err)
	stats, err := ds.StatsForSeason(2019)
	require.NoError(t, err)
	alpha, err := stats.Team(1101)
	require.NoError(t, err)
	assert.Equal(t, 1, alpha.Wins)
	assert.Nil(t, alpha.Box)
}

const (
	earlySeedsCSV = `
Season,Seed,TeamID
1985,W01,1101
1985,W16,1102
2003,W01,1101
2003,W16,1102
`
	earlyTourneyCSV = `
Season,DayNum,WTeamID,WScore,LTeamID,LScore,WLoc,NumOT
1985,136,1101,70,1102,50,N,0
2003,136,1101,72,1102,55,N,0
`
	earlyCompactCSV = `
Season,DayNum,WTeamID,WScore,LTeamID,LScore,WLoc,NumOT
1985,20,1101,66,1102,61,H,0
1985,40,1102,58,1101,57,A,0
2003,10,1101,80,1102,60,H,0
`
	earlyDetailedCSV = `
Season,DayNum,WTeamID,WScore,LTeamID,LScore,WLoc,NumOT,WFGM,WFGA,WFGM3,WFGA3,WFTM,WFTA,WOR,WDR,WAst,WTO,WStl,WBlk,WPF,LFGM,LFGA,LFGM3,LFGA3,LFTM,LFTA,LOR,LDR,LAst,LTO,LStl,LBlk,LPF
2003,10,1101,80,1102,60,H,0,30,60,8,20,12,16,10,25,15,10,7,4,15,22,58,6,22,10,14,8,20,10,14,5,2,18
`
)

func TestLoadKaggleDir_CompactCoversSeasonsBeforeDetailed(t *testing.T) {
	// GIVEN compact results for 1985 and 2003 but detailed results for 2003 only
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"MTeams.csv":                        teamsCSV,
		"MNCAATourneySeeds.csv":             earlySeedsCSV,
		"MNCAATourneyCompactResults.csv":    earlyTourneyCSV,
		"MRegularSeasonCompactResults.csv":  earlyCompactCSV,
		"MRegularSeasonDetailedResults.csv": earlyDetailedCSV,
	})

	// WHEN loaded
	ds, err := LoadKaggleDir(dir, "M")
	require.NoError(t, err)
	assert.Equal(t, []int{1985, 2003}, ds.Seasons())

	// THEN 1985 records come from the compact file, without box scores
	early, err := ds.StatsForSeason(1985)
	require.NoError(t, err)
	alpha, err := early.Team(1101)
	require.NoError(t, err)
	assert.Equal(t, 1, alpha.Wins)
	assert.Equal(t, 1, alpha.Losses)
	assert.Equal(t, 123, alpha.PointsFor)
	assert.Equal(t, 119, alpha.PointsAgainst)
	assert.Nil(t, alpha.Box)

	// AND 2003 takes its rows from the detailed file, counted once
	late, err := ds.StatsForSeason(2003)
	require.NoError(t, err)
	alpha, err = late.Team(1101)
	require.NoError(t, err)
	assert.Equal(t, 1, alpha.Wins)
	assert.Equal(t, 80, alpha.PointsFor)
	require.NotNil(t, alpha.Box)
	assert.Equal(t, 30, alpha.Box.FGM)
}

func TestLoadKaggleDir_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{
			name: "missing column",
			files: map[string]string{
				"MTeams.csv":                       "TeamID,Name\n1101,Alpha\n",
				"MNCAATourneySeeds.csv":            seedsCSV,
				"MNCAATourneyCompactResults.csv":   tourneyCSV,
				"MRegularSeasonCompactResults.csv": compactCSV,
			},
		},
		{
			name: "bad seed",
			files: map[string]string{
				"MTeams.csv":                       teamsCSV,
				"MNCAATourneySeeds.csv":            "Season,Seed,TeamID\n2019,W1,1101\n",
				"MNCAATourneyCompactResults.csv":   tourneyCSV,
				"MRegularSeasonCompactResults.csv": compactCSV,
			},
		},
		{
			name: "tournament team without seed",
			files: map[string]string{
				"MTeams.csv":                       teamsCSV,
				"MNCAATourneySeeds.csv":            "Season,Seed,TeamID\n2019,W01,1101\n",
				"MNCAATourneyCompactResults.csv":   tourneyCSV,
				"MRegularSeasonCompactResults.csv": compactCSV,
			},
		},
		{
			name: "non-numeric score",
			files: map[string]string{
				"MTeams.csv":                       teamsCSV,
				"MNCAATourneySeeds.csv":            seedsCSV,
				"MNCAATourneyCompactResults.csv":   tourneyCSV,
				"MRegularSeasonCompactResults.csv": "Season,DayNum,WTeamID,WScore,LTeamID,LScore\n2019,10,1101,eighty,1102,60\n",
			},
		},
		{
			name: "seeded season without regular-season games",
			files: map[string]string{
				"MTeams.csv":                       teamsCSV,
				"MNCAATourneySeeds.csv":            seedsCSV + "1985,W01,1101\n",
				"MNCAATourneyCompactResults.csv":   tourneyCSV,
				"MRegularSeasonCompactResults.csv": compactCSV,
			},
		},
		{
			name: "no regular season file",
			files: map[string]string{
				"MTeams.csv":                     teamsCSV,
				"MNCAATourneySeeds.csv":          seedsCSV,
				"MNCAATourneyCompactResults.csv": tourneyCSV,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, tt.files)
			_, err := LoadKaggleDir(dir, "M")
			assert.Error(t, err)
		})
	}
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var fixtureRegions = []string{"W", "X", "Y", "Z"}

func fixtureTeamID(region, seed int) int { return 1000*(region+1) + 10*seed }

// writeChalkKaggleDir writes a compact-results Kaggle directory in which the
// better seed wins every game and ties between regions go to the region
// listed first. W01 is named "Wildcats".
func writeChalkKaggleDir(t *testing.T, seasons ...int) string {
	t.Helper()
	dir := t.TempDir()

	teams := []string{"TeamID,TeamName"}
	for r := range fixtureRegions {
		for s := 1; s <= 16; s++ {
			name := fmt.Sprintf("Team %d", fixtureTeamID(r, s))
			if r == 0 && s == 1 {
				name = "Wildcats"
			}
			teams = append(teams, fmt.Sprintf("%d,%s", fixtureTeamID(r, s), name))
		}
	}

	seeds := []string{"Season,Seed,TeamID"}
	results := []string{"Season,DayNum,WTeamID,WScore,LTeamID,LScore,WLoc,NumOT"}
	regular := []string{"Season,DayNum,WTeamID,WScore,LTeamID,LScore,WLoc,NumOT"}
	game := func(season, day, w, l int) string {
		return fmt.Sprintf("%d,%d,%d,70,%d,60,N,0", season, day, w, l)
	}
	for _, season := range seasons {
		for r, region := range fixtureRegions {
			for s := 1; s <= 16; s++ {
				seeds = append(seeds, fmt.Sprintf("%d,%s%02d,%d", season, region, s, fixtureTeamID(r, s)))
			}
			// chalk: round k pairs seed s with seed n+1-s for n = 16, 8, 4, 2
			for k, n := range []int{16, 8, 4, 2} {
				day := []int{136, 138, 143, 145}[k]
				for s := 1; s <= n/2; s++ {
					results = append(results, game(season, day, fixtureTeamID(r, s), fixtureTeamID(r, n+1-s)))
				}
			}
			regular = append(regular, game(season, 30, fixtureTeamID(r, 1), fixtureTeamID(r, 16)))
		}
		results = append(results,
			game(season, 152, fixtureTeamID(0, 1), fixtureTeamID(1, 1)),
			game(season, 152, fixtureTeamID(2, 1), fixtureTeamID(3, 1)),
			game(season, 154, fixtureTeamID(0, 1), fixtureTeamID(2, 1)),
		)
	}

	files := map[string][]string{
		"MTeams.csv":                       teams,
		"MNCAATourneySeeds.csv":            seeds,
		"MNCAATourneyCompactResults.csv":   results,
		"MRegularSeasonCompactResults.csv": regular,
	}
	for name, lines := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	}
	return dir
}

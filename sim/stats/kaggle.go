package stats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bracket-sim/bracket-sim/sim"
)

// Kaggle file names, without the competition prefix ("M" for men's data).
const (
	FileTeams           = "Teams.csv"
	FileTourneySeeds    = "NCAATourneySeeds.csv"
	FileTourneyResults  = "NCAATourneyCompactResults.csv"
	FileRegularDetailed = "RegularSeasonDetailedResults.csv"
	FileRegularCompact  = "RegularSeasonCompactResults.csv"
	DefaultKagglePrefix = "M"
	boxColumnsPerTeam   = 13
)

var boxColumns = [boxColumnsPerTeam]string{"FGM", "FGA", "FGM3", "FGA3", "FTM", "FTA", "OR", "DR", "Ast", "TO", "Stl", "Blk", "PF"}

// table is a header-indexed CSV file.
type table struct {
	path string
	cols map[string]int
	rows [][]string
}

func readTable(path string, required ...string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", path, err)
	}
	t := &table{path: path, cols: make(map[string]int, len(header))}
	for i, h := range header {
		t.cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, c := range required {
		if _, ok := t.cols[c]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, c)
		}
	}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

func (t *table) str(row []string, col string) string {
	return strings.TrimSpace(row[t.cols[col]])
}

func (t *table) int(row []string, line int, col string) (int, error) {
	v, err := strconv.Atoi(t.str(row, col))
	if err != nil {
		return 0, fmt.Errorf("%s: row %d: column %s: %w", t.path, line+2, col, err)
	}
	return v, nil
}

// ints reads several integer columns of one row.
func (t *table) ints(row []string, line int, cols ...string) ([]int, error) {
	out := make([]int, len(cols))
	for i, c := range cols {
		v, err := t.int(row, line, c)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (t *table) box(row []string, line int, side string) (*sim.BoxTotals, error) {
	cols := make([]string, len(boxColumns))
	for i, c := range boxColumns {
		cols[i] = side + c
	}
	v, err := t.ints(row, line, cols...)
	if err != nil {
		return nil, err
	}
	return &sim.BoxTotals{
		FGM: v[0], FGA: v[1], FGM3: v[2], FGA3: v[3], FTM: v[4], FTA: v[5],
		OR: v[6], DR: v[7], Ast: v[8], TO: v[9], Stl: v[10], Blk: v[11], PF: v[12],
	}, nil
}

// LoadKaggleDir reads a Kaggle March Madness data directory into a Dataset.
//
// Records and points come from the compact results for every season; seasons
// also covered by the detailed results take their rows, box scores included,
// from there. Every season with tournament seeds becomes a dataset season.
func LoadKaggleDir(dir, prefix string) (*Dataset, error) {
	path := func(name string) string { return filepath.Join(dir, prefix+name) }
	ds := NewDataset()

	teams, err := readTable(path(FileTeams), "TeamID", "TeamName")
	if err != nil {
		return nil, err
	}
	for i, row := range teams.rows {
		id, err := teams.int(row, i, "TeamID")
		if err != nil {
			return nil, err
		}
		ds.AddTeam(sim.TeamID(id), teams.str(row, "TeamName"))
	}

	seeds, err := loadSeeds(path(FileTourneySeeds))
	if err != nil {
		return nil, err
	}
	games, err := loadTourneyGames(path(FileTourneyResults), seeds)
	if err != nil {
		return nil, err
	}

	regular, boxSeasons, err := loadRegularSeason(path(FileRegularDetailed), path(FileRegularCompact))
	if err != nil {
		return nil, err
	}
	bySeason := make(map[int][]GameResult)
	for _, g := range regular {
		bySeason[g.Season] = append(bySeason[g.Season], g)
	}

	names := ds.TeamNames()
	for season, seasonSeeds := range seeds {
		if len(bySeason[season]) == 0 {
			return nil, fmt.Errorf("season %d has tournament seeds but no regular-season results", season)
		}
		rows := Accumulate(season, bySeason[season], seasonSeeds, names)
		if err := ds.AddSeason(season, rows, games[season]); err != nil {
			return nil, err
		}
	}
	logrus.WithFields(logrus.Fields{
		"dir":     dir,
		"seasons": len(seeds),
		"teams":   len(names),
		"box":     len(boxSeasons),
	}).Info("loaded kaggle data")
	return ds, nil
}

func loadSeeds(path string) (map[int]map[sim.TeamID]sim.Seed, error) {
	t, err := readTable(path, "Season", "Seed", "TeamID")
	if err != nil {
		return nil, err
	}
	out := make(map[int]map[sim.TeamID]sim.Seed)
	for i, row := range t.rows {
		v, err := t.ints(row, i, "Season", "TeamID")
		if err != nil {
			return nil, err
		}
		seed, err := sim.ParseSeed(t.str(row, "Seed"))
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i+2, err)
		}
		if out[v[0]] == nil {
			out[v[0]] = make(map[sim.TeamID]sim.Seed)
		}
		out[v[0]][sim.TeamID(v[1])] = seed
	}
	return out, nil
}

func loadTourneyGames(path string, seeds map[int]map[sim.TeamID]sim.Seed) (map[int][]sim.TourneyGame, error) {
	t, err := readTable(path, "Season", "DayNum", "WTeamID", "WScore", "LTeamID", "LScore")
	if err != nil {
		return nil, err
	}
	out := make(map[int][]sim.TourneyGame)
	for i, row := range t.rows {
		v, err := t.ints(row, i, "Season", "DayNum", "WTeamID", "WScore", "LTeamID", "LScore")
		if err != nil {
			return nil, err
		}
		g := sim.TourneyGame{
			Season: v[0], DayNum: v[1],
			WinnerID: sim.TeamID(v[2]), WinnerScore: v[3],
			LoserID: sim.TeamID(v[4]), LoserScore: v[5],
		}
		var ok bool
		if g.WinnerSeed, ok = seeds[g.Season][g.WinnerID]; !ok {
			return nil, fmt.Errorf("%s: row %d: %w: winner %d has no seed in %d", path, i+2, sim.ErrUnknownTeam, g.WinnerID, g.Season)
		}
		if g.LoserSeed, ok = seeds[g.Season][g.LoserID]; !ok {
			return nil, fmt.Errorf("%s: row %d: %w: loser %d has no seed in %d", path, i+2, sim.ErrUnknownTeam, g.LoserID, g.Season)
		}
		out[g.Season] = append(out[g.Season], g)
	}
	return out, nil
}

// loadRegularSeason merges both regular-season files. Seasons present in the
// detailed file take their rows (with box scores) from it; every other season
// comes from the compact file, which covers the full history. Either file may
// be absent, but not both. The returned seasons are those with box scores.
func loadRegularSeason(detailedPath, compactPath string) ([]GameResult, []int, error) {
	detailed, err := readResults(detailedPath, true)
	if errors.Is(err, fs.ErrNotExist) {
		logrus.Warnf("%s not found, box-score stats are unavailable", detailedPath)
	} else if err != nil {
		return nil, nil, err
	}
	compact, err := readResults(compactPath, false)
	if errors.Is(err, fs.ErrNotExist) && detailed != nil {
		logrus.Warnf("%s not found, only seasons with detailed results have records", compactPath)
	} else if err != nil {
		return nil, nil, err
	}

	covered := make(map[int]bool)
	for _, g := range detailed {
		covered[g.Season] = true
	}
	out := append([]GameResult(nil), detailed...)
	for _, g := range compact {
		if !covered[g.Season] {
			out = append(out, g)
		}
	}
	boxSeasons := make([]int, 0, len(covered))
	for season := range covered {
		boxSeasons = append(boxSeasons, season)
	}
	sort.Ints(boxSeasons)
	return out, boxSeasons, nil
}

// readResults reads one regular-season results file; withBox requires and
// parses the per-team box-score columns.
func readResults(path string, withBox bool) ([]GameResult, error) {
	base := []string{"Season", "DayNum", "WTeamID", "WScore", "LTeamID", "LScore"}
	required := append([]string(nil), base...)
	if withBox {
		for _, side := range []string{"W", "L"} {
			for _, c := range boxColumns {
				required = append(required, side+c)
			}
		}
	}
	t, err := readTable(path, required...)
	if err != nil {
		return nil, err
	}

	out := make([]GameResult, 0, len(t.rows))
	for i, row := range t.rows {
		v, err := t.ints(row, i, base...)
		if err != nil {
			return nil, err
		}
		g := GameResult{
			Season: v[0], DayNum: v[1],
			WinnerID: sim.TeamID(v[2]), WinnerScore: v[3],
			LoserID: sim.TeamID(v[4]), LoserScore: v[5],
		}
		if withBox {
			if g.WinnerBox, err = t.box(row, i, "W"); err != nil {
				return nil, err
			}
			if g.LoserBox, err = t.box(row, i, "L"); err != nil {
				return nil, err
			}
		}
		out = append(out, g)
	}
	return out, nil
}

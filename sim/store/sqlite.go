// Package store persists an imported dataset in SQLite so simulations can be
// re-run without re-reading the source CSV files.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bracket-sim/bracket-sim/sim"
	"github.com/bracket-sim/bracket-sim/sim/stats"
)

// Store is a SQLite-backed sim.StatsProvider.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing %s: %w", path, err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS teams (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS team_seasons (
		season INTEGER NOT NULL,
		team_id INTEGER NOT NULL,
		seed TEXT NOT NULL DEFAULT '',
		wins INTEGER NOT NULL,
		losses INTEGER NOT NULL,
		points_for INTEGER NOT NULL,
		points_against INTEGER NOT NULL,
		has_box INTEGER NOT NULL DEFAULT 0,
		fgm INTEGER NOT NULL DEFAULT 0,
		fga INTEGER NOT NULL DEFAULT 0,
		fgm3 INTEGER NOT NULL DEFAULT 0,
		fga3 INTEGER NOT NULL DEFAULT 0,
		ftm INTEGER NOT NULL DEFAULT 0,
		fta INTEGER NOT NULL DEFAULT 0,
		oreb INTEGER NOT NULL DEFAULT 0,
		dreb INTEGER NOT NULL DEFAULT 0,
		ast INTEGER NOT NULL DEFAULT 0,
		tov INTEGER NOT NULL DEFAULT 0,
		stl INTEGER NOT NULL DEFAULT 0,
		blk INTEGER NOT NULL DEFAULT 0,
		pf INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (season, team_id)
	);

	CREATE TABLE IF NOT EXISTS tourney_games (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		season INTEGER NOT NULL,
		day_num INTEGER NOT NULL,
		w_team_id INTEGER NOT NULL,
		w_score INTEGER NOT NULL,
		w_seed TEXT NOT NULL,
		l_team_id INTEGER NOT NULL,
		l_score INTEGER NOT NULL,
		l_seed TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tourney_games_season ON tourney_games(season);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Import writes every season of ds, replacing seasons already stored.
func (s *Store) Import(ds *stats.Dataset) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for id, name := range ds.TeamNames() {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO teams (id, name) VALUES (?, ?)`, int(id), name); err != nil {
			return fmt.Errorf("inserting team %d: %w", id, err)
		}
	}

	for _, season := range ds.Seasons() {
		if _, err := tx.Exec(`DELETE FROM team_seasons WHERE season = ?`, season); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM tourney_games WHERE season = ?`, season); err != nil {
			return err
		}
		for _, r := range ds.Rows(season) {
			if err := insertTeamSeason(tx, r); err != nil {
				return fmt.Errorf("season %d team %d: %w", season, r.TeamID, err)
			}
		}
		games, err := ds.GamesForSeason(season)
		if err != nil {
			return err
		}
		for _, g := range games {
			_, err := tx.Exec(`
				INSERT INTO tourney_games (season, day_num, w_team_id, w_score, w_seed, l_team_id, l_score, l_seed)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				g.Season, g.DayNum, int(g.WinnerID), g.WinnerScore, g.WinnerSeed.String(),
				int(g.LoserID), g.LoserScore, g.LoserSeed.String())
			if err != nil {
				return fmt.Errorf("season %d game %d vs %d: %w", season, g.WinnerID, g.LoserID, err)
			}
		}
	}
	return tx.Commit()
}

func insertTeamSeason(tx *sql.Tx, r sim.TeamSeason) error {
	var b sim.BoxTotals
	hasBox := 0
	if r.Box != nil {
		b = *r.Box
		hasBox = 1
	}
	_, err := tx.Exec(`
		INSERT INTO team_seasons (season, team_id, seed, wins, losses, points_for, points_against,
			has_box, fgm, fga, fgm3, fga3, ftm, fta, oreb, dreb, ast, tov, stl, blk, pf)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Season, int(r.TeamID), r.Seed.String(), r.Wins, r.Losses, r.PointsFor, r.PointsAgainst,
		hasBox, b.FGM, b.FGA, b.FGM3, b.FGA3, b.FTM, b.FTA, b.OR, b.DR, b.Ast, b.TO, b.Stl, b.Blk, b.PF)
	return err
}

func parseStoredSeed(s string) (sim.Seed, error) {
	if s == "" {
		return sim.Seed{}, nil
	}
	return sim.ParseSeed(s)
}

// StatsForSeason implements sim.StatsProvider.
func (s *Store) StatsForSeason(season int) (*sim.SeasonStats, error) {
	rows, err := s.db.Query(`
		SELECT ts.team_id, COALESCE(t.name, ''), ts.seed, ts.wins, ts.losses, ts.points_for, ts.points_against,
			ts.has_box, ts.fgm, ts.fga, ts.fgm3, ts.fga3, ts.ftm, ts.fta, ts.oreb, ts.dreb, ts.ast, ts.tov, ts.stl, ts.blk, ts.pf
		FROM team_seasons ts LEFT JOIN teams t ON t.id = ts.team_id
		WHERE ts.season = ?
		ORDER BY ts.team_id`, season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sim.TeamSeason
	for rows.Next() {
		r := sim.TeamSeason{Season: season}
		var (
			id     int
			seed   string
			hasBox int
			b      sim.BoxTotals
		)
		if err := rows.Scan(&id, &r.Name, &seed, &r.Wins, &r.Losses, &r.PointsFor, &r.PointsAgainst,
			&hasBox, &b.FGM, &b.FGA, &b.FGM3, &b.FGA3, &b.FTM, &b.FTA, &b.OR, &b.DR, &b.Ast, &b.TO, &b.Stl, &b.Blk, &b.PF); err != nil {
			return nil, err
		}
		r.TeamID = sim.TeamID(id)
		if r.Seed, err = parseStoredSeed(seed); err != nil {
			return nil, fmt.Errorf("team %d: %w", id, err)
		}
		if hasBox == 1 {
			r.Box = &b
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no team stats for season %d", season)
	}
	return sim.NewSeasonStats(season, out)
}

// GamesForSeason implements sim.StatsProvider, in import order. A season
// imported without tournament games returns an empty slice, as Dataset does.
func (s *Store) GamesForSeason(season int) ([]sim.TourneyGame, error) {
	rows, err := s.db.Query(`
		SELECT day_num, w_team_id, w_score, w_seed, l_team_id, l_score, l_seed
		FROM tourney_games WHERE season = ? ORDER BY id`, season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sim.TourneyGame
	for rows.Next() {
		g := sim.TourneyGame{Season: season}
		var (
			wID, lID     int
			wSeed, lSeed string
		)
		if err := rows.Scan(&g.DayNum, &wID, &g.WinnerScore, &wSeed, &lID, &g.LoserScore, &lSeed); err != nil {
			return nil, err
		}
		g.WinnerID, g.LoserID = sim.TeamID(wID), sim.TeamID(lID)
		if g.WinnerSeed, err = sim.ParseSeed(wSeed); err != nil {
			return nil, fmt.Errorf("game %d vs %d: %w", wID, lID, err)
		}
		if g.LoserSeed, err = sim.ParseSeed(lSeed); err != nil {
			return nil, fmt.Errorf("game %d vs %d: %w", wID, lID, err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		// a stored season without games (a cancelled tournament) reads as empty
		var n int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM team_seasons WHERE season = ?`, season).Scan(&n); err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("no tournament games for season %d", season)
		}
		return []sim.TourneyGame{}, nil
	}
	return out, nil
}

// Seasons returns the stored seasons, sorted.
func (s *Store) Seasons() ([]int, error) {
	rows, err := s.db.Query(`SELECT DISTINCT season FROM team_seasons ORDER BY season`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var season int
		if err := rows.Scan(&season); err != nil {
			return nil, err
		}
		out = append(out, season)
	}
	return out, rows.Err()
}

// TeamNames returns every stored team name by id.
func (s *Store) TeamNames() (map[sim.TeamID]string, error) {
	rows, err := s.db.Query(`SELECT id, name FROM teams`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[sim.TeamID]string)
	for rows.Next() {
		var (
			id   int
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[sim.TeamID(id)] = name
	}
	return out, rows.Err()
}

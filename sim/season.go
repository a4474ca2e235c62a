package sim

import (
	"fmt"
	"sort"
)

// TeamID identifies a team across seasons. Zero is never a valid team.
type TeamID int

// BoxTotals holds season box-score totals from detailed game results.
type BoxTotals struct {
	FGM  int // field goals made
	FGA  int // field goals attempted
	FGM3 int // three pointers made
	FGA3 int // three pointers attempted
	FTM  int // free throws made
	FTA  int // free throws attempted
	OR   int // offensive rebounds
	DR   int // defensive rebounds
	Ast  int
	TO   int
	Stl  int
	Blk  int
	PF   int
}

// Add accumulates o into b.
func (b *BoxTotals) Add(o BoxTotals) {
	b.FGM += o.FGM
	b.FGA += o.FGA
	b.FGM3 += o.FGM3
	b.FGA3 += o.FGA3
	b.FTM += o.FTM
	b.FTA += o.FTA
	b.OR += o.OR
	b.DR += o.DR
	b.Ast += o.Ast
	b.TO += o.TO
	b.Stl += o.Stl
	b.Blk += o.Blk
	b.PF += o.PF
}

// TeamSeason is one team's aggregate regular-season record. Counts are stored;
// ratios are derived on demand.
type TeamSeason struct {
	Season        int
	TeamID        TeamID
	Name          string
	Seed          Seed // zero when the team did not make the tournament
	Wins          int
	Losses        int
	PointsFor     int
	PointsAgainst int
	Box           *BoxTotals // nil when only compact results were available
}

// Stat names accepted by TeamSeason.Stat.
const (
	StatSeed            = "seed"
	StatWinPct          = "win_pct"
	StatPointsPerGame   = "points_per_game"
	StatPointsAllowed   = "points_allowed_per_game"
	StatPointDiff       = "point_diff_per_game"
	StatFGPct           = "fg_pct"
	StatThreePct        = "three_pct"
	StatFTPct           = "ft_pct"
	StatReboundsPerGame = "rebounds_per_game"
	StatAssistTurnover  = "assist_turnover_ratio"
	StatDefensive       = "defensive_composite"
)

var compactStats = map[string]func(*TeamSeason) float64{
	StatSeed:          func(t *TeamSeason) float64 { return float64(t.Seed.Number) },
	StatWinPct:        (*TeamSeason).WinPct,
	StatPointsPerGame: (*TeamSeason).PointsPerGame,
	StatPointsAllowed: (*TeamSeason).PointsAllowedPerGame,
	StatPointDiff:     (*TeamSeason).PointDiffPerGame,
}

var detailedStats = map[string]func(*TeamSeason) float64{
	StatFGPct:           (*TeamSeason).FGPct,
	StatThreePct:        (*TeamSeason).ThreePct,
	StatFTPct:           (*TeamSeason).FTPct,
	StatReboundsPerGame: (*TeamSeason).ReboundsPerGame,
	StatAssistTurnover:  (*TeamSeason).AssistTurnoverRatio,
	StatDefensive:       (*TeamSeason).DefensiveComposite,
}

// StatNames returns every stat name accepted by Stat, sorted.
func StatNames() []string {
	names := make([]string, 0, len(compactStats)+len(detailedStats))
	for n := range compactStats {
		names = append(names, n)
	}
	for n := range detailedStats {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsStatName reports whether name is accepted by Stat.
func IsStatName(name string) bool {
	_, ok := compactStats[name]
	if !ok {
		_, ok = detailedStats[name]
	}
	return ok
}

// Stat returns the named statistic. Box-score stats fail when the team has no
// detailed totals rather than silently reading zero.
func (t *TeamSeason) Stat(name string) (float64, error) {
	if f, ok := compactStats[name]; ok {
		return f(t), nil
	}
	if f, ok := detailedStats[name]; ok {
		if t.Box == nil {
			return 0, fmt.Errorf("stat %q needs detailed results, team %d season %d has none", name, t.TeamID, t.Season)
		}
		return f(t), nil
	}
	return 0, fmt.Errorf("unknown stat %q", name)
}

// Games is the number of games played.
func (t *TeamSeason) Games() int { return t.Wins + t.Losses }

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func (t *TeamSeason) WinPct() float64 { return ratio(t.Wins, t.Games()) }
func (t *TeamSeason) PointsPerGame() float64 { return ratio(t.PointsFor, t.Games()) }
func (t *TeamSeason) PointsAllowedPerGame() float64 { return ratio(t.PointsAgainst, t.Games()) }
func (t *TeamSeason) PointDiffPerGame() float64 {
	return ratio(t.PointsFor-t.PointsAgainst, t.Games())
}

func (t *TeamSeason) box() BoxTotals {
	if t.Box == nil {
		return BoxTotals{}
	}
	return *t.Box
}

func (t *TeamSeason) FGPct() float64 { b := t.box(); return ratio(b.FGM, b.FGA) }
func (t *TeamSeason) ThreePct() float64 { b := t.box(); return ratio(b.FGM3, b.FGA3) }
func (t *TeamSeason) FTPct() float64 { b := t.box(); return ratio(b.FTM, b.FTA) }

func (t *TeamSeason) ReboundsPerGame() float64 {
	b := t.box()
	return ratio(b.OR+b.DR, t.Games())
}

func (t *TeamSeason) AssistTurnoverRatio() float64 {
	b := t.box()
	return ratio(b.Ast, b.TO)
}

// DefensiveComposite is (steals + blocks + defensive rebounds) per game.
func (t *TeamSeason) DefensiveComposite() float64 {
	b := t.box()
	return ratio(b.Stl+b.Blk+b.DR, t.Games())
}

// StatsView is the season-scoped, read-only snapshot a predictor consults.
type StatsView interface {
	Season() int
	Team(id TeamID) (*TeamSeason, error)
}

// SeasonStats is the in-memory StatsView: team rows keyed by id.
// It must not be mutated once handed to a simulation.
type SeasonStats struct {
	season int
	teams  map[TeamID]*TeamSeason
}

// NewSeasonStats indexes rows by team id. Rows from other seasons are rejected.
func NewSeasonStats(season int, rows []TeamSeason) (*SeasonStats, error) {
	s := &SeasonStats{season: season, teams: make(map[TeamID]*TeamSeason, len(rows))}
	for i := range rows {
		row := rows[i]
		if row.Season != season {
			return nil, fmt.Errorf("team %d row belongs to season %d, not %d", row.TeamID, row.Season, season)
		}
		if _, dup := s.teams[row.TeamID]; dup {
			return nil, fmt.Errorf("duplicate row for team %d in season %d", row.TeamID, season)
		}
		s.teams[row.TeamID] = &row
	}
	return s, nil
}

// Season returns the season the stats belong to.
func (s *SeasonStats) Season() int { return s.season }

// Team looks up a team's row.
func (s *SeasonStats) Team(id TeamID) (*TeamSeason, error) {
	t, ok := s.teams[id]
	if !ok {
		return nil, fmt.Errorf("%w: team %d in season %d", ErrUnknownTeam, id, s.season)
	}
	return t, nil
}

// Len returns the number of teams.
func (s *SeasonStats) Len() int { return len(s.teams) }

// TeamIDs returns all team ids, sorted.
func (s *SeasonStats) TeamIDs() []TeamID {
	ids := make([]TeamID, 0, len(s.teams))
	for id := range s.teams {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// TourneyGame is one historical tournament game.
type TourneyGame struct {
	Season      int
	DayNum      int
	WinnerID    TeamID
	WinnerScore int
	WinnerSeed  Seed
	LoserID     TeamID
	LoserScore  int
	LoserSeed   Seed
}

// IsPlayIn reports whether the game decided a shared seed: both teams hold the
// same integer seed in the same region with a play-in rank.
func (g TourneyGame) IsPlayIn() bool {
	return g.WinnerSeed.Region == g.LoserSeed.Region &&
		g.WinnerSeed.Number == g.LoserSeed.Number &&
		g.WinnerSeed.IsPlayIn() && g.LoserSeed.IsPlayIn()
}

// StatsProvider is the external source of season data.
type StatsProvider interface {
	StatsForSeason(season int) (*SeasonStats, error)
	GamesForSeason(season int) ([]TourneyGame, error)
}

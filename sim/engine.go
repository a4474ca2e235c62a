package sim

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/bracket-sim/bracket-sim/sim/trace"
)

// Engine runs season simulations against a read-only StatsProvider.
// Each simulation builds its own Bracket, so one Engine may serve many
// goroutines as long as the provider is safe for concurrent reads.
type Engine struct {
	Provider StatsProvider
	Layout   Layout

	// Parallelism bounds how many seasons TourneySimVsActual runs at once.
	// Values below 1 mean one.
	Parallelism int

	TraceLevel trace.TraceLevel
}

// NewEngine returns an Engine over the NCAA layout with tracing off.
func NewEngine(p StatsProvider) *Engine {
	return &Engine{
		Provider:    p,
		Layout:      NCAA(),
		Parallelism: 1,
		TraceLevel:  trace.TraceLevelNone,
	}
}

// SeasonResult is one simulated season.
type SeasonResult struct {
	Season  int
	Winners []TeamID // canonical order: main games, then play-ins
	Bracket *Bracket
	Trace   *trace.BracketTrace // nil unless tracing is enabled
}

// TourneySim assembles the season's bracket and resolves every game with p.
func (e *Engine) TourneySim(season int, p Predictor) (*SeasonResult, error) {
	stats, err := e.Provider.StatsForSeason(season)
	if err != nil {
		return nil, &SeasonError{Season: season, Err: fmt.Errorf("loading stats: %w", err)}
	}
	games, err := e.Provider.GamesForSeason(season)
	if err != nil {
		return nil, &SeasonError{Season: season, Err: fmt.Errorf("loading games: %w", err)}
	}
	b, err := Assemble(e.Layout, games, p, stats)
	if err != nil {
		return nil, &SeasonError{Season: season, Err: err}
	}

	res := &SeasonResult{Season: season, Bracket: b}
	if e.TraceLevel.Enabled() {
		res.Trace = trace.NewBracketTrace(e.TraceLevel, season, PredictorName(p))
		b.SetTrace(res.Trace)
	}
	res.Winners, err = b.Simulate()
	if err != nil {
		return nil, &SeasonError{Season: season, Err: err}
	}
	logrus.WithFields(logrus.Fields{
		"season":    season,
		"predictor": PredictorName(p),
		"games":     b.Len(),
		"play_ins":  b.PlayIns(),
	}).Debug("season simulated")
	return res, nil
}

// TourneyActual returns the season's historical winners in canonical order.
func (e *Engine) TourneyActual(season int) ([]TeamID, error) {
	games, err := e.Provider.GamesForSeason(season)
	if err != nil {
		return nil, &SeasonError{Season: season, Err: fmt.Errorf("loading games: %w", err)}
	}
	winners, err := ActualWinners(e.Layout, games)
	if err != nil {
		return nil, &SeasonError{Season: season, Err: err}
	}
	return winners, nil
}

// SeasonOutcome is the scored result of one season.
type SeasonOutcome struct {
	Season    int      `json:"season"`
	Tally     Tally    `json:"tally"`
	Accuracy  float64  `json:"accuracy"`
	Simulated []TeamID `json:"-"`
	Actual    []TeamID `json:"-"`
}

// SeasonFailure records a season that could not be scored.
type SeasonFailure struct {
	Season  int    `json:"season"`
	Kind    string `json:"kind"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

// Evaluation bundles a multi-season accuracy run.
//
// Accuracy is pooled: correct picks over all games of all scored seasons,
// which equals scoring the concatenated winner lists. MeanSeasonAccuracy
// weights every scored season equally instead, so the two differ when
// seasons have different play-in counts.
type Evaluation struct {
	RunID              string          `json:"run_id"`
	Predictor          string          `json:"predictor"`
	Seasons            []SeasonOutcome `json:"seasons"`
	Pooled             Tally           `json:"pooled"`
	Accuracy           float64         `json:"accuracy"`
	MeanSeasonAccuracy float64         `json:"mean_season_accuracy"`
	Failures           []SeasonFailure `json:"failures,omitempty"`
	Partial            bool            `json:"partial"`
}

// TourneySimVsActual simulates and scores each season independently.
//
// A failing season never aborts the batch: it is listed in Failures with its
// error kind and the evaluation is marked Partial. The factory is called once
// per season so predictors with RNG state are never shared between goroutines.
// Only an empty season list is an error.
func (e *Engine) TourneySimVsActual(seasons []int, factory PredictorFactory) (*Evaluation, error) {
	if len(seasons) == 0 {
		return nil, fmt.Errorf("no seasons to evaluate")
	}
	outcomes := make([]*SeasonOutcome, len(seasons))
	failures := make([]*SeasonFailure, len(seasons))
	names := make([]string, len(seasons))

	var g errgroup.Group
	g.SetLimit(max(e.Parallelism, 1))
	for i, season := range seasons {
		i, season := i, season
		g.Go(func() error {
			out, name, err := e.scoreSeason(season, factory)
			names[i] = name
			if err != nil {
				kind := ErrorKind(err)
				logrus.WithFields(logrus.Fields{"season": season, "kind": kind}).Warnf("season skipped: %v", err)
				failures[i] = &SeasonFailure{Season: season, Kind: kind, Message: err.Error(), Err: err}
				return nil
			}
			outcomes[i] = out
			return nil
		})
	}
	_ = g.Wait() // workers report through failures

	ev := &Evaluation{RunID: uuid.NewString()}
	var accs []float64
	for i := range seasons {
		if ev.Predictor == "" {
			ev.Predictor = names[i]
		}
		if failures[i] != nil {
			ev.Failures = append(ev.Failures, *failures[i])
			continue
		}
		ev.Seasons = append(ev.Seasons, *outcomes[i])
		ev.Pooled = ev.Pooled.Add(outcomes[i].Tally)
		accs = append(accs, outcomes[i].Accuracy)
	}
	sort.Slice(ev.Seasons, func(i, j int) bool { return ev.Seasons[i].Season < ev.Seasons[j].Season })
	sort.Slice(ev.Failures, func(i, j int) bool { return ev.Failures[i].Season < ev.Failures[j].Season })
	ev.Accuracy = ev.Pooled.Accuracy()
	if len(accs) > 0 {
		ev.MeanSeasonAccuracy = stat.Mean(accs, nil)
	}
	ev.Partial = len(ev.Failures) > 0
	return ev, nil
}

func (e *Engine) scoreSeason(season int, factory PredictorFactory) (*SeasonOutcome, string, error) {
	p, err := factory(season)
	if err != nil {
		return nil, "", &SeasonError{Season: season, Err: fmt.Errorf("building predictor: %w", err)}
	}
	name := PredictorName(p)
	res, err := e.TourneySim(season, p)
	if err != nil {
		return nil, name, err
	}
	actual, err := e.TourneyActual(season)
	if err != nil {
		return nil, name, err
	}
	t, err := Score(res.Winners, actual)
	if err != nil {
		return nil, name, &SeasonError{Season: season, Err: err}
	}
	return &SeasonOutcome{
		Season:    season,
		Tally:     t,
		Accuracy:  t.Accuracy(),
		Simulated: res.Winners,
		Actual:    actual,
	}, name, nil
}

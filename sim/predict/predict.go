// Package predict provides Win Predictor implementations and a name registry.
//
// Every predictor compares one or more team statistics from the season's
// StatsView. When the decisive values are exactly equal the winner is drawn
// 50/50 from the injected RNG, so predictors are not safe for concurrent use;
// build one per season with a PredictorFactory.
package predict

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/bracket-sim/bracket-sim/sim"
)

// Predictor names accepted by New.
const (
	NameBetterSeed     = "better-seed"
	NameCoinFlip       = "coin-flip"
	NameWinPct         = "win-pct"
	NamePointsPerGame  = "points-per-game"
	NamePointsAllowed  = "points-allowed"
	NamePointDiff      = "point-diff"
	NameFGPct          = "fg-pct"
	NameThreePct       = "three-pct"
	NameRebounds       = "rebounds"
	NameAssistTurnover = "ast-to"
	NameDefense        = "defense"
	NameLogistic       = "logistic"
)

type comparatorSpec struct {
	stat      string
	lowerWins bool
	help      string
}

var comparators = map[string]comparatorSpec{
	NameWinPct:         {stat: sim.StatWinPct, help: "higher regular-season win percentage wins"},
	NamePointsPerGame:  {stat: sim.StatPointsPerGame, help: "more points scored per game wins"},
	NamePointsAllowed:  {stat: sim.StatPointsAllowed, lowerWins: true, help: "fewer points allowed per game wins"},
	NamePointDiff:      {stat: sim.StatPointDiff, help: "larger scoring margin per game wins"},
	NameFGPct:          {stat: sim.StatFGPct, help: "higher field goal percentage wins"},
	NameThreePct:       {stat: sim.StatThreePct, help: "higher three point percentage wins"},
	NameRebounds:       {stat: sim.StatReboundsPerGame, help: "more rebounds per game wins"},
	NameAssistTurnover: {stat: sim.StatAssistTurnover, help: "higher assist to turnover ratio wins"},
	NameDefense:        {stat: sim.StatDefensive, help: "more steals, blocks and defensive rebounds per game wins"},
}

// ValidPredictors is the set of recognized predictor names.
var ValidPredictors = func() map[string]bool {
	m := map[string]bool{NameBetterSeed: true, NameCoinFlip: true, NameLogistic: true}
	for n := range comparators {
		m[n] = true
	}
	return m
}()

// Names returns every registered predictor name, sorted.
func Names() []string {
	out := make([]string, 0, len(ValidPredictors))
	for n := range ValidPredictors {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Describe returns a one-line description of a registered predictor.
func Describe(name string) string {
	switch name {
	case NameBetterSeed:
		return "lower tournament seed wins"
	case NameCoinFlip:
		return "every game is a 50/50 draw"
	case NameLogistic:
		return "logistic model over stat differentials (needs a model file)"
	}
	if c, ok := comparators[name]; ok {
		return c.help
	}
	return ""
}

// New creates a predictor by name. rng breaks ties; nil resolves ties to
// team a. The logistic predictor needs a model and must be built with
// NewWithModel.
func New(name string, rng *rand.Rand) (sim.Predictor, error) {
	return NewWithModel(name, nil, rng)
}

// NewWithModel is New with an optional logistic model.
func NewWithModel(name string, model *LogisticModel, rng *rand.Rand) (sim.Predictor, error) {
	switch name {
	case NameBetterSeed:
		return &BetterSeed{rng: rng}, nil
	case NameCoinFlip:
		return &CoinFlip{rng: rng}, nil
	case NameLogistic:
		if model == nil {
			return nil, fmt.Errorf("predictor %q needs a model", name)
		}
		return NewLogistic(*model, rng)
	}
	if c, ok := comparators[name]; ok {
		return &StatComparator{name: name, stat: c.stat, lowerWins: c.lowerWins, rng: rng}, nil
	}
	return nil, fmt.Errorf("unknown predictor %q; valid predictors: [%s]", name, strings.Join(Names(), ", "))
}

// Factory returns a PredictorFactory that builds a fresh predictor per
// season, seeded from key so batches are reproducible in any schedule.
func Factory(name string, model *LogisticModel, key sim.SimulationKey) sim.PredictorFactory {
	return func(season int) (sim.Predictor, error) {
		return NewWithModel(name, model, key.ForSeason(season))
	}
}

// flip picks a or b with equal probability.
func flip(rng *rand.Rand, a, b sim.TeamID) sim.TeamID {
	if rng == nil || rng.Intn(2) == 0 {
		return a
	}
	return b
}

func lookup(stats sim.StatsView, a, b sim.TeamID) (*sim.TeamSeason, *sim.TeamSeason, error) {
	ta, err := stats.Team(a)
	if err != nil {
		return nil, nil, err
	}
	tb, err := stats.Team(b)
	if err != nil {
		return nil, nil, err
	}
	return ta, tb, nil
}

package predict

import (
	"fmt"
	"math/rand"

	"github.com/bracket-sim/bracket-sim/sim"
)

// StatComparator picks the team with the better value of one statistic.
type StatComparator struct {
	name      string
	stat      string
	lowerWins bool
	rng       *rand.Rand
}

// NewStatComparator builds a comparator over any stat accepted by
// TeamSeason.Stat.
func NewStatComparator(stat string, lowerWins bool, rng *rand.Rand) (*StatComparator, error) {
	if !sim.IsStatName(stat) {
		return nil, fmt.Errorf("unknown stat %q", stat)
	}
	return &StatComparator{name: stat, stat: stat, lowerWins: lowerWins, rng: rng}, nil
}

// Name implements sim.Named.
func (c *StatComparator) Name() string { return c.name }

// Predict implements sim.Predictor.
func (c *StatComparator) Predict(a, b sim.TeamID, stats sim.StatsView) (sim.TeamID, error) {
	ta, tb, err := lookup(stats, a, b)
	if err != nil {
		return 0, err
	}
	va, err := ta.Stat(c.stat)
	if err != nil {
		return 0, err
	}
	vb, err := tb.Stat(c.stat)
	if err != nil {
		return 0, err
	}
	switch {
	case va == vb:
		return flip(c.rng, a, b), nil
	case (va > vb) != c.lowerWins:
		return a, nil
	default:
		return b, nil
	}
}

// BetterSeed picks the lower seed number; equal seeds are a coin flip.
type BetterSeed struct {
	rng *rand.Rand
}

// Name implements sim.Named.
func (*BetterSeed) Name() string { return NameBetterSeed }

// Predict implements sim.Predictor.
func (p *BetterSeed) Predict(a, b sim.TeamID, stats sim.StatsView) (sim.TeamID, error) {
	ta, tb, err := lookup(stats, a, b)
	if err != nil {
		return 0, err
	}
	if ta.Seed.IsZero() || tb.Seed.IsZero() {
		return 0, fmt.Errorf("season %d: team %d or %d has no tournament seed", stats.Season(), a, b)
	}
	switch {
	case ta.Seed.Better(tb.Seed):
		return a, nil
	case tb.Seed.Better(ta.Seed):
		return b, nil
	default:
		return flip(p.rng, a, b), nil
	}
}

// CoinFlip ignores the stats entirely.
type CoinFlip struct {
	rng *rand.Rand
}

// Name implements sim.Named.
func (*CoinFlip) Name() string { return NameCoinFlip }

// Predict implements sim.Predictor. Both teams must still exist.
func (p *CoinFlip) Predict(a, b sim.TeamID, stats sim.StatsView) (sim.TeamID, error) {
	if _, _, err := lookup(stats, a, b); err != nil {
		return 0, err
	}
	return flip(p.rng, a, b), nil
}

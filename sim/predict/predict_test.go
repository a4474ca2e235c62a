package predict

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bracket-sim/bracket-sim/sim"
)

// twoTeams builds a season with team 1 (seed 2) and team 2 (seed 7).
func twoTeams(t *testing.T, mutate func(a, b *sim.TeamSeason)) *sim.SeasonStats {
	t.Helper()
	a := sim.TeamSeason{
		Season: 2020, TeamID: 1, Seed: sim.Seed{Region: "W", Number: 2},
		Wins: 28, Losses: 4, PointsFor: 2560, PointsAgainst: 2080,
		Box: &sim.BoxTotals{FGM: 900, FGA: 1900, FGM3: 260, FGA3: 700, FTM: 420, FTA: 560,
			OR: 330, DR: 820, Ast: 500, TO: 330, Stl: 220, Blk: 130, PF: 500},
	}
	b := sim.TeamSeason{
		Season: 2020, TeamID: 2, Seed: sim.Seed{Region: "W", Number: 7},
		Wins: 20, Losses: 12, PointsFor: 2300, PointsAgainst: 2200,
		Box: &sim.BoxTotals{FGM: 820, FGA: 1950, FGM3: 210, FGA3: 660, FTM: 380, FTA: 540,
			OR: 300, DR: 760, Ast: 420, TO: 390, Stl: 170, Blk: 90, PF: 560},
	}
	if mutate != nil {
		mutate(&a, &b)
	}
	s, err := sim.NewSeasonStats(2020, []sim.TeamSeason{a, b})
	require.NoError(t, err)
	return s
}

func TestNew_EveryRegisteredNameBuilds(t *testing.T) {
	model := &LogisticModel{Coefficients: map[string]float64{sim.StatSeed: -0.2}}
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p, err := NewWithModel(name, model, rand.New(rand.NewSource(1)))
			require.NoError(t, err)
			assert.Equal(t, name, sim.PredictorName(p))
			assert.NotEmpty(t, Describe(name))
		})
	}
}

func TestNew_UnknownName(t *testing.T) {
	_, err := New("crystal-ball", nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), NameBetterSeed), "error lists valid names")
}

func TestNew_LogisticNeedsModel(t *testing.T) {
	_, err := New(NameLogistic, nil)
	assert.Error(t, err)
}

func TestPredictors_PickTheStrongerTeam(t *testing.T) {
	// Team 1 is better on every stat in twoTeams.
	stats := twoTeams(t, nil)
	for _, name := range Names() {
		if name == NameCoinFlip || name == NameLogistic {
			continue
		}
		t.Run(name, func(t *testing.T) {
			p, err := New(name, nil)
			require.NoError(t, err)
			w, err := p.Predict(1, 2, stats)
			require.NoError(t, err)
			assert.Equal(t, sim.TeamID(1), w)
			w, err = p.Predict(2, 1, stats)
			require.NoError(t, err)
			assert.Equal(t, sim.TeamID(1), w, "argument order must not matter")
		})
	}
}

func TestPointsAllowed_LowerWins(t *testing.T) {
	stats := twoTeams(t, func(a, b *sim.TeamSeason) { a.PointsAgainst = 2500 })
	p, err := New(NamePointsAllowed, nil)
	require.NoError(t, err)
	w, err := p.Predict(1, 2, stats)
	require.NoError(t, err)
	assert.Equal(t, sim.TeamID(2), w)
}

func TestTieBreak_IsRoughlyFiftyFifty(t *testing.T) {
	// GIVEN two teams with identical records
	stats := twoTeams(t, func(a, b *sim.TeamSeason) {
		b.Wins, b.Losses = a.Wins, a.Losses
		b.Seed.Number = a.Seed.Number
	})

	for _, name := range []string{NameWinPct, NameBetterSeed, NameCoinFlip} {
		t.Run(name, func(t *testing.T) {
			p, err := New(name, rand.New(rand.NewSource(5)))
			require.NoError(t, err)

			// WHEN asked many times
			wins := 0
			for i := 0; i < 2000; i++ {
				w, err := p.Predict(1, 2, stats)
				require.NoError(t, err)
				if w == 1 {
					wins++
				}
			}

			// THEN both teams win about half the time
			assert.InDelta(t, 1000, wins, 120)
		})
	}
}

func TestTieBreak_NilRNGPicksFirstTeam(t *testing.T) {
	stats := twoTeams(t, func(a, b *sim.TeamSeason) { b.Wins, b.Losses = a.Wins, a.Losses })
	p, err := New(NameWinPct, nil)
	require.NoError(t, err)
	w, err := p.Predict(2, 1, stats)
	require.NoError(t, err)
	assert.Equal(t, sim.TeamID(2), w)
}

func TestPredict_UnknownTeam(t *testing.T) {
	stats := twoTeams(t, nil)
	for _, name := range []string{NameBetterSeed, NameCoinFlip, NameWinPct} {
		p, err := New(name, nil)
		require.NoError(t, err)
		_, err = p.Predict(1, 99, stats)
		assert.ErrorIs(t, err, sim.ErrUnknownTeam, name)
	}
}

func TestBoxStatPredictor_NeedsDetailedResults(t *testing.T) {
	stats := twoTeams(t, func(a, b *sim.TeamSeason) { b.Box = nil })
	p, err := New(NameFGPct, nil)
	require.NoError(t, err)
	_, err = p.Predict(1, 2, stats)
	assert.Error(t, err)
}

func TestBetterSeed_RejectsUnseededTeam(t *testing.T) {
	stats := twoTeams(t, func(a, b *sim.TeamSeason) { b.Seed = sim.Seed{} })
	p, err := New(NameBetterSeed, nil)
	require.NoError(t, err)
	_, err = p.Predict(1, 2, stats)
	assert.Error(t, err)
}

func TestNewStatComparator(t *testing.T) {
	_, err := NewStatComparator("charisma", false, nil)
	assert.Error(t, err)

	c, err := NewStatComparator(sim.StatFTPct, false, nil)
	require.NoError(t, err)
	w, err := c.Predict(1, 2, twoTeams(t, nil))
	require.NoError(t, err)
	assert.Equal(t, sim.TeamID(1), w)
}

func TestFactory_SameKeySameDraws(t *testing.T) {
	stats := twoTeams(t, nil)
	f := Factory(NameCoinFlip, nil, sim.NewSimulationKey(3))
	draw := func() []sim.TeamID {
		p, err := f(2020)
		require.NoError(t, err)
		var out []sim.TeamID
		for i := 0; i < 20; i++ {
			w, err := p.Predict(1, 2, stats)
			require.NoError(t, err)
			out = append(out, w)
		}
		return out
	}
	assert.Equal(t, draw(), draw())
}

func TestCounting(t *testing.T) {
	inner, err := New(NameBetterSeed, nil)
	require.NoError(t, err)
	c := NewCounting(inner)
	stats := twoTeams(t, nil)
	for i := 0; i < 3; i++ {
		_, err := c.Predict(1, 2, stats)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, c.Calls())
	assert.Equal(t, NameBetterSeed, c.Name())
}

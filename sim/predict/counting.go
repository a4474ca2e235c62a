package predict

import (
	"sync/atomic"

	"github.com/bracket-sim/bracket-sim/sim"
)

// Counting wraps a predictor and counts invocations.
type Counting struct {
	Inner sim.Predictor
	calls atomic.Int64
}

// NewCounting wraps p.
func NewCounting(p sim.Predictor) *Counting { return &Counting{Inner: p} }

// Name implements sim.Named.
func (c *Counting) Name() string { return sim.PredictorName(c.Inner) }

// Predict implements sim.Predictor.
func (c *Counting) Predict(a, b sim.TeamID, stats sim.StatsView) (sim.TeamID, error) {
	c.calls.Add(1)
	return c.Inner.Predict(a, b, stats)
}

// Calls returns the number of Predict calls so far.
func (c *Counting) Calls() int { return int(c.calls.Load()) }

package sim

import "fmt"

// Predictor picks the winner of a game between two teams.
//
// Implementations may be non-deterministic (ties are broken at random), so the
// bracket calls Predict at most once per game and never relies on repeated
// calls agreeing. The returned team must be a or b.
type Predictor interface {
	Predict(a, b TeamID, stats StatsView) (TeamID, error)
}

// PredictorFunc adapts a plain function to Predictor.
type PredictorFunc func(a, b TeamID, stats StatsView) (TeamID, error)

// Predict implements Predictor.
func (f PredictorFunc) Predict(a, b TeamID, stats StatsView) (TeamID, error) {
	return f(a, b, stats)
}

// PredictorFactory builds the predictor for one season. Batches call it once
// per season so predictors holding RNG state are never shared across goroutines.
type PredictorFactory func(season int) (Predictor, error)

// Shared returns a factory that hands out the same predictor for every season.
// Only safe for stateless predictors or single-threaded batches.
func Shared(p Predictor) PredictorFactory {
	return func(int) (Predictor, error) { return p, nil }
}

// Named is implemented by predictors that carry a registry name.
type Named interface {
	Name() string
}

// PredictorName returns p's name, falling back to its Go type.
func PredictorName(p Predictor) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}

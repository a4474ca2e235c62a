package sim

import "fmt"

// Tally counts index-wise agreement between simulated and actual winners.
type Tally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Accuracy returns Correct/Total, or 0 for an empty tally.
func (t Tally) Accuracy() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total)
}

// Add pools two tallies, which is the same as scoring the concatenated lists.
func (t Tally) Add(o Tally) Tally {
	return Tally{Correct: t.Correct + o.Correct, Total: t.Total + o.Total}
}

// Score counts matching entries of two lists in the same canonical order.
func Score(simulated, actual []TeamID) (Tally, error) {
	if len(simulated) != len(actual) {
		return Tally{}, fmt.Errorf("%w: simulated %d games, actual %d", ErrLengthMismatch, len(simulated), len(actual))
	}
	t := Tally{Total: len(actual)}
	for i := range actual {
		if simulated[i] == actual[i] {
			t.Correct++
		}
	}
	return t, nil
}

// Compare returns the fraction of games whose simulated winner matches the
// actual winner.
func Compare(simulated, actual []TeamID) (float64, error) {
	t, err := Score(simulated, actual)
	if err != nil {
		return 0, err
	}
	if t.Total == 0 {
		return 0, fmt.Errorf("%w: nothing to compare", ErrLengthMismatch)
	}
	return t.Accuracy(), nil
}

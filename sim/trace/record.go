// Package trace records per-game predictor decisions for a simulated bracket.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// GameRecord captures a single predictor decision.
type GameRecord struct {
	Node   int // canonical node index
	Round  int // 0 = play-in
	TeamA  int
	TeamB  int
	Winner int
}

// Loser returns the team that did not win.
func (r GameRecord) Loser() int {
	if r.Winner == r.TeamA {
		return r.TeamB
	}
	return r.TeamA
}

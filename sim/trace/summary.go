package trace

// SeedLookup returns a team's integer seed; ok is false for unknown teams.
type SeedLookup func(team int) (seed int, ok bool)

// TraceSummary aggregates statistics from a BracketTrace.
type TraceSummary struct {
	TotalGames    int
	PlayIns       int
	GamesPerRound map[int]int // round → games (0 = play-in)
	Upsets        int         // winner held the strictly worse seed
	UpsetRate     float64     // upsets / games with both seeds known
	Champion      int         // winner of the highest round, 0 if none
}

// Summarize computes aggregate statistics from a BracketTrace.
// Safe for nil or empty traces (returns zero-value fields). seeds may be nil,
// in which case upsets are not counted.
func Summarize(bt *BracketTrace, seeds SeedLookup) *TraceSummary {
	summary := &TraceSummary{
		GamesPerRound: make(map[int]int),
	}
	if bt == nil {
		return summary
	}

	summary.TotalGames = len(bt.Games)
	topRound := -1
	seeded := 0
	for _, g := range bt.Games {
		summary.GamesPerRound[g.Round]++
		if g.Round == 0 {
			summary.PlayIns++
		}
		if g.Round > topRound {
			topRound = g.Round
			summary.Champion = g.Winner
		}
		if seeds == nil {
			continue
		}
		ws, okW := seeds(g.Winner)
		ls, okL := seeds(g.Loser())
		if !okW || !okL {
			continue
		}
		seeded++
		if ws > ls {
			summary.Upsets++
		}
	}
	if seeded > 0 {
		summary.UpsetRate = float64(summary.Upsets) / float64(seeded)
	}
	if topRound <= 0 {
		summary.Champion = 0
	}

	return summary
}

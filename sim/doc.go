// Package sim provides the bracket simulation engine for single-elimination
// tournaments.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - layout.go: bracket topology and the canonical index arithmetic
//   - bracket.go: the game graph (flat arena, lazy memoized resolution)
//   - assemble.go: mapping one season's games, including play-ins, onto the graph
//   - actual.go: placing historical winners into the same canonical order
//
// # Canonical Order
//
// Main-bracket games are indexed round by round. For the NCAA layout round
// offsets are [0, 32, 48, 56], semifinals sit at 60 and 61, and the final at
// 62. Play-in games follow index 62, sorted by region then seed. Simulated and
// actual winner lists share this order, so Compare is a plain index-wise match.
//
// # Architecture
//
// The sim package defines the core types and interfaces; implementations live
// in sub-packages:
//   - sim/predict/: Predictor variants (seed, stat comparators, logistic model)
//   - sim/stats/: in-memory StatsProvider, season aggregation, Kaggle CSV loader
//   - sim/store/: SQLite-backed StatsProvider
//   - sim/trace/: per-game decision trace and summary
//
// # Key Interfaces
//   - Predictor: pick the winner of one game from a season's StatsView
//   - StatsProvider: season team rows and tournament games
//   - MatchupSource: seed pairs per regional round
//
// Nothing in this package holds process-wide state. Layout, provider and
// predictor are passed explicitly, and every simulation builds its own Bracket.
package sim

package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelGames captures every predictor decision.
	TraceLevelGames TraceLevel = "games"
)

var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelGames: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Enabled reports whether the level records anything.
func (l TraceLevel) Enabled() bool {
	return l == TraceLevelGames
}

// BracketTrace collects decision records while one season's bracket resolves.
// Records appear in resolution order (post-order), so the final is last.
type BracketTrace struct {
	Level     TraceLevel
	Season    int
	Predictor string
	Games     []GameRecord
}

// NewBracketTrace creates a BracketTrace ready for recording.
func NewBracketTrace(level TraceLevel, season int, predictor string) *BracketTrace {
	return &BracketTrace{
		Level:     level,
		Season:    season,
		Predictor: predictor,
		Games:     make([]GameRecord, 0, 67),
	}
}

// RecordGame appends a game decision record.
func (bt *BracketTrace) RecordGame(record GameRecord) {
	bt.Games = append(bt.Games, record)
}

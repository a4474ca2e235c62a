package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTraceLevel(t *testing.T) {
	for level, want := range map[string]bool{"": true, "none": true, "games": true, "decisions": false, "GAMES": false} {
		assert.Equal(t, want, IsValidTraceLevel(level), "level %q", level)
	}
}

func TestTraceLevel_Enabled(t *testing.T) {
	assert.False(t, TraceLevelNone.Enabled())
	assert.False(t, TraceLevel("").Enabled())
	assert.True(t, TraceLevelGames.Enabled())
}

func TestBracketTrace_RecordGame_PreservesOrder(t *testing.T) {
	// GIVEN an empty trace
	bt := NewBracketTrace(TraceLevelGames, 2019, "better-seed")

	// WHEN two games are recorded
	bt.RecordGame(GameRecord{Node: 0, Round: 1, TeamA: 1, TeamB: 2, Winner: 1})
	bt.RecordGame(GameRecord{Node: 1, Round: 1, TeamA: 3, TeamB: 4, Winner: 4})

	// THEN both appear in recording order with their metadata
	assert.Len(t, bt.Games, 2)
	assert.Equal(t, 4, bt.Games[1].Winner)
	assert.Equal(t, 2019, bt.Season)
	assert.Equal(t, "better-seed", bt.Predictor)
}

func TestGameRecord_Loser(t *testing.T) {
	assert.Equal(t, 2, GameRecord{TeamA: 1, TeamB: 2, Winner: 1}.Loser())
	assert.Equal(t, 1, GameRecord{TeamA: 1, TeamB: 2, Winner: 2}.Loser())
}

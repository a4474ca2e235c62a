package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bracket-sim/bracket-sim/sim"
)

var teamNames = map[sim.TeamID]string{
	1101: "Duke",
	1102: "Duquesne",
	1103: "North Carolina",
	1104: "North Carolina St",
	1105: "Gonzaga",
}

func TestMatchTeams_ExactMatchWins(t *testing.T) {
	assert.Equal(t, []sim.TeamID{1103}, MatchTeams("north carolina", teamNames))
}

func TestMatchTeams_FuzzyCandidates(t *testing.T) {
	got := MatchTeams("du", teamNames)
	assert.ElementsMatch(t, []sim.TeamID{1101, 1102}, got)
	assert.Equal(t, sim.TeamID(1101), got[0], "closer match first")
}

func TestMatchTeams_NoMatch(t *testing.T) {
	assert.Empty(t, MatchTeams("kentucky", teamNames))
	assert.Empty(t, MatchTeams("  ", teamNames))
}

func TestFindTeam(t *testing.T) {
	id, err := FindTeam("gonz", teamNames)
	require.NoError(t, err)
	assert.Equal(t, sim.TeamID(1105), id)

	id, err = FindTeam("Duke", teamNames)
	require.NoError(t, err)
	assert.Equal(t, sim.TeamID(1101), id)

	_, err = FindTeam("du", teamNames)
	assert.Error(t, err, "two candidates")

	_, err = FindTeam("kentucky", teamNames)
	assert.ErrorIs(t, err, sim.ErrUnknownTeam)
}

package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTopology means a bracket node can be resolved from neither
	// fixed teams nor predecessors. It indicates an assembler bug.
	ErrMalformedTopology = errors.New("malformed bracket topology")

	// ErrUnknownTeam means the stats view has no row for a requested team.
	ErrUnknownTeam = errors.New("unknown team")

	// ErrAmbiguousSlot means a game could not be mapped onto exactly one
	// bracket slot (seed pair missing from the matchup table, unknown region,
	// or two games claiming the same slot).
	ErrAmbiguousSlot = errors.New("ambiguous bracket slot")

	// ErrIncompleteSeason means historical results leave a bracket slot empty.
	ErrIncompleteSeason = errors.New("incomplete season results")

	// ErrLengthMismatch means two result lists cannot be aligned.
	ErrLengthMismatch = errors.New("result length mismatch")

	// ErrInvalidPrediction means a predictor returned neither participant.
	ErrInvalidPrediction = errors.New("invalid prediction")
)

// SeasonError attributes a failure to a single season.
type SeasonError struct {
	Season int
	Err    error
}

func (e *SeasonError) Error() string {
	return fmt.Sprintf("season %d: %v", e.Season, e.Err)
}

func (e *SeasonError) Unwrap() error { return e.Err }

// ErrorKind maps an error to a stable, user-facing kind string.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedTopology):
		return "malformed-topology"
	case errors.Is(err, ErrUnknownTeam):
		return "unknown-team"
	case errors.Is(err, ErrAmbiguousSlot):
		return "ambiguous-slot"
	case errors.Is(err, ErrIncompleteSeason):
		return "incomplete-season"
	case errors.Is(err, ErrLengthMismatch):
		return "length-mismatch"
	case errors.Is(err, ErrInvalidPrediction):
		return "invalid-prediction"
	default:
		return "provider"
	}
}

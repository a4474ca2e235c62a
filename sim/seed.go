package sim

import (
	"fmt"
	"strconv"
)

// Region identifies one of the bracket regions (e.g. "W", "X", "Y", "Z").
type Region string

// Seed is a team's tournament seed: a region, a rank within the region, and an
// optional play-in rank (1 for 'a', 2 for 'b') when the seed was decided by a
// play-in game. Seeds are immutable once assigned for a season.
type Seed struct {
	Region Region
	Number int // 1..16 for the NCAA layout
	PlayIn int // 0 = no play-in
}

// ParseSeed parses the "W16a" notation: one region letter, a two-digit seed
// number, and an optional play-in suffix ('a' or 'b').
func ParseSeed(s string) (Seed, error) {
	if len(s) != 3 && len(s) != 4 {
		return Seed{}, fmt.Errorf("invalid seed %q: want <region><2 digits>[a|b]", s)
	}
	region := Region(s[:1])
	if s[0] < 'A' || s[0] > 'Z' {
		return Seed{}, fmt.Errorf("invalid seed %q: region must be an upper-case letter", s)
	}
	num, err := strconv.Atoi(s[1:3])
	if err != nil || num < 1 {
		return Seed{}, fmt.Errorf("invalid seed %q: bad seed number", s)
	}
	seed := Seed{Region: region, Number: num}
	if len(s) == 4 {
		switch s[3] {
		case 'a':
			seed.PlayIn = 1
		case 'b':
			seed.PlayIn = 2
		default:
			return Seed{}, fmt.Errorf("invalid seed %q: play-in suffix must be 'a' or 'b'", s)
		}
	}
	return seed, nil
}

// Value returns the float encoding used in game records: 16.1 for "W16a".
func (s Seed) Value() float64 {
	return float64(s.Number) + float64(s.PlayIn)/10
}

// IsPlayIn reports whether the seed was decided by a play-in game.
func (s Seed) IsPlayIn() bool { return s.PlayIn > 0 }

// IsZero reports whether the seed is unset (team not in the tournament).
func (s Seed) IsZero() bool { return s.Number == 0 }

// String formats the seed back into "W16a" notation.
func (s Seed) String() string {
	if s.IsZero() {
		return ""
	}
	out := fmt.Sprintf("%s%02d", s.Region, s.Number)
	switch s.PlayIn {
	case 1:
		out += "a"
	case 2:
		out += "b"
	}
	return out
}

// Better reports whether s is a strictly better (lower) seed than o.
// Play-in rank is ignored; only the integer seed number is compared.
func (s Seed) Better(o Seed) bool { return s.Number < o.Number }

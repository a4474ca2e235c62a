package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/bracket-sim/bracket-sim/sim"
)

// MatchTeams resolves a free-text team name against known names. An exact
// case-insensitive match wins outright; otherwise every fuzzy match is
// returned, closest first.
func MatchTeams(query string, names map[sim.TeamID]string) []sim.TeamID {
	lower := strings.ToLower(strings.TrimSpace(query))
	if lower == "" {
		return nil
	}
	byName := make(map[string][]sim.TeamID, len(names))
	targets := make([]string, 0, len(names))
	for id, n := range names {
		ln := strings.ToLower(n)
		if _, seen := byName[ln]; !seen {
			targets = append(targets, ln)
		}
		byName[ln] = append(byName[ln], id)
	}
	if ids, ok := byName[lower]; ok {
		return sortedIDs(ids)
	}

	ranks := fuzzy.RankFind(lower, targets)
	sort.Stable(ranks)
	var out []sim.TeamID
	for _, r := range ranks {
		out = append(out, sortedIDs(byName[r.Target])...)
	}
	return out
}

// FindTeam resolves a query to exactly one team.
func FindTeam(query string, names map[sim.TeamID]string) (sim.TeamID, error) {
	ids := MatchTeams(query, names)
	switch {
	case len(ids) == 0:
		return 0, fmt.Errorf("%w: no team matches %q", sim.ErrUnknownTeam, query)
	case len(ids) > 1 && !strings.EqualFold(names[ids[0]], strings.TrimSpace(query)):
		candidates := make([]string, 0, min(len(ids), 5))
		for _, id := range ids[:min(len(ids), 5)] {
			candidates = append(candidates, names[id])
		}
		return 0, fmt.Errorf("team %q is ambiguous: %s", query, strings.Join(candidates, ", "))
	}
	return ids[0], nil
}

func sortedIDs(ids []sim.TeamID) []sim.TeamID {
	out := append([]sim.TeamID(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

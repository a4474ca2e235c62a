package sim

import (
	"fmt"

	"github.com/bracket-sim/bracket-sim/sim/trace"
)

// NodeState is the resolution state of a game node.
type NodeState string

const (
	NodeUnresolved NodeState = "unresolved"
	NodeResolved   NodeState = "resolved"
)

// Side selects one of a game's two team slots.
type Side int

const (
	SideA Side = 0 // better seed in the canonical first-round layout
	SideB Side = 1
)

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// noNode marks an absent predecessor or parent.
const noNode = -1

type slot struct {
	team  TeamID // 0 until fixed or filled from prior
	prior int    // predecessor node index, noNode if fixed
}

func (s slot) empty() bool { return s.team == 0 && s.prior == noNode }

type node struct {
	slots  [2]slot
	parent int
	round  int // 0 = play-in
	state  NodeState
	winner TeamID
}

// GameNode is a read-only view of one node.
type GameNode struct {
	Index  int
	Round  int // 0 = play-in
	TeamA  TeamID
	TeamB  TeamID
	PriorA int // -1 when the slot holds a fixed team
	PriorB int
	State  NodeState
	Winner TeamID
}

// Bracket is the game dependency graph for one season and one predictor.
//
// Nodes live in a flat arena in canonical order: the layout's main games first,
// then play-in games in the order they were added. Each node's slots hold either
// a fixed team or the index of a predecessor whose winner fills the slot.
// Topology is only mutable before the first Resolve call.
//
// Not thread-safe; build one Bracket per simulation.
type Bracket struct {
	layout    Layout
	nodes     []node
	main      int
	predictor Predictor
	stats     StatsView
	trace     *trace.BracketTrace
	sealed    bool
	calls     int
}

// NewBracket builds the main-bracket topology for layout: leaf games have
// empty slots, every later game references the two games feeding it.
func NewBracket(layout Layout, p Predictor, stats StatsView) (*Bracket, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("nil predictor")
	}
	b := &Bracket{
		layout:    layout,
		main:      layout.MainGames(),
		predictor: p,
		stats:     stats,
	}
	b.nodes = make([]node, 0, b.main+4)
	for i := 0; i < b.main; i++ {
		b.nodes = append(b.nodes, newNode(layout.RoundOf(i)))
	}
	for round := 2; round <= layout.Rounds(); round++ {
		prev := layout.RoundOffset(round - 1)
		cur := layout.RoundOffset(round)
		for g := 0; g < layout.GamesInRound(round); g++ {
			if err := b.Attach(cur+g, SideA, prev+2*g); err != nil {
				return nil, err
			}
			if err := b.Attach(cur+g, SideB, prev+2*g+1); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

func newNode(round int) node {
	return node{
		slots:  [2]slot{{prior: noNode}, {prior: noNode}},
		parent: noNode,
		round:  round,
		state:  NodeUnresolved,
	}
}

// SetTrace enables decision recording. Must be called before resolution.
func (b *Bracket) SetTrace(t *trace.BracketTrace) { b.trace = t }

// Layout returns the bracket's layout.
func (b *Bracket) Layout() Layout { return b.layout }

// Len returns the total number of nodes (main + play-in).
func (b *Bracket) Len() int { return len(b.nodes) }

// MainGames returns the number of main-bracket nodes.
func (b *Bracket) MainGames() int { return b.main }

// PlayIns returns the number of play-in nodes.
func (b *Bracket) PlayIns() int { return len(b.nodes) - b.main }

// Calls returns how many times the predictor has been invoked.
func (b *Bracket) Calls() int { return b.calls }

// Final returns the index of the championship node.
func (b *Bracket) Final() int { return b.main - 1 }

func (b *Bracket) check(idx int) error {
	if idx < 0 || idx >= len(b.nodes) {
		return fmt.Errorf("%w: node %d out of range 0..%d", ErrMalformedTopology, idx, len(b.nodes)-1)
	}
	return nil
}

func (b *Bracket) mutable() error {
	if b.sealed {
		return fmt.Errorf("%w: topology changed after resolution started", ErrMalformedTopology)
	}
	return nil
}

// SetTeam fixes a team into an empty slot.
func (b *Bracket) SetTeam(idx int, side Side, team TeamID) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if err := b.check(idx); err != nil {
		return err
	}
	if team == 0 {
		return fmt.Errorf("%w: node %d slot %s: zero team id", ErrMalformedTopology, idx, side)
	}
	s := &b.nodes[idx].slots[side]
	if !s.empty() {
		return fmt.Errorf("%w: node %d slot %s already filled", ErrMalformedTopology, idx, side)
	}
	s.team = team
	return nil
}

// SlotEmpty reports whether a slot holds neither a team nor a predecessor.
func (b *Bracket) SlotEmpty(idx int, side Side) bool {
	if b.check(idx) != nil {
		return false
	}
	return b.nodes[idx].slots[side].empty()
}

// AddPlayIn appends a play-in node between two fixed teams and returns its index.
// The node is detached until Attach links it into the main bracket.
func (b *Bracket) AddPlayIn(a, c TeamID) (int, error) {
	if err := b.mutable(); err != nil {
		return noNode, err
	}
	if a == 0 || c == 0 || a == c {
		return noNode, fmt.Errorf("%w: play-in needs two distinct teams, got %d and %d", ErrMalformedTopology, a, c)
	}
	n := newNode(0)
	n.slots[SideA].team = a
	n.slots[SideB].team = c
	b.nodes = append(b.nodes, n)
	return len(b.nodes) - 1, nil
}

// Attach makes prior's winner fill a slot of idx.
//
// Cycles are rejected here rather than during resolution: the slot must be
// empty, prior must not already feed another game, and prior must not be idx
// or one of its descendants-to-be (an ancestor in the parent chain).
func (b *Bracket) Attach(idx int, side Side, prior int) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if err := b.check(idx); err != nil {
		return err
	}
	if err := b.check(prior); err != nil {
		return err
	}
	if !b.nodes[idx].slots[side].empty() {
		return fmt.Errorf("%w: node %d slot %s already filled", ErrMalformedTopology, idx, side)
	}
	if b.nodes[prior].parent != noNode {
		return fmt.Errorf("%w: node %d already feeds node %d", ErrMalformedTopology, prior, b.nodes[prior].parent)
	}
	for n := idx; n != noNode; n = b.nodes[n].parent {
		if n == prior {
			return fmt.Errorf("%w: linking node %d into node %d creates a cycle", ErrMalformedTopology, prior, idx)
		}
	}
	b.nodes[idx].slots[side].prior = prior
	b.nodes[prior].parent = idx
	return nil
}

// Resolve returns the winner of node idx, resolving predecessors first.
// A resolved node returns its stored winner without calling the predictor again.
func (b *Bracket) Resolve(idx int) (TeamID, error) {
	if err := b.check(idx); err != nil {
		return 0, err
	}
	b.sealed = true
	n := &b.nodes[idx]
	if n.state == NodeResolved {
		return n.winner, nil
	}

	var teams [2]TeamID
	for side := range n.slots {
		s := n.slots[side]
		switch {
		case s.team != 0:
			teams[side] = s.team
		case s.prior != noNode:
			w, err := b.Resolve(s.prior)
			if err != nil {
				return 0, err
			}
			n.slots[side].team = w
			teams[side] = w
		default:
			return 0, fmt.Errorf("%w: node %d slot %s has neither team nor predecessor",
				ErrMalformedTopology, idx, Side(side))
		}
	}

	winner, err := b.predictor.Predict(teams[SideA], teams[SideB], b.stats)
	if err != nil {
		return 0, fmt.Errorf("node %d (%d vs %d): %w", idx, teams[SideA], teams[SideB], err)
	}
	b.calls++
	if winner != teams[SideA] && winner != teams[SideB] {
		return 0, fmt.Errorf("%w: node %d: predictor returned %d for %d vs %d",
			ErrInvalidPrediction, idx, winner, teams[SideA], teams[SideB])
	}
	n.winner = winner
	n.state = NodeResolved

	if b.trace != nil {
		b.trace.RecordGame(trace.GameRecord{
			Node:   idx,
			Round:  n.round,
			TeamA:  int(teams[SideA]),
			TeamB:  int(teams[SideB]),
			Winner: int(winner),
		})
	}
	return winner, nil
}

// Simulate resolves the final, which pulls in every other game, and returns all
// winners in canonical order. Every node must be reachable from the final.
func (b *Bracket) Simulate() ([]TeamID, error) {
	if _, err := b.Resolve(b.Final()); err != nil {
		return nil, err
	}
	for i := range b.nodes {
		if b.nodes[i].state != NodeResolved {
			return nil, fmt.Errorf("%w: node %d is not reachable from the final", ErrMalformedTopology, i)
		}
	}
	return b.Winners(), nil
}

// Winners returns the winners in canonical order; unresolved nodes read 0.
func (b *Bracket) Winners() []TeamID {
	out := make([]TeamID, len(b.nodes))
	for i := range b.nodes {
		out[i] = b.nodes[i].winner
	}
	return out
}

// Node returns a view of node idx.
func (b *Bracket) Node(idx int) (GameNode, error) {
	if err := b.check(idx); err != nil {
		return GameNode{}, err
	}
	n := b.nodes[idx]
	return GameNode{
		Index:  idx,
		Round:  n.round,
		TeamA:  n.slots[SideA].team,
		TeamB:  n.slots[SideB].team,
		PriorA: n.slots[SideA].prior,
		PriorB: n.slots[SideB].prior,
		State:  n.state,
		Winner: n.winner,
	}, nil
}

// Nodes returns views of every node in canonical order.
func (b *Bracket) Nodes() []GameNode {
	out := make([]GameNode, 0, len(b.nodes))
	for i := range b.nodes {
		gn, _ := b.Node(i)
		out = append(out, gn)
	}
	return out
}

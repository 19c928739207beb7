package game

import (
	"fmt"

	"catan/meta"
)

// Placement is a settlement or city a player has on the board.
type Placement struct {
	Node  NodeID
	Piece Piece
}

// Tally groups every per-player counter that a move can change. It holds no
// references, so copying it is a full snapshot.
type Tally struct {
	Score          int
	Resources      Resources
	DevCards       DevCards // held and playable
	NewDevCards    DevCards // bought this turn, playable from the next
	PlayedDevCards DevCards
	Rates          Resources // bank exchange rate per resource
	LongestRoad    int
	Knights        int
	HasLongestRoad bool
	HasLargestArmy bool
	TurnsOverLimit int
	CardsDiscarded int
	FreeRoads      int
}

// Player is one of the four seats at the table.
type Player struct {
	Seat  int
	Name  string
	Color string
	Tally
	Roads  []Edge
	Pieces []Placement

	// touching maps each road endpoint to the other endpoints it connects to.
	// Rebuilt from Roads whenever they change.
	touching map[NodeID][]NodeID
}

// NewPlayer creates a player for a seat in 0..3.
func NewPlayer(seat int, name, color string) (*Player, error) {
	if seat < 0 || seat >= meta.NUM_PLAYERS {
		return nil, fmt.Errorf("new player %q at seat %d: %w", name, seat, ErrInvalidSeat)
	}
	p := &Player{
		Seat:     seat,
		Name:     name,
		Color:    color,
		Roads:    make([]Edge, 0, 15),
		Pieces:   make([]Placement, 0, 9),
		touching: map[NodeID][]NodeID{},
	}
	for i := range p.Rates {
		p.Rates[i] = 4
	}
	return p, nil
}

// Count returns how many pieces of a kind the player has built.
func (p *Player) Count(piece Piece) int {
	n := 0
	for _, pl := range p.Pieces {
		if pl.Piece == piece {
			n++
		}
	}
	return n
}

// Touches reports whether one of the player's roads ends at n.
func (p *Player) Touches(n NodeID) bool {
	_, ok := p.touching[n]
	return ok
}

// RoadNodes returns the endpoints of the player's roads in first-built order.
func (p *Player) RoadNodes() []NodeID {
	nodes := make([]NodeID, 0, len(p.touching))
	seen := make(map[NodeID]bool, len(p.touching))
	for _, e := range p.Roads {
		for _, n := range []NodeID{e.A, e.B} {
			if !seen[n] {
				seen[n] = true
				nodes = append(nodes, n)
			}
		}
	}
	return nodes
}

func (p *Player) rebuildTouching() {
	p.touching = make(map[NodeID][]NodeID, len(p.Roads)+1)
	for _, e := range p.Roads {
		p.touching[e.A] = append(p.touching[e.A], e.B)
		p.touching[e.B] = append(p.touching[e.B], e.A)
	}
}

// Clone returns a deep copy.
func (p *Player) Clone() *Player {
	c := *p
	c.Roads = make([]Edge, len(p.Roads), cap(p.Roads))
	copy(c.Roads, p.Roads)
	c.Pieces = make([]Placement, len(p.Pieces), cap(p.Pieces))
	copy(c.Pieces, p.Pieces)
	c.rebuildTouching()
	return &c
}

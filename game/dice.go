package game

import (
	"fmt"

	"catan/meta"

	"golang.org/x/exp/rand"
)

// RollProbability is the chance that two dice sum to n.
func RollProbability(n int) float64 {
	if n < 2 || n > 12 {
		return 0
	}
	ways := 6 - abs(n-7)
	return float64(ways) / 36
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Roll throws two dice.
func Roll(rng *rand.Rand) int {
	return rng.Intn(6) + rng.Intn(6) + 2
}

// The operations below change the state outside the undo journal. They belong
// to real turns only and are never reached from search.

// Produce hands out resources for a roll and returns what each seat gained.
// The robber tile and the desert produce nothing.
func (s *State) Produce(roll int) [meta.NUM_PLAYERS]Resources {
	var gains [meta.NUM_PLAYERS]Resources
	for _, t := range s.Board.Tiles() {
		if t.Value != roll || t.Robber || t.Resource == Desert {
			continue
		}
		for _, id := range TileNodes(t.ID) {
			n := s.Board.Node(id)
			switch n.Piece {
			case Settlement:
				gains[n.Owner][t.Resource]++
			case City:
				gains[n.Owner][t.Resource] += 2
			}
		}
	}
	for seat, g := range gains {
		s.Players[seat].Resources = s.Players[seat].Resources.Plus(g)
	}
	return gains
}

// Discard drops one card of r from a hand.
func (s *State) Discard(seat int, r Resource) error {
	if seat < 0 || seat >= len(s.Players) {
		return fmt.Errorf("discard: seat %d: %w", seat, ErrInvalidSeat)
	}
	p := s.Players[seat]
	if !r.Tradeable() || p.Resources[r] == 0 {
		return fmt.Errorf("discard %v: %w", r, ErrInsufficientResources)
	}
	p.Resources[r]--
	p.CardsDiscarded++
	return nil
}

// MoveRobber places the robber on a different tile.
func (s *State) MoveRobber(id TileID) error {
	if s.Board.Tile(id) == nil || id == s.Robber {
		return fmt.Errorf("robber to %v: %w", id, ErrIllegalPlacement)
	}
	s.placeRobber(id)
	return nil
}

// RobberVictims lists the opponents of thief with a piece on tile and at least
// one card in hand.
func (s *State) RobberVictims(tile TileID, thief int) []int {
	var victims []int
	for _, id := range TileNodes(tile) {
		n := s.Board.Node(id)
		if !n.Occupied() || n.Owner == thief || s.Players[n.Owner].Resources.Total() == 0 {
			continue
		}
		dup := false
		for _, v := range victims {
			dup = dup || v == n.Owner
		}
		if !dup {
			victims = append(victims, n.Owner)
		}
	}
	return victims
}

// Steal moves one random card from victim to thief.
func (s *State) Steal(thief, victim int, rng *rand.Rand) (Resource, bool) {
	v := s.Players[victim]
	total := v.Resources.Total()
	if total == 0 {
		return 0, false
	}
	pick := rng.Intn(total)
	for _, r := range AllResources {
		if pick < v.Resources[r] {
			v.Resources[r]--
			s.Players[thief].Resources[r]++
			return r, true
		}
		pick -= v.Resources[r]
	}
	return 0, false
}

// EndTurn makes this turn's purchases playable and counts a hand left over
// the limit.
func (s *State) EndTurn(seat int) {
	p := s.Player(seat)
	for i, n := range p.NewDevCards {
		p.DevCards[i] += n
	}
	p.NewDevCards = DevCards{}
	p.FreeRoads = 0
	if p.Resources.Total() > meta.HAND_LIMIT {
		p.TurnsOverLimit++
	}
}

package game

import (
	"fmt"
	"slices"

	"catan/meta"
)

// Undo is the inverse of one applied action. It captures every value the
// action may overwrite and is only valid while it is the most recent
// outstanding descriptor of its state.
type Undo struct {
	depth  int
	seat   int
	action Action

	tallies           [meta.NUM_PLAYERS]Tally
	longestRoad       int
	longestRoadHolder int
	largestArmy       int
	largestArmyHolder int
	maxScore          int
	robber            TileID

	piece     Piece // previous occupancy of action.Node
	owner     int
	pieces    int // len(Pieces) of the acting player
	roads     int // len(Roads) of the acting player
	allRoads  int // len(State.Roads)
	drawn     DevCard
	drawnAt   int // deck index the card was taken from
	cityIndex int
}

// Seat is the player the action was applied for.
func (u Undo) Seat() int { return u.seat }

// Action is the action this descriptor reverts.
func (u Undo) Action() Action { return u.action }

// Apply validates and performs a single action for seat. On error the state
// is untouched. In setup, placements are free and confined to the opening
// rules; a setup settlement credits one card per adjacent producing tile.
func (s *State) Apply(seat int, a Action, setup bool) (Undo, error) {
	return s.apply(seat, a, setup, -1)
}

// ApplyDraw buys a development card for seat like Apply, but takes the card
// of kind card nearest the top of the deck instead of the top card. Lookahead
// uses it to branch over the possible draws.
func (s *State) ApplyDraw(seat int, card DevCard) (Undo, error) {
	at := -1
	for i := len(s.Deck) - 1; i >= 0; i-- {
		if s.Deck[i] == card {
			at = i
			break
		}
	}
	if at < 0 {
		return Undo{}, fmt.Errorf("draw %v: %w", card, ErrNoDevCards)
	}
	return s.apply(seat, Action{Kind: BuyDevCard}, false, at)
}

// apply performs a validated action. draw is the deck index a bought card is
// taken from, the top when negative.
func (s *State) apply(seat int, a Action, setup bool, draw int) (Undo, error) {
	if err := s.validate(seat, a, setup); err != nil {
		return Undo{}, err
	}
	p := s.Players[seat]
	u := Undo{
		seat:              seat,
		action:            a,
		longestRoad:       s.LongestRoad,
		longestRoadHolder: s.LongestRoadHolder,
		largestArmy:       s.LargestArmy,
		largestArmyHolder: s.LargestArmyHolder,
		maxScore:          s.MaxScore,
		robber:            s.Robber,
		pieces:            len(p.Pieces),
		roads:             len(p.Roads),
		allRoads:          len(s.Roads),
		owner:             -1,
		cityIndex:         -1,
	}
	for i, pl := range s.Players {
		u.tallies[i] = pl.Tally
	}

	switch a.Kind {
	case PlaceSettlement:
		n := s.Board.Node(a.Node)
		u.piece, u.owner = n.Piece, n.Owner
		if !setup {
			p.Resources.Sub(s.Rules.SettlementCost)
		}
		n.Piece, n.Owner = Settlement, seat
		p.Pieces = append(p.Pieces, Placement{Node: a.Node, Piece: Settlement})
		p.Score++
		s.reachPort(p, n.Port)
		if setup {
			for _, id := range n.Tiles {
				if t := s.Board.Tile(id); t.Resource != Desert {
					p.Resources[t.Resource]++
				}
			}
		}

	case PlaceCity:
		n := s.Board.Node(a.Node)
		u.piece, u.owner = n.Piece, n.Owner
		p.Resources.Sub(s.Rules.CityCost)
		n.Piece = City
		for i, pl := range p.Pieces {
			if pl.Node == a.Node {
				p.Pieces[i].Piece = City
				u.cityIndex = i
				break
			}
		}
		p.Score++

	case PlaceRoad:
		switch {
		case setup:
		case p.FreeRoads > 0:
			p.FreeRoads--
		default:
			p.Resources.Sub(s.Rules.RoadCost)
		}
		p.Roads = append(p.Roads, a.Edge)
		s.Roads = append(s.Roads, Road{Edge: a.Edge, Owner: seat})
		p.rebuildTouching()
		s.updateLongestRoad(seat)

	case BuyDevCard:
		p.Resources.Sub(s.Rules.DevCardCost)
		if draw < 0 {
			draw = len(s.Deck) - 1
		}
		card := s.Deck[draw]
		s.Deck = slices.Delete(s.Deck, draw, draw+1)
		u.drawn, u.drawnAt = card, draw
		if card == VictoryPoint {
			p.DevCards[VictoryPoint]++
			p.Score++
		} else {
			p.NewDevCards[card]++
		}

	case Exchange:
		p.Resources[a.Give] -= p.Rates[a.Give]
		p.Resources[a.Get]++

	case PlayDevCard:
		p.DevCards[a.Card]--
		p.PlayedDevCards[a.Card]++
		switch a.Card {
		case Knight:
			s.placeRobber(a.Tile)
			p.Knights++
			s.updateLargestArmy(seat)
		case Monopoly:
			for _, o := range s.Players {
				if o.Seat != seat {
					p.Resources[a.Take[0]] += o.Resources[a.Take[0]]
					o.Resources[a.Take[0]] = 0
				}
			}
		case YearOfPlenty:
			p.Resources[a.Take[0]]++
			p.Resources[a.Take[1]]++
		case RoadBuilding:
			p.FreeRoads += 2
		}
	}

	s.refreshMaxScore()
	s.depth++
	u.depth = s.depth
	return u, nil
}

// Revert undoes the most recent outstanding action. Reverting out of order,
// twice, or with a zero descriptor is a programming error and panics.
func (s *State) Revert(u Undo) {
	if u.depth == 0 {
		panic("game: revert of a zero undo descriptor")
	}
	if u.depth != s.depth {
		panic(fmt.Sprintf("game: revert out of order: descriptor depth %d, state depth %d", u.depth, s.depth))
	}
	p := s.Players[u.seat]
	a := u.action

	switch a.Kind {
	case PlaceSettlement:
		n := s.Board.Node(a.Node)
		n.Piece, n.Owner = u.piece, u.owner
		p.Pieces = p.Pieces[:u.pieces]
	case PlaceCity:
		s.Board.Node(a.Node).Piece = u.piece
		if u.cityIndex >= 0 {
			p.Pieces[u.cityIndex].Piece = Settlement
		}
	case PlaceRoad:
		if last := p.Roads[len(p.Roads)-1]; last != a.Edge {
			panic(fmt.Sprintf("game: revert road %v but last road is %v", a.Edge, last))
		}
		p.Roads = p.Roads[:u.roads]
		s.Roads = s.Roads[:u.allRoads]
		p.rebuildTouching()
	case BuyDevCard:
		s.Deck = slices.Insert(s.Deck, u.drawnAt, u.drawn)
	case PlayDevCard:
		if a.Card == Knight {
			s.placeRobber(u.robber)
		}
	}

	for i, pl := range s.Players {
		pl.Tally = u.tallies[i]
	}
	s.LongestRoad = u.longestRoad
	s.LongestRoadHolder = u.longestRoadHolder
	s.LargestArmy = u.largestArmy
	s.LargestArmyHolder = u.largestArmyHolder
	s.MaxScore = u.maxScore
	s.depth--
}

// ApplyMove performs a whole move for real. If any action fails the earlier
// ones are reverted and the state is left as it was.
func (s *State) ApplyMove(seat int, m Move, setup bool) error {
	base := s.depth
	undos := make([]Undo, 0, len(m))
	for _, a := range m {
		u, err := s.Apply(seat, a, setup)
		if err != nil {
			for i := len(undos) - 1; i >= 0; i-- {
				s.Revert(undos[i])
			}
			return fmt.Errorf("apply %v for seat %d: %w", a, seat, err)
		}
		undos = append(undos, u)
	}
	// committed moves cannot be undone
	s.depth = base
	return nil
}

func (s *State) validate(seat int, a Action, setup bool) error {
	if seat < 0 || seat >= len(s.Players) {
		return fmt.Errorf("seat %d: %w", seat, ErrInvalidSeat)
	}
	p := s.Players[seat]
	rules := s.Rules

	switch a.Kind {
	case PlaceSettlement:
		if !s.Board.InBounds(a.Node) || !s.settlementLegal(seat, a.Node, setup) {
			return fmt.Errorf("settlement at %v: %w", a.Node, ErrIllegalPlacement)
		}
		if p.Count(Settlement) >= rules.MaxSettlements {
			return fmt.Errorf("settlement at %v: no settlements left: %w", a.Node, ErrIllegalPlacement)
		}
		if !setup && !p.Resources.Covers(rules.SettlementCost) {
			return fmt.Errorf("settlement at %v: %w", a.Node, ErrInsufficientResources)
		}

	case PlaceCity:
		if setup || !s.Board.InBounds(a.Node) {
			return fmt.Errorf("city at %v: %w", a.Node, ErrIllegalPlacement)
		}
		if n := s.Board.Node(a.Node); n.Piece != Settlement || n.Owner != seat {
			return fmt.Errorf("city at %v: no own settlement: %w", a.Node, ErrIllegalPlacement)
		}
		if p.Count(City) >= rules.MaxCities {
			return fmt.Errorf("city at %v: no cities left: %w", a.Node, ErrIllegalPlacement)
		}
		if !p.Resources.Covers(rules.CityCost) {
			return fmt.Errorf("city at %v: %w", a.Node, ErrInsufficientResources)
		}

	case PlaceRoad:
		if a.Edge != NewEdge(a.Edge.A, a.Edge.B) || !s.Board.Adjacent(a.Edge.A, a.Edge.B) {
			return fmt.Errorf("road %v: not a board edge: %w", a.Edge, ErrIllegalPlacement)
		}
		if s.RoadOwner(a.Edge) >= 0 || len(p.Roads) >= rules.MaxRoads {
			return fmt.Errorf("road %v: %w", a.Edge, ErrIllegalPlacement)
		}
		if !s.roadConnected(seat, a.Edge, setup) {
			return fmt.Errorf("road %v: not connected: %w", a.Edge, ErrIllegalPlacement)
		}
		if !setup && p.FreeRoads == 0 && !p.Resources.Covers(rules.RoadCost) {
			return fmt.Errorf("road %v: %w", a.Edge, ErrInsufficientResources)
		}

	case BuyDevCard:
		if setup {
			return fmt.Errorf("dev card during setup: %w", ErrIllegalPlacement)
		}
		if len(s.Deck) == 0 {
			return fmt.Errorf("buy dev card: %w", ErrNoDevCards)
		}
		if !p.Resources.Covers(rules.DevCardCost) {
			return fmt.Errorf("buy dev card: %w", ErrInsufficientResources)
		}

	case Exchange:
		if setup || !a.Give.Tradeable() || !a.Get.Tradeable() || a.Give == a.Get {
			return fmt.Errorf("exchange %v for %v: %w", a.Give, a.Get, ErrIllegalPlacement)
		}
		if p.Resources[a.Give] < p.Rates[a.Give] {
			return fmt.Errorf("exchange %v for %v: %w", a.Give, a.Get, ErrInsufficientResources)
		}

	case PlayDevCard:
		if setup || !a.Card.Playable() || p.DevCards[a.Card] == 0 {
			return fmt.Errorf("play %v: %w", a.Card, ErrNoDevCards)
		}
		switch a.Card {
		case Knight:
			if s.Board.Tile(a.Tile) == nil || a.Tile == s.Robber {
				return fmt.Errorf("knight to %v: %w", a.Tile, ErrIllegalPlacement)
			}
		case Monopoly:
			if !a.Take[0].Tradeable() {
				return fmt.Errorf("monopoly on %v: %w", a.Take[0], ErrIllegalPlacement)
			}
		case YearOfPlenty:
			if !a.Take[0].Tradeable() || !a.Take[1].Tradeable() {
				return fmt.Errorf("year of plenty: %w", ErrIllegalPlacement)
			}
		}

	default:
		return fmt.Errorf("unknown action kind %v: %w", a.Kind, ErrIllegalPlacement)
	}
	return nil
}

// settlementLegal checks the distance rule and, outside setup, road access.
func (s *State) settlementLegal(seat int, id NodeID, setup bool) bool {
	n := s.Board.Node(id)
	if n.Occupied() {
		return false
	}
	for _, nb := range n.Neighbors {
		if s.Board.Node(nb).Occupied() {
			return false
		}
	}
	return setup || s.Players[seat].Touches(id)
}

// reaches reports whether seat can build a road out of node id: it holds a
// piece there, or one of its roads ends there and no opponent piece blocks it.
func (s *State) reaches(seat int, id NodeID) bool {
	n := s.Board.Node(id)
	if n.Occupied() {
		return n.Owner == seat
	}
	return s.Players[seat].Touches(id)
}

func (s *State) roadConnected(seat int, e Edge, setup bool) bool {
	if setup {
		for _, id := range []NodeID{e.A, e.B} {
			if n := s.Board.Node(id); n.Occupied() && n.Owner == seat {
				return true
			}
		}
		return false
	}
	return s.reaches(seat, e.A) || s.reaches(seat, e.B)
}

// reachPort lowers exchange rates. Rates are never raised.
func (s *State) reachPort(p *Player, port Port) {
	switch port {
	case NoPort:
	case AnyPort:
		for i := range p.Rates {
			p.Rates[i] = min(p.Rates[i], 3)
		}
	default:
		r, _ := port.Resource()
		p.Rates[r] = min(p.Rates[r], 2)
	}
}

func (s *State) placeRobber(id TileID) {
	if t := s.Board.Tile(s.Robber); t != nil {
		t.Robber = false
	}
	s.Board.Tile(id).Robber = true
	s.Robber = id
}

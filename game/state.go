package game

import (
	"errors"
	"fmt"

	"catan/meta"

	"golang.org/x/exp/rand"
)

// Road is a placed road and the seat owning it.
type Road struct {
	Edge  Edge
	Owner int
}

// State is the full mutable game: board occupancy, players, bonuses, the
// deck and the robber. Search mutates it in place through Apply/Revert.
type State struct {
	Board   *Board
	Rules   *StandardRules
	Players []*Player
	Roads   []Road

	LongestRoad       int // longest road length reached so far by anyone
	LongestRoadHolder int // -1 when nobody holds the bonus
	LargestArmy       int
	LargestArmyHolder int
	Robber            TileID
	MaxScore          int
	Deck              []DevCard

	depth int // outstanding undo descriptors
}

// NewState builds a board from tiles and seats the four players. The deck is
// shuffled with rng when it is not nil.
func NewState(tiles []Tile, players []*Player, rng *rand.Rand) (*State, error) {
	if len(players) != meta.NUM_PLAYERS {
		return nil, fmt.Errorf("need %d players, got %d: %w", meta.NUM_PLAYERS, len(players), ErrInvalidSeat)
	}
	for i, p := range players {
		if p == nil || p.Seat != i {
			return nil, fmt.Errorf("player %d is not seated at %d: %w", i, i, ErrInvalidSeat)
		}
	}
	board := NewBoard()
	if err := board.AttachTiles(tiles); err != nil {
		return nil, fmt.Errorf("attach tiles: %w", err)
	}
	s := &State{
		Board:             board,
		Rules:             NewStandardRules(),
		Players:           players,
		Roads:             make([]Road, 0, 72),
		LongestRoadHolder: -1,
		LargestArmyHolder: -1,
		Deck:              NewDeck(rng),
	}
	robber := false
	for _, t := range board.Tiles() {
		if t.Robber {
			if robber {
				return nil, errors.New("more than one robber on the board")
			}
			robber = true
			s.Robber = t.ID
		}
	}
	if !robber {
		return nil, errors.New("no tile carries the robber")
	}
	return s, nil
}

// NewGame seats four players with the given names on the standard layout.
func NewGame(names []string, rng *rand.Rand) (*State, error) {
	colors := []string{"red", "blue", "white", "orange"}
	if len(names) != meta.NUM_PLAYERS {
		return nil, fmt.Errorf("need %d names, got %d: %w", meta.NUM_PLAYERS, len(names), ErrInvalidSeat)
	}
	players := make([]*Player, len(names))
	for i, name := range names {
		p, err := NewPlayer(i, name, colors[i])
		if err != nil {
			return nil, err
		}
		players[i] = p
	}
	return NewState(StandardLayout(), players, rng)
}

// Player returns the player at seat, panicking on a bad seat.
func (s *State) Player(seat int) *Player {
	if seat < 0 || seat >= len(s.Players) {
		panic(fmt.Sprintf("game: seat %d out of range", seat))
	}
	return s.Players[seat]
}

// CurrentScore returns the visible score of a seat, including bonuses.
func (s *State) CurrentScore(seat int) int {
	return s.Player(seat).Score
}

// HasWon reports whether the seat has reached the winning score.
func (s *State) HasWon(seat int) bool {
	return s.CurrentScore(seat) >= meta.WINNING_SCORE
}

// Winner returns the first seat that has won, or -1.
func (s *State) Winner() int {
	for seat := range s.Players {
		if s.HasWon(seat) {
			return seat
		}
	}
	return -1
}

// Depth is the number of applied actions not yet reverted.
func (s *State) Depth() int {
	return s.depth
}

// DeckCounts counts the cards left in the deck per kind.
func (s *State) DeckCounts() DevCards {
	var counts DevCards
	for _, d := range s.Deck {
		counts[d]++
	}
	return counts
}

// RoadOwner returns the seat owning a road on e, or -1.
func (s *State) RoadOwner(e Edge) int {
	for _, r := range s.Roads {
		if r.Edge == e {
			return r.Owner
		}
	}
	return -1
}

func (s *State) refreshMaxScore() {
	s.MaxScore = 0
	for _, p := range s.Players {
		s.MaxScore = max(s.MaxScore, p.Score)
	}
}

// Copy returns a deep copy of the game.
func (s *State) Copy() *State {
	c := *s
	c.Board = s.Board.Clone()
	c.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p.Clone()
	}
	c.Roads = make([]Road, len(s.Roads), cap(s.Roads))
	copy(c.Roads, s.Roads)
	c.Deck = make([]DevCard, len(s.Deck))
	copy(c.Deck, s.Deck)
	return &c
}

package game

import "fmt"

// Kind is the type of a single action.
type Kind int

const (
	PlaceCity Kind = iota
	PlaceSettlement
	PlaceRoad
	BuyDevCard
	Exchange
	PlayDevCard
)

var kindNames = []string{"city", "settlement", "road", "buy dev card", "exchange", "play dev card"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Action is one atomic change to the game. Only the fields relevant to Kind
// are read.
type Action struct {
	Kind Kind
	Node NodeID // settlement, city
	Edge Edge   // road
	Give Resource
	Get  Resource
	Card DevCard
	Tile TileID      // knight target
	Take [2]Resource // monopoly uses Take[0], year of plenty both
}

func (a Action) String() string {
	switch a.Kind {
	case PlaceCity, PlaceSettlement:
		return fmt.Sprintf("%v at %v", a.Kind, a.Node)
	case PlaceRoad:
		return fmt.Sprintf("road %v", a.Edge)
	case Exchange:
		return fmt.Sprintf("exchange %v for %v", a.Give, a.Get)
	case PlayDevCard:
		switch a.Card {
		case Knight:
			return fmt.Sprintf("knight to %v", a.Tile)
		case Monopoly:
			return fmt.Sprintf("monopoly on %v", a.Take[0])
		case YearOfPlenty:
			return fmt.Sprintf("year of plenty %v and %v", a.Take[0], a.Take[1])
		}
		return fmt.Sprintf("play %v", a.Card)
	}
	return a.Kind.String()
}

// Move is the ordered list of actions a player takes in one turn.
type Move []Action

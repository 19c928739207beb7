package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// DevCard is a development card kind.
type DevCard int

const (
	Knight DevCard = iota
	VictoryPoint
	RoadBuilding
	YearOfPlenty
	Monopoly
	NumDevCards
)

var devCardNames = []string{"knight", "victory point", "road building", "year of plenty", "monopoly"}

func (d DevCard) String() string {
	if d < 0 || d >= NumDevCards {
		return fmt.Sprintf("devcard(%d)", int(d))
	}
	return devCardNames[d]
}

// Playable reports whether the card is played as an action. Victory points
// count as soon as they are bought.
func (d DevCard) Playable() bool {
	return d != VictoryPoint && d >= 0 && d < NumDevCards
}

// DevCards counts cards per kind, indexed by DevCard.
type DevCards [NumDevCards]int

// Total returns the number of cards counted.
func (d DevCards) Total() int {
	total := 0
	for _, n := range d {
		total += n
	}
	return total
}

// NewDeck returns the 25 card deck, shuffled when rng is not nil. Cards are
// drawn from the end.
func NewDeck(rng *rand.Rand) []DevCard {
	counts := DevCards{Knight: 14, VictoryPoint: 5, RoadBuilding: 2, YearOfPlenty: 2, Monopoly: 2}
	deck := make([]DevCard, 0, counts.Total())
	for kind, n := range counts {
		for i := 0; i < n; i++ {
			deck = append(deck, DevCard(kind))
		}
	}
	if rng != nil {
		rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	}
	return deck
}

package eval

import (
	"math"

	"catan/game"
	"catan/meta"
)

// Vector is a feature vector aligned to a schema.
type Vector struct {
	schema *Schema
	Values []float64
}

func NewVector(s *Schema) Vector {
	return Vector{schema: s, Values: make([]float64, s.Len())}
}

func (v Vector) Schema() *Schema { return v.schema }

// Get returns a feature by name, 0 if the schema lacks it.
func (v Vector) Get(name string) float64 {
	if i, ok := v.schema.Index(name); ok {
		return v.Values[i]
	}
	return 0
}

// Extractor turns a state into a feature vector from one seat's view.
type Extractor interface {
	Schema() *Schema
	Extract(s *game.State, seat int) Vector
}

type extractor struct {
	schema *Schema
}

var (
	Basic       Extractor = extractor{BasicSchema}
	Adversarial Extractor = extractor{AdversarialSchema}
	Positional  Extractor = extractor{PositionalSchema}
)

func (x extractor) Schema() *Schema { return x.schema }

func (x extractor) Extract(s *game.State, seat int) Vector {
	v := NewVector(x.schema)
	extractBase(v.Values, s, seat)
	if x.schema.Has(GroupAdversarial) {
		extractAdversarial(v.Values, x.schema, s, seat)
	}
	if x.schema.Has(GroupPositional) {
		extractPositional(v.Values, x.schema, s, seat)
	}
	return v
}

// ExpectedIncome is the expected number of cards per roll for each resource.
// Cities count twice. The desert and the robber are ignored.
func ExpectedIncome(s *game.State, seat int) [game.NumResources]float64 {
	var income [game.NumResources]float64
	for _, pl := range s.Players[seat].Pieces {
		mult := 1.0
		if pl.Piece == game.City {
			mult = 2
		}
		for _, id := range s.Board.Node(pl.Node).Tiles {
			t := s.Board.Tile(id)
			if t.Resource == game.Desert {
				continue
			}
			income[t.Resource] += game.RollProbability(t.Value) * mult
		}
	}
	return income
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func extractBase(f []float64, s *game.State, seat int) {
	p := s.Players[seat]
	income := ExpectedIncome(s, seat)

	mean := 0.0
	accessible := 0
	for r, x := range income {
		f[Income(game.Resource(r))] = x
		mean += x
		if x > 0 {
			accessible++
		}
	}
	mean /= float64(len(income))
	variance := 0.0
	for _, x := range income {
		variance += (x - mean) * (x - mean)
	}

	settlements := p.Count(game.Settlement)
	cities := p.Count(game.City)
	f[NumRoads] = float64(len(p.Roads))
	f[LongestRoad] = float64(p.LongestRoad)
	f[NumSettlements] = float64(settlements)
	f[NumCities] = float64(cities)
	f[TurnsOverLimit] = float64(p.TurnsOverLimit)
	f[CardsDiscarded] = float64(p.CardsDiscarded)
	f[Score] = float64(p.Score)
	f[HasWon] = b2f(p.Score >= meta.WINNING_SCORE)
	f[SquaredDistance] = float64((meta.WINNING_SCORE - p.Score) * (meta.WINNING_SCORE - p.Score))
	f[HasLongestRoad] = b2f(p.HasLongestRoad)
	f[HasLargestArmy] = b2f(p.HasLargestArmy)
	if settlements > 0 {
		f[RoadsPerSettlement] = float64(len(p.Roads)) / float64(settlements)
		f[CitiesPerSettlement] = float64(cities) / float64(settlements)
	}
	f[AccessibleResources] = float64(accessible)
	f[ResourceSpread] = math.Sqrt(variance / float64(len(income)))
	f[DevCardsPlayed] = float64(p.PlayedDevCards.Total())
	for d, n := range p.PlayedDevCards {
		f[Played(game.DevCard(d))] = float64(n)
	}
}

func extractAdversarial(f []float64, schema *Schema, s *game.State, seat int) {
	f[schema.offsets[GroupAdversarial]] = 1
	for slot := 1; slot <= Opponents; slot++ {
		o := s.Players[(seat+slot)%len(s.Players)]
		f[schema.SlotIndex(slot, SlotScore)] = float64(o.Score)
		f[schema.SlotIndex(slot, SlotDevCards)] = float64(o.DevCards.Total() + o.NewDevCards.Total() + o.PlayedDevCards.Total())
		f[schema.SlotIndex(slot, SlotRoads)] = float64(len(o.Roads))
		f[schema.SlotIndex(slot, SlotSettlements)] = float64(o.Count(game.Settlement))
		f[schema.SlotIndex(slot, SlotCities)] = float64(o.Count(game.City))
	}
}

func extractPositional(f []float64, schema *Schema, s *game.State, seat int) {
	for slot := 0; slot <= Opponents; slot++ {
		other := (seat + slot) % len(s.Players)
		f[schema.SiteIndex(slot, SettlementSites)] = float64(len(s.SettlementSites(other, false)))
		f[schema.SiteIndex(slot, CitySites)] = float64(len(s.CitySites(other)))
		f[schema.SiteIndex(slot, RoadSites)] = float64(len(s.RoadSites(other)))
	}
	p := s.Players[seat]
	anyPort := false
	for _, r := range game.AllResources {
		f[schema.PortIndex(r)] = b2f(p.Rates[r] == 2)
		anyPort = anyPort || p.Rates[r] == 3
	}
	anyIndex := schema.PortIndex(game.Grain) + 1
	f[anyIndex] = b2f(anyPort)
	f[anyIndex+1] = b2f(p.Score == s.MaxScore)
}

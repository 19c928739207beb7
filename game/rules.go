package game

// StandardRules holds the costs and piece limits of the base game.
type StandardRules struct {
	SettlementCost Resources
	CityCost       Resources
	RoadCost       Resources
	DevCardCost    Resources

	MaxSettlements int
	MaxCities      int
	MaxRoads       int

	// DefaultRate is the bank exchange rate before any port is reached.
	DefaultRate int
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		SettlementCost: Resources{Brick: 1, Wood: 1, Wool: 1, Grain: 1},
		CityCost:       Resources{Ore: 3, Grain: 2},
		RoadCost:       Resources{Brick: 1, Wood: 1},
		DevCardCost:    Resources{Ore: 1, Wool: 1, Grain: 1},
		MaxSettlements: 5,
		MaxCities:      4,
		MaxRoads:       15,
		DefaultRate:    4,
	}
}

// Cost returns the price of one unit of a build kind.
func (sr *StandardRules) Cost(kind Kind) Resources {
	switch kind {
	case PlaceSettlement:
		return sr.SettlementCost
	case PlaceCity:
		return sr.CityCost
	case PlaceRoad:
		return sr.RoadCost
	case BuyDevCard:
		return sr.DevCardCost
	}
	return Resources{}
}

package game

// Candidate is one kind of action inside an option: how many units the
// player can afford and the targets each unit may pick from.
type Candidate struct {
	Kind  Kind
	Count int
	Nodes []NodeID // settlement and city targets
	Edges []Edge   // road targets
	Give  Resource // exchange only
	Get   Resource
}

// Option is a bundle of candidates resolved together in one move.
type Option struct {
	Candidates []Candidate
}

// Units is the total number of actions the option resolves to.
func (o Option) Units() int {
	n := 0
	for _, c := range o.Candidates {
		n += c.Count
	}
	return n
}

// Actions expands the candidate into one action per target.
func (c Candidate) Actions() []Action {
	switch c.Kind {
	case PlaceCity, PlaceSettlement:
		actions := make([]Action, len(c.Nodes))
		for i, n := range c.Nodes {
			actions[i] = Action{Kind: c.Kind, Node: n}
		}
		return actions
	case PlaceRoad:
		actions := make([]Action, len(c.Edges))
		for i, e := range c.Edges {
			actions[i] = Action{Kind: PlaceRoad, Edge: e}
		}
		return actions
	case Exchange:
		return []Action{{Kind: Exchange, Give: c.Give, Get: c.Get}}
	}
	return []Action{{Kind: c.Kind}}
}

var buildKinds = []Kind{PlaceCity, PlaceSettlement, PlaceRoad, BuyDevCard}

// PossibleActions lists the options open to seat. Every affordable build kind
// is offered alone, then every bundle of two or more kinds whose one-unit
// costs are affordable together, then every bank exchange. In setup only the
// next opening placement is offered. No legal move yields an empty slice.
func (s *State) PossibleActions(seat int, setup bool) []Option {
	p := s.Player(seat)
	if setup {
		return s.setupActions(seat)
	}

	var singles []Candidate
	for _, kind := range buildKinds {
		if c, ok := s.candidate(seat, kind); ok {
			singles = append(singles, c)
		}
	}

	options := make([]Option, 0, len(singles)+16)
	for _, c := range singles {
		options = append(options, Option{Candidates: []Candidate{c}})
	}

	// bundles of one unit per kind, subsets of size two and up in bit order
	for mask := 1; mask < 1<<len(singles); mask++ {
		if mask&(mask-1) == 0 {
			continue
		}
		var cost Resources
		bundle := make([]Candidate, 0, len(singles))
		for i, c := range singles {
			if mask&(1<<i) == 0 {
				continue
			}
			c.Count = 1
			if c.Kind != PlaceRoad || p.FreeRoads == 0 {
				cost = cost.Plus(s.Rules.Cost(c.Kind))
			}
			bundle = append(bundle, c)
		}
		if p.Resources.Covers(cost) {
			options = append(options, Option{Candidates: bundle})
		}
	}

	for _, give := range AllResources {
		if p.Resources[give] < p.Rates[give] {
			continue
		}
		for _, get := range AllResources {
			if get == give {
				continue
			}
			options = append(options, Option{Candidates: []Candidate{{Kind: Exchange, Count: 1, Give: give, Get: get}}})
		}
	}
	return options
}

// candidate sizes one build kind by resources, remaining pieces and targets.
func (s *State) candidate(seat int, kind Kind) (Candidate, bool) {
	p := s.Players[seat]
	rules := s.Rules
	c := Candidate{Kind: kind}
	switch kind {
	case PlaceCity:
		c.Nodes = s.CitySites(seat)
		c.Count = min(p.Resources.Times(rules.CityCost), rules.MaxCities-p.Count(City), len(c.Nodes))
	case PlaceSettlement:
		c.Nodes = s.SettlementSites(seat, false)
		c.Count = min(p.Resources.Times(rules.SettlementCost), rules.MaxSettlements-p.Count(Settlement), len(c.Nodes))
	case PlaceRoad:
		c.Edges = s.RoadSites(seat)
		c.Count = min(p.FreeRoads+p.Resources.Times(rules.RoadCost), rules.MaxRoads-len(p.Roads), len(c.Edges))
	case BuyDevCard:
		c.Count = min(p.Resources.Times(rules.DevCardCost), len(s.Deck))
	}
	return c, c.Count > 0
}

func (s *State) setupActions(seat int) []Option {
	p := s.Players[seat]
	if len(p.Pieces) > len(p.Roads) {
		edges := s.setupRoadSites(seat)
		if len(edges) == 0 {
			return nil
		}
		return []Option{{Candidates: []Candidate{{Kind: PlaceRoad, Count: 1, Edges: edges}}}}
	}
	nodes := s.SettlementSites(seat, true)
	if len(nodes) == 0 {
		return nil
	}
	return []Option{{Candidates: []Candidate{{Kind: PlaceSettlement, Count: 1, Nodes: nodes}}}}
}

// setupRoadSites are the free edges leaving an own piece that has no own road
// yet, so the opening road attaches to the settlement just placed.
func (s *State) setupRoadSites(seat int) []Edge {
	p := s.Players[seat]
	var edges []Edge
	for _, pl := range p.Pieces {
		if p.Touches(pl.Node) {
			continue
		}
		for _, nb := range s.Board.Neighbors(pl.Node) {
			if e := NewEdge(pl.Node, nb); s.RoadOwner(e) < 0 {
				edges = append(edges, e)
			}
		}
	}
	return edges
}

// SettlementSites are the nodes where seat may found a settlement. Outside
// setup the node must also end one of the seat's roads.
func (s *State) SettlementSites(seat int, setup bool) []NodeID {
	var sites []NodeID
	for _, n := range s.Board.Nodes() {
		if s.settlementLegal(seat, n.ID, setup) {
			sites = append(sites, n.ID)
		}
	}
	return sites
}

// CitySites are the seat's settlements.
func (s *State) CitySites(seat int) []NodeID {
	var sites []NodeID
	for _, pl := range s.Players[seat].Pieces {
		if pl.Piece == Settlement {
			sites = append(sites, pl.Node)
		}
	}
	return sites
}

// RoadSites are the free edges leaving a node seat can build from.
func (s *State) RoadSites(seat int) []Edge {
	var sites []Edge
	seen := make(map[Edge]bool)
	for _, n := range s.Board.Nodes() {
		if !s.reaches(seat, n.ID) {
			continue
		}
		for _, nb := range n.Neighbors {
			e := NewEdge(n.ID, nb)
			if seen[e] || s.RoadOwner(e) >= 0 {
				continue
			}
			seen[e] = true
			sites = append(sites, e)
		}
	}
	return sites
}

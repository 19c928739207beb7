package agent

import (
	"catan/game"
)

func (a *Agent) random() bool {
	return a.strategy == Random || a.strategy == Human
}

// PickMove chooses the agent's building move for the turn. A learner first
// updates its weights against the current state. An empty move passes.
func (a *Agent) PickMove(s *game.State) game.Move {
	if a.learner != nil {
		a.learner.Observe(a.extractor.Extract(s, a.Seat), a.weights)
	}
	if a.random() {
		return a.randomMove(s)
	}
	move, value, ok := a.searcher.Search(s, a.Seat)
	a.last = a.searcher.Metrics()
	if !ok {
		return nil
	}
	a.log.Debug().Int("actions", len(move)).Float64("value", value).Msg("picked move")
	return move
}

func (a *Agent) randomMove(s *game.State) game.Move {
	options := s.PossibleActions(a.Seat, false)
	if len(options) == 0 {
		return nil
	}
	for _, o := range options {
		if len(o.Candidates) == 1 && o.Candidates[0].Kind == game.BuyDevCard {
			return game.Move{{Kind: game.BuyDevCard}}
		}
	}
	return a.resolve(s, options[a.rng.Intn(len(options))])
}

// resolve picks random legal targets for every unit of o.
func (a *Agent) resolve(s *game.State, o game.Option) game.Move {
	j := game.NewJournal(s)
	defer j.Rewind()

	var move game.Move
	for _, c := range o.Candidates {
		actions := c.Actions()
		for unit := 0; unit < c.Count; unit++ {
			a.rng.Shuffle(len(actions), func(i, k int) { actions[i], actions[k] = actions[k], actions[i] })
			for _, act := range actions {
				if j.Apply(a.Seat, act, false) == nil {
					move = append(move, act)
					break
				}
			}
		}
	}
	return move
}

// PickSetup chooses the next opening placement, a settlement or the road
// leaving it.
func (a *Agent) PickSetup(s *game.State) (game.Action, bool) {
	options := s.PossibleActions(a.Seat, true)
	if len(options) == 0 {
		return game.Action{}, false
	}
	actions := options[0].Candidates[0].Actions()
	if a.random() {
		return actions[a.rng.Intn(len(actions))], true
	}
	best, _, ok := a.greedy.Pick(s, a.Seat, actions, true)
	return best, ok
}

// PickDevCard decides whether to play a held card before building. Random
// agents play any card they hold. The others play the best card only if it
// does not lower their evaluation.
func (a *Agent) PickDevCard(s *game.State) (game.Action, bool) {
	p := s.Player(a.Seat)
	var actions []game.Action
	for card := game.DevCard(0); card < game.NumDevCards; card++ {
		if card.Playable() && p.DevCards[card] > 0 {
			actions = append(actions, a.cardAction(s, card))
		}
	}
	if len(actions) == 0 {
		return game.Action{}, false
	}
	if a.random() {
		return actions[a.rng.Intn(len(actions))], true
	}
	best, value, ok := a.greedy.Pick(s, a.Seat, actions, false)
	if !ok || value < a.evaluate(s, a.Seat) {
		return game.Action{}, false
	}
	return best, true
}

func (a *Agent) cardAction(s *game.State, card game.DevCard) game.Action {
	act := game.Action{Kind: game.PlayDevCard, Card: card}
	switch card {
	case game.Knight:
		act.Tile = a.PickRobber(s)
	case game.Monopoly:
		act.Take[0] = a.monopolyResource(s)
	case game.YearOfPlenty:
		act.Take = a.plentyResources(s)
	}
	return act
}

// monopolyResource is the resource opponents hold the most of.
func (a *Agent) monopolyResource(s *game.State) game.Resource {
	if a.chooser != nil {
		if r := a.chooser.RequestResourceChoice(); r.Tradeable() {
			return r
		}
	}
	var held game.Resources
	for _, p := range s.Players {
		if p.Seat != a.Seat {
			held = held.Plus(p.Resources)
		}
	}
	best := game.Ore
	for _, r := range game.AllResources {
		if held[r] > held[best] {
			best = r
		}
	}
	return best
}

// plentyResources takes the two resources the agent holds the fewest of.
func (a *Agent) plentyResources(s *game.State) [2]game.Resource {
	if a.chooser != nil {
		first, second := a.chooser.RequestResourceChoice(), a.chooser.RequestResourceChoice()
		if first.Tradeable() && second.Tradeable() {
			return [2]game.Resource{first, second}
		}
	}
	hand := s.Player(a.Seat).Resources
	var take [2]game.Resource
	for i := range take {
		best := game.Ore
		for _, r := range game.AllResources {
			if hand[r] < hand[best] {
				best = r
			}
		}
		take[i] = best
		hand[best]++
	}
	return take
}

// PickRobber chooses where the robber goes: the tile with the most
// opponent buildings, cities counting twice, leaving alone tiles touching
// the agent or any player on three points or fewer. Without such a tile the
// first tile not holding the robber is used.
func (a *Agent) PickRobber(s *game.State) game.TileID {
	var fallback game.TileID
	found := false
	bestCount, best := -1, game.TileID{}
	for _, t := range s.Board.Tiles() {
		if t.ID == s.Robber {
			continue
		}
		if !found {
			fallback, found = t.ID, true
		}
		count, valid := 0, true
		for _, id := range game.TileNodes(t.ID) {
			n := s.Board.Node(id)
			if !n.Occupied() {
				continue
			}
			if n.Owner == a.Seat || s.CurrentScore(n.Owner) <= 3 {
				valid = false
				break
			}
			if n.Piece == game.City {
				count += 2
			} else {
				count++
			}
		}
		if valid && count > bestCount {
			bestCount, best = count, t.ID
		}
	}
	if bestCount < 0 {
		return fallback
	}
	return best
}

// PickVictim chooses whom to rob among victims: the highest score, the first
// listed on ties. It returns -1 for no victims.
func (a *Agent) PickVictim(s *game.State, victims []int) int {
	victim := -1
	for _, v := range victims {
		if victim < 0 || s.CurrentScore(v) > s.CurrentScore(victim) {
			victim = v
		}
	}
	return victim
}

// Discard picks n cards to give up from the agent's hand. Human players are
// asked for each card; an answer they cannot give falls back to a random
// held card.
func (a *Agent) Discard(s *game.State, n int) []game.Resource {
	hand := s.Player(a.Seat).Resources
	n = min(n, hand.Total())
	out := make([]game.Resource, 0, n)
	for len(out) < n {
		r, ok := game.Resource(0), false
		if a.chooser != nil {
			r = a.chooser.RequestResourceChoice()
			ok = r.Tradeable() && hand[r] > 0
		}
		if !ok {
			r = a.randomHeld(hand)
		}
		hand[r]--
		out = append(out, r)
	}
	return out
}

func (a *Agent) randomHeld(hand game.Resources) game.Resource {
	pick := a.rng.Intn(hand.Total())
	for _, r := range game.AllResources {
		if pick < hand[r] {
			return r
		}
		pick -= hand[r]
	}
	panic("agent: random card from an empty hand")
}

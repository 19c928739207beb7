package searcher

import (
	"sort"

	"catan/experiments/metrics"
	"catan/game"
)

// Greedy scores every option by resolving its targets one ply at a time.
type Greedy struct {
	evaluate Evaluate
	metrics  metrics.Collector
}

func NewGreedy(evaluate Evaluate, options ...Option) *Greedy {
	s := newSettings(options)
	return &Greedy{evaluate: evaluate, metrics: s.metrics}
}

func (g *Greedy) score(s *game.State, seat int) float64 {
	g.metrics.AddEvaluation()
	return g.evaluate(s, seat)
}

// Pick applies, scores and reverts each action and returns the best one. The
// first action wins ties. ok is false when none is legal.
func (g *Greedy) Pick(s *game.State, seat int, actions []game.Action, setup bool) (best game.Action, value float64, ok bool) {
	j := game.NewJournal(s)
	defer j.Rewind()
	return g.pick(j, seat, actions, setup)
}

func (g *Greedy) pick(j *game.Journal, seat int, actions []game.Action, setup bool) (best game.Action, value float64, ok bool) {
	for _, a := range actions {
		v, legal := g.try(j, seat, a, setup)
		if !legal {
			continue
		}
		if !ok || v > value {
			best, value, ok = a, v, true
		}
	}
	return best, value, ok
}

// try scores the state after a and reverts it. A development card purchase
// is scored as the expectation over the kinds left in the deck.
func (g *Greedy) try(j *game.Journal, seat int, a game.Action, setup bool) (float64, bool) {
	if a.Kind == game.BuyDevCard && !setup {
		return g.chance(j, seat, func() float64 { return g.score(j.State(), seat) })
	}
	if err := j.Apply(seat, a, setup); err != nil {
		return 0, false
	}
	g.metrics.AddApply()
	v := g.score(j.State(), seat)
	j.Pop()
	return v, true
}

// draw is one possible development card draw.
type draw struct {
	card game.DevCard
	p    float64
}

// draws lists the kinds left in the deck, most likely first. Only the counts
// are used; the order of the deck is hidden.
func draws(s *game.State) []draw {
	counts := s.DeckCounts()
	total := counts.Total()
	var ds []draw
	for d, n := range counts {
		if n > 0 {
			ds = append(ds, draw{card: game.DevCard(d), p: float64(n) / float64(total)})
		}
	}
	sort.SliceStable(ds, func(i, k int) bool { return ds[i].p > ds[k].p })
	return ds
}

// chance buys a card of every kind left in turn and returns the probability
// weighted value of next. ok is false when seat cannot buy.
func (g *Greedy) chance(j *game.Journal, seat int, next func() float64) (value float64, ok bool) {
	for _, d := range draws(j.State()) {
		if err := j.Draw(seat, d.card); err != nil {
			return 0, false
		}
		g.metrics.AddApply()
		value += d.p * next()
		j.Pop()
		ok = true
	}
	return value, ok
}

// commit applies a for good within the journal. A bought card is the most
// likely kind.
func (g *Greedy) commit(j *game.Journal, seat int, a game.Action) {
	if ds := draws(j.State()); a.Kind == game.BuyDevCard && len(ds) > 0 {
		if err := j.Draw(seat, ds[0].card); err != nil {
			panic(err)
		}
		return
	}
	if err := j.Apply(seat, a, false); err != nil {
		panic(err)
	}
}

// unit is one action to place, out of a candidate's targets.
type unit struct {
	candidate int
	actions   []game.Action
}

func units(o game.Option) []unit {
	var us []unit
	for i, c := range o.Candidates {
		actions := c.Actions()
		for n := 0; n < c.Count; n++ {
			us = append(us, unit{candidate: i, actions: actions})
		}
	}
	return us
}

// plan resolves an option unit by unit, keeping each unit's best target
// applied so later units see it, and returns the value of next once the
// whole plan is in place. A purchase branches over the possible draws and the
// rest of the move follows the most likely one. j is back where it started on
// return.
func (g *Greedy) plan(j *game.Journal, seat int, o game.Option, next func() float64) (game.Move, float64) {
	return g.resolve(j, seat, units(o), next)
}

func (g *Greedy) resolve(j *game.Journal, seat int, us []unit, next func() float64) (game.Move, float64) {
	if len(us) == 0 {
		return nil, next()
	}
	u, rest := us[0], us[1:]
	a, _, ok := g.pick(j, seat, u.actions, false)
	if !ok {
		// the candidate is exhausted
		for len(rest) > 0 && rest[0].candidate == u.candidate {
			rest = rest[1:]
		}
		return g.resolve(j, seat, rest, next)
	}

	if a.Kind == game.BuyDevCard {
		var move game.Move
		value := 0.0
		for i, d := range draws(j.State()) {
			if err := j.Draw(seat, d.card); err != nil {
				panic(err)
			}
			g.metrics.AddApply()
			m, v := g.resolve(j, seat, rest, next)
			j.Pop()
			value += d.p * v
			if i == 0 {
				move = m
			}
		}
		return append(game.Move{a}, move...), value
	}

	if err := j.Apply(seat, a, false); err != nil {
		panic(err)
	}
	move, v := g.resolve(j, seat, rest, next)
	j.Pop()
	return append(game.Move{a}, move...), v
}

// Plan resolves an option to concrete actions. The value is the evaluation
// after the whole plan. The state is rewound before returning.
func (g *Greedy) Plan(s *game.State, seat int, o game.Option) (game.Move, float64) {
	j := game.NewJournal(s)
	defer j.Rewind()
	return g.plan(j, seat, o, func() float64 { return g.score(s, seat) })
}

// Best returns the highest valued option plan; earlier options win ties.
func (g *Greedy) Best(s *game.State, seat int) (best game.Move, value float64, ok bool) {
	for _, o := range s.PossibleActions(seat, false) {
		g.metrics.AddOption()
		move, v := g.Plan(s, seat, o)
		if len(move) == 0 {
			continue
		}
		if !ok || v > value {
			best, value, ok = move, v, true
		}
	}
	return best, value, ok
}

func (g *Greedy) Search(s *game.State, seat int) (game.Move, float64, bool) {
	g.metrics.Start("greedy", 0)
	return g.Best(s, seat)
}

func (g *Greedy) Metrics() metrics.SearchMetric {
	return g.metrics.Complete()
}

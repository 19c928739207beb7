package searcher

import (
	"catan/experiments/metrics"
	"catan/game"
)

// Expectimax looks ahead by letting every following seat answer with its
// greedy best plan, for a number of full rounds, before scoring the result
// for the acting seat. Each seat's reply is scored from its own view with the
// shared evaluation.
type Expectimax struct {
	greedy  *Greedy
	depth   int
	metrics metrics.Collector
}

func NewExpectimax(evaluate Evaluate, options ...Option) *Expectimax {
	s := newSettings(options)
	return &Expectimax{
		greedy:  &Greedy{evaluate: evaluate, metrics: s.metrics},
		depth:   s.depth,
		metrics: s.metrics,
	}
}

// Depth is the number of full rounds searched.
func (e *Expectimax) Depth() int { return e.depth }

// Greedy returns the one ply scorer used to resolve plans.
func (e *Expectimax) Greedy() *Greedy { return e.greedy }

func (e *Expectimax) Search(s *game.State, seat int) (best game.Move, value float64, ok bool) {
	e.metrics.Start("expectimax", e.depth)
	for _, o := range s.PossibleActions(seat, false) {
		e.metrics.AddOption()
		move, v := e.value(s, seat, o)
		if len(move) == 0 {
			continue
		}
		if !ok || v > value {
			best, value, ok = move, v, true
		}
	}
	return best, value, ok
}

// value plays the option, then the predicted replies, scores the outcome for
// seat and rewinds everything.
func (e *Expectimax) value(s *game.State, seat int, o game.Option) (game.Move, float64) {
	j := game.NewJournal(s)
	defer j.Rewind()

	n := len(s.Players)
	move, v := e.greedy.plan(j, seat, o, func() float64 {
		start := j.Len()
		turn := (seat + 1) % n
		for depth := e.depth; depth > 0; {
			e.respond(j, turn)
			turn = (turn + 1) % n
			if turn == seat {
				depth--
			}
		}
		v := e.greedy.score(s, seat)
		j.RewindTo(start)
		return v
	})
	if len(move) == 0 {
		return nil, 0
	}
	return move, v
}

// respond applies the greedy best plan of seat. A seat with no option passes.
func (e *Expectimax) respond(j *game.Journal, seat int) {
	s := j.State()
	var best game.Move
	var value float64
	for _, o := range s.PossibleActions(seat, false) {
		move, v := e.greedy.plan(j, seat, o, func() float64 { return e.greedy.score(s, seat) })
		if len(move) == 0 {
			continue
		}
		if best == nil || v > value {
			best, value = move, v
		}
	}
	for _, a := range best {
		e.greedy.commit(j, seat, a)
	}
}

func (e *Expectimax) Metrics() metrics.SearchMetric {
	return e.metrics.Complete()
}

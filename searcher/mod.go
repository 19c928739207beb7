package searcher

import (
	"catan/eval"
	"catan/experiments/metrics"
	"catan/game"
	"catan/meta"
)

// Evaluate scores a state from one seat's point of view.
type Evaluate func(s *game.State, seat int) float64

// Linear evaluates with a feature extractor and weights. Any seat can be
// scored with it, which is how opponents are modelled.
func Linear(x eval.Extractor, w eval.Weights) Evaluate {
	return func(s *game.State, seat int) float64 {
		return eval.Evaluate(x.Extract(s, seat), w)
	}
}

// Searcher picks a move for a seat. The state is mutated during the search
// and restored before Search returns. ok is false when no option exists.
type Searcher interface {
	Search(s *game.State, seat int) (move game.Move, value float64, ok bool)
	Metrics() metrics.SearchMetric
}

type Option func(s *settings)

type settings struct {
	depth   int
	metrics metrics.Collector
}

// WithDepth sets the number of full rounds of predicted replies.
func WithDepth(depth int) Option {
	return func(s *settings) {
		if depth >= 0 {
			s.depth = depth
		}
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.metrics = metrics.NewCollector()
	}
}

func newSettings(options []Option) settings {
	s := settings{ // Default values
		depth:   meta.DEPTH,
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&s)
	}
	return s
}

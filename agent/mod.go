// Package agent wraps a move picking policy, its evaluation model and an
// optional learner into one player of the game.
package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catan/eval"
	"catan/experiments/metrics"
	"catan/game"
	"catan/searcher"
	"catan/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Strategy is how an agent turns options into a move.
type Strategy int

const (
	Random Strategy = iota
	Greedy
	Expectimax
	Human
)

var strategyNames = []string{"random", "greedy", "expectimax", "human"}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ResourceChooser answers resource questions for a human player. It blocks
// until the player has chosen.
type ResourceChooser interface {
	RequestResourceChoice() game.Resource
}

// ChooserFunc adapts a function to ResourceChooser.
type ChooserFunc func() game.Resource

func (f ChooserFunc) RequestResourceChoice() game.Resource { return f() }

// Agent plays one seat.
type Agent struct {
	Seat int
	Name string

	strategy  Strategy
	extractor eval.Extractor
	weights   eval.Weights
	learner   *eval.Learner
	depth     int
	collect   bool

	searcher searcher.Searcher
	greedy   *searcher.Greedy

	store store.WeightStore
	key   string

	rng     *rand.Rand
	chooser ResourceChooser
	log     zerolog.Logger
	last    metrics.SearchMetric
}

type Option func(a *Agent)

// WithExtractor sets the feature set the agent evaluates with.
func WithExtractor(x eval.Extractor) Option {
	return func(a *Agent) {
		a.extractor = x
	}
}

// WithWeights sets the initial weights. They must match the extractor.
func WithWeights(w eval.Weights) Option {
	return func(a *Agent) {
		a.weights = w
	}
}

// WithLearner enables temporal difference learning toward target. A nil
// target disables learning.
func WithLearner(target eval.Target) Option {
	return func(a *Agent) {
		if target == nil {
			a.learner = nil
			return
		}
		a.learner = eval.NewLearner(target)
	}
}

// WithEta overrides the learning rates. Zero keeps the defaults.
func WithEta(eta, finalEta float64) Option {
	return func(a *Agent) {
		if a.learner == nil {
			return
		}
		if eta > 0 {
			a.learner.Eta = eta
		}
		if finalEta > 0 {
			a.learner.FinalEta = finalEta
		}
	}
}

func WithDepth(depth int) Option {
	return func(a *Agent) {
		if depth >= 0 {
			a.depth = depth
		}
	}
}

// WithStore loads the agent's weights from st under key on Init and saves
// them back when a learning game ends.
func WithStore(st store.WeightStore, key string) Option {
	return func(a *Agent) {
		a.store, a.key = st, key
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(a *Agent) {
		a.rng = rng
	}
}

func WithChooser(c ResourceChooser) Option {
	return func(a *Agent) {
		a.chooser = c
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(a *Agent) {
		a.log = l
	}
}

// WithMetrics collects search metrics, readable with LastSearch.
func WithMetrics() Option {
	return func(a *Agent) {
		a.collect = true
	}
}

// New builds an agent. Without WithWeights a learner starts at zero and any
// other searching agent at random weights, until Init loads stored ones.
func New(seat int, name string, strategy Strategy, options ...Option) *Agent {
	a := &Agent{ // Default values
		Seat:      seat,
		Name:      name,
		strategy:  strategy,
		extractor: eval.Basic,
		depth:     -1,
		log:       log.Logger,
	}
	for _, option := range options {
		option(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if schema := a.extractor.Schema(); a.weights.Schema() != schema {
		if a.learner != nil || a.random() {
			a.weights = eval.InitZero(schema)
		} else {
			a.weights = eval.InitRandom(schema, a.rng)
		}
	}
	a.log = a.log.With().Str("agent", name).Logger()

	var opts []searcher.Option
	if a.depth >= 0 {
		opts = append(opts, searcher.WithDepth(a.depth))
	}
	if a.collect {
		opts = append(opts, searcher.WithMetrics())
	}
	a.greedy = searcher.NewGreedy(a.evaluate, opts...)
	switch strategy {
	case Expectimax:
		e := searcher.NewExpectimax(a.evaluate, opts...)
		a.searcher, a.greedy = e, e.Greedy()
		a.depth = e.Depth()
	default:
		a.searcher = a.greedy
		a.depth = 0
	}
	return a
}

// NewRandom plays random options, buying a dev card whenever it can.
func NewRandom(seat int, name string, options ...Option) *Agent {
	return New(seat, name, Random, options...)
}

// NewWeighted plays the best one ply option under fixed basic weights, random
// unless given or stored.
func NewWeighted(seat int, name string, options ...Option) *Agent {
	return New(seat, name, Greedy, append([]Option{WithExtractor(eval.Basic)}, options...)...)
}

// NewQLearner plays greedily with adversarial features and learns toward the
// final score.
func NewQLearner(seat int, name string, options ...Option) *Agent {
	defaults := []Option{WithExtractor(eval.Adversarial), WithLearner(eval.ScoreTarget)}
	return New(seat, name, Greedy, append(defaults, options...)...)
}

// NewQLearnerWin learns toward winning with the positional feature set.
func NewQLearnerWin(seat int, name string, options ...Option) *Agent {
	defaults := []Option{WithExtractor(eval.Positional), WithLearner(eval.WinTarget)}
	return New(seat, name, Greedy, append(defaults, options...)...)
}

// NewMinimax searches depth rounds of replies and learns like NewQLearner.
func NewMinimax(seat int, name string, depth int, options ...Option) *Agent {
	defaults := []Option{WithExtractor(eval.Adversarial), WithLearner(eval.ScoreTarget), WithDepth(depth)}
	return New(seat, name, Expectimax, append(defaults, options...)...)
}

// NewHuman asks c for every resource choice and otherwise plays randomly.
func NewHuman(seat int, name string, c ResourceChooser, options ...Option) *Agent {
	return New(seat, name, Human, append([]Option{WithChooser(c)}, options...)...)
}

func (a *Agent) Strategy() Strategy { return a.strategy }

func (a *Agent) Weights() eval.Weights { return a.weights }

func (a *Agent) Learner() *eval.Learner { return a.learner }

// Depth is the number of rounds the agent searches, 0 for one ply.
func (a *Agent) Depth() int { return a.depth }

// LastSearch returns the metrics of the latest search, zero unless
// WithMetrics was given.
func (a *Agent) LastSearch() metrics.SearchMetric { return a.last }

func (a *Agent) String() string {
	return fmt.Sprintf("%s (%v, %s)", a.Name, a.strategy, a.extractor.Schema().Name())
}

func (a *Agent) evaluate(s *game.State, seat int) float64 {
	return eval.Evaluate(a.extractor.Extract(s, seat), a.weights)
}

// Init loads the agent's weights when a store is configured. Learners start
// untrained keys at zero, fixed weight agents at random weights, and the new
// weights are written back.
func (a *Agent) Init(ctx context.Context) error {
	if a.store == nil || a.strategy == Random || a.strategy == Human {
		return nil
	}
	fresh := func(s *eval.Schema) eval.Weights { return eval.InitRandom(s, a.rng) }
	if a.learner != nil {
		fresh = eval.InitZero
	}
	w, err := LoadWeights(ctx, a.store, a.key, a.extractor.Schema(), fresh)
	if err != nil {
		return fmt.Errorf("agent %s: %w", a.Name, err)
	}
	a.weights = w
	return nil
}

// LoadWeights reads key from st aligned to schema. A missing or untrained key
// is initialized with fresh and persisted.
func LoadWeights(ctx context.Context, st store.WeightStore, key string, schema *eval.Schema, fresh func(*eval.Schema) eval.Weights) (eval.Weights, error) {
	m, err := st.ReadWeights(ctx, key)
	switch {
	case errors.Is(err, store.ErrNotFound) || (err == nil && eval.Untrained(m)):
		w := fresh(schema)
		if err := st.WriteWeights(ctx, key, w.Map()); err != nil {
			return eval.Weights{}, fmt.Errorf("failed to initialize weights %q: %w", key, err)
		}
		return w, nil
	case err != nil:
		return eval.Weights{}, fmt.Errorf("failed to load weights %q: %w", key, err)
	}
	return eval.FromMap(schema, m), nil
}

// EndGame gives a learner its final update and saves the weights.
func (a *Agent) EndGame(ctx context.Context, s *game.State) error {
	if a.learner == nil {
		return nil
	}
	target := a.learner.Target(s, a.Seat)
	diff := a.learner.Finish(target, a.learner.FinalEta, a.weights)
	a.log.Info().Float64("target", target).Float64("diff", diff).Msg("end of game update")
	if a.store == nil {
		return nil
	}
	if err := a.store.WriteWeights(ctx, a.key, a.weights.Map()); err != nil {
		return fmt.Errorf("agent %s: failed to save weights: %w", a.Name, err)
	}
	return nil
}

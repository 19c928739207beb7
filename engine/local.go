package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catan/agent"
	"catan/experiments/metrics"
	"catan/game"
	"catan/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Turn is what happened in one turn, handed to the turn hook.
type Turn struct {
	Number int          `json:"turn"`
	Seat   int          `json:"seat"`
	Roll   int          `json:"roll"`
	Card   *game.Action `json:"card,omitempty"`
	Move   game.Move    `json:"move"`
	Scores []int        `json:"scores"`
}

type Result struct {
	Winner int // -1 when the turn cap ended the game
	Scores []int
	Turns  int
	Game   metrics.GameMetric
	Moves  []metrics.MoveMetric
}

// Local runs one game in process between agents sharing a state.
type Local struct {
	State  *game.State
	Agents []*agent.Agent

	starting int
	maxTurns int
	rng      *rand.Rand
	notifier game.RobberNotifier
	hook     func(Turn)
	log      zerolog.Logger
}

type Option func(e *Local)

func WithLogger(l zerolog.Logger) Option {
	return func(e *Local) {
		e.log = l
	}
}

// WithRand seeds the dice and the steals.
func WithRand(rng *rand.Rand) Option {
	return func(e *Local) {
		e.rng = rng
	}
}

func WithNotifier(n game.RobberNotifier) Option {
	return func(e *Local) {
		e.notifier = n
	}
}

func WithMaxTurns(turns int) Option {
	return func(e *Local) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithStartingSeat sets the seat that places first and moves first.
func WithStartingSeat(seat int) Option {
	return func(e *Local) {
		e.starting = seat
	}
}

// WithTurnHook calls f after every turn.
func WithTurnHook(f func(Turn)) Option {
	return func(e *Local) {
		e.hook = f
	}
}

// LocalEngine seats agents[i] at seat i of the state.
func LocalEngine(state *game.State, agents []*agent.Agent, options ...Option) (*Local, error) {
	if len(agents) != len(state.Players) {
		return nil, fmt.Errorf("%d agents for %d seats: %w", len(agents), len(state.Players), game.ErrInvalidSeat)
	}
	for i, a := range agents {
		if a.Seat != i {
			return nil, fmt.Errorf("agent %s sits at %d, not %d: %w", a.Name, a.Seat, i, game.ErrInvalidSeat)
		}
	}
	e := &Local{ // Default values
		State:    state,
		Agents:   agents,
		maxTurns: meta.MAX_TURNS,
		notifier: game.NopNotifier{},
		log:      log.Logger,
	}
	for _, option := range options {
		option(e)
	}
	if e.starting < 0 || e.starting >= len(agents) {
		return nil, fmt.Errorf("starting seat %d: %w", e.starting, game.ErrInvalidSeat)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return e, nil
}

func (e *Local) scores() []int {
	scores := make([]int, len(e.State.Players))
	for seat := range scores {
		scores[seat] = e.State.CurrentScore(seat)
	}
	return scores
}

// Run plays the opening and then turns until a seat wins or the turn cap is
// reached. Every agent gets its end of game update, also when the context
// is cancelled.
func (e *Local) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	n := len(e.Agents)
	e.log.Info().Int("starting", e.starting).Msg("game started")

	result := Result{Winner: -1}
	err := e.setup()
	for turn := 1; err == nil && result.Winner < 0 && turn <= e.maxTurns; turn++ {
		if err = ctx.Err(); err != nil {
			break
		}
		seat := (e.starting + turn - 1) % n
		var t Turn
		t, err = e.turn(turn, seat)
		if err != nil {
			break
		}
		result.Turns = turn
		result.Moves = append(result.Moves, metrics.MoveMetric{
			Turn:         turn,
			Player:       seat,
			Score:        float64(t.Scores[seat]),
			SearchMetric: e.Agents[seat].LastSearch(),
		})
		if e.hook != nil {
			e.hook(t)
		}
		result.Winner = e.State.Winner()
	}

	errs := []error{err}
	for _, a := range e.Agents {
		errs = append(errs, a.EndGame(context.WithoutCancel(ctx), e.State))
	}

	end := time.Now()
	result.Scores = e.scores()
	result.Game = metrics.GameMetric{
		StartingPlayer: e.starting,
		Winner:         result.Winner,
		Scores:         result.Scores,
		StartTime:      start,
		EndTime:        end,
		Duration:       end.Sub(start),
		Turns:          result.Turns,
	}
	if result.Winner >= 0 {
		e.log.Info().Int("winner", result.Winner).Int("turns", result.Turns).Ints("scores", result.Scores).Msg("game over")
	} else {
		e.log.Info().Int("turns", result.Turns).Ints("scores", result.Scores).Msg("game stopped without a winner")
	}
	return result, errors.Join(errs...)
}

// setup runs the snake draft: each seat in order places a settlement and a
// road, then again in reverse order.
func (e *Local) setup() error {
	n := len(e.Agents)
	order := make([]int, 0, 2*n)
	for i := 0; i < n; i++ {
		order = append(order, (e.starting+i)%n)
	}
	for i := n - 1; i >= 0; i-- {
		order = append(order, order[i])
	}
	for _, seat := range order {
		for piece := 0; piece < 2; piece++ {
			a, ok := e.Agents[seat].PickSetup(e.State)
			if !ok {
				return fmt.Errorf("seat %d has no opening placement", seat)
			}
			if err := e.State.ApplyMove(seat, game.Move{a}, true); err != nil {
				return fmt.Errorf("opening placement: %w", err)
			}
		}
	}
	return nil
}

func (e *Local) turn(number, seat int) (Turn, error) {
	s := e.State
	ag := e.Agents[seat]
	t := Turn{Number: number, Seat: seat, Roll: game.Roll(e.rng)}

	if t.Roll == 7 {
		if err := e.robber(seat); err != nil {
			return t, err
		}
	} else {
		s.Produce(t.Roll)
	}

	if card, ok := ag.PickDevCard(s); ok {
		if err := s.ApplyMove(seat, game.Move{card}, false); err != nil {
			e.log.Warn().Err(err).Int("seat", seat).Msg("dev card rejected")
		} else {
			t.Card = &card
			if card.Card == game.Knight {
				e.notifier.RobberPlaced(card.Tile)
				e.steal(seat, card.Tile)
			}
		}
	}

	move := ag.PickMove(s)
	if err := s.ApplyMove(seat, move, false); err != nil {
		e.log.Warn().Err(err).Int("seat", seat).Msg("move rejected, passing")
		move = nil
	}
	t.Move = move
	s.EndTurn(seat)
	t.Scores = e.scores()
	return t, nil
}

// robber handles a rolled seven: hands over the limit lose half their cards,
// then the roller moves the robber and steals.
func (e *Local) robber(seat int) error {
	s := e.State
	for victim, p := range s.Players {
		total := p.Resources.Total()
		if total <= meta.HAND_LIMIT {
			continue
		}
		for _, r := range e.Agents[victim].Discard(s, total/2) {
			if err := s.Discard(victim, r); err != nil {
				return fmt.Errorf("seat %d discard: %w", victim, err)
			}
		}
	}
	tile := e.Agents[seat].PickRobber(s)
	if err := s.MoveRobber(tile); err != nil {
		return fmt.Errorf("seat %d robber: %w", seat, err)
	}
	e.notifier.RobberPlaced(tile)
	e.steal(seat, tile)
	return nil
}

func (e *Local) steal(seat int, tile game.TileID) {
	victims := e.State.RobberVictims(tile, seat)
	if victim := e.Agents[seat].PickVictim(e.State, victims); victim >= 0 {
		e.State.Steal(seat, victim, e.rng)
	}
}

package experiments

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"catan/agent"
	"catan/config"
	"catan/engine"
	"catan/experiments/metrics"
	"catan/game"
	"catan/meta"
	"catan/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Summary is the outcome of a win rate experiment.
type Summary struct {
	Positions []metrics.PositionSummary
	Games     int
	Wins      int
	WinRate   float64
	Dir       string // output directory, empty when nothing was written
}

// TranscriptEntry is one line of the experiment transcript.
type TranscriptEntry struct {
	Game     int `json:"game"`
	Position int `json:"position"`
	engine.Turn
}

type Option func(r *runner)

type runner struct {
	log           zerolog.Logger
	store         store.WeightStore
	baselineStore store.WeightStore
	chooser       agent.ResourceChooser
	persist       bool
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *runner) {
		r.log = l
	}
}

// WithStore uses st for the test agent instead of opening the configured
// store.
func WithStore(st store.WeightStore) Option {
	return func(r *runner) {
		r.store = st
	}
}

// WithBaselineStore reads the configured baseline weights from st instead of
// opening the baseline store.
func WithBaselineStore(st store.WeightStore) Option {
	return func(r *runner) {
		r.baselineStore = st
	}
}

// WithChooser answers the resource questions of a human test agent.
func WithChooser(c agent.ResourceChooser) Option {
	return func(r *runner) {
		r.chooser = c
	}
}

// WithoutOutput skips the CSV files and the transcript.
func WithoutOutput() Option {
	return func(r *runner) {
		r.persist = false
	}
}

// Run plays cfg.Games games with the test agent in each seat and the
// baseline in the others, then writes the records and the win rates.
func Run(ctx context.Context, cfg config.Config, options ...Option) (summary Summary, err error) {
	r := runner{log: log.Logger, persist: true} // Default values
	for _, option := range options {
		option(&r)
	}
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}

	st := r.store
	if st == nil {
		st, err = store.Open(cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			return Summary{}, fmt.Errorf("failed to open weight store: %w", err)
		}
		defer func() { err = errors.Join(err, st.Close()) }()
	}
	baselines := store.NewMemory()
	if cfg.BaselineStore != nil {
		if err := r.seedBaselines(ctx, *cfg.BaselineStore, cfg.Baseline.Kind, baselines); err != nil {
			return Summary{}, err
		}
	}

	var writer *metrics.Writer
	var transcript *Transcript
	if r.persist {
		writer, err = metrics.NewWriter(cfg.OutputDir, cfg.Name)
		if err != nil {
			return Summary{}, err
		}
		if cfg.Transcript {
			transcript, err = NewTranscript(filepath.Join(writer.Dir(), "transcript.jsonl.zst"))
			if err != nil {
				return Summary{}, fmt.Errorf("failed to create transcript: %w", err)
			}
			defer func() { err = errors.Join(err, transcript.Close()) }()
		}
	}

	r.log.Info().Str("name", cfg.Name).Str("test", cfg.Test.Kind).Str("baseline", cfg.Baseline.Kind).Msg("starting experiment")

	rng := rand.New(rand.NewSource(cfg.Seed))
	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord
	count := 0
	for position := 0; position < meta.NUM_PLAYERS; position++ {
		ps := metrics.PositionSummary{Position: position, Wins: make([]int, meta.NUM_PLAYERS)}
		for i := 0; i < cfg.Games; i++ {
			count++
			id := count
			var hook func(engine.Turn)
			if transcript != nil {
				hook = func(t engine.Turn) {
					if err := transcript.Write(TranscriptEntry{Game: id, Position: position, Turn: t}); err != nil {
						r.log.Warn().Err(err).Msg("failed to write transcript")
					}
				}
			}
			result, err := r.game(ctx, cfg, position, rng.Uint64(), st, baselines, hook)
			if err != nil {
				return summary, fmt.Errorf("game %d: %w", id, err)
			}
			ps.Games++
			if result.Winner >= 0 {
				ps.Wins[result.Winner]++
			}
			gameRecords = append(gameRecords, metrics.GameRecord{ID: id, Position: position, GameMetric: result.Game})
			for _, mm := range result.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: id, MoveMetric: mm})
			}
			r.log.Info().Int("game", id).Int("position", position).Int("winner", result.Winner).Int("turns", result.Turns).Msg("completed game")
		}
		summary.Positions = append(summary.Positions, ps)
		summary.Games += ps.Games
		summary.Wins += ps.TestWins()
	}
	if summary.Games > 0 {
		summary.WinRate = float64(summary.Wins) / float64(summary.Games)
	}
	r.log.Info().Int("wins", summary.Wins).Int("games", summary.Games).Float64("win_rate", summary.WinRate).Msg("completed experiment")

	if writer == nil {
		return summary, nil
	}
	summary.Dir = writer.Dir()
	err = errors.Join(
		writer.WriteGameRecords(gameRecords),
		writer.WriteMoveRecords(moveRecords),
		writer.WriteSummary(summary.Positions),
	)
	if err != nil {
		return summary, err
	}
	r.log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return summary, nil
}

// baselineKey names the weights of the baseline in seat.
func baselineKey(kind string, seat int) string {
	return fmt.Sprintf("%s %d", kind, seat)
}

// seedBaselines copies the trained weights under src.Key into every
// baseline seat's key of dst. The source is only read.
func (r *runner) seedBaselines(ctx context.Context, src config.Store, kind string, dst store.WeightStore) (err error) {
	from := r.baselineStore
	if from == nil {
		from, err = store.Open(src.Driver, src.DSN)
		if err != nil {
			return fmt.Errorf("failed to open baseline store: %w", err)
		}
		defer func() { err = errors.Join(err, from.Close()) }()
	}
	weights, err := from.ReadWeights(ctx, src.Key)
	if err != nil {
		return fmt.Errorf("failed to read baseline weights %q: %w", src.Key, err)
	}
	for seat := 0; seat < meta.NUM_PLAYERS; seat++ {
		if err := dst.WriteWeights(ctx, baselineKey(kind, seat), weights); err != nil {
			return err
		}
	}
	r.log.Info().Str("key", src.Key).Msg("seeded baselines from trained weights")
	return nil
}

func (r *runner) game(ctx context.Context, cfg config.Config, position int, seed uint64, st, baselines store.WeightStore, hook func(engine.Turn)) (engine.Result, error) {
	rng := rand.New(rand.NewSource(seed))
	names := make([]string, meta.NUM_PLAYERS)
	agents := make([]*agent.Agent, meta.NUM_PLAYERS)
	for seat := range agents {
		spec, weights := cfg.Baseline, baselines
		opts := []agent.Option{
			agent.WithRand(rand.New(rand.NewSource(rng.Uint64()))),
			agent.WithLogger(r.log),
			agent.WithMetrics(),
		}
		if seat == position {
			spec, weights = cfg.Test, st
			if r.chooser != nil {
				opts = append(opts, agent.WithChooser(r.chooser))
			}
		} else {
			spec.Name = baselineKey(cfg.Baseline.Kind, seat)
			spec.Key = spec.Name
		}
		a, err := agent.FromSpec(seat, spec, append(opts, agent.WithStore(weights, ""))...)
		if err != nil {
			return engine.Result{}, err
		}
		if err := a.Init(ctx); err != nil {
			return engine.Result{}, err
		}
		agents[seat], names[seat] = a, a.Name
	}

	tiles := game.StandardLayout()
	if cfg.Shuffle {
		tiles = game.ShuffledLayout(rng)
	}
	players := make([]*game.Player, len(names))
	colors := []string{"orange", "red", "green", "blue"}
	for seat, name := range names {
		p, err := game.NewPlayer(seat, name, colors[seat])
		if err != nil {
			return engine.Result{}, err
		}
		players[seat] = p
	}
	state, err := game.NewState(tiles, players, rng)
	if err != nil {
		return engine.Result{}, err
	}

	e, err := engine.LocalEngine(state, agents,
		engine.WithRand(rng),
		engine.WithMaxTurns(cfg.MaxTurns),
		engine.WithLogger(r.log),
		engine.WithTurnHook(hook),
	)
	if err != nil {
		return engine.Result{}, err
	}
	return e.Run(ctx)
}

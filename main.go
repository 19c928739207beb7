package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"catan/config"
	"catan/experiments"
	"catan/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	path := flag.String("config", "", "YAML experiment config")
	games := flag.Int("games", 0, "games per test seat, overrides the config")
	seed := flag.Uint64("seed", 0, "experiment seed, overrides the config")
	test := flag.String("test", "", "test agent kind (random, weighted, qlearner, qlearner-win, minimax, human)")
	baseline := flag.String("baseline", "", "baseline agent kind")
	depth := flag.Int("depth", -1, "search depth of a minimax test agent, 0 for one ply")
	driver := flag.String("store", "", "weight store driver (memory, file, sqlite, postgres, redis)")
	dsn := flag.String("dsn", "", "weight store location")
	baselineDriver := flag.String("baseline-store", "", "store holding trained baseline weights")
	baselineDSN := flag.String("baseline-dsn", "", "baseline store location")
	baselineKey := flag.String("baseline-key", "", "key of the trained baseline weights")
	out := flag.String("out", "", "output directory")
	transcript := flag.Bool("transcript", false, "write a zstd transcript of every turn")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	cfg := config.Default()
	if *path != "" {
		var err error
		cfg, err = config.Load(*path)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	if *games > 0 {
		cfg.Games = *games
	}
	if *seed > 0 {
		cfg.Seed = *seed
	}
	if *test != "" {
		cfg.Test.Kind = *test
	}
	if *baseline != "" {
		cfg.Baseline.Kind = *baseline
	}
	if *depth >= 0 {
		cfg.Test.Depth = depth
	}
	if *driver != "" {
		cfg.Store.Driver = *driver
	}
	if *dsn != "" {
		cfg.Store.DSN = *dsn
	}
	if *baselineDriver != "" {
		cfg.BaselineStore = &config.Store{Driver: *baselineDriver, DSN: *baselineDSN, Key: *baselineKey}
	}
	if *out != "" {
		cfg.OutputDir = *out
	}
	cfg.Transcript = cfg.Transcript || *transcript

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if *debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("received shutdown signal")
		cancel()
	}()

	var opts []experiments.Option
	if strings.EqualFold(cfg.Test.Kind, "human") {
		opts = append(opts, experiments.WithChooser(stdinChooser{in: bufio.NewScanner(os.Stdin)}))
	}
	summary, err := experiments.Run(ctx, cfg, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	fmt.Printf("%d wins in %d games, win rate %.4f\n", summary.Wins, summary.Games, summary.WinRate)
}

// stdinChooser asks on stdin until a resource name is entered.
type stdinChooser struct {
	in *bufio.Scanner
}

func (c stdinChooser) RequestResourceChoice() game.Resource {
	for {
		fmt.Print("resource (ore, brick, wood, wool, grain): ")
		if !c.in.Scan() {
			return game.Desert
		}
		r, err := game.ParseResource(strings.TrimSpace(c.in.Text()))
		switch {
		case err != nil:
			fmt.Println(err)
		case !r.Tradeable():
			fmt.Printf("%v is not a card\n", r)
		default:
			return r
		}
	}
}

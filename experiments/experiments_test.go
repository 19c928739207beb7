package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"catan/agent"
	"catan/config"
	"catan/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func quickConfig(t *testing.T) config.Config {
	c := config.Default()
	c.Name = "quick"
	c.Games = 1
	c.MaxTurns = 24
	c.OutputDir = t.TempDir()
	c.Test = agent.Spec{Kind: "qlearner", Name: "test", Key: "test"}
	c.Baseline = agent.Spec{Kind: "random"}
	return c
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRun(t *testing.T) {
	t.Run("plays every position and writes records", func(t *testing.T) {
		ctx := context.Background()
		c := quickConfig(t)
		c.Transcript = true
		st := store.NewMemory()

		summary, err := Run(ctx, c, WithStore(st), WithLogger(zerolog.Nop()))
		require.NoError(t, err)
		require.Len(t, summary.Positions, 4)
		require.Equal(t, 4, summary.Games)
		for i, ps := range summary.Positions {
			require.Equal(t, i, ps.Position)
			require.Equal(t, 1, ps.Games)
		}
		require.InDelta(t, float64(summary.Wins)/4, summary.WinRate, 1e-12)

		games := readCSV(t, filepath.Join(summary.Dir, "game_records.csv"))
		require.Len(t, games, 5, "header and one row per game")
		require.Equal(t, "position", games[0][1])

		rows := readCSV(t, filepath.Join(summary.Dir, "summary.csv"))
		require.Len(t, rows, 6)
		require.Equal(t, "all", rows[5][0])
		require.Equal(t, "4", rows[5][1])

		moves := readCSV(t, filepath.Join(summary.Dir, "move_records.csv"))
		entries, err := ReadTranscript[TranscriptEntry](filepath.Join(summary.Dir, "transcript.jsonl.zst"))
		require.NoError(t, err)
		require.Len(t, entries, len(moves)-1, "one transcript line per turn")
		require.Equal(t, 1, entries[0].Game)
		require.Equal(t, 1, entries[0].Number)

		_, err = st.ReadWeights(ctx, "test")
		require.NoError(t, err, "the test agent's weights should be saved")
	})

	t.Run("without output", func(t *testing.T) {
		c := quickConfig(t)
		summary, err := Run(context.Background(), c, WithoutOutput(), WithLogger(zerolog.Nop()))
		require.NoError(t, err)
		require.Empty(t, summary.Dir)
		entries, err := os.ReadDir(c.OutputDir)
		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("baselines start from trained weights", func(t *testing.T) {
		ctx := context.Background()
		trained := map[string]float64{"score": 7, "has won": 1000, "roads": -2}
		from := store.NewMemory()
		require.NoError(t, from.WriteWeights(ctx, "champion", trained))

		c := quickConfig(t)
		c.Baseline = agent.Spec{Kind: "weighted"}
		c.BaselineStore = &config.Store{Driver: "memory", Key: "champion"}
		_, err := Run(ctx, c, WithoutOutput(), WithBaselineStore(from), WithLogger(zerolog.Nop()))
		require.NoError(t, err)

		got, err := from.ReadWeights(ctx, "champion")
		require.NoError(t, err)
		require.Equal(t, trained, got, "the baseline store is only read")

		c.BaselineStore.Key = "nobody"
		_, err = Run(ctx, c, WithoutOutput(), WithBaselineStore(from), WithLogger(zerolog.Nop()))
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("invalid config", func(t *testing.T) {
		c := quickConfig(t)
		c.Games = 0
		_, err := Run(context.Background(), c, WithoutOutput())
		require.Error(t, err)
	})

	t.Run("unknown agent kind", func(t *testing.T) {
		c := quickConfig(t)
		c.Baseline.Kind = "oracle"
		_, err := Run(context.Background(), c, WithoutOutput(), WithLogger(zerolog.Nop()))
		require.Error(t, err)
	})
}

func TestSeedBaselines(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	trained := map[string]float64{"score": 3, "cities": 1.5}
	src, err := store.NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, src.WriteWeights(ctx, "trained", trained))

	r := runner{log: zerolog.Nop()}
	dst := store.NewMemory()
	require.NoError(t, r.seedBaselines(ctx, config.Store{Driver: "file", DSN: dir, Key: "trained"}, "weighted", dst))
	for seat := 0; seat < 4; seat++ {
		got, err := dst.ReadWeights(ctx, baselineKey("weighted", seat))
		require.NoError(t, err)
		require.Equal(t, trained, got)
	}
}

func TestTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "t.jsonl.zst")
	tr, err := NewTranscript(path)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, tr.Write(map[string]int{"turn": i}))
	}
	require.NoError(t, tr.Close())

	lines, err := ReadTranscript[map[string]int](path)
	require.NoError(t, err)
	require.Equal(t, []map[string]int{{"turn": 0}, {"turn": 1}, {"turn": 2}}, lines)

	t.Run("close reports a failed flush", func(t *testing.T) {
		tr, err := NewTranscript(filepath.Join(t.TempDir(), "t.jsonl.zst"))
		require.NoError(t, err)
		require.NoError(t, tr.Write(map[string]int{"turn": 1}))
		require.NoError(t, tr.f.Close())
		require.Error(t, tr.Close())
	})
}

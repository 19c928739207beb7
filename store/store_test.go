package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// roundTrip exercises the contract every store shares.
func roundTrip(t *testing.T, st WeightStore) {
	t.Helper()
	ctx := context.Background()

	_, err := st.ReadWeights(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound, "an unknown key should not be found")

	first := map[string]float64{"score": 2, "has won": 1000, "roads per settlement": -4.5}
	require.NoError(t, st.WriteWeights(ctx, "learner", first))
	got, err := st.ReadWeights(ctx, "learner")
	require.NoError(t, err)
	require.Equal(t, first, got)

	second := map[string]float64{"score": 3.25}
	require.NoError(t, st.WriteWeights(ctx, "learner", second))
	got, err = st.ReadWeights(ctx, "learner")
	require.NoError(t, err)
	require.Equal(t, second, got, "a write should replace the previous weights")

	require.NoError(t, st.WriteWeights(ctx, "other", first))
	got, err = st.ReadWeights(ctx, "learner")
	require.NoError(t, err)
	require.Equal(t, second, got, "keys should not share weights")
}

func TestMemory(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		roundTrip(t, NewMemory())
	})

	t.Run("callers keep their own maps", func(t *testing.T) {
		ctx := context.Background()
		m := NewMemory()
		w := map[string]float64{"score": 1}
		require.NoError(t, m.WriteWeights(ctx, "k", w))
		w["score"] = 99

		got, err := m.ReadWeights(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, 1.0, got["score"])
		got["score"] = 42

		again, err := m.ReadWeights(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, 1.0, again["score"])
	})
}

func TestFile(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		f, err := NewFile(filepath.Join(t.TempDir(), "weights"))
		require.NoError(t, err)
		roundTrip(t, f)
	})

	t.Run("keys with separators", func(t *testing.T) {
		ctx := context.Background()
		dir := t.TempDir()
		f, err := NewFile(dir)
		require.NoError(t, err)
		require.NoError(t, f.WriteWeights(ctx, "q learner/adv", map[string]float64{"score": 1}))
		require.FileExists(t, filepath.Join(dir, "q_learner_adv.json"))
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := NewFile("")
		require.Error(t, err)
	})
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.db")

	t.Run("round trip", func(t *testing.T) {
		s, err := OpenSQLite(path)
		require.NoError(t, err)
		defer s.Close()
		roundTrip(t, s)
	})

	t.Run("weights survive reopening", func(t *testing.T) {
		ctx := context.Background()
		s, err := OpenSQLite(path)
		require.NoError(t, err)
		require.NoError(t, s.WriteWeights(ctx, "kept", map[string]float64{"in lead": 0.5}))
		require.NoError(t, s.Close())

		s, err = OpenSQLite(path)
		require.NoError(t, err)
		defer s.Close()
		got, err := s.ReadWeights(ctx, "kept")
		require.NoError(t, err)
		require.Equal(t, map[string]float64{"in lead": 0.5}, got)
	})
}

func TestOpen(t *testing.T) {
	st, err := Open("memory", "")
	require.NoError(t, err)
	require.IsType(t, &Memory{}, st)

	st, err = Open("sqlite", filepath.Join(t.TempDir(), "w.db"))
	require.NoError(t, err)
	require.IsType(t, &SQL{}, st)
	require.NoError(t, st.Close())

	_, err = Open("carrier pigeon", "")
	require.Error(t, err)
}

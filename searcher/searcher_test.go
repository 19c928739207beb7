package searcher

import (
	"testing"

	"catan/eval"
	"catan/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newGame(t *testing.T) *game.State {
	t.Helper()
	s, err := game.NewGame([]string{"p0", "p1", "p2", "p3"}, nil)
	require.NoError(t, err)
	for _, seat := range []int{0, 1, 2, 3, 3, 2, 1, 0} {
		for step := 0; step < 2; step++ {
			options := s.PossibleActions(seat, true)
			require.NotEmpty(t, options)
			a := options[0].Candidates[0].Actions()[0]
			require.NoError(t, s.ApplyMove(seat, game.Move{a}, true))
		}
	}
	return s
}

func randomWeights(seed uint64) eval.Weights {
	return eval.InitRandom(eval.BasicSchema, rand.New(rand.NewSource(seed)))
}

func TestGreedyPlan(t *testing.T) {
	s := newGame(t)
	s.Players[0].Resources = game.Resources{game.Brick: 2, game.Wood: 2}
	target := game.NewEdge(game.NodeID{Row: 1, Col: 6}, game.NodeID{Row: 1, Col: 7})
	extension := game.NewEdge(game.NodeID{Row: 1, Col: 7}, game.NodeID{Row: 1, Col: 8})

	t.Run("keeps the best target applied between units", func(t *testing.T) {
		before := s.Copy()
		// reward the target edge and anything extending from it
		value := func(s *game.State, seat int) float64 {
			v := 0.0
			if s.RoadOwner(target) == seat {
				v += 10
			}
			if s.RoadOwner(extension) == seat {
				v += 5
			}
			return v
		}
		g := NewGreedy(value)
		option := game.Option{Candidates: []game.Candidate{{Kind: game.PlaceRoad, Count: 2, Edges: append(s.RoadSites(0), extension)}}}
		move, v := g.Plan(s, 0, option)
		require.Equal(t, game.Move{
			{Kind: game.PlaceRoad, Edge: target},
			{Kind: game.PlaceRoad, Edge: extension},
		}, move, "Second road should only be legal after the first")
		require.Equal(t, 15.0, v)
		require.Equal(t, before, s, "Plan should rewind the state")
	})

	t.Run("first target wins ties", func(t *testing.T) {
		g := NewGreedy(func(*game.State, int) float64 { return 0 })
		option := s.PossibleActions(0, false)[0]
		move, _ := g.Plan(s, 0, option)
		require.Equal(t, option.Candidates[0].Actions()[0], move[0])
	})

	t.Run("first option wins ties", func(t *testing.T) {
		g := NewGreedy(func(*game.State, int) float64 { return 0 })
		options := s.PossibleActions(0, false)
		require.Greater(t, len(options), 1)
		want, _ := g.Plan(s, 0, options[0])
		move, v, ok := g.Best(s, 0)
		require.True(t, ok)
		require.Zero(t, v)
		require.Equal(t, want, move)
	})

	t.Run("a panicking evaluation still rewinds", func(t *testing.T) {
		before := s.Copy()
		g := NewGreedy(func(*game.State, int) float64 { panic("boom") })
		require.Panics(t, func() { g.Plan(s, 0, s.PossibleActions(0, false)[0]) })
		require.Equal(t, before, s)
		require.Zero(t, s.Depth())
	})

	t.Run("no options", func(t *testing.T) {
		s := newGame(t)
		s.Players[0].Resources = game.Resources{}
		move, _, ok := NewGreedy(Linear(eval.Basic, randomWeights(1))).Search(s, 0)
		require.False(t, ok)
		require.Nil(t, move)
	})
}

func TestDevCardPurchase(t *testing.T) {
	score := func(s *game.State, seat int) float64 { return float64(s.Players[seat].Score) }
	withDeck := func(t *testing.T, deck ...game.DevCard) *game.State {
		s := newGame(t)
		s.Players[0].Resources = game.Resources{game.Ore: 1, game.Wool: 1, game.Grain: 1}
		s.Deck = deck
		return s
	}
	orders := [][]game.DevCard{
		{game.Knight, game.Knight, game.Knight, game.VictoryPoint},
		{game.VictoryPoint, game.Knight, game.Knight, game.Knight},
		{game.Knight, game.VictoryPoint, game.Knight, game.Knight},
	}

	t.Run("greedy values the expected draw", func(t *testing.T) {
		for _, deck := range orders {
			s := withDeck(t, deck...)
			before := s.Copy()
			base := score(s, 0)
			move, v, ok := NewGreedy(score).Search(s, 0)
			require.True(t, ok)
			require.Equal(t, game.Move{{Kind: game.BuyDevCard}}, move)
			require.InDelta(t, base+0.25, v, 1e-9, "deck %v", deck)
			require.Equal(t, before, s)
		}
	})

	t.Run("lookahead ignores the deck order", func(t *testing.T) {
		var values []float64
		for _, deck := range orders {
			s := withDeck(t, deck...)
			for _, p := range s.Players[1:] {
				p.Resources = game.Resources{2, 2, 2, 2, 2}
			}
			before := s.Copy()
			_, v, ok := NewExpectimax(score, WithDepth(1)).Search(s, 0)
			require.True(t, ok)
			require.Equal(t, before, s)
			values = append(values, v)
		}
		for _, v := range values[1:] {
			require.InDelta(t, values[0], v, 1e-9)
		}
	})
}

func TestExpectimax(t *testing.T) {
	rich := func(t *testing.T) *game.State {
		s := newGame(t)
		for _, p := range s.Players {
			p.Resources = game.Resources{2, 3, 3, 2, 2}
		}
		return s
	}

	t.Run("depth zero matches greedy", func(t *testing.T) {
		for seed := uint64(1); seed <= 5; seed++ {
			s := rich(t)
			w := randomWeights(seed)
			gMove, gValue, gOK := NewGreedy(Linear(eval.Basic, w)).Search(s, 0)
			eMove, eValue, eOK := NewExpectimax(Linear(eval.Basic, w), WithDepth(0)).Search(s, 0)
			require.True(t, gOK)
			require.Equal(t, gOK, eOK)
			require.Equal(t, gMove, eMove, "seed %d", seed)
			require.InDelta(t, gValue, eValue, 1e-9)
		}
	})

	t.Run("lookahead restores the state", func(t *testing.T) {
		s := rich(t)
		before := s.Copy()
		e := NewExpectimax(Linear(eval.Adversarial, eval.InitRandom(eval.AdversarialSchema, rand.New(rand.NewSource(3)))), WithDepth(1), WithMetrics())
		move, _, ok := e.Search(s, 2)
		require.True(t, ok)
		require.NotEmpty(t, move)
		require.Equal(t, before, s)

		m := e.Metrics()
		require.Equal(t, "expectimax", m.Strategy)
		require.Equal(t, 1, m.Depth)
		require.Equal(t, len(s.PossibleActions(2, false)), m.Options)
		require.Greater(t, m.Evaluations, m.Options)
		require.Greater(t, m.Applies, 0)

		require.NoError(t, s.ApplyMove(2, move, false), "Chosen move should be legal")
	})

	t.Run("replies change the outcome", func(t *testing.T) {
		s := rich(t)
		// seat 0 loses a point for every opponent road
		value := func(s *game.State, seat int) float64 {
			if seat != 0 {
				return float64(len(s.Players[seat].Roads))
			}
			v := 0.0
			for _, p := range s.Players[1:] {
				v -= float64(len(p.Roads))
			}
			return v
		}
		_, gv, _ := NewGreedy(value).Search(s, 0)
		_, dv, _ := NewExpectimax(value, WithDepth(1)).Search(s, 0)
		require.Less(t, dv, gv, "Opponents should be predicted to build roads")
	})
}

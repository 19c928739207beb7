package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPossibleActions(t *testing.T) {
	t.Run("nothing affordable yields no options", func(t *testing.T) {
		s := newTestGame(t)
		playSetup(t, s)
		s.Players[0].Resources = Resources{}
		require.Empty(t, s.PossibleActions(0, false))
	})

	t.Run("singles come before bundles and exchanges", func(t *testing.T) {
		s := newTestGame(t)
		playSetup(t, s)
		p := s.Players[0]
		p.Resources = Resources{Brick: 2, Wood: 2, Ore: 1, Wool: 1, Grain: 1}

		options := s.PossibleActions(0, false)
		require.Len(t, options[0].Candidates, 1)
		require.Equal(t, PlaceRoad, options[0].Candidates[0].Kind)
		require.Equal(t, 2, options[0].Candidates[0].Count, "Two roads should be affordable")
		require.Equal(t, BuyDevCard, options[1].Candidates[0].Kind)

		bundle := options[2]
		require.Len(t, bundle.Candidates, 2)
		require.Equal(t, 2, bundle.Units())
		for _, c := range bundle.Candidates {
			require.Equal(t, 1, c.Count)
		}
		require.Len(t, options, 3, "Too few cards for any exchange")
	})

	t.Run("bundles must be jointly affordable", func(t *testing.T) {
		s := newTestGame(t)
		playSetup(t, s)
		s.Players[0].Resources = Resources{Ore: 3, Grain: 2, Wool: 1}
		options := s.PossibleActions(0, false)
		require.Equal(t, PlaceCity, options[0].Candidates[0].Kind)
		require.Equal(t, BuyDevCard, options[1].Candidates[0].Kind)
		for _, o := range options {
			require.Len(t, o.Candidates, 1, "City and dev card together cost more than the hand")
		}
	})

	t.Run("free roads leave the hand for other builds", func(t *testing.T) {
		s := newTestGame(t)
		playSetup(t, s)
		p := s.Players[0]
		p.Resources = Resources{Ore: 1, Wool: 1, Grain: 1}
		p.FreeRoads = 2
		options := s.PossibleActions(0, false)
		require.Len(t, options, 3)
		require.Equal(t, 2, options[0].Candidates[0].Count)
		require.Len(t, options[2].Candidates, 2)
	})

	t.Run("exchanges respect rates", func(t *testing.T) {
		s := newTestGame(t)
		playSetup(t, s)
		p := s.Players[0]
		p.Resources = Resources{Wool: p.Rates[Wool]}
		options := s.PossibleActions(0, false)
		require.Len(t, options, NumResources-1)
		for _, o := range options {
			c := o.Candidates[0]
			require.Equal(t, Exchange, c.Kind)
			require.Equal(t, Wool, c.Give)
			require.NotEqual(t, Wool, c.Get)
		}
	})

	t.Run("road sites stop at opponent pieces", func(t *testing.T) {
		s := newTestGame(t)
		require.NoError(t, s.ApplyMove(0, Move{{Kind: PlaceSettlement, Node: NodeID{0, 0}}}, true))
		require.NoError(t, s.ApplyMove(1, Move{{Kind: PlaceSettlement, Node: NodeID{0, 2}}}, true))
		require.NoError(t, s.ApplyMove(0, Move{{Kind: PlaceRoad, Edge: NewEdge(NodeID{0, 0}, NodeID{0, 1})}}, true))

		s.Players[0].Resources = Resources{Brick: 1, Wood: 1}
		require.NoError(t, s.ApplyMove(0, Move{{Kind: PlaceRoad, Edge: NewEdge(NodeID{0, 1}, NodeID{0, 2})}}, false))
		for _, e := range s.RoadSites(0) {
			require.False(t, e.Touches(NodeID{0, 3}), "Roads should not pass through %v", NodeID{0, 2})
			require.False(t, e.Touches(NodeID{1, 3}))
		}
		require.Empty(t, s.SettlementSites(0, false))
	})
}

func TestDice(t *testing.T) {
	t.Run("probabilities", func(t *testing.T) {
		total := 0.0
		for n := 2; n <= 12; n++ {
			total += RollProbability(n)
		}
		require.InDelta(t, 1.0, total, 1e-12)
		require.InDelta(t, 5.0/36, RollProbability(6), 1e-12)
		require.InDelta(t, 6.0/36, RollProbability(7), 1e-12)
		require.Zero(t, RollProbability(13))
	})

	t.Run("production skips the robber", func(t *testing.T) {
		s := newTestGame(t)
		require.NoError(t, s.ApplyMove(0, Move{{Kind: PlaceSettlement, Node: NodeID{1, 2}}}, true))
		s.Players[0].Resources = Resources{}

		gains := s.Produce(6)
		require.Equal(t, Resources{Brick: 1}, gains[0])
		require.Equal(t, Resources{Brick: 1}, s.Players[0].Resources)

		require.NoError(t, s.MoveRobber(TileID{1, 3}))
		gains = s.Produce(6)
		require.Equal(t, Resources{}, gains[0])
		require.ErrorIs(t, s.MoveRobber(TileID{1, 3}), ErrIllegalPlacement)
		require.Equal(t, []int{0}, s.RobberVictims(TileID{1, 3}, 1))
		require.Empty(t, s.RobberVictims(TileID{1, 3}, 0))
	})

	t.Run("discard and steal", func(t *testing.T) {
		s := newTestGame(t)
		s.Players[0].Resources = Resources{Ore: 1}
		require.ErrorIs(t, s.Discard(0, Wool), ErrInsufficientResources)
		require.NoError(t, s.Discard(0, Ore))
		require.Equal(t, 1, s.Players[0].CardsDiscarded)

		s.Players[1].Resources = Resources{Grain: 1}
		r, ok := s.Steal(0, 1, newRand(1))
		require.True(t, ok)
		require.Equal(t, Grain, r)
		require.Equal(t, Resources{Grain: 1}, s.Players[0].Resources)
		_, ok = s.Steal(0, 1, newRand(1))
		require.False(t, ok)
	})

	t.Run("end of turn", func(t *testing.T) {
		s := newTestGame(t)
		p := s.Players[0]
		p.NewDevCards[Knight] = 1
		p.FreeRoads = 1
		p.Resources = Resources{Ore: 8}
		s.EndTurn(0)
		require.Equal(t, 1, p.DevCards[Knight])
		require.Equal(t, DevCards{}, p.NewDevCards)
		require.Zero(t, p.FreeRoads)
		require.Equal(t, 1, p.TurnsOverLimit)
	})
}

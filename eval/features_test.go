package eval

import (
	"testing"

	"catan/game"

	"github.com/stretchr/testify/require"
)

func newState(t *testing.T, tiles []game.Tile) *game.State {
	t.Helper()
	players := make([]*game.Player, 4)
	for i := range players {
		p, err := game.NewPlayer(i, "p", "red")
		require.NoError(t, err)
		players[i] = p
	}
	s, err := game.NewState(tiles, players, nil)
	require.NoError(t, err)
	return s
}

func place(t *testing.T, s *game.State, seat int, m game.Move, setup bool) {
	t.Helper()
	require.NoError(t, s.ApplyMove(seat, m, setup))
}

func TestExpectedIncome(t *testing.T) {
	// (2,4) touches brick 6, wood 8 and a desert carrying a 3
	tiles := game.StandardLayout()
	for i := range tiles {
		switch tiles[i].ID {
		case game.TileID{Row: 2, Col: 3}:
			tiles[i].Value = 8
		case game.TileID{Row: 2, Col: 5}:
			tiles[i].Value = 3
		}
	}
	s := newState(t, tiles)
	node := game.NodeID{Row: 2, Col: 4}
	place(t, s, 0, game.Move{{Kind: game.PlaceSettlement, Node: node}}, true)

	t.Run("settlement", func(t *testing.T) {
		income := ExpectedIncome(s, 0)
		require.InDelta(t, 5.0/36, income[game.Brick], 1e-12)
		require.InDelta(t, 5.0/36, income[game.Wood], 1e-12)
		total := 0.0
		for _, x := range income {
			total += x
		}
		require.InDelta(t, 10.0/36, total, 1e-12, "Desert should add nothing")

		v := Basic.Extract(s, 0)
		require.InDelta(t, 5.0/36, v.Values[BrickIncome], 1e-12)
		require.Equal(t, 2.0, v.Values[AccessibleResources])
	})

	t.Run("city doubles", func(t *testing.T) {
		s.Players[0].Resources = game.Resources{game.Ore: 3, game.Grain: 2}
		j := game.NewJournal(s)
		defer j.Rewind()
		require.NoError(t, j.Apply(0, game.Action{Kind: game.PlaceCity, Node: node}, false))
		income := ExpectedIncome(s, 0)
		require.InDelta(t, 10.0/36, income[game.Brick], 1e-12)
		require.InDelta(t, 10.0/36, income[game.Wood], 1e-12)
	})
}

func TestBaseFeatures(t *testing.T) {
	s := newState(t, game.StandardLayout())

	t.Run("empty hand", func(t *testing.T) {
		v := Basic.Extract(s, 0)
		require.Zero(t, v.Values[RoadsPerSettlement], "No settlements should give a zero ratio")
		require.Zero(t, v.Values[CitiesPerSettlement])
		require.Zero(t, v.Values[ResourceSpread])
		require.Equal(t, 100.0, v.Values[SquaredDistance])
		require.Zero(t, v.Values[HasWon])
	})

	t.Run("after opening", func(t *testing.T) {
		place(t, s, 0, game.Move{{Kind: game.PlaceSettlement, Node: game.NodeID{Row: 1, Col: 2}}}, true)
		place(t, s, 0, game.Move{{Kind: game.PlaceRoad, Edge: game.NewEdge(game.NodeID{Row: 1, Col: 2}, game.NodeID{Row: 2, Col: 3})}}, true)
		v := Basic.Extract(s, 0)
		require.Equal(t, 1.0, v.Values[Score])
		require.Equal(t, 1.0, v.Values[NumSettlements])
		require.Equal(t, 1.0, v.Values[NumRoads])
		require.Equal(t, 1.0, v.Values[LongestRoad])
		require.Equal(t, 1.0, v.Values[RoadsPerSettlement])
		require.Equal(t, 81.0, v.Values[SquaredDistance])
		require.Equal(t, 3.0, v.Values[AccessibleResources])
		require.Greater(t, v.Values[ResourceSpread], 0.0)
	})

	t.Run("played cards", func(t *testing.T) {
		s.Players[0].PlayedDevCards[game.Knight] = 2
		s.Players[0].PlayedDevCards[game.Monopoly] = 1
		defer func() { s.Players[0].PlayedDevCards = game.DevCards{} }()
		v := Basic.Extract(s, 0)
		require.Equal(t, 3.0, v.Values[DevCardsPlayed])
		require.Equal(t, 2.0, v.Values[PlayedKnight])
		require.Equal(t, 1.0, v.Get("played monopoly"))
	})
}

func TestAdversarialFeatures(t *testing.T) {
	s := newState(t, game.StandardLayout())
	place(t, s, 3, game.Move{{Kind: game.PlaceSettlement, Node: game.NodeID{Row: 0, Col: 0}}}, true)
	s.Players[0].DevCards[game.Knight] = 2

	v := Adversarial.Extract(s, 2)
	require.Equal(t, AdversarialSchema, v.Schema())
	require.Equal(t, 1.0, v.Get("offset"))
	require.Equal(t, 1.0, v.Get("opp1 score"), "Slot 1 of seat 2 should be seat 3")
	require.Equal(t, 1.0, v.Get("opp1 settlements"))
	require.Equal(t, 2.0, v.Get("opp2 dev cards"))
	require.Zero(t, v.Get("opp3 score"))
	require.Equal(t, int(NumBase)+1+Opponents*int(NumSlotFeatures), AdversarialSchema.Len())
}

func TestPositionalFeatures(t *testing.T) {
	s := newState(t, game.StandardLayout())
	place(t, s, 0, game.Move{{Kind: game.PlaceSettlement, Node: game.NodeID{Row: 0, Col: 3}}}, true)

	v := Positional.Extract(s, 0)
	require.Equal(t, 1.0, v.Get("wool 2:1 port"))
	require.Zero(t, v.Get("ore 2:1 port"))
	require.Zero(t, v.Get("any port"))
	require.Equal(t, 1.0, v.Get("in lead"))
	require.Equal(t, 1.0, v.Get("self city sites"))
	require.Equal(t, 2.0, v.Get("self road sites"), "Top row corner has two sides")
	require.Zero(t, v.Get("self settlement sites"), "No roads yet")
	require.Zero(t, v.Get("opp1 city sites"))

	v = Positional.Extract(s, 1)
	require.Zero(t, v.Get("in lead"))
	require.Equal(t, 1.0, v.Get("opp3 city sites"), "Seat 0 is three places after seat 1")
}

func TestExtractorByName(t *testing.T) {
	for name, want := range map[string]Extractor{"basic": Basic, "": Basic, "Adversarial": Adversarial, "positional": Positional} {
		got, err := ExtractorByName(name)
		require.NoError(t, err)
		require.Equal(t, want.Schema(), got.Schema())
	}
	_, err := ExtractorByName("neural")
	require.Error(t, err)
}

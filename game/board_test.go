package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoardTopology(t *testing.T) {
	b := NewBoard()

	t.Run("neighbours are symmetric", func(t *testing.T) {
		for _, n := range b.Nodes() {
			for _, nb := range n.Neighbors {
				require.Contains(t, b.Node(nb).Neighbors, n.ID, "%v lists %v but not the reverse", n.ID, nb)
			}
		}
	})

	t.Run("counts", func(t *testing.T) {
		require.Equal(t, 54, b.NumNodes(), "Board should have 54 intersections")
		edges := map[Edge]bool{}
		for _, n := range b.Nodes() {
			require.LessOrEqual(t, len(n.Neighbors), 3)
			require.GreaterOrEqual(t, len(n.Neighbors), 2)
			for _, nb := range n.Neighbors {
				edges[NewEdge(n.ID, nb)] = true
			}
		}
		require.Len(t, edges, 72, "Board should have 72 edges")
	})

	t.Run("out of range coordinates are dropped", func(t *testing.T) {
		require.Equal(t, []NodeID{{0, 1}, {1, 1}}, b.Neighbors(NodeID{0, 0}))
		require.False(t, b.InBounds(NodeID{0, 7}))
		require.False(t, b.Adjacent(NodeID{0, 6}, NodeID{0, 7}))
		require.Panics(t, func() { b.Node(NodeID{6, 0}) }, "Off-board node lookup should panic")
	})

	t.Run("ports", func(t *testing.T) {
		counts := map[Port]int{}
		for _, n := range b.Nodes() {
			counts[n.Port]++
		}
		require.Equal(t, 8, counts[AnyPort])
		for _, r := range AllResources {
			require.Equal(t, 2, counts[PortFor(r)], "%v port should cover two nodes", r)
		}
		require.Equal(t, WoolPort, b.Node(NodeID{0, 3}).Port)
	})

	t.Run("tile corners form a ring on the board", func(t *testing.T) {
		for _, id := range TilePositions {
			corners := TileNodes(id)
			sides := 0
			for i, a := range corners {
				require.True(t, b.InBounds(a))
				for _, c := range corners[i+1:] {
					if b.Adjacent(a, c) {
						sides++
					}
				}
			}
			require.Equal(t, 6, sides, "%v corners should share six sides", id)
		}
	})

	t.Run("attaching tiles links nodes once", func(t *testing.T) {
		b := NewBoard()
		require.NoError(t, b.AttachTiles(StandardLayout()))
		require.Len(t, b.Tiles(), 19)
		require.ElementsMatch(t, []TileID{{0, 1}, {1, 1}, {1, 3}}, b.Node(NodeID{1, 2}).Tiles)
		require.Equal(t, Desert, b.Tile(TileID{2, 5}).Resource)
		require.True(t, b.Tile(TileID{2, 5}).Robber)
		require.Error(t, b.AttachTiles(StandardLayout()), "Tiles should attach only once")
	})
}

func TestShuffledLayout(t *testing.T) {
	tiles := ShuffledLayout(newRand(7))
	kinds := map[Resource]int{}
	robbers := 0
	for _, tile := range tiles {
		kinds[tile.Resource]++
		if tile.Robber {
			robbers++
			require.Equal(t, Desert, tile.Resource)
			require.Equal(t, DesertValue, tile.Value)
		} else {
			require.NotEqual(t, 7, tile.Value)
		}
	}
	require.Equal(t, 1, robbers)
	require.Equal(t, map[Resource]int{Ore: 3, Brick: 3, Wood: 4, Wool: 4, Grain: 4, Desert: 1}, kinds)
}

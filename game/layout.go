package game

import (
	"golang.org/x/exp/rand"
)

// DesertValue is the number token given to the desert. The desert never
// produces whatever its value.
const DesertValue = 7

// TilePositions lists the peak coordinates of the 19 tiles, row by row.
var TilePositions = []TileID{
	{0, 1}, {0, 3}, {0, 5},
	{1, 1}, {1, 3}, {1, 5}, {1, 7},
	{2, 1}, {2, 3}, {2, 5}, {2, 7}, {2, 9},
	{3, 2}, {3, 4}, {3, 6}, {3, 8},
	{4, 2}, {4, 4}, {4, 6},
}

// StandardLayout is the fixed beginner arrangement.
func StandardLayout() []Tile {
	kinds := []struct {
		r Resource
		v int
	}{
		{Ore, 10}, {Wool, 2}, {Wood, 9},
		{Grain, 12}, {Brick, 6}, {Wool, 4}, {Brick, 10},
		{Grain, 9}, {Wood, 11}, {Desert, DesertValue}, {Wood, 3}, {Ore, 8},
		{Wood, 8}, {Ore, 3}, {Grain, 4}, {Wool, 5},
		{Brick, 5}, {Grain, 6}, {Wool, 11},
	}
	tiles := make([]Tile, len(TilePositions))
	for i, id := range TilePositions {
		tiles[i] = Tile{ID: id, Resource: kinds[i].r, Value: kinds[i].v, Robber: kinds[i].r == Desert}
	}
	return tiles
}

// ShuffledLayout deals the standard resource kinds and number tokens to
// random positions. The desert always gets DesertValue and the robber.
func ShuffledLayout(rng *rand.Rand) []Tile {
	kinds := []Resource{
		Ore, Ore, Ore,
		Brick, Brick, Brick,
		Wood, Wood, Wood, Wood,
		Wool, Wool, Wool, Wool,
		Grain, Grain, Grain, Grain,
		Desert,
	}
	values := []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}
	rng.Shuffle(len(kinds), func(i, j int) { kinds[i], kinds[j] = kinds[j], kinds[i] })
	rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

	tiles := make([]Tile, len(TilePositions))
	next := 0
	for i, id := range TilePositions {
		t := Tile{ID: id, Resource: kinds[i]}
		if t.Resource == Desert {
			t.Value = DesertValue
			t.Robber = true
		} else {
			t.Value = values[next]
			next++
		}
		tiles[i] = t
	}
	return tiles
}

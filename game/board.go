package game

import (
	"errors"
	"fmt"

	"catan/utils"
)

// rowSizes is the number of intersections on each of the six node rows.
var rowSizes = []int{7, 9, 11, 11, 9, 7}

// NodeID locates an intersection by row and column.
type NodeID struct {
	Row int
	Col int
}

func (n NodeID) String() string {
	return fmt.Sprintf("(%d, %d)", n.Row, n.Col)
}

// Less orders nodes row-major.
func (n NodeID) Less(o NodeID) bool {
	if n.Row != o.Row {
		return n.Row < o.Row
	}
	return n.Col < o.Col
}

// Piece is what occupies an intersection.
type Piece int

const (
	NoPiece Piece = iota
	Settlement
	City
)

func (p Piece) String() string {
	switch p {
	case Settlement:
		return "settlement"
	case City:
		return "city"
	default:
		return "none"
	}
}

// Port is the trading harbour attached to an intersection, if any.
type Port int

const (
	NoPort Port = iota
	AnyPort
	OrePort
	BrickPort
	WoodPort
	WoolPort
	GrainPort
)

// PortFor returns the 2:1 port of a resource.
func PortFor(r Resource) Port {
	return OrePort + Port(r)
}

// Resource returns the resource a specific port trades, false for generic ports.
func (p Port) Resource() (Resource, bool) {
	if p >= OrePort && p <= GrainPort {
		return Resource(p - OrePort), true
	}
	return 0, false
}

// Node is a board intersection. Neighbors, Tiles and Port are fixed once the
// board is built; only Piece and Owner change during a game.
type Node struct {
	ID        NodeID
	Index     int
	Neighbors []NodeID
	Tiles     []TileID
	Port      Port
	Piece     Piece
	Owner     int // seat of the occupying piece, -1 when empty
}

// Occupied reports whether a settlement or city stands on the node.
func (n *Node) Occupied() bool {
	return n.Piece != NoPiece
}

// Edge is an unordered pair of adjacent intersections, stored with A < B.
type Edge struct {
	A NodeID
	B NodeID
}

// NewEdge normalizes the endpoint order.
func NewEdge(a, b NodeID) Edge {
	if b.Less(a) {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

func (e Edge) String() string {
	return fmt.Sprintf("%v-%v", e.A, e.B)
}

// Touches reports whether n is an endpoint of e.
func (e Edge) Touches(n NodeID) bool {
	return e.A == n || e.B == n
}

// Board is the static hex grid: intersections, tiles and ports.
type Board struct {
	rows  [][]*Node
	nodes []*Node
	tiles []*Tile
	byID  map[TileID]*Tile
}

// NewBoard builds every intersection, links neighbours and places the ports.
// Tiles are attached separately with AttachTiles.
func NewBoard() *Board {
	b := &Board{byID: make(map[TileID]*Tile)}
	for r, size := range rowSizes {
		row := make([]*Node, size)
		for c := range row {
			n := &Node{ID: NodeID{r, c}, Index: len(b.nodes), Owner: -1}
			row[c] = n
			b.nodes = append(b.nodes, n)
		}
		b.rows = append(b.rows, row)
	}
	for _, n := range b.nodes {
		n.Neighbors = b.neighborCoords(n.ID)
	}
	b.initPorts()
	return b
}

// InBounds checks if a coordinate names a real intersection.
func (b *Board) InBounds(id NodeID) bool {
	return id.Row >= 0 && id.Row < len(b.rows) && id.Col >= 0 && id.Col < len(b.rows[id.Row])
}

// Node returns the intersection at id. Asking for a coordinate off the board is
// a programming error.
func (b *Board) Node(id NodeID) *Node {
	if !b.InBounds(id) {
		panic(fmt.Sprintf("game: node %v is off the board", id))
	}
	return b.rows[id.Row][id.Col]
}

// Nodes returns every intersection in row-major order.
func (b *Board) Nodes() []*Node {
	return b.nodes
}

// NumNodes is the number of intersections.
func (b *Board) NumNodes() int {
	return len(b.nodes)
}

// Neighbors returns the topological neighbours of id.
func (b *Board) Neighbors(id NodeID) []NodeID {
	return b.Node(id).Neighbors
}

// Adjacent checks if two intersections share a side.
func (b *Board) Adjacent(a, c NodeID) bool {
	if !b.InBounds(a) || !b.InBounds(c) {
		return false
	}
	return utils.Contains(b.Node(a).Neighbors, c)
}

// neighborCoords applies the row-band adjacency rules. Row 0-1, row 2, row 3
// and row 4-5 each alternate between two patterns by column parity.
func (b *Board) neighborCoords(id NodeID) []NodeID {
	r, c := id.Row, id.Col
	even := c%2 == 0
	var candidates []NodeID
	switch {
	case r < 2 && even:
		candidates = []NodeID{{r, c - 1}, {r, c + 1}, {r + 1, c + 1}}
	case r < 2:
		candidates = []NodeID{{r - 1, c - 1}, {r, c - 1}, {r, c + 1}}
	case r == 2 && even:
		candidates = []NodeID{{r, c - 1}, {r, c + 1}, {r + 1, c}}
	case r == 2:
		candidates = []NodeID{{r, c - 1}, {r, c + 1}, {r - 1, c - 1}}
	case r == 3 && even:
		candidates = []NodeID{{r, c - 1}, {r, c + 1}, {r - 1, c}}
	case r == 3:
		candidates = []NodeID{{r, c + 1}, {r, c - 1}, {r + 1, c - 1}}
	case even:
		candidates = []NodeID{{r, c - 1}, {r, c + 1}, {r - 1, c + 1}}
	default:
		candidates = []NodeID{{r + 1, c - 1}, {r, c - 1}, {r, c + 1}}
	}

	// Perimeter intersections simply have fewer neighbours
	neighbors := make([]NodeID, 0, len(candidates))
	for _, n := range candidates {
		if b.InBounds(n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

func (b *Board) initPorts() {
	ports := []struct {
		port  Port
		nodes []NodeID
	}{
		{AnyPort, []NodeID{{0, 0}, {0, 1}}},
		{WoolPort, []NodeID{{0, 3}, {0, 4}}},
		{AnyPort, []NodeID{{1, 7}, {1, 8}}},
		{OrePort, []NodeID{{1, 0}, {2, 0}}},
		{AnyPort, []NodeID{{2, 1}, {3, 1}}},
		{GrainPort, []NodeID{{3, 0}, {4, 0}}},
		{BrickPort, []NodeID{{4, 7}, {4, 8}}},
		{AnyPort, []NodeID{{5, 0}, {5, 1}}},
		{WoodPort, []NodeID{{5, 3}, {5, 4}}},
	}
	for _, p := range ports {
		for _, id := range p.nodes {
			b.Node(id).Port = p.port
		}
	}
}

// TileID names a tile by the intersection at its peak.
type TileID struct {
	Row int
	Col int
}

func (t TileID) String() string {
	return fmt.Sprintf("tile(%d, %d)", t.Row, t.Col)
}

// Tile is a hex cell. Resource and Value never change once attached.
type Tile struct {
	ID       TileID
	Resource Resource
	Value    int
	Robber   bool
}

// TileNodes returns the six corners of a tile: three on its own row and three
// on the row below, shifted according to the tile's row band.
func TileNodes(id TileID) []NodeID {
	tr, tc := id.Row, id.Col
	br, bc := tr+1, tc
	switch {
	case tr < 2:
		bc = tc + 1
	case tr > 2:
		bc = tc - 1
	}
	return []NodeID{
		{tr, tc - 1}, {tr, tc}, {tr, tc + 1},
		{br, bc - 1}, {br, bc}, {br, bc + 1},
	}
}

// AttachTiles links every tile to its six corners. It may only be called once.
func (b *Board) AttachTiles(tiles []Tile) error {
	if len(b.tiles) > 0 {
		return errors.New("tiles already attached")
	}
	for i := range tiles {
		t := tiles[i]
		if _, dup := b.byID[t.ID]; dup {
			return fmt.Errorf("duplicate tile %v", t.ID)
		}
		corners := TileNodes(t.ID)
		for _, id := range corners {
			if !b.InBounds(id) {
				return fmt.Errorf("%v: corner %v is off the board", t.ID, id)
			}
		}
		tile := &t
		b.tiles = append(b.tiles, tile)
		b.byID[t.ID] = tile
		for _, id := range corners {
			n := b.Node(id)
			n.Tiles = append(n.Tiles, t.ID)
		}
	}
	return nil
}

// Tile returns the tile with the given id, or nil.
func (b *Board) Tile(id TileID) *Tile {
	return b.byID[id]
}

// Tiles returns all attached tiles in layout order.
func (b *Board) Tiles() []*Tile {
	return b.tiles
}

// Clone deep-copies occupancy and robber state. The fixed topology slices are
// shared since nothing mutates them.
func (b *Board) Clone() *Board {
	c := &Board{byID: make(map[TileID]*Tile, len(b.tiles))}
	for _, row := range b.rows {
		cr := make([]*Node, len(row))
		for i, n := range row {
			nn := *n
			cr[i] = &nn
			c.nodes = append(c.nodes, &nn)
		}
		c.rows = append(c.rows, cr)
	}
	for _, t := range b.tiles {
		tt := *t
		c.tiles = append(c.tiles, &tt)
		c.byID[tt.ID] = &tt
	}
	return c
}

// Package game holds the settlement board, the mutable game state and the
// reversible move layer that both real turns and search lookahead go through.
package game

import "errors"

var (
	ErrInvalidSeat           = errors.New("seat must be between 0 and 3")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrIllegalPlacement      = errors.New("illegal placement")
	ErrNoDevCards            = errors.New("no development card available")
)

// RobberNotifier is told whenever the robber lands on a new tile.
type RobberNotifier interface {
	RobberPlaced(tile TileID)
}

// NopNotifier ignores robber placements.
type NopNotifier struct{}

func (NopNotifier) RobberPlaced(TileID) {}

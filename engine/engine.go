// Package engine drives games between agents.
package engine

import "context"

type Engine interface {
	// Run plays a game till there's a winner or the turn cap is reached
	Run(ctx context.Context) (Result, error)
}

var _ Engine = (*Local)(nil)

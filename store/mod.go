// Package store persists agent weights as a feature name to weight mapping
// under a per-agent key.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no weights exist under a key.
var ErrNotFound = errors.New("weights not found")

// WeightStore reads and writes a key's full weight map. A write replaces
// whatever was stored under the key.
type WeightStore interface {
	ReadWeights(ctx context.Context, key string) (map[string]float64, error)
	WriteWeights(ctx context.Context, key string, weights map[string]float64) error
	Close() error
}

// Open selects a store by driver name. The dsn is a directory for "file", a
// database path for "sqlite", and a connection URL for "postgres" and
// "redis". "memory" ignores it.
func Open(driver, dsn string) (WeightStore, error) {
	switch strings.ToLower(driver) {
	case "", "memory":
		return NewMemory(), nil
	case "file":
		return NewFile(dsn)
	case "sqlite":
		return OpenSQLite(dsn)
	case "postgres":
		return OpenPostgres(dsn)
	case "redis":
		return OpenRedis(dsn)
	}
	return nil, fmt.Errorf("unknown store driver %q", driver)
}

func copyWeights(m map[string]float64) map[string]float64 {
	c := make(map[string]float64, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS weights (
  agent_key TEXT NOT NULL,
  feature TEXT NOT NULL,
  weight DOUBLE PRECISION NOT NULL,
  PRIMARY KEY (agent_key, feature)
);`

// SQL stores one row per key and feature. It serves both the sqlite and the
// postgres drivers; only the placeholder syntax differs.
type SQL struct {
	db       *sql.DB
	postgres bool
}

// OpenSQLite opens or creates a sqlite database file.
func OpenSQLite(path string) (*SQL, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite pragma %q: %w", p, err)
		}
	}
	return newSQL(db, false)
}

// OpenPostgres connects to a postgres database URL.
func OpenPostgres(databaseURL string) (*SQL, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(2)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return newSQL(db, true)
}

func newSQL(db *sql.DB, postgres bool) (*SQL, error) {
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create weights table: %w", err)
	}
	return &SQL{db: db, postgres: postgres}, nil
}

func (s *SQL) query(sqlite, postgres string) string {
	if s.postgres {
		return postgres
	}
	return sqlite
}

func (s *SQL) ReadWeights(ctx context.Context, key string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, s.query(
		`SELECT feature, weight FROM weights WHERE agent_key = ?`,
		`SELECT feature, weight FROM weights WHERE agent_key = $1`,
	), key)
	if err != nil {
		return nil, fmt.Errorf("query weights %q: %w", key, err)
	}
	defer rows.Close()

	w := make(map[string]float64)
	for rows.Next() {
		var feature string
		var weight float64
		if err := rows.Scan(&feature, &weight); err != nil {
			return nil, fmt.Errorf("scan weights %q: %w", key, err)
		}
		w[feature] = weight
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read weights %q: %w", key, err)
	}
	if len(w) == 0 {
		return nil, ErrNotFound
	}
	return w, nil
}

func (s *SQL) WriteWeights(ctx context.Context, key string, weights map[string]float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.query(
		`DELETE FROM weights WHERE agent_key = ?`,
		`DELETE FROM weights WHERE agent_key = $1`,
	), key); err != nil {
		return fmt.Errorf("clear weights %q: %w", key, err)
	}
	stmt, err := tx.PrepareContext(ctx, s.query(
		`INSERT INTO weights (agent_key, feature, weight) VALUES (?, ?, ?)`,
		`INSERT INTO weights (agent_key, feature, weight) VALUES ($1, $2, $3)`,
	))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for feature, weight := range weights {
		if _, err := stmt.ExecContext(ctx, key, feature, weight); err != nil {
			return fmt.Errorf("insert weight %q/%q: %w", key, feature, err)
		}
	}
	return tx.Commit()
}

func (s *SQL) Close() error {
	return s.db.Close()
}

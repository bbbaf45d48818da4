// Package storage persists sweep run summaries in SQLite. Uses the pure-Go
// modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"fire-ca/internal/sweep"
)

// Store manages the SQLite database connection for summary persistence.
type Store struct {
	db *sql.DB
}

// SummaryRow is one persisted run summary.
type SummaryRow struct {
	ID             int64
	Model          string
	L              int
	P              float64
	F              float64
	Steps          int
	Suppress       int
	OakRatio       float64
	PBurnOak       float64
	Spatial        bool
	ParamID        int
	RunID          int
	NumFires       int
	MeanSize       float64
	MaxSize        int
	RemainingTrees int
	CreatedAt      time.Time
}

// Open creates or opens a SQLite database at the given path. It creates the
// parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS run_summaries (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	model           TEXT NOT NULL,
	l               INTEGER NOT NULL,
	p               REAL NOT NULL,
	f               REAL NOT NULL,
	steps           INTEGER NOT NULL,
	suppress        INTEGER NOT NULL,
	oak_ratio       REAL NOT NULL,
	p_burn_oak      REAL NOT NULL,
	spatial         INTEGER NOT NULL,
	param_id        INTEGER NOT NULL,
	run_id          INTEGER NOT NULL,
	num_fires       INTEGER NOT NULL,
	mean_size       REAL NOT NULL,
	max_size        INTEGER NOT NULL,
	remaining_trees INTEGER NOT NULL,
	created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_summaries_model_param ON run_summaries(model, param_id);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("storage: migration failed: %w", err)
	}
	return nil
}

// SaveResult persists one sweep result and returns its row id.
func (s *Store) SaveResult(res sweep.Result) (int64, error) {
	p := res.Params
	out, err := s.db.Exec(`
INSERT INTO run_summaries
	(model, l, p, f, steps, suppress, oak_ratio, p_burn_oak, spatial,
	 param_id, run_id, num_fires, mean_size, max_size, remaining_trees)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Model, p.L, p.P, p.F, p.Steps, p.Suppress, p.OakRatio, p.PBurnOak, p.Spatial,
		p.ParamID, p.RunID, res.NumFires, res.MeanSize, res.MaxSize, res.RemainingTrees)
	if err != nil {
		return 0, fmt.Errorf("storage: insert summary: %w", err)
	}
	return out.LastInsertId()
}

// Summaries returns the persisted summaries for a model, newest first.
func (s *Store) Summaries(model string, limit int) ([]SummaryRow, error) {
	rows, err := s.db.Query(`
SELECT id, model, l, p, f, steps, suppress, oak_ratio, p_burn_oak, spatial,
       param_id, run_id, num_fires, mean_size, max_size, remaining_trees, created_at
FROM run_summaries
WHERE model = ?
ORDER BY id DESC
LIMIT ?`, model, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: query summaries: %w", err)
	}
	defer rows.Close()

	var out []SummaryRow
	for rows.Next() {
		var r SummaryRow
		if err := rows.Scan(&r.ID, &r.Model, &r.L, &r.P, &r.F, &r.Steps, &r.Suppress,
			&r.OakRatio, &r.PBurnOak, &r.Spatial, &r.ParamID, &r.RunID,
			&r.NumFires, &r.MeanSize, &r.MaxSize, &r.RemainingTrees, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("storage: scan summary: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

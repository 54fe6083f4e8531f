package perfgate

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS gate_history (
	id INT AUTO_INCREMENT PRIMARY KEY,
	run_date DATE NOT NULL,
	commit_hash VARCHAR(40) NOT NULL,
	frame_duration_p95 DOUBLE NOT NULL,
	recomposition_p95 DOUBLE NOT NULL,
	passed BOOL NOT NULL,
	UNIQUE KEY uniq_run (run_date, commit_hash)
)`

// HistoryEntry is one recorded gate outcome.
type HistoryEntry struct {
	Date             string
	Commit           string
	FrameDurationP95 float64
	RecompositionP95 float64
	Passed           bool
}

// HistoryStore persists gate outcomes in MySQL so regressions can be
// traced back to the run that introduced them.
type HistoryStore struct {
	db *sql.DB
}

// OpenHistory connects to MySQL with the given DSN.
func OpenHistory(dsn string) (*HistoryStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open mysql connection")
	}
	return &HistoryStore{db: db}, nil
}

// NewHistoryStore wraps an existing database handle.
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Init creates the history table when it does not exist yet.
func (h *HistoryStore) Init(ctx context.Context) error {
	_, err := h.db.ExecContext(ctx, historySchema)
	return errors.Wrap(err, "create gate_history table")
}

// Record inserts one gate outcome. Re-recording the same date and
// commit replaces the previous row.
func (h *HistoryStore) Record(ctx context.Context, e HistoryEntry) error {
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO gate_history
			(run_date, commit_hash, frame_duration_p95, recomposition_p95, passed)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			frame_duration_p95 = VALUES(frame_duration_p95),
			recomposition_p95 = VALUES(recomposition_p95),
			passed = VALUES(passed)`,
		e.Date, e.Commit, e.FrameDurationP95, e.RecompositionP95, e.Passed)
	return errors.Wrapf(err, "record gate outcome for %s_%s", e.Date, e.Commit)
}

// List returns the most recent outcomes, newest first.
func (h *HistoryStore) List(ctx context.Context, limit int) ([]HistoryEntry, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT run_date, commit_hash, frame_duration_p95, recomposition_p95, passed
		FROM gate_history
		ORDER BY run_date DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query gate history")
	}
	defer rows.Close()

	var res []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.Date, &e.Commit, &e.FrameDurationP95, &e.RecompositionP95, &e.Passed); err != nil {
			return nil, errors.Wrap(err, "scan gate history row")
		}
		res = append(res, e)
	}
	return res, errors.Wrap(rows.Err(), "iterate gate history rows")
}

// Close releases the underlying database handle.
func (h *HistoryStore) Close() error {
	return errors.Wrap(h.db.Close(), "close mysql connection")
}

package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"RoboAdvisor/internal/model"
)

const runsTable = "analysis_runs"

var historyColumns = []string{
	"id", "symbol", "recorded_at", "last_refreshed", "latest_close", "previous_close",
	"recent_high", "recent_low", "change_pct", "decision", "reason",
}

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.Logger) (*SQLiteRecorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			seq            INTEGER PRIMARY KEY AUTOINCREMENT,
			id             TEXT NOT NULL UNIQUE,
			symbol         TEXT NOT NULL,
			recorded_at    INTEGER NOT NULL,
			last_refreshed TEXT,
			latest_close   REAL,
			previous_close REAL,
			recent_high    REAL,
			recent_low     REAL,
			change_pct     REAL,
			decision       TEXT,
			reason         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_symbol ON analysis_runs(symbol, recorded_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(a *model.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recordedAt := a.RequestedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	_, err := sq.Insert(runsTable).
		Columns(historyColumns...).
		Values(
			uuid.NewString(), a.Symbol, recordedAt.Unix(), a.LastRefreshed,
			a.Latest.Close, a.Previous.Close, a.RecentHigh, a.RecentLow, a.ChangePct,
			string(a.Recommendation.Decision), a.Recommendation.Reason,
		).
		RunWith(r.db).
		Exec()
	if err != nil {
		return fmt.Errorf("insert analysis run: %w", err)
	}
	return nil
}

// History returns the most recent runs, newest first. An empty symbol matches all.
func (r *SQLiteRecorder) History(symbol string, limit int) ([]HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := sq.Select(historyColumns...).From(runsTable).OrderBy("seq DESC")
	if symbol != "" {
		q = q.Where(sq.Eq{"symbol": symbol})
	}
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	rows, err := q.RunWith(r.db).Query()
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var (
			e        HistoryEntry
			ts       int64
			decision string
		)
		if err := rows.Scan(&e.ID, &e.Symbol, &ts, &e.LastRefreshed, &e.LatestClose, &e.PreviousClose,
			&e.RecentHigh, &e.RecentLow, &e.ChangePct, &decision, &e.Reason); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.RecordedAt = time.Unix(ts, 0)
		e.Decision = model.Decision(decision)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}

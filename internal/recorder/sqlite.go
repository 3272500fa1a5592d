package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"TickerLens/internal/model"
)

// SQLiteRecorder persists the analysis history to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the server writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{
		db:     db,
		logger: log.With().Str("component", "recorder").Logger(),
	}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.logger.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			ticker       TEXT NOT NULL,
			verdict      TEXT NOT NULL,
			phase        TEXT NOT NULL,
			reason_count INTEGER NOT NULL,
			source       TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ts ON analyses(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ticker ON analyses(ticker)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(e *Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	res, err := r.db.Exec(`INSERT INTO analyses
		(timestamp, ticker, verdict, phase, reason_count, source)
		VALUES (?,?,?,?,?,?)`,
		e.CreatedAt.UnixMilli(), e.Ticker, string(e.Verdict), string(e.Phase),
		e.ReasonCount, string(e.Source),
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		e.ID = id
	}
	return nil
}

func (r *SQLiteRecorder) Recent(limit int) ([]Entry, error) {
	rows, err := r.db.Query(`SELECT id, timestamp, ticker, verdict, phase, reason_count, source
		FROM analyses ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e       Entry
			ts      int64
			verdict string
			phase   string
			source  string
		)
		if err := rows.Scan(&e.ID, &ts, &e.Ticker, &verdict, &phase, &e.ReasonCount, &source); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		e.CreatedAt = time.UnixMilli(ts)
		e.Verdict = model.Verdict(verdict)
		e.Phase = model.Phase(phase)
		e.Source = Source(source)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SQLiteRecorder) Prune(before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.Exec(`DELETE FROM analyses WHERE timestamp < ?`, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("prune analyses: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

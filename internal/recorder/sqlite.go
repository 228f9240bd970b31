package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists comparison history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the service writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS comparisons (
			id           TEXT PRIMARY KEY,
			requested_at INTEGER NOT NULL,
			start_date   TEXT NOT NULL,
			end_date     TEXT NOT NULL,
			series_a     TEXT NOT NULL,
			series_b     TEXT NOT NULL,
			a_low        REAL,
			a_high       REAL,
			a_mean       REAL,
			a_first_date TEXT,
			a_last_date  TEXT,
			b_low        REAL,
			b_high       REAL,
			b_mean       REAL,
			b_first_date TEXT,
			b_last_date  TEXT,
			rho          REAL,
			sample_size  INTEGER,
			message      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_comparisons_requested ON comparisons(requested_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) Record(rec *ComparisonRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO comparisons
		(id, requested_at, start_date, end_date, series_a, series_b,
		 a_low, a_high, a_mean, a_first_date, a_last_date,
		 b_low, b_high, b_mean, b_first_date, b_last_date,
		 rho, sample_size, message)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.ID, rec.RequestedAt.Unix(), rec.StartDate, rec.EndDate,
		rec.SeriesA, rec.SeriesB,
		rec.ALow, rec.AHigh, rec.AMean, rec.AFirstDate, rec.ALastDate,
		rec.BLow, rec.BHigh, rec.BMean, rec.BFirstDate, rec.BLastDate,
		rec.Rho, rec.SampleSize, rec.Message,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

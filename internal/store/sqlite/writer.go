// Package sqlite persists daily close history per ticker. It is the
// backing store the indicator server computes from when the frontend
// asks for a ticker rather than posting raw samples.
package sqlite

import (
	"database/sql"
	"fmt"
	"log"

	"stockdash/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// WriterConfig configures the SQLite writer.
type WriterConfig struct {
	DBPath string // path to SQLite database file, e.g. "data/history.db"
}

// Writer owns the write side of the history store.
type Writer struct {
	db *sql.DB
}

// DB returns the underlying sql.DB for health checks.
func (w *Writer) DB() *sql.DB { return w.db }

// New creates a new SQLite Writer, initializes the database with WAL
// mode and the schema.
func New(cfg WriterConfig) (*Writer, error) {
	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	// Single-writer discipline
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createSchema(db); err != nil {
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	log.Printf("[sqlite] opened database at %s", cfg.DBPath)
	return &Writer{db: db}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS daily_closes (
			ticker TEXT    NOT NULL,
			ts     INTEGER NOT NULL, -- epoch millis
			close  REAL    NOT NULL,
			PRIMARY KEY (ticker, ts)
		);
	`)
	return err
}

// UpsertCloses inserts or replaces samples for a ticker in a single
// transaction. The INSERT OR REPLACE keeps the store consistent with
// the engine's dedup rule: the last value written for a timestamp wins.
func (w *Writer) UpsertCloses(ticker string, samples []model.Sample) error {
	if len(samples) == 0 {
		return nil
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("sqlite begin: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO daily_closes (ticker, ts, close)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("sqlite prepare: %w", err)
	}
	defer stmt.Close()

	for _, s := range samples {
		if _, err := stmt.Exec(ticker, s.Timestamp, s.Price); err != nil {
			tx.Rollback()
			return fmt.Errorf("sqlite upsert %s@%d: %w", ticker, s.Timestamp, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite commit: %w", err)
	}
	return nil
}

// Close closes the writer.
func (w *Writer) Close() error {
	return w.db.Close()
}

package sqlite

import (
	"database/sql"
	"fmt"
	"log"

	"stockdash/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// Reader provides read-only access to the history store.
type Reader struct {
	db *sql.DB
}

// NewReader opens a SQLite connection for reading.
func NewReader(dbPath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open reader: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)

	log.Printf("[sqlite-reader] opened %s", dbPath)
	return &Reader{db: db}, nil
}

// ReadCloses reads samples for a ticker with ts > afterTS, ordered by
// timestamp ascending — the order the indicator engine expects.
func (r *Reader) ReadCloses(ticker string, afterTS int64) ([]model.Sample, error) {
	rows, err := r.db.Query(`
		SELECT ts, close
		FROM daily_closes
		WHERE ticker = ? AND ts > ?
		ORDER BY ts ASC
	`, ticker, afterTS)
	if err != nil {
		return nil, fmt.Errorf("sqlite query daily_closes: %w", err)
	}
	defer rows.Close()

	var samples []model.Sample
	for rows.Next() {
		var s model.Sample
		if err := rows.Scan(&s.Timestamp, &s.Price); err != nil {
			return nil, fmt.Errorf("sqlite scan daily_closes: %w", err)
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

// Tickers lists all tickers with stored history.
func (r *Reader) Tickers() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT ticker FROM daily_closes ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("sqlite query tickers: %w", err)
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("sqlite scan ticker: %w", err)
		}
		tickers = append(tickers, t)
	}
	return tickers, rows.Err()
}

// Close closes the reader.
func (r *Reader) Close() error {
	return r.db.Close()
}

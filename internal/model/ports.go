package model

import (
	"context"
	"time"
)

// ── Storage Port Interfaces ──
// These interfaces decouple the serving layer from concrete storage
// implementations (SQLite history, Redis frame cache). Each
// implementation satisfies one or more of these interfaces.

// HistoryWriter persists daily close samples per ticker.
type HistoryWriter interface {
	// UpsertCloses inserts or replaces samples for a ticker in one transaction.
	UpsertCloses(ticker string, samples []Sample) error

	// Close releases underlying resources.
	Close() error
}

// HistoryReader reads stored close history for indicator computation.
type HistoryReader interface {
	// ReadCloses returns samples for a ticker with Timestamp > afterTS,
	// ordered by timestamp ascending.
	ReadCloses(ticker string, afterTS int64) ([]Sample, error)

	// Tickers lists all tickers with stored history.
	Tickers() ([]string, error)

	// Close releases underlying resources.
	Close() error
}

// FrameCache caches computed indicator frames keyed by ticker.
// Payloads are opaque JSON so the null/number distinction per field
// survives the round trip byte-for-byte.
type FrameCache interface {
	// GetFrames returns the cached JSON payload, or nil on miss.
	GetFrames(ctx context.Context, ticker string) ([]byte, error)

	// SetFrames stores a JSON payload with the given TTL.
	SetFrames(ctx context.Context, ticker string, payload []byte, ttl time.Duration) error

	// Invalidate drops the cached payload for a ticker.
	Invalidate(ctx context.Context, ticker string) error

	// Close releases underlying resources.
	Close() error
}

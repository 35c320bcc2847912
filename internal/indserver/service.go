// Package indserver is the HTTP serving layer around the indicator
// engine: it accepts price history, computes frames, caches them,
// streams them to dashboard clients and fires threshold alerts.
package indserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"stockdash/internal/alert"
	"stockdash/internal/indicator"
	"stockdash/internal/logger"
	"stockdash/internal/metrics"
	"stockdash/internal/model"
	redisstore "stockdash/internal/store/redis"
	sqlitestore "stockdash/internal/store/sqlite"
	"stockdash/internal/stream"
)

// Service is the top-level orchestrator for the indicator server.
// It wires all dependencies, manages lifecycle, and owns the HTTP server.
type Service struct {
	cfg Config

	cache     model.FrameCache // nil when Redis is not configured
	sqlWriter model.HistoryWriter
	sqlReader model.HistoryReader
	hub       *stream.Hub
	alerts    *alert.Engine
	prom      *metrics.Metrics
	slog      *slog.Logger

	httpSrv *http.Server
	started time.Time
}

// New creates a new Service from the given Config. Redis and SQLite are
// optional: a missing cache degrades to recompute-per-request, a missing
// store limits the API to the stateless compute endpoint.
func New(cfg Config) (*Service, error) {
	svc := &Service{
		cfg:     cfg,
		prom:    metrics.New(),
		slog:    logger.Init("indserver", logger.ParseLevel(cfg.LogLevel)),
		started: time.Now(),
	}

	svc.hub = stream.NewHub(func(n int) {
		svc.prom.WSClients.Set(float64(n))
	})

	notifier := alert.Notifier(alert.LogNotifier{})
	if cfg.WebhookURL != "" {
		notifier = alert.NewWebhookNotifier(cfg.WebhookURL)
	}
	svc.alerts = alert.NewEngine(alert.DefaultThresholds(), notifier, svc.prom.AlertsFired.Inc)

	// ---- Frame cache (optional) ----
	if cfg.RedisAddr != "" {
		cache, err := redisstore.New(redisstore.CacheConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Printf("[indserver] WARNING: frame cache unavailable: %v (continuing without cache)", err)
		} else {
			svc.cache = cache
		}
	}

	// ---- History store (optional) ----
	if cfg.SQLitePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			log.Printf("[indserver] WARNING: create data dir for %s: %v", cfg.SQLitePath, err)
		}
		writer, err := sqlitestore.New(sqlitestore.WriterConfig{DBPath: cfg.SQLitePath})
		if err != nil {
			log.Printf("[indserver] WARNING: history writer init failed: %v", err)
		} else {
			svc.sqlWriter = writer
		}
		reader, err := sqlitestore.NewReader(cfg.SQLitePath)
		if err != nil {
			log.Printf("[indserver] WARNING: history reader init failed: %v", err)
		} else {
			svc.sqlReader = reader
		}
	}

	return svc, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (svc *Service) Run(ctx context.Context) error {
	log.Println("[indserver] starting indicator server...")

	svc.httpSrv = &http.Server{
		Addr:              svc.cfg.HTTPAddr,
		Handler:           svc.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[indserver] HTTP server on %s", svc.cfg.HTTPAddr)
		if err := svc.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	log.Printf("[indserver] periods: SMA=%d BB=(%d,%.1f) MACD=(%d,%d,%d) RSI=%d ADX=%d",
		svc.cfg.Params.SMAPeriod, svc.cfg.Params.BBPeriod, svc.cfg.Params.BBWidth,
		svc.cfg.Params.MACDFast, svc.cfg.Params.MACDSlow, svc.cfg.Params.MACDSignal,
		svc.cfg.Params.RSIPeriod, svc.cfg.Params.ADXPeriod)
	log.Println("[indserver] ✅ all systems running. Press Ctrl+C to stop.")

	select {
	case err := <-errCh:
		svc.shutdown()
		return err
	case <-ctx.Done():
		svc.shutdown()
		return nil
	}
}

// shutdown drains the HTTP server and closes connections.
func (svc *Service) shutdown() {
	log.Println("[indserver] shutdown signal received...")

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if svc.httpSrv != nil {
		svc.httpSrv.Shutdown(shutCtx)
	}

	if svc.sqlReader != nil {
		svc.sqlReader.Close()
	}
	if svc.sqlWriter != nil {
		svc.sqlWriter.Close()
	}
	if svc.cache != nil {
		svc.cache.Close()
	}

	log.Println("[indserver] shutdown complete.")
}

// computeFrames runs the engine over raw samples with the service
// params, recording compute metrics.
func (svc *Service) computeFrames(raw []model.Sample) ([]model.IndicatorFrame, error) {
	start := time.Now()
	frames, err := indicator.ComputeWith(raw, svc.cfg.Params)
	if err != nil {
		return nil, err
	}
	svc.prom.ComputeDur.Observe(time.Since(start).Seconds())
	svc.prom.ComputesTotal.Inc()
	svc.prom.FramesTotal.Add(float64(len(frames)))
	return frames, nil
}

// framesForTicker computes frames for a stored ticker, consulting the
// cache first. Returns the marshaled JSON payload ready to serve.
func (svc *Service) framesForTicker(ctx context.Context, ticker string) ([]byte, error) {
	if svc.cache != nil {
		payload, err := svc.cache.GetFrames(ctx, ticker)
		if err != nil {
			log.Printf("[indserver] cache get %s: %v", ticker, err)
		}
		if payload != nil {
			svc.prom.CacheHits.Inc()
			return payload, nil
		}
		svc.prom.CacheMisses.Inc()
	}

	if svc.sqlReader == nil {
		return nil, fmt.Errorf("history store not configured")
	}
	samples, err := svc.sqlReader.ReadCloses(ticker, 0)
	if err != nil {
		return nil, fmt.Errorf("read history %s: %w", ticker, err)
	}
	if len(samples) == 0 {
		return nil, errNoHistory
	}

	frames, err := svc.computeFrames(samples)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(frames)
	if err != nil {
		return nil, fmt.Errorf("marshal frames: %w", err)
	}

	if svc.cache != nil {
		ttl := time.Duration(svc.cfg.CacheTTLSec) * time.Second
		if err := svc.cache.SetFrames(ctx, ticker, payload, ttl); err != nil {
			log.Printf("[indserver] cache set %s: %v", ticker, err)
		}
	}

	svc.alerts.Fire(context.WithoutCancel(ctx), ticker, frames)
	return payload, nil
}

package indserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"stockdash/internal/logger"
	"stockdash/internal/markethours"
	"stockdash/internal/model"
)

var errNoHistory = errors.New("no history for ticker")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard frontend is served from a different origin in dev.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// routes builds the HTTP mux for the indicator server.
func (svc *Service) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/indicators", svc.handleIndicators)
	mux.HandleFunc("/api/history", svc.handleHistory)
	mux.HandleFunc("/api/status", svc.handleStatus)
	mux.HandleFunc("/ws", svc.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok")
	})
	mux.Handle("/metrics", svc.prom.Handler())
	return mux
}

// computeRequest is the POST /api/indicators body: raw samples, with an
// optional ticker used for tracing and stream fan-out.
type computeRequest struct {
	Ticker  string         `json:"ticker"`
	Samples []model.Sample `json:"samples"`
}

// handleIndicators serves the compute API.
//
//	POST /api/indicators            — compute frames from posted samples
//	GET  /api/indicators?ticker=X   — compute (or cache-hit) from stored history
func (svc *Service) handleIndicators(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		svc.handleCompute(w, r)
	case http.MethodGet:
		svc.handleTickerFrames(w, r)
	default:
		svc.httpError(w, "/api/indicators", "GET or POST only", http.StatusMethodNotAllowed)
	}
}

func (svc *Service) handleCompute(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/indicators"

	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		svc.httpError(w, endpoint, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	ctx := logger.WithTraceID(r.Context(), logger.NewTraceID(req.Ticker, time.Now()))
	frames, err := svc.computeFrames(req.Samples)
	if err != nil {
		svc.httpError(w, endpoint, err.Error(), http.StatusBadRequest)
		return
	}
	slog.InfoContext(ctx, "computed frames",
		append([]any{slog.Int("samples", len(req.Samples)), slog.Int("frames", len(frames))},
			logger.LogWithTrace(ctx)...)...)

	if req.Ticker != "" {
		if payload, err := json.Marshal(frames); err == nil {
			svc.hub.Broadcast(req.Ticker, payload)
		}
		// The request context dies when this handler returns; the async
		// webhook send must outlive it.
		svc.alerts.Fire(context.WithoutCancel(r.Context()), req.Ticker, frames)
	}

	svc.respondJSON(w, endpoint, http.StatusOK, frames)
}

func (svc *Service) handleTickerFrames(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/indicators"

	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		svc.httpError(w, endpoint, "missing ticker parameter", http.StatusBadRequest)
		return
	}

	payload, err := svc.framesForTicker(r.Context(), ticker)
	if err == errNoHistory {
		svc.httpError(w, endpoint, "no history for "+ticker, http.StatusNotFound)
		return
	}
	if err != nil {
		svc.httpError(w, endpoint, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
	svc.prom.HTTPRequests.WithLabelValues(endpoint, "200").Inc()
}

// handleHistory serves the history store API.
//
//	GET  /api/history?ticker=X[&after=ts] — stored samples for a ticker
//	POST /api/history?ticker=X            — upsert samples, invalidate cache,
//	                                        recompute and broadcast
func (svc *Service) handleHistory(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/history"

	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		svc.httpError(w, endpoint, "missing ticker parameter", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		if svc.sqlReader == nil {
			svc.httpError(w, endpoint, "history store not configured", http.StatusServiceUnavailable)
			return
		}
		var after int64
		if s := r.URL.Query().Get("after"); s != "" {
			after, _ = strconv.ParseInt(s, 10, 64)
		}
		samples, err := svc.sqlReader.ReadCloses(ticker, after)
		if err != nil {
			svc.httpError(w, endpoint, err.Error(), http.StatusInternalServerError)
			return
		}
		svc.respondJSON(w, endpoint, http.StatusOK, samples)

	case http.MethodPost:
		if svc.sqlWriter == nil {
			svc.httpError(w, endpoint, "history store not configured", http.StatusServiceUnavailable)
			return
		}
		var samples []model.Sample
		if err := json.NewDecoder(r.Body).Decode(&samples); err != nil {
			svc.httpError(w, endpoint, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if len(samples) == 0 {
			svc.httpError(w, endpoint, "empty sample batch", http.StatusBadRequest)
			return
		}
		if err := svc.sqlWriter.UpsertCloses(ticker, samples); err != nil {
			svc.httpError(w, endpoint, err.Error(), http.StatusInternalServerError)
			return
		}
		svc.prom.HistoryUpserts.Add(float64(len(samples)))

		// New history makes the cached frames stale.
		if svc.cache != nil {
			if err := svc.cache.Invalidate(r.Context(), ticker); err != nil {
				log.Printf("[indserver] cache invalidate %s: %v", ticker, err)
			}
		}

		// Recompute eagerly so subscribed dashboards update right away.
		if payload, err := svc.framesForTicker(r.Context(), ticker); err == nil {
			svc.hub.Broadcast(ticker, payload)
		} else {
			log.Printf("[indserver] recompute after upsert %s: %v", ticker, err)
		}

		svc.respondJSON(w, endpoint, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"ticker":   ticker,
			"upserted": len(samples),
		})

	default:
		svc.httpError(w, endpoint, "GET or POST only", http.StatusMethodNotAllowed)
	}
}

// handleStatus reports market state plus service health for the
// dashboard header.
func (svc *Service) handleStatus(w http.ResponseWriter, r *http.Request) {
	const endpoint = "/api/status"
	if r.Method != http.MethodGet {
		svc.httpError(w, endpoint, "GET only", http.StatusMethodNotAllowed)
		return
	}

	var tickers []string
	if svc.sqlReader != nil {
		if t, err := svc.sqlReader.Tickers(); err == nil {
			tickers = t
		}
	}

	svc.respondJSON(w, endpoint, http.StatusOK, map[string]interface{}{
		"market":       markethours.StatusAt(time.Now()),
		"uptime":       time.Since(svc.started).Round(time.Second).String(),
		"cacheEnabled": svc.cache != nil,
		"storeEnabled": svc.sqlReader != nil,
		"wsClients":    svc.hub.ClientCount(),
		"tickers":      tickers,
	})
}

// handleWS upgrades the connection and hands it to the stream hub.
// `/ws?ticker=X` subscribes immediately; further subscriptions arrive
// as JSON commands on the socket.
func (svc *Service) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[indserver] ws upgrade: %v", err)
		return
	}
	svc.hub.HandleConn(conn, r.URL.Query().Get("ticker"))
}

func (svc *Service) respondJSON(w http.ResponseWriter, endpoint string, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
	svc.prom.HTTPRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

func (svc *Service) httpError(w http.ResponseWriter, endpoint, msg string, status int) {
	http.Error(w, msg, status)
	svc.prom.HTTPRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

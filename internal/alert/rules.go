package alert

import (
	"context"
	"fmt"
	"log"

	"stockdash/internal/model"
)

// Thresholds configures the rule engine. Zero-value fields fall back to
// the conventional RSI bands.
type Thresholds struct {
	RSIOverbought float64 // default 70
	RSIOversold   float64 // default 30
}

// DefaultThresholds returns the conventional RSI 70/30 bands.
func DefaultThresholds() Thresholds {
	return Thresholds{RSIOverbought: 70, RSIOversold: 30}
}

// Engine evaluates threshold rules against the latest computed frame of
// a ticker and pushes the resulting alerts to a notifier.
type Engine struct {
	thresholds Thresholds
	notifier   Notifier
	onFired    func() // optional counter hook
}

// NewEngine creates a rule engine. notifier must be non-nil; onFired may
// be nil.
func NewEngine(t Thresholds, notifier Notifier, onFired func()) *Engine {
	if t.RSIOverbought == 0 {
		t.RSIOverbought = 70
	}
	if t.RSIOversold == 0 {
		t.RSIOversold = 30
	}
	return &Engine{thresholds: t, notifier: notifier, onFired: onFired}
}

// Evaluate inspects the latest frame of a batch and returns the alerts
// it triggers. Warm-up frames with nil fields trigger nothing.
func (e *Engine) Evaluate(ticker string, frames []model.IndicatorFrame) []Alert {
	if len(frames) == 0 {
		return nil
	}
	latest := frames[len(frames)-1]

	var alerts []Alert
	if latest.RSI != nil {
		switch {
		case *latest.RSI >= e.thresholds.RSIOverbought:
			alerts = append(alerts, Alert{
				Level:   LevelWarning,
				Ticker:  ticker,
				Title:   "RSI overbought",
				Message: fmt.Sprintf("RSI %.2f >= %.0f", *latest.RSI, e.thresholds.RSIOverbought),
			})
		case *latest.RSI <= e.thresholds.RSIOversold:
			alerts = append(alerts, Alert{
				Level:   LevelWarning,
				Ticker:  ticker,
				Title:   "RSI oversold",
				Message: fmt.Sprintf("RSI %.2f <= %.0f", *latest.RSI, e.thresholds.RSIOversold),
			})
		}
	}

	if latest.BBUpper != nil && latest.Close > *latest.BBUpper {
		alerts = append(alerts, Alert{
			Level:   LevelInfo,
			Ticker:  ticker,
			Title:   "Upper band breakout",
			Message: fmt.Sprintf("close %.2f above upper band %.2f", latest.Close, *latest.BBUpper),
		})
	}
	if latest.BBLower != nil && latest.Close < *latest.BBLower {
		alerts = append(alerts, Alert{
			Level:   LevelInfo,
			Ticker:  ticker,
			Title:   "Lower band breakout",
			Message: fmt.Sprintf("close %.2f below lower band %.2f", latest.Close, *latest.BBLower),
		})
	}
	return alerts
}

// Fire evaluates and delivers asynchronously. Delivery failures are
// logged, never propagated — alerting must not block or fail a compute.
func (e *Engine) Fire(ctx context.Context, ticker string, frames []model.IndicatorFrame) {
	alerts := e.Evaluate(ticker, frames)
	if len(alerts) == 0 {
		return
	}
	go func() {
		for _, a := range alerts {
			if err := e.notifier.Send(ctx, a); err != nil {
				log.Printf("[alert] send failed for %s: %v", ticker, err)
				continue
			}
			if e.onFired != nil {
				e.onFired()
			}
		}
	}()
}

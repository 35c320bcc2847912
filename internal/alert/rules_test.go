package alert

import (
	"context"
	"testing"

	"stockdash/internal/model"
)

func f(v float64) *float64 { return &v }

func frameWith(rsi, upper, lower *float64, close float64) model.IndicatorFrame {
	return model.IndicatorFrame{
		Timestamp: 1,
		Close:     close,
		RSI:       rsi,
		BBUpper:   upper,
		BBLower:   lower,
	}
}

func TestEngine_RSIOverbought(t *testing.T) {
	e := NewEngine(DefaultThresholds(), LogNotifier{}, nil)

	alerts := e.Evaluate("RELIANCE", []model.IndicatorFrame{
		frameWith(f(82.5), nil, nil, 100),
	})
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Title != "RSI overbought" {
		t.Errorf("unexpected title: %s", alerts[0].Title)
	}
	if alerts[0].Level != LevelWarning {
		t.Errorf("expected WARNING, got %s", alerts[0].Level)
	}
}

func TestEngine_RSIOversold(t *testing.T) {
	e := NewEngine(DefaultThresholds(), LogNotifier{}, nil)

	alerts := e.Evaluate("TCS", []model.IndicatorFrame{
		frameWith(f(25), nil, nil, 100),
	})
	if len(alerts) != 1 || alerts[0].Title != "RSI oversold" {
		t.Fatalf("expected oversold alert, got %+v", alerts)
	}
}

func TestEngine_BandBreakouts(t *testing.T) {
	e := NewEngine(DefaultThresholds(), LogNotifier{}, nil)

	// Close above the upper band.
	alerts := e.Evaluate("X", []model.IndicatorFrame{
		frameWith(f(50), f(110), f(90), 115),
	})
	if len(alerts) != 1 || alerts[0].Title != "Upper band breakout" {
		t.Fatalf("expected upper breakout, got %+v", alerts)
	}

	// Close below the lower band.
	alerts = e.Evaluate("X", []model.IndicatorFrame{
		frameWith(f(50), f(110), f(90), 85),
	})
	if len(alerts) != 1 || alerts[0].Title != "Lower band breakout" {
		t.Fatalf("expected lower breakout, got %+v", alerts)
	}

	// Close inside the bands: nothing.
	alerts = e.Evaluate("X", []model.IndicatorFrame{
		frameWith(f(50), f(110), f(90), 100),
	})
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts inside bands, got %+v", alerts)
	}
}

func TestEngine_WarmupFramesTriggerNothing(t *testing.T) {
	e := NewEngine(DefaultThresholds(), LogNotifier{}, nil)

	alerts := e.Evaluate("X", []model.IndicatorFrame{
		frameWith(nil, nil, nil, 100),
	})
	if len(alerts) != 0 {
		t.Fatalf("nil fields must not trigger alerts, got %+v", alerts)
	}
	if got := e.Evaluate("X", nil); got != nil {
		t.Fatalf("empty batch must return nil, got %+v", got)
	}
}

func TestEngine_OnlyLatestFrameCounts(t *testing.T) {
	e := NewEngine(DefaultThresholds(), LogNotifier{}, nil)

	alerts := e.Evaluate("X", []model.IndicatorFrame{
		frameWith(f(90), nil, nil, 100), // overbought, but not latest
		frameWith(f(50), nil, nil, 100),
	})
	if len(alerts) != 0 {
		t.Fatalf("only the latest frame should be evaluated, got %+v", alerts)
	}
}

// captureNotifier records alerts instead of delivering them.
type captureNotifier struct {
	got chan Alert
}

func (c *captureNotifier) Send(ctx context.Context, a Alert) error {
	c.got <- a
	return nil
}

func TestEngine_FireDelivers(t *testing.T) {
	sink := &captureNotifier{got: make(chan Alert, 4)}
	fired := 0
	e := NewEngine(DefaultThresholds(), sink, func() { fired++ })

	e.Fire(context.Background(), "RELIANCE", []model.IndicatorFrame{
		frameWith(f(85), nil, nil, 100),
	})

	a := <-sink.got
	if a.Ticker != "RELIANCE" || a.Title != "RSI overbought" {
		t.Errorf("unexpected alert: %+v", a)
	}
}

func TestEngine_CustomThresholds(t *testing.T) {
	e := NewEngine(Thresholds{RSIOverbought: 80, RSIOversold: 20}, LogNotifier{}, nil)

	// 75 is calm under the raised bar.
	if got := e.Evaluate("X", []model.IndicatorFrame{frameWith(f(75), nil, nil, 100)}); len(got) != 0 {
		t.Fatalf("expected no alert at RSI 75 with bar 80, got %+v", got)
	}
	if got := e.Evaluate("X", []model.IndicatorFrame{frameWith(f(81), nil, nil, 100)}); len(got) != 1 {
		t.Fatalf("expected alert at RSI 81 with bar 80, got %+v", got)
	}
}

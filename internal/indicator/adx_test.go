package indicator

import (
	"errors"
	"math"
	"testing"
)

func TestADX_WarmupBoundary(t *testing.T) {
	period := 3
	closes := []float64{10, 11, 9, 12, 8, 13, 7, 14, 6, 15}
	out, err := ADX(closes, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 2*period; i++ {
		if out[i] != nil {
			t.Errorf("index %d: expected nil for i < 2*period, got %.4f", i, *out[i])
		}
	}
	for i := 2 * period; i < len(closes); i++ {
		if out[i] == nil {
			t.Errorf("index %d: expected a defined ADX value", i)
		}
	}
}

func TestADX_SteadyUptrendSaturates(t *testing.T) {
	// A constant positive step: every bar is pure +DM, so +DI = 100,
	// −DI = 0, DX = 100, and ADX (a mean of DX values) is 100 as well.
	closes := make([]float64, 12)
	for i := range closes {
		closes[i] = float64(i)
	}
	out, err := ADX(closes, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 6; i < len(closes); i++ {
		if out[i] == nil || math.Abs(*out[i]-100) > tol {
			t.Errorf("index %d: expected 100, got %v", i, out[i])
		}
	}
}

func TestADX_ConstantSeriesIsZero(t *testing.T) {
	// Flat prices: zero true range, zero directional movement. The
	// division conventions (zero smoothed TR → DIs 0, zero DI sum →
	// DX 0) keep ADX defined at 0 instead of NaN.
	closes := make([]float64, 10)
	for i := range closes {
		closes[i] = 100
	}
	out, err := ADX(closes, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 6; i < len(closes); i++ {
		if out[i] == nil || math.Abs(*out[i]) > tol {
			t.Errorf("index %d: expected 0, got %v", i, out[i])
		}
	}
}

func TestADX_BoundsOnVolatileSeries(t *testing.T) {
	closes := []float64{
		100, 108, 95, 112, 90, 118, 85, 125, 82, 130,
		78, 135, 75, 140, 72, 145, 70, 150, 68, 155,
	}
	out, err := ADX(closes, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range out {
		if v == nil {
			continue
		}
		if *v < 0 || *v > 100 {
			t.Errorf("index %d: ADX out of [0,100]: %.4f", i, *v)
		}
	}
}

func TestADX_ShortSeriesAllNil(t *testing.T) {
	// Needs at least 2*period+1 points for the first value.
	out, err := ADX([]float64{1, 2, 3, 4, 5, 6}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range out {
		if v != nil {
			t.Errorf("index %d: expected nil, got %.4f", i, *v)
		}
	}
}

func TestADX_InvalidPeriod(t *testing.T) {
	if _, err := ADX([]float64{1, 2}, -5); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}

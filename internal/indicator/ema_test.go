package indicator

import (
	"errors"
	"math"
	"testing"
)

func TestEMA_SeededWithFirstClose(t *testing.T) {
	closes := []float64{2, 4, 6}
	out, err := EMA(closes, 3) // k = 0.5
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// ema[0] = 2 (raw seed), ema[1] = 4*0.5 + 2*0.5 = 3, ema[2] = 6*0.5 + 3*0.5 = 4.5
	want := []float64{2, 3, 4.5}
	for i, w := range want {
		if math.Abs(out[i]-w) > tol {
			t.Errorf("index %d: expected %.4f, got %.4f", i, w, out[i])
		}
	}
}

func TestEMA_FullyDefined(t *testing.T) {
	closes := []float64{10, 12, 11, 13, 15}
	for _, period := range []int{1, 2, 5, 26} {
		out, err := EMA(closes, period)
		if err != nil {
			t.Fatalf("period %d: unexpected error: %v", period, err)
		}
		if len(out) != len(closes) {
			t.Fatalf("period %d: expected length %d, got %d", period, len(closes), len(out))
		}
	}
}

func TestEMA_PeriodOneEchoesInput(t *testing.T) {
	closes := []float64{7, 3, 9}
	out, err := EMA(closes, 1) // k = 1
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, c := range closes {
		if math.Abs(out[i]-c) > tol {
			t.Errorf("index %d: EMA(1) must echo the close %.2f, got %.4f", i, c, out[i])
		}
	}
}

func TestEMA_Empty(t *testing.T) {
	out, err := EMA(nil, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %d values", len(out))
	}
}

func TestEMA_InvalidPeriod(t *testing.T) {
	if _, err := EMA([]float64{1}, 0); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestEMA_ConstantSeries(t *testing.T) {
	closes := []float64{100, 100, 100, 100}
	out, err := EMA(closes, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range out {
		if math.Abs(v-100) > tol {
			t.Errorf("index %d: expected 100, got %.4f", i, v)
		}
	}
}

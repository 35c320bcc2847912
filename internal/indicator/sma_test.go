package indicator

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-9

func TestSMA_Basic(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	out, err := SMA(closes, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(closes) {
		t.Fatalf("expected length %d, got %d", len(closes), len(out))
	}

	for i := 0; i < 2; i++ {
		if out[i] != nil {
			t.Errorf("index %d: expected nil during warm-up, got %.4f", i, *out[i])
		}
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		got := out[i+2]
		if got == nil {
			t.Fatalf("index %d: expected value, got nil", i+2)
		}
		if math.Abs(*got-w) > tol {
			t.Errorf("index %d: expected %.4f, got %.4f", i+2, w, *got)
		}
	}
}

func TestSMA_ShortSeriesAllNil(t *testing.T) {
	out, err := SMA([]float64{1, 2, 3}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range out {
		if v != nil {
			t.Errorf("index %d: expected nil when n < period, got %.4f", i, *v)
		}
	}
}

func TestSMA_Empty(t *testing.T) {
	out, err := SMA(nil, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %d values", len(out))
	}
}

func TestSMA_InvalidPeriod(t *testing.T) {
	for _, period := range []int{0, -1} {
		if _, err := SMA([]float64{1, 2, 3}, period); !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("period %d: expected ErrInvalidPeriod, got %v", period, err)
		}
	}
}

func TestSMA_PeriodOne(t *testing.T) {
	closes := []float64{3, 1, 4}
	out, err := SMA(closes, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, c := range closes {
		if out[i] == nil || math.Abs(*out[i]-c) > tol {
			t.Errorf("index %d: SMA(1) must echo the close %.2f", i, c)
		}
	}
}

func TestSMA_ToleratesNonPositivePrices(t *testing.T) {
	out, err := SMA([]float64{-2, 0, 2}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[2] == nil || math.Abs(*out[2]-0) > tol {
		t.Errorf("expected mean 0 over {-2,0,2}, got %v", out[2])
	}
}

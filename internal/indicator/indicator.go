// Package indicator computes classic technical-analysis indicators over
// a complete daily close series: SMA, EMA, Bollinger Bands, MACD, RSI
// and ADX.
//
// All calculators are pure batch functions: they take the full close
// slice, return a derived series of the same length, and keep no state
// between calls. Warm-up indices where an indicator is undefined are
// represented as nil *float64 entries, never as NaN or zero sentinels.
// Smoothing recurrences (EMA, Wilder) thread their accumulators through
// plain loops — there is no mutable indicator object to reset or share.
package indicator

import "errors"

// ErrInvalidPeriod is returned when a calculator is invoked with a
// non-positive period. It is the only failure the engine signals;
// malformed-but-well-typed price data never raises.
var ErrInvalidPeriod = errors.New("indicator: period must be positive")

// checkPeriod validates a period argument eagerly, before any computation.
func checkPeriod(periods ...int) error {
	for _, p := range periods {
		if p < 1 {
			return ErrInvalidPeriod
		}
	}
	return nil
}

// fptr boxes a float64 for the nullable output slices.
func fptr(v float64) *float64 { return &v }

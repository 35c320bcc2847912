package indicator

// EMA computes the Exponential Moving Average of closes with smoothing
// constant k = 2/(period+1). The result is fully defined for every
// index of a non-empty input — there are no warm-up holes.
//
// NOTE: ema[0] is seeded with the raw first close, NOT with an SMA of
// the first `period` values as the textbook definition prescribes.
// This matches the dashboard's historical output; "correcting" the seed
// would shift every EMA, MACD and signal value the chart displays.
func EMA(closes []float64, period int) ([]float64, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	out := make([]float64, len(closes))
	if len(closes) == 0 {
		return out, nil
	}

	k := 2.0 / float64(period+1)
	out[0] = closes[0]
	for i := 1; i < len(closes); i++ {
		out[i] = closes[i]*k + out[i-1]*(1-k)
	}
	return out, nil
}

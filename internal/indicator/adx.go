package indicator

import "math"

// ADX computes the Average Directional Index over a close-only series.
//
// NOTE: textbook ADX needs high/low/close per bar. The dashboard only
// has daily closes, so this keeps the source's approximation of
// high = low = close, under which true range collapses to |Δclose|.
// Do not "fix" this to real OHLC semantics without high/low inputs —
// the chart's historical ADX values depend on it.
//
// Warm-up: nil for i < 2·period. The value at 2·period is the mean of
// DX over indices [period, 2·period] inclusive; later values follow
// the Wilder recurrence adx = (adx·(period−1) + dx) / period.
// Division conventions: a zero smoothed TR yields zero DIs, and a zero
// +DI + −DI yields DX = 0, so a constant series reads ADX = 0 wherever
// defined.
func ADX(closes []float64, period int) ([]*float64, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	n := len(closes)
	out := make([]*float64, n)
	if n < 2*period+1 {
		return out, nil
	}

	// Raw true range and directional movement per index.
	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		tr[i] = math.Abs(delta)

		upMove := delta
		downMove := -delta
		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}
		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
	}

	// Wilder smoothing: cumulative-sum seed at index `period`, then
	// smoothed[i] = smoothed[i−1] − smoothed[i−1]/period + raw[i].
	p := float64(period)
	smTR := make([]float64, n)
	smPlus := make([]float64, n)
	smMinus := make([]float64, n)
	for i := 1; i <= period; i++ {
		smTR[period] += tr[i]
		smPlus[period] += plusDM[i]
		smMinus[period] += minusDM[i]
	}
	for i := period + 1; i < n; i++ {
		smTR[i] = smTR[i-1] - smTR[i-1]/p + tr[i]
		smPlus[i] = smPlus[i-1] - smPlus[i-1]/p + plusDM[i]
		smMinus[i] = smMinus[i-1] - smMinus[i-1]/p + minusDM[i]
	}

	dx := make([]float64, n)
	for i := period; i < n; i++ {
		var plusDI, minusDI float64
		if smTR[i] > 0 {
			plusDI = 100 * smPlus[i] / smTR[i]
			minusDI = 100 * smMinus[i] / smTR[i]
		}
		if sum := plusDI + minusDI; sum > 0 {
			dx[i] = 100 * math.Abs(plusDI-minusDI) / sum
		}
	}

	// Seed ADX with the mean of the first period+1 DX values, then fold.
	var sum float64
	for i := period; i <= 2*period; i++ {
		sum += dx[i]
	}
	adx := sum / float64(period+1)
	out[2*period] = fptr(adx)
	for i := 2*period + 1; i < n; i++ {
		adx = (adx*(p-1) + dx[i]) / p
		out[i] = fptr(adx)
	}
	return out, nil
}

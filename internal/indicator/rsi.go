package indicator

// RSI computes the Relative Strength Index with Wilder smoothing.
// Indices 0..period−1 are nil: index 0 has no prior delta, and RSI is
// undefined until the initial window of `period` deltas is full. The
// first defined value, at index `period`, uses plain averages of the
// first `period` gains and losses; later values use the Wilder
// recurrence avg = (avg·(period−1) + x) / period.
//
// When avgLoss is 0 the ratio would divide by zero; RSI saturates to
// 100 instead. This includes the all-flat 0/0 case, so a constant
// series reads RSI = 100 once the window closes.
func RSI(closes []float64, period int) ([]*float64, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	out := make([]*float64, len(closes))
	if len(closes) <= period {
		return out, nil
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	p := float64(period)
	avgGain /= p
	avgLoss /= p
	out[period] = fptr(rsiFrom(avgGain, avgLoss))

	for i := period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
		out[i] = fptr(rsiFrom(avgGain, avgLoss))
	}
	return out, nil
}

// rsiFrom converts average gain/loss into an RSI value with the
// zero-division saturation rule.
func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

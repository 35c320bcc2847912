package indicator

// MACDSeries holds the MACD line and its signal line. Both are defined
// at every index — a consequence of the raw-first-value EMA seeding
// (see EMA), which leaves no warm-up holes to propagate.
type MACDSeries struct {
	Line   []float64
	Signal []float64
}

// MACD computes Moving Average Convergence Divergence:
// line = EMA(fast) − EMA(slow), signal = EMA of the line over
// signalPeriod, seeded with line[0] the same way every EMA here is.
func MACD(closes []float64, fast, slow, signalPeriod int) (MACDSeries, error) {
	if err := checkPeriod(fast, slow, signalPeriod); err != nil {
		return MACDSeries{}, err
	}

	fastEMA, err := EMA(closes, fast)
	if err != nil {
		return MACDSeries{}, err
	}
	slowEMA, err := EMA(closes, slow)
	if err != nil {
		return MACDSeries{}, err
	}

	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fastEMA[i] - slowEMA[i]
	}

	signal, err := EMA(line, signalPeriod)
	if err != nil {
		return MACDSeries{}, err
	}

	return MACDSeries{Line: line, Signal: signal}, nil
}

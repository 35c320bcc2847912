package indicator

// SMA computes the Simple Moving Average of closes over the given
// period. The result has the same length as closes; indices before
// period−1 are nil (insufficient history). A running sum keeps the
// whole pass O(n) regardless of period.
func SMA(closes []float64, period int) ([]*float64, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}

	out := make([]*float64, len(closes))
	sum := 0.0
	for i, price := range closes {
		sum += price
		if i >= period {
			sum -= closes[i-period]
		}
		if i >= period-1 {
			out[i] = fptr(sum / float64(period))
		}
	}
	return out, nil
}

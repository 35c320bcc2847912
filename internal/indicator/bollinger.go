package indicator

import "math"

// BollingerBands holds the three band series. Entries are nil for
// indices before period−1, where the trailing window is incomplete.
type BollingerBands struct {
	Upper  []*float64
	Middle []*float64
	Lower  []*float64
}

// Bollinger computes Bollinger Bands over closes: middle is SMA(period),
// upper/lower are middle ± width times the population standard deviation
// of the same trailing window (divide by period, not period−1).
func Bollinger(closes []float64, period int, width float64) (BollingerBands, error) {
	if err := checkPeriod(period); err != nil {
		return BollingerBands{}, err
	}

	n := len(closes)
	bands := BollingerBands{
		Upper:  make([]*float64, n),
		Middle: make([]*float64, n),
		Lower:  make([]*float64, n),
	}

	sma, err := SMA(closes, period)
	if err != nil {
		return BollingerBands{}, err
	}

	for i := period - 1; i < n; i++ {
		mean := *sma[i]
		sumSq := 0.0
		for j := i - period + 1; j <= i; j++ {
			diff := closes[j] - mean
			sumSq += diff * diff
		}
		std := math.Sqrt(sumSq / float64(period))

		bands.Middle[i] = fptr(mean)
		bands.Upper[i] = fptr(mean + width*std)
		bands.Lower[i] = fptr(mean - width*std)
	}
	return bands, nil
}

package indicator

import "stockdash/internal/model"

// Compute is the engine's single public entry point: it normalizes raw
// samples into a PriceSeries, runs each calculator exactly once with
// the dashboard's default periods, and zips the results positionally
// into one frame per sample.
//
// The output length equals the post-dedup input length and frame i
// carries the timestamp and close of series index i. Compute is a pure
// function — same input, bit-identical output, no shared state — so
// concurrent calls with different inputs need no synchronization.
func Compute(raw []model.Sample) ([]model.IndicatorFrame, error) {
	return ComputeWith(raw, DefaultParams())
}

// ComputeWith is Compute with explicit periods.
func ComputeWith(raw []model.Sample, params Params) ([]model.IndicatorFrame, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	series := model.NewPriceSeries(raw)
	closes := series.Closes()

	sma, err := SMA(closes, params.SMAPeriod)
	if err != nil {
		return nil, err
	}
	bands, err := Bollinger(closes, params.BBPeriod, params.BBWidth)
	if err != nil {
		return nil, err
	}
	macd, err := MACD(closes, params.MACDFast, params.MACDSlow, params.MACDSignal)
	if err != nil {
		return nil, err
	}
	rsi, err := RSI(closes, params.RSIPeriod)
	if err != nil {
		return nil, err
	}
	adx, err := ADX(closes, params.ADXPeriod)
	if err != nil {
		return nil, err
	}

	frames := make([]model.IndicatorFrame, series.Len())
	for i := range frames {
		s := series.At(i)
		frames[i] = model.IndicatorFrame{
			Timestamp:  s.Timestamp,
			Close:      s.Price,
			SMA20:      sma[i],
			BBUpper:    bands.Upper[i],
			BBMiddle:   bands.Middle[i],
			BBLower:    bands.Lower[i],
			MACD:       fptr(macd.Line[i]),
			MACDSignal: fptr(macd.Signal[i]),
			RSI:        rsi[i],
			ADX:        adx[i],
		}
	}
	return frames, nil
}

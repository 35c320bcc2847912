package model

// IndicatorFrame is one row of the chart annotation output: the close
// price plus every derived indicator at the same canonical index.
// Pointer fields are nil during an indicator's warm-up period and
// marshal to JSON null, so the frontend can distinguish "no value yet"
// from an actual zero.
type IndicatorFrame struct {
	Timestamp  int64    `json:"timestamp"` // epoch millis, matches the source sample
	Close      float64  `json:"close"`
	SMA20      *float64 `json:"sma20"`
	BBUpper    *float64 `json:"bbUpper"`
	BBMiddle   *float64 `json:"bbMiddle"`
	BBLower    *float64 `json:"bbLower"`
	MACD       *float64 `json:"macd"`
	MACDSignal *float64 `json:"macdSignal"`
	RSI        *float64 `json:"rsi"`
	ADX        *float64 `json:"adx"`
}

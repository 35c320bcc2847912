package indicator

import "fmt"

// Params carries every period the aggregator uses. The zero value is
// not valid; start from DefaultParams and override per deployment.
type Params struct {
	SMAPeriod  int     // simple moving average window
	BBPeriod   int     // Bollinger window
	BBWidth    float64 // band width in standard deviations
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	RSIPeriod  int
	ADXPeriod  int
}

// DefaultParams returns the periods the dashboard chart was built
// around: SMA 20, Bollinger (20, 2), MACD (12, 26, 9), RSI 14, ADX 14.
func DefaultParams() Params {
	return Params{
		SMAPeriod:  20,
		BBPeriod:   20,
		BBWidth:    2,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		RSIPeriod:  14,
		ADXPeriod:  14,
	}
}

// Validate checks every period eagerly so a misconfigured service
// fails at startup, not mid-computation.
func (p Params) Validate() error {
	if err := checkPeriod(p.SMAPeriod, p.BBPeriod, p.MACDFast, p.MACDSlow,
		p.MACDSignal, p.RSIPeriod, p.ADXPeriod); err != nil {
		return err
	}
	if p.BBWidth <= 0 {
		return fmt.Errorf("indicator: band width must be positive, got %v", p.BBWidth)
	}
	return nil
}

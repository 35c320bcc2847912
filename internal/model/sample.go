package model

import "sort"

// Sample is one daily close observation for a single ticker.
// Timestamp is epoch milliseconds (UTC). Price is the close in the
// ticker's quote currency. Zero and negative prices are accepted —
// the indicator engine tolerates them and simply produces degenerate
// output, so validation belongs to whoever fetched the data.
type Sample struct {
	Timestamp int64   `json:"timestamp"` // epoch millis
	Price     float64 `json:"price"`
}

// PriceSeries is a normalized, immutable price history: samples sorted
// by timestamp ascending with duplicate timestamps collapsed. Index i
// is the canonical position used by every indicator calculator, so all
// derived series align positionally without timestamp lookups.
type PriceSeries struct {
	samples []Sample
}

// NewPriceSeries normalizes raw samples into a PriceSeries.
// Sorting is stable (ties keep input order) and duplicate timestamps
// collapse to the last value encountered, making the series a valid
// function of time. Empty input yields a zero-length series, no error.
func NewPriceSeries(raw []Sample) PriceSeries {
	if len(raw) == 0 {
		return PriceSeries{}
	}

	sorted := make([]Sample, len(raw))
	copy(sorted, raw)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	// Collapse runs of equal timestamps, keeping the last occurrence.
	// Stable sort preserved input order inside each run.
	out := sorted[:0]
	for i := 0; i < len(sorted); i++ {
		if i+1 < len(sorted) && sorted[i+1].Timestamp == sorted[i].Timestamp {
			continue
		}
		out = append(out, sorted[i])
	}

	return PriceSeries{samples: out}
}

// Len returns the number of samples.
func (p PriceSeries) Len() int { return len(p.samples) }

// At returns the sample at canonical index i.
func (p PriceSeries) At(i int) Sample { return p.samples[i] }

// Closes returns a fresh slice of the close prices in canonical order.
// The copy keeps the series immutable no matter what callers do.
func (p PriceSeries) Closes() []float64 {
	closes := make([]float64, len(p.samples))
	for i, s := range p.samples {
		closes[i] = s.Price
	}
	return closes
}

// Timestamps returns a fresh slice of the timestamps in canonical order.
func (p PriceSeries) Timestamps() []int64 {
	ts := make([]int64, len(p.samples))
	for i, s := range p.samples {
		ts[i] = s.Timestamp
	}
	return ts
}

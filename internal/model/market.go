package model

import "time"

// Field keys of a raw daily record, as returned by the Alpha Vantage daily series.
const (
	FieldOpen   = "1. open"
	FieldHigh   = "2. high"
	FieldLow    = "3. low"
	FieldClose  = "4. close"
	FieldVolume = "5. volume"
)

// RawFields lists every field a RawBar must carry.
var RawFields = []string{FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume}

// DateLayout is the layout of the date keys in a RawSeries.
const DateLayout = "2006-01-02"

// RawBar maps a field key to its decimal string value.
type RawBar map[string]string

// RawSeries is the undecoded daily time series for one symbol.
type RawSeries struct {
	Symbol        string
	LastRefreshed string
	Bars          map[string]RawBar // keyed by YYYY-MM-DD
}

// DailyBar is one normalized trading day.
type DailyBar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Series holds daily bars ordered newest first.
type Series []DailyBar

// Analysis is the per-symbol result handed to the output collaborators.
type Analysis struct {
	Symbol         string
	RequestedAt    time.Time
	LastRefreshed  string
	Series         Series
	Latest         DailyBar
	Previous       DailyBar
	RecentHigh     float64
	RecentLow      float64
	ChangePct      float64 // day-over-day change of the close, in percent
	Recommendation Recommendation
}

package calculator

import (
	"math"

	"RoboAdvisor/internal/model"
)

// Latest returns the most recent bar.
func Latest(series model.Series) (model.DailyBar, error) {
	if len(series) < 1 {
		return model.DailyBar{}, &model.InsufficientDataError{Required: 1, Actual: len(series)}
	}
	return series[0], nil
}

// Previous returns the bar before the latest one.
func Previous(series model.Series) (model.DailyBar, error) {
	if len(series) < 2 {
		return model.DailyBar{}, &model.InsufficientDataError{Required: 2, Actual: len(series)}
	}
	return series[1], nil
}

// Highs returns the high of every bar, in series order.
func Highs(series model.Series) []float64 {
	highs := make([]float64, len(series))
	for i, b := range series {
		highs[i] = b.High
	}
	return highs
}

// Lows returns the low of every bar, in series order.
func Lows(series model.Series) []float64 {
	lows := make([]float64, len(series))
	for i, b := range series {
		lows[i] = b.Low
	}
	return lows
}

// Max returns the largest value; an empty slice has no maximum.
func Max(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, &model.InsufficientDataError{Required: 1, Actual: 0}
	}
	m := math.Inf(-1)
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m, nil
}

// Min returns the smallest value; an empty slice has no minimum.
func Min(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, &model.InsufficientDataError{Required: 1, Actual: 0}
	}
	m := math.Inf(1)
	for _, v := range values {
		if v < m {
			m = v
		}
	}
	return m, nil
}

// RecentHigh is the maximum high across the whole series.
func RecentHigh(series model.Series) (float64, error) {
	return Max(Highs(series))
}

// RecentLow is the minimum low across the whole series.
func RecentLow(series model.Series) (float64, error) {
	return Min(Lows(series))
}

// DayOverDayChange returns the percentage change from previous to latest close.
func DayOverDayChange(latest, previous model.DailyBar) float64 {
	if previous.Close == 0 {
		return 0
	}
	return (latest.Close - previous.Close) / previous.Close * 100
}

// Closes returns closing prices oldest first, for charting.
func Closes(series model.Series) []float64 {
	n := len(series)
	closes := make([]float64, n)
	for i, b := range series {
		closes[n-1-i] = b.Close
	}
	return closes
}

// Dates returns the bar dates oldest first, formatted as YYYY-MM-DD.
func Dates(series model.Series) []string {
	n := len(series)
	dates := make([]string, n)
	for i, b := range series {
		dates[n-1-i] = b.Timestamp.Format(model.DateLayout)
	}
	return dates
}

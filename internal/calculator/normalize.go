package calculator

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"RoboAdvisor/internal/model"
)

var errOutOfRange = errors.New("value out of float64 range")

// Normalize converts a raw daily series into a Series ordered newest first.
// A nil or empty raw series yields an empty Series.
func Normalize(raw *model.RawSeries) (model.Series, error) {
	if raw == nil || len(raw.Bars) == 0 {
		return model.Series{}, nil
	}

	series := make(model.Series, 0, len(raw.Bars))
	for date, rec := range raw.Bars {
		ts, err := time.Parse(model.DateLayout, date)
		if err != nil {
			return nil, &model.MalformedDataError{Date: date, Cause: err}
		}

		var vals [5]float64
		for i, field := range model.RawFields {
			v, err := parseField(date, field, rec)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}

		series = append(series, model.DailyBar{
			Timestamp: ts,
			Open:      vals[0],
			High:      vals[1],
			Low:       vals[2],
			Close:     vals[3],
			Volume:    vals[4],
		})
	}

	// Map iteration order is random; "latest" must be index 0.
	sort.Slice(series, func(i, j int) bool { return series[i].Timestamp.After(series[j].Timestamp) })
	return series, nil
}

func parseField(date, field string, rec model.RawBar) (float64, error) {
	s, ok := rec[field]
	if !ok {
		return 0, &model.MalformedDataError{Date: date, Field: field}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &model.MalformedDataError{Date: date, Field: field, Value: s, Cause: err}
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) {
		return 0, &model.MalformedDataError{Date: date, Field: field, Value: s, Cause: errOutOfRange}
	}
	return f, nil
}

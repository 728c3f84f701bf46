package collector

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"RoboAdvisor/internal/model"
)

// PolygonFetcher implements Fetcher using Polygon.io daily aggregates.
type PolygonFetcher struct {
	client   *polygon.Client
	Lookback time.Duration
	now      func() time.Time
}

// NewPolygonFetcher creates a fetcher covering the last 100 calendar days.
func NewPolygonFetcher(apiKey string) (*PolygonFetcher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	return &PolygonFetcher{
		client:   polygon.New(apiKey),
		Lookback: 100 * 24 * time.Hour,
		now:      time.Now,
	}, nil
}

func (f *PolygonFetcher) Name() string { return "polygon" }

func (f *PolygonFetcher) FetchDaily(ctx context.Context, symbol string) (*model.RawSeries, error) {
	end := f.now()
	start := end.Add(-f.Lookback)

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithLimit(5000)

	iter := f.client.ListAggs(ctx, params)

	raw := &model.RawSeries{Symbol: symbol, Bars: map[string]model.RawBar{}}
	for iter.Next() {
		agg := iter.Item()
		date := time.Time(agg.Timestamp).UTC().Format(model.DateLayout)
		raw.Bars[date] = model.RawBar{
			model.FieldOpen:   formatDecimal(agg.Open),
			model.FieldHigh:   formatDecimal(agg.High),
			model.FieldLow:    formatDecimal(agg.Low),
			model.FieldClose:  formatDecimal(agg.Close),
			model.FieldVolume: formatDecimal(agg.Volume),
		}
		if date > raw.LastRefreshed {
			raw.LastRefreshed = date
		}
	}
	if iter.Err() != nil {
		return nil, fmt.Errorf("error iterating polygon aggregates: %w", iter.Err())
	}
	if len(raw.Bars) == 0 {
		return nil, &model.SymbolNotFoundError{Symbol: symbol, Message: "no aggregates returned"}
	}
	return raw, nil
}

package collector

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"RoboAdvisor/internal/calculator"
	"RoboAdvisor/internal/model"
	"RoboAdvisor/internal/strategy"
)

// Collector runs the per-symbol pipeline: fetch, normalize, aggregate, recommend.
type Collector struct {
	Fetcher Fetcher
	Logger  *zap.Logger
	Now     func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{Fetcher: fetcher, Logger: logger, Now: time.Now}
}

// Analyze fetches the daily series for symbol and derives the recommendation.
func (c *Collector) Analyze(ctx context.Context, symbol string) (*model.Analysis, error) {
	requestedAt := c.Now()
	c.Logger.Debug("fetching daily series", zap.String("symbol", symbol), zap.String("source", c.Fetcher.Name()))

	raw, err := c.Fetcher.FetchDaily(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}

	series, err := calculator.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", symbol, err)
	}

	latest, err := calculator.Latest(series)
	if err != nil {
		return nil, fmt.Errorf("latest bar for %s: %w", symbol, err)
	}
	previous, err := calculator.Previous(series)
	if err != nil {
		return nil, fmt.Errorf("previous bar for %s: %w", symbol, err)
	}
	high, err := calculator.RecentHigh(series)
	if err != nil {
		return nil, fmt.Errorf("recent high for %s: %w", symbol, err)
	}
	low, err := calculator.RecentLow(series)
	if err != nil {
		return nil, fmt.Errorf("recent low for %s: %w", symbol, err)
	}

	lastRefreshed := raw.LastRefreshed
	if lastRefreshed == "" {
		lastRefreshed = latest.Timestamp.Format(model.DateLayout)
	}

	a := &model.Analysis{
		Symbol:         symbol,
		RequestedAt:    requestedAt,
		LastRefreshed:  lastRefreshed,
		Series:         series,
		Latest:         latest,
		Previous:       previous,
		RecentHigh:     high,
		RecentLow:      low,
		ChangePct:      calculator.DayOverDayChange(latest, previous),
		Recommendation: strategy.Recommend(latest.Close, high, low),
	}
	c.Logger.Info("analysis complete",
		zap.String("symbol", symbol),
		zap.Int("bars", len(series)),
		zap.Float64("latest_close", latest.Close),
		zap.Float64("change_pct", a.ChangePct),
		zap.String("decision", string(a.Recommendation.Decision)),
	)
	return a, nil
}

package collector

import (
	"context"

	"RoboAdvisor/internal/model"
)

// Fetcher retrieves the raw daily series for a symbol.
type Fetcher interface {
	FetchDaily(ctx context.Context, symbol string) (*model.RawSeries, error)
	Name() string
}

package recorder

import (
	"time"

	"RoboAdvisor/internal/model"
)

// HistoryEntry is one recorded recommendation.
type HistoryEntry struct {
	ID            string
	Symbol        string
	RecordedAt    time.Time
	LastRefreshed string
	LatestClose   float64
	PreviousClose float64
	RecentHigh    float64
	RecentLow     float64
	ChangePct     float64
	Decision      model.Decision
	Reason        string
}

// Recorder persists the outcome of each analysis for later review.
type Recorder interface {
	RecordAnalysis(a *model.Analysis) error
	History(symbol string, limit int) ([]HistoryEntry, error)
	Close() error
}

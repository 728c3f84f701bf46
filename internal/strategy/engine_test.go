package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"RoboAdvisor/internal/model"
)

func TestRecommend_Scenarios(t *testing.T) {
	tests := []struct {
		name             string
		close, high, low float64
		decision         model.Decision
		reason           string
	}{
		{"close near low", 45, 60, 40, model.DecisionBuy,
			"The stock's latest closing price is less than 20% above its recent low. Prices are likely to go up soon."},
		{"wide range", 100, 160, 100, model.DecisionBuy,
			"There is a significant gap between the recent high and low which means that it is not a volatile stock at the moment. It would be a safe investment"},
		{"neither", 110, 120, 90, model.DecisionDontBuy,
			"It's risky to buy this stock as the moment. Wait until the market becomes more predictable."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Recommend(tt.close, tt.high, tt.low)
			assert.Equal(t, tt.decision, rec.Decision)
			assert.Equal(t, tt.reason, rec.Reason)
		})
	}
}

func TestRecommend_CloseBelowTwentyPercentOfLow(t *testing.T) {
	// 100 < 90*1.2 = 108, so the near-low rule applies even with a narrow range.
	rec := Recommend(100, 120, 90)
	assert.Equal(t, model.DecisionBuy, rec.Decision)
	assert.Equal(t, Rules[0].Recommendation, rec)
}

func TestRecommend_FirstMatchWins(t *testing.T) {
	// Both rules match; the near-low rule comes first.
	rec := Recommend(45, 200, 40)
	assert.Equal(t, Rules[0].Recommendation, rec)
}

func TestRecommend_Boundaries(t *testing.T) {
	// Exactly 20% above the low is not "less than".
	rec := Recommend(48, 60, 40)
	assert.Equal(t, FallbackRecommendation, rec)

	// A gap of exactly 50 is not "greater than".
	rec = Recommend(200, 150, 100)
	assert.Equal(t, FallbackRecommendation, rec)
}

func TestRecommend_Deterministic(t *testing.T) {
	for _, in := range [][3]float64{{45, 60, 40}, {100, 160, 100}, {100, 120, 90}, {0, 0, 0}, {-5, 1, 10}} {
		assert.Equal(t, Recommend(in[0], in[1], in[2]), Recommend(in[0], in[1], in[2]))
	}
}

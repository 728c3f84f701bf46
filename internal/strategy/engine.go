package strategy

import "RoboAdvisor/internal/model"

// Inputs are the aggregate statistics the rules look at.
type Inputs struct {
	LatestClose float64
	RecentHigh  float64
	RecentLow   float64
}

// Rule is one entry of the recommendation table.
type Rule struct {
	Name           string
	Match          func(in Inputs) bool
	Recommendation model.Recommendation
}

// Rules is evaluated top to bottom; the first match wins.
var Rules = []Rule{
	{
		Name:  "near-recent-low",
		Match: func(in Inputs) bool { return in.LatestClose < in.RecentLow*1.2 },
		Recommendation: model.Recommendation{
			Decision: model.DecisionBuy,
			Reason:   "The stock's latest closing price is less than 20% above its recent low. Prices are likely to go up soon.",
		},
	},
	{
		// Absolute currency gap, not scaled by price level.
		Name:  "wide-range",
		Match: func(in Inputs) bool { return in.RecentHigh-in.RecentLow > 50 },
		Recommendation: model.Recommendation{
			Decision: model.DecisionBuy,
			Reason:   "There is a significant gap between the recent high and low which means that it is not a volatile stock at the moment. It would be a safe investment",
		},
	},
}

// FallbackRecommendation applies when no rule matches.
var FallbackRecommendation = model.Recommendation{
	Decision: model.DecisionDontBuy,
	Reason:   "It's risky to buy this stock as the moment. Wait until the market becomes more predictable.",
}

// Recommend maps the latest close and the recent range to a decision.
func Recommend(latestClose, recentHigh, recentLow float64) model.Recommendation {
	in := Inputs{LatestClose: latestClose, RecentHigh: recentHigh, RecentLow: recentLow}
	for _, r := range Rules {
		if r.Match(in) {
			return r.Recommendation
		}
	}
	return FallbackRecommendation
}

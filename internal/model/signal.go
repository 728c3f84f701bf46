package model

// Decision is the outcome of the buy heuristic.
type Decision string

const (
	DecisionBuy     Decision = "BUY"
	DecisionDontBuy Decision = "DON'T BUY"
)

// Recommendation pairs a decision with a human-readable reason.
type Recommendation struct {
	Decision Decision
	Reason   string
}

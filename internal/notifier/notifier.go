package notifier

import (
	"context"
	"math"
)

// DefaultThresholdPct is the day-over-day move, in percent, above which an alert is sent.
const DefaultThresholdPct = 5.0

// Notifier delivers an alert message to a recipient.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, htmlBody string) error
}

// ShouldAlert reports whether the absolute change exceeds the threshold.
func ShouldAlert(changePct, thresholdPct float64) bool {
	return math.Abs(changePct) > thresholdPct
}

// NoopNotifier drops every message.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (NoopNotifier) Send(_ context.Context, _, _, _ string) error { return nil }

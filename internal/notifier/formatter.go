package notifier

import (
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"RoboAdvisor/internal/model"
)

// ToUSD formats v as dollars with a thousands separator and two decimals.
func ToUSD(v float64) string {
	return "$ " + humanize.FormatFloat("#,###.##", v)
}

// Timestamp formats the time a request was made.
func Timestamp(t time.Time) string {
	return "Request at: " + t.Format("2006-01-02 15:04:05")
}

// DecisionLabel is the shouted form of a decision used in reports.
func DecisionLabel(d model.Decision) string {
	return string(d) + "!"
}

// FormatAlertSubject formats the subject line of a price movement alert.
func FormatAlertSubject(a *model.Analysis) string {
	return fmt.Sprintf("Price Movement Alert: %s %+.2f%%", a.Symbol, a.ChangePct)
}

// FormatAlertHTML formats the body of a price movement alert.
func FormatAlertHTML(a *model.Analysis) string {
	var b strings.Builder
	direction := "up"
	if a.ChangePct < 0 {
		direction = "down"
	}
	b.WriteString("<html><body>\n")
	b.WriteString(fmt.Sprintf("<h2>%s is %s %.2f%% since the previous close</h2>\n",
		html.EscapeString(a.Symbol), direction, math.Abs(a.ChangePct)))
	b.WriteString(fmt.Sprintf("<p>Latest close (%s): <b>%s</b><br>\n",
		a.Latest.Timestamp.Format(model.DateLayout), ToUSD(a.Latest.Close)))
	b.WriteString(fmt.Sprintf("Previous close (%s): <b>%s</b><br>\n",
		a.Previous.Timestamp.Format(model.DateLayout), ToUSD(a.Previous.Close)))
	b.WriteString(fmt.Sprintf("Recent high: %s<br>\nRecent low: %s</p>\n", ToUSD(a.RecentHigh), ToUSD(a.RecentLow)))
	b.WriteString(fmt.Sprintf("<p>Recommendation: <b>%s</b><br>\nReason: %s</p>\n",
		html.EscapeString(DecisionLabel(a.Recommendation.Decision)), html.EscapeString(a.Recommendation.Reason)))
	b.WriteString(fmt.Sprintf("<p>%s</p>\n", Timestamp(a.RequestedAt)))
	b.WriteString("</body></html>\n")
	return b.String()
}

package notifier

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"RoboAdvisor/internal/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	labelStyle    = lipgloss.NewStyle().Faint(true)
	buyStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	dontBuyStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	upStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	downStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	separatorLine = strings.Repeat("-", 30)
)

// FormatConsoleReport renders the per-symbol summary printed to the terminal.
func FormatConsoleReport(a *model.Analysis) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(labelStyle.Render(label+":") + " " + value + "\n")
	}

	b.WriteString(separatorLine + "\n")
	b.WriteString(titleStyle.Render("SELECTED SYMBOL: "+a.Symbol) + "\n")
	b.WriteString(separatorLine + "\n")
	b.WriteString(Timestamp(a.RequestedAt) + "\n")
	b.WriteString(separatorLine + "\n")
	line("LATEST DAY", a.LastRefreshed)
	line("LATEST CLOSE", ToUSD(a.Latest.Close))
	line("RECENT HIGH", ToUSD(a.RecentHigh))
	line("RECENT LOW", ToUSD(a.RecentLow))
	line("DAY-OVER-DAY CHANGE", formatChange(a.ChangePct))
	b.WriteString(separatorLine + "\n")

	style := buyStyle
	if a.Recommendation.Decision != model.DecisionBuy {
		style = dontBuyStyle
	}
	line("RECOMMENDATION", style.Render(DecisionLabel(a.Recommendation.Decision)))
	line("RECOMMENDATION REASON", a.Recommendation.Reason)
	b.WriteString(separatorLine + "\n")
	b.WriteString(titleStyle.Render("HAPPY INVESTING!") + "\n")
	b.WriteString(separatorLine + "\n")
	return b.String()
}

func formatChange(pct float64) string {
	s := fmt.Sprintf("%+.2f%%", pct)
	switch {
	case pct > 0:
		return upStyle.Render(s + " ▲")
	case pct < 0:
		return downStyle.Render(s + " ▼")
	}
	return s
}

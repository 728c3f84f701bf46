package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Renderer writes line charts of closing prices as standalone HTML pages.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Path returns the default chart file for a symbol under dir.
func Path(dir, symbol string) string {
	return filepath.Join(dir, fmt.Sprintf("chart_%s.html", symbol))
}

// RenderLine draws closes against dates and writes the page to dest.
func (r *Renderer) RenderLine(dest, title string, dates []string, closes []float64) error {
	if len(dates) != len(closes) {
		return fmt.Errorf("chart: %d dates but %d closes", len(dates), len(closes))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "Daily close (USD)"}),
	)

	points := make([]opts.LineData, len(closes))
	for i, c := range closes {
		points[i] = opts.LineData{Value: c}
	}
	line.SetXAxis(dates).AddSeries("Close", points)

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("chart: create dir: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("chart: create file: %w", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("chart: render: %w", err)
	}
	return f.Close()
}

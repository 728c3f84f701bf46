package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"RoboAdvisor/internal/model"
)

// CSVHeader is the header row of a price file.
var CSVHeader = []string{"timestamp", "open", "high", "low", "close", "volume"}

// CSVWriter writes one price file per symbol under Dir.
type CSVWriter struct {
	Dir string
}

// NewCSVWriter creates a CSVWriter rooted at dir.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{Dir: dir}
}

// Path returns the file a symbol's prices are written to.
func (w *CSVWriter) Path(symbol string) string {
	return filepath.Join(w.Dir, fmt.Sprintf("prices_%s.csv", symbol))
}

// WriteSeries writes the series in its own order, header first, replacing any
// previous file for the symbol.
func (w *CSVWriter) WriteSeries(symbol string, series model.Series) (string, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	path := w.Path(symbol)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(CSVHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, b := range series {
		row := []string{
			b.Timestamp.Format(model.DateLayout),
			formatFloat(b.Open),
			formatFloat(b.High),
			formatFloat(b.Low),
			formatFloat(b.Close),
			formatFloat(b.Volume),
		}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return path, f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

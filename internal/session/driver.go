package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"RoboAdvisor/internal/calculator"
	"RoboAdvisor/internal/chart"
	"RoboAdvisor/internal/model"
	"RoboAdvisor/internal/notifier"
	"RoboAdvisor/internal/recorder"
)

// Analyzer runs the per-symbol pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.Analysis, error)
}

// SeriesWriter persists a symbol's series and returns where it went.
type SeriesWriter interface {
	WriteSeries(symbol string, series model.Series) (string, error)
}

// ChartRenderer draws a closing-price line chart to dest.
type ChartRenderer interface {
	RenderLine(dest, title string, dates []string, closes []float64) error
}

// Options tune what the driver does with each result.
type Options struct {
	ChartDir          string
	AlertRecipient    string
	AlertThresholdPct float64
	Progress          io.Writer // nil disables the progress bar
}

// Driver processes symbols one at a time and hands each result to the
// output collaborators. Nil collaborators are skipped.
type Driver struct {
	Analyzer Analyzer
	Store    SeriesWriter
	Charts   ChartRenderer
	Recorder recorder.Recorder
	Notifier notifier.Notifier
	Out      io.Writer
	Logger   *zap.Logger
	Options  Options
}

// Run analyzes every symbol in order. A failing symbol is reported and skipped;
// the returned error joins all per-symbol failures.
func (d *Driver) Run(ctx context.Context, symbols []string) error {
	if len(symbols) == 0 {
		return model.ErrNoSymbols
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	out := d.Out
	if out == nil {
		out = io.Discard
	}

	progress := d.Options.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(symbols),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("Analyzing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	var errs []error
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := d.processSymbol(ctx, out, logger.With(zap.String("symbol", symbol)), symbol); err != nil {
			errs = append(errs, err)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return errors.Join(errs...)
}

func (d *Driver) processSymbol(ctx context.Context, out io.Writer, logger *zap.Logger, symbol string) error {
	fmt.Fprintf(out, "\nREQUESTING STOCK MARKET DATA FOR %s...\n", symbol)

	a, err := d.Analyzer.Analyze(ctx, symbol)
	if err != nil {
		logger.Error("analysis failed", zap.Error(err))
		fmt.Fprintln(out, describeFailure(symbol, err))
		return err
	}

	fmt.Fprint(out, notifier.FormatConsoleReport(a))

	if d.Store != nil {
		path, err := d.Store.WriteSeries(symbol, a.Series)
		if err != nil {
			logger.Warn("write series failed", zap.Error(err))
			fmt.Fprintf(out, "Could not save prices for %s: %v\n", symbol, err)
		} else {
			fmt.Fprintf(out, "WRITING DATA TO CSV: %s\n", path)
		}
	}

	if d.Charts != nil {
		dest := chart.Path(d.Options.ChartDir, symbol)
		title := fmt.Sprintf("%s Daily Closing Prices", symbol)
		if err := d.Charts.RenderLine(dest, title, calculator.Dates(a.Series), calculator.Closes(a.Series)); err != nil {
			logger.Warn("render chart failed", zap.Error(err))
			fmt.Fprintf(out, "Could not render chart for %s: %v\n", symbol, err)
		} else {
			fmt.Fprintf(out, "CHART: %s\n", dest)
		}
	}

	if d.Recorder != nil {
		if err := d.Recorder.RecordAnalysis(a); err != nil {
			logger.Warn("record analysis failed", zap.Error(err))
		}
	}

	d.maybeAlert(ctx, out, logger, a)
	return nil
}

func (d *Driver) maybeAlert(ctx context.Context, out io.Writer, logger *zap.Logger, a *model.Analysis) {
	threshold := d.Options.AlertThresholdPct
	if threshold <= 0 {
		threshold = notifier.DefaultThresholdPct
	}
	if d.Notifier == nil || d.Options.AlertRecipient == "" || !notifier.ShouldAlert(a.ChangePct, threshold) {
		return
	}

	subject := notifier.FormatAlertSubject(a)
	if err := d.Notifier.Send(ctx, d.Options.AlertRecipient, subject, notifier.FormatAlertHTML(a)); err != nil {
		logger.Warn("send alert failed", zap.Error(err))
		fmt.Fprintf(out, "Could not send price alert for %s: %v\n", a.Symbol, err)
		return
	}
	logger.Info("price alert sent", zap.Float64("change_pct", a.ChangePct))
	fmt.Fprintf(out, "PRICE ALERT SENT: %s\n", subject)
}

func describeFailure(symbol string, err error) string {
	switch {
	case model.IsSymbolNotFound(err):
		return fmt.Sprintf("OOPS, couldn't find %s! Please check the symbol and try again.", symbol)
	case model.IsMalformedData(err):
		return fmt.Sprintf("OOPS, the data returned for %s was malformed: %v", symbol, err)
	case model.IsInsufficientData(err):
		return fmt.Sprintf("OOPS, not enough price history for %s: %v", symbol, err)
	}
	return fmt.Sprintf("OOPS, something went wrong with %s: %v", symbol, err)
}

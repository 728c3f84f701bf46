package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"RoboAdvisor/internal/chart"
	"RoboAdvisor/internal/collector"
	"RoboAdvisor/internal/config"
	"RoboAdvisor/internal/logger"
	"RoboAdvisor/internal/notifier"
	"RoboAdvisor/internal/recorder"
	"RoboAdvisor/internal/session"
)

// app bundles the long-lived dependencies shared by every command.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	recorder recorder.Recorder
}

func newApp(cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	lg, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	return &app{cfg: cfg, log: lg, recorder: newRecorder(cfg, lg.Logger)}, nil
}

func (a *app) Close() {
	if err := a.recorder.Close(); err != nil {
		a.log.Warn("close recorder", zap.Error(err))
	}
	_ = a.log.Sync()
}

func newRecorder(cfg *config.Config, lg *zap.Logger) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0755); err != nil {
		lg.Warn("create database dir failed, using noop recorder", zap.Error(err))
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, lg)
	if err != nil {
		lg.Warn("init sqlite recorder failed, using noop recorder", zap.Error(err))
		return recorder.NewNoopRecorder()
	}
	return sr
}

func newFetcher(cfg *config.Config) (collector.Fetcher, error) {
	switch cfg.DataSource.Provider {
	case config.ProviderYahoo:
		return collector.NewYahooFetcher(cfg.Proxy), nil
	case config.ProviderPolygon:
		return collector.NewPolygonFetcher(cfg.DataSource.APIKey)
	default:
		return collector.NewAlphaVantageFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey,
			cfg.DataSource.OutputSize, cfg.Proxy), nil
	}
}

func newNotifier(cfg *config.Config) notifier.Notifier {
	switch cfg.Alerts.Channel {
	case config.ChannelEmail:
		return notifier.NewEmailNotifier(notifier.EmailConfig{
			SMTPHost: cfg.Email.SMTPHost,
			SMTPPort: cfg.Email.SMTPPort,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
		})
	case config.ChannelTelegram:
		return notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Proxy)
	default:
		return notifier.NewNoopNotifier()
	}
}

// newDriver wires the per-symbol pipeline from config.
func (a *app) newDriver(showProgress bool) (*session.Driver, error) {
	fetcher, err := newFetcher(a.cfg)
	if err != nil {
		return nil, fmt.Errorf("init fetcher: %w", err)
	}
	a.log.Info("data source selected", zap.String("source", fetcher.Name()))

	d := &session.Driver{
		Analyzer: collector.NewCollector(fetcher, a.log.Logger),
		Recorder: a.recorder,
		Notifier: newNotifier(a.cfg),
		Out:      os.Stdout,
		Logger:   a.log.Logger,
		Options: session.Options{
			ChartDir:          a.cfg.Output.DataDir,
			AlertRecipient:    a.cfg.Alerts.Recipient,
			AlertThresholdPct: a.cfg.Alerts.ThresholdPct,
		},
	}
	if a.cfg.Output.WriteCSV {
		d.Store = recorder.NewCSVWriter(a.cfg.Output.DataDir)
	}
	if a.cfg.Output.RenderChart {
		d.Charts = chart.NewRenderer()
	}
	if showProgress {
		d.Options.Progress = os.Stderr
	}
	return d, nil
}

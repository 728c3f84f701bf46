package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"RoboAdvisor/internal/notifier"
	"RoboAdvisor/internal/scheduler"
	"RoboAdvisor/internal/session"
)

func main() {
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:  "advisor",
		Usage: "Fetch daily prices for stock symbols and recommend whether to buy",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config file",
				Value:   "configs/config.yaml",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
		},
		Action:   adviseAction,
		Commands: []*cli.Command{
			{
				Name:  "watch",
				Usage: "Re-run the advisor for the configured watch list on a cron schedule",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "symbols",
						Aliases: []string{"s"},
						Usage:   "Symbols to watch, overrides watch.symbols",
					},
					&cli.BoolFlag{
						Name:  "run-now",
						Usage: "Run once immediately before waiting for the schedule",
					},
				},
				Action: watchAction,
			},
			{
				Name:  "history",
				Usage: "Show previously recorded recommendations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "symbol",
						Usage: "Only show runs for this symbol",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs to show",
						Value: 20,
					},
				},
				Action: historyAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// adviseAction prompts for symbols on stdin and prints a report for each.
func adviseAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd.String("config"))
	if err != nil {
		return err
	}
	defer a.Close()

	symbols, err := session.CollectSymbols(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	driver, err := a.newDriver(true)
	if err != nil {
		return err
	}
	return driver.Run(ctx, symbols)
}

func watchAction(ctx context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd.String("config"))
	if err != nil {
		return err
	}
	defer a.Close()

	symbols := a.cfg.Watch.Symbols
	if flagSymbols := cmd.StringSlice("symbols"); len(flagSymbols) > 0 {
		symbols = nil
		for _, s := range flagSymbols {
			if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
				symbols = append(symbols, s)
			}
		}
	}
	for _, s := range symbols {
		if !session.ValidSymbol(s) {
			return fmt.Errorf("invalid watch symbol %q", s)
		}
	}

	driver, err := a.newDriver(false)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := scheduler.NewScheduler(ctx, driver, symbols, a.log.Logger)
	if err := sched.Register(a.cfg.Watch.Cron); err != nil {
		return err
	}
	sched.Start()

	if cmd.Bool("run-now") {
		sched.Trigger()
	}

	a.log.Info("watching symbols, press Ctrl+C to stop", zap.Strings("symbols", symbols))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	a.log.Info("shutdown signal received, stopping")
	cancel()
	sched.Stop()
	return nil
}

func historyAction(_ context.Context, cmd *cli.Command) error {
	a, err := newApp(cmd.String("config"))
	if err != nil {
		return err
	}
	defer a.Close()

	symbol := strings.ToUpper(strings.TrimSpace(cmd.String("symbol")))
	entries, err := a.recorder.History(symbol, int(cmd.Int("limit")))
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("RECORDED AT", "SYMBOL", "LATEST DAY", "CLOSE", "HIGH", "LOW", "CHANGE", "DECISION")
	for _, e := range entries {
		t.Row(
			e.RecordedAt.Format("2006-01-02 15:04:05"),
			e.Symbol,
			e.LastRefreshed,
			notifier.ToUSD(e.LatestClose),
			notifier.ToUSD(e.RecentHigh),
			notifier.ToUSD(e.RecentLow),
			fmt.Sprintf("%+.2f%%", e.ChangePct),
			string(e.Decision),
		)
	}
	fmt.Println(t.Render())
	return nil
}

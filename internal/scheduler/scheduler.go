package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"RoboAdvisor/internal/model"
)

// Runner analyzes a batch of symbols.
type Runner interface {
	Run(ctx context.Context, symbols []string) error
}

// Scheduler re-runs the advisor for a fixed watch list on a cron schedule.
type Scheduler struct {
	Cron    *cron.Cron
	Runner  Runner
	Symbols []string
	Logger  *zap.Logger
	Ctx     context.Context

	mu      sync.Mutex
	running bool
	pending sync.WaitGroup
}

// NewScheduler creates a new Scheduler. Cron specs include a seconds field.
func NewScheduler(ctx context.Context, runner Runner, symbols []string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Runner:  runner,
		Symbols: symbols,
		Logger:  logger,
		Ctx:     ctx,
	}
}

// Register adds the watch task under spec.
func (s *Scheduler) Register(spec string) error {
	if len(s.Symbols) == 0 {
		return model.ErrNoSymbols
	}
	if _, err := s.Cron.AddFunc(spec, s.RunNow); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	s.Logger.Info("watch task registered", zap.String("cron", spec), zap.Strings("symbols", s.Symbols))
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started")
}

// Stop stops the scheduler and waits for running tasks, including ones
// started by Trigger, to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.pending.Wait()
	s.Logger.Info("scheduler stopped")
}

// Trigger starts the watch task in the background. Stop waits for it.
func (s *Scheduler) Trigger() {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.RunNow()
	}()
}

// RunNow executes the watch task immediately. Overlapping runs are skipped.
func (s *Scheduler) RunNow() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.Logger.Warn("previous watch run still in progress, skipping")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	s.Logger.Info("running watch task", zap.Strings("symbols", s.Symbols))
	if err := s.Runner.Run(s.Ctx, s.Symbols); err != nil {
		s.Logger.Error("watch run finished with errors", zap.Error(err))
		return
	}
	s.Logger.Info("watch run complete")
}

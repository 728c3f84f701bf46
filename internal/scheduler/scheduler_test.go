package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RoboAdvisor/internal/model"
)

type fakeRunner struct {
	mu    sync.Mutex
	calls [][]string
	err   error
	block chan struct{}
}

func (f *fakeRunner) Run(_ context.Context, symbols []string) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, symbols)
	return f.err
}

func TestRegister(t *testing.T) {
	runner := &fakeRunner{}
	s := NewScheduler(context.Background(), runner, []string{"MSFT"}, nil)

	require.NoError(t, s.Register("0 0 18 * * 1-5"))
	assert.Len(t, s.Cron.Entries(), 1)

	err := s.Register("not a cron spec")
	assert.Error(t, err)
}

func TestRegisterWithoutSymbols(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeRunner{}, nil, nil)
	assert.ErrorIs(t, s.Register("0 0 18 * * 1-5"), model.ErrNoSymbols)
}

func TestRunNow(t *testing.T) {
	runner := &fakeRunner{err: errors.New("partial failure")}
	s := NewScheduler(context.Background(), runner, []string{"MSFT", "AAPL"}, nil)

	s.RunNow()
	s.RunNow()

	require.Len(t, runner.calls, 2)
	assert.Equal(t, []string{"MSFT", "AAPL"}, runner.calls[0])
}

func TestRunNowSkipsOverlap(t *testing.T) {
	runner := &fakeRunner{block: make(chan struct{})}
	s := NewScheduler(context.Background(), runner, []string{"MSFT"}, nil)

	done := make(chan struct{})
	go func() {
		s.RunNow()
		close(done)
	}()

	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.running
	}, time.Second, 5*time.Millisecond)

	s.RunNow()
	close(runner.block)
	<-done

	assert.Len(t, runner.calls, 1)
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(context.Background(), &fakeRunner{}, []string{"MSFT"}, nil)
	require.NoError(t, s.Register("@every 1h"))
	s.Start()
	s.Stop()
}

func TestStopWaitsForTriggeredRun(t *testing.T) {
	runner := &fakeRunner{block: make(chan struct{})}
	s := NewScheduler(context.Background(), runner, []string{"MSFT"}, nil)
	require.NoError(t, s.Register("@every 1h"))
	s.Start()

	s.Trigger()
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.running
	}, time.Second, 5*time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a triggered run was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(runner.block)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after the run finished")
	}

	runner.mu.Lock()
	defer runner.mu.Unlock()
	assert.Len(t, runner.calls, 1)
}

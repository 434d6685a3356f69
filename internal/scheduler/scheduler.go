package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"PAIBot/internal/session"
)

// Sweeper is the part of the session store the scheduler needs.
type Sweeper interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron    *cron.Cron
	Store   Sweeper
	Timeout time.Duration
	Ctx     context.Context
	log     *zap.Logger
	now     func() time.Time
}

// NewScheduler creates a new Scheduler. Sessions idle for longer than timeout
// and not yet complete are removed on every sweep.
func NewScheduler(ctx context.Context, store Sweeper, timeout time.Duration, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Store:   store,
		Timeout: timeout,
		Ctx:     ctx,
		log:     log,
		now:     time.Now,
	}
}

// RegisterAll registers the session sweep task.
func (s *Scheduler) RegisterAll(sweepCron string) error {
	if _, err := s.Cron.AddFunc(sweepCron, func() { s.SweepNow() }); err != nil {
		return fmt.Errorf("register sweep task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// SweepNow deletes expired sessions immediately and returns how many were removed.
func (s *Scheduler) SweepNow() int64 {
	cutoff := s.now().Add(-s.Timeout)
	n, err := s.Store.DeleteExpired(s.Ctx, cutoff)
	if err != nil {
		s.log.Error("sweep expired sessions", zap.Error(err))
		return 0
	}
	if n > 0 {
		s.log.Info("expired sessions removed", zap.Int64("count", n), zap.Time("cutoff", cutoff))
	}
	return n
}

var _ Sweeper = session.Store(nil)

package scheduler

import (
	"context"
	"errors"
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockie/backend/internal/application/sync"
)

// ---------------------------------------------------------------------------
// Run Records
// ---------------------------------------------------------------------------

// RunStatus represents the outcome of one scheduled sync run
type RunStatus string

const (
	RunStatusRunning RunStatus = "RUNNING"
	RunStatusSuccess RunStatus = "SUCCESS"
	RunStatusPartial RunStatus = "PARTIAL"
	RunStatusSkipped RunStatus = "SKIPPED"
	RunStatusFailed  RunStatus = "FAILED"
)

// Run records a single scheduled order sync invocation
type Run struct {
	ID          uuid.UUID
	StartedAt   time.Time
	CompletedAt *time.Time
	Status      RunStatus
	Error       string
	Report      *sync.Report
}

// ---------------------------------------------------------------------------
// OrderSyncRunner
// ---------------------------------------------------------------------------

// OrderSyncRunner executes one order sync pass. Satisfied by
// sync.OrderSyncService.
type OrderSyncRunner interface {
	Run(ctx context.Context) (*sync.Report, error)
}

// ---------------------------------------------------------------------------
// Config
// ---------------------------------------------------------------------------

// Config holds configuration for the order sync scheduler
type Config struct {
	// Enabled indicates if periodic order sync is enabled
	Enabled bool
	// Interval is how often to run the order sync
	Interval time.Duration
	// RunTimeout is the maximum time a single run can take
	RunTimeout time.Duration
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		Interval:   15 * time.Minute,
		RunTimeout: 10 * time.Minute,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return ErrInvalidConfig
	}
	if c.RunTimeout <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// ---------------------------------------------------------------------------
// OrderSyncScheduler
// ---------------------------------------------------------------------------

// OrderSyncScheduler runs the order sync job on a fixed interval. Overlap
// with a manually triggered sync is prevented by the job guard inside the
// runner itself; a run rejected by the guard is recorded as skipped, not
// failed.
type OrderSyncScheduler struct {
	config Config
	runner OrderSyncRunner
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        gosync.WaitGroup
	mu        gosync.Mutex
	isRunning bool

	// Run history for monitoring (in-memory, limited size)
	historyMu  gosync.RWMutex
	history    []*Run
	maxHistory int
}

// NewOrderSyncScheduler creates a new order sync scheduler
func NewOrderSyncScheduler(config Config, runner OrderSyncRunner, logger *zap.Logger) (*OrderSyncScheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &OrderSyncScheduler{
		config:     config,
		runner:     runner,
		logger:     logger,
		history:    make([]*Run, 0, 50),
		maxHistory: 50,
	}, nil
}

// Start starts the scheduler loop. A disabled scheduler starts nothing and
// returns nil.
func (s *OrderSyncScheduler) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.logger.Info("Order sync scheduler disabled")
		return nil
	}

	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Order sync scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("run_timeout", s.config.RunTimeout),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *OrderSyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Order sync scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Order sync scheduler stop timed out")
		return ctx.Err()
	}
}

// runLoop runs the sync on every tick. The first run fires immediately so a
// fresh deployment does not wait a full interval for its first pull.
func (s *OrderSyncScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce executes a single sync run and records the outcome
func (s *OrderSyncScheduler) runOnce(ctx context.Context) {
	run := &Run{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		Status:    RunStatusRunning,
	}

	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	report, err := s.runner.Run(runCtx)

	now := time.Now()
	run.CompletedAt = &now
	run.Report = report

	switch {
	case errors.Is(err, sync.ErrSyncAlreadyRunning):
		run.Status = RunStatusSkipped
		s.logger.Info("Order sync run skipped, job already running",
			zap.String("run_id", run.ID.String()),
		)

	case err != nil:
		run.Status = RunStatusFailed
		run.Error = err.Error()
		s.logger.Error("Order sync run failed",
			zap.String("run_id", run.ID.String()),
			zap.Error(err),
		)

	case report != nil && len(report.Failures) > 0:
		run.Status = RunStatusPartial
		s.logger.Warn("Order sync run completed with failures",
			zap.String("run_id", run.ID.String()),
			zap.Int("applied", report.Applied),
			zap.Int("skipped", report.Skipped),
		)

	default:
		run.Status = RunStatusSuccess
		if report != nil {
			s.logger.Info("Order sync run completed",
				zap.String("run_id", run.ID.String()),
				zap.Int("pages", report.Pages),
				zap.Int("fetched", report.Fetched),
				zap.Int("applied", report.Applied),
				zap.Duration("duration", report.Duration),
			)
		}
	}

	s.addToHistory(run)
}

// addToHistory adds a completed run to history
func (s *OrderSyncScheduler) addToHistory(run *Run) {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	// Add to front
	s.history = append([]*Run{run}, s.history...)

	// Trim if over limit
	if len(s.history) > s.maxHistory {
		s.history = s.history[:s.maxHistory]
	}
}

// History returns the most recent runs, newest first
func (s *OrderSyncScheduler) History(limit int) []*Run {
	s.historyMu.RLock()
	defer s.historyMu.RUnlock()

	if limit <= 0 || limit > len(s.history) {
		limit = len(s.history)
	}

	result := make([]*Run, limit)
	copy(result, s.history[:limit])
	return result
}

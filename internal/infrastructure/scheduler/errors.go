package scheduler

import "errors"

var (
	// ErrInvalidConfig is returned when scheduler configuration is invalid
	ErrInvalidConfig = errors.New("scheduler: invalid configuration")

	// ErrSchedulerNotRunning is returned when interacting with a stopped scheduler
	ErrSchedulerNotRunning = errors.New("scheduler: not running")
)

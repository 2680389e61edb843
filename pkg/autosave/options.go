package autosave

import "time"

// Logger receives save failures. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

// Scheduler starts timers. The default wraps time.AfterFunc; tests swap in a
// manual clock.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Option configures a Controller.
type Option func(*Controller)

// WithDelay overrides the debounce delay.
func WithDelay(delay time.Duration) Option {
	return func(c *Controller) {
		if delay > 0 {
			c.delay = delay
		}
	}
}

// WithScheduler swaps the timer implementation.
func WithScheduler(scheduler Scheduler) Option {
	return func(c *Controller) {
		if scheduler != nil {
			c.scheduler = scheduler
		}
	}
}

// WithLogger attaches a logger for save failures.
func WithLogger(logger Logger) Option {
	return func(c *Controller) {
		if logger == nil {
			c.logger = noopLogger{}
			return
		}
		c.logger = logger
	}
}

// WithSaveHook registers a callback invoked after every save attempt with
// the save error, if any.
func WithSaveHook(fn func(error)) Option {
	return func(c *Controller) {
		c.onSave = fn
	}
}

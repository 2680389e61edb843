package autosave

import (
	"errors"
	"sync"
	"time"

	"github.com/goliatone/go-surveybuilder/pkg/model"
)

// DefaultDelay is the quiet period that must elapse after the last change
// before a save is attempted.
const DefaultDelay = time.Second

// State is the controller's position in the Idle → Pending → Saving cycle.
type State int

const (
	StateIdle State = iota
	StatePending
	StateSaving
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSaving:
		return "saving"
	default:
		return "idle"
	}
}

// Source produces the snapshot to persist at save time.
type Source func() model.Snapshot

// Saver writes a snapshot. store.Store satisfies it.
type Saver interface {
	Save(model.Snapshot) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(model.Snapshot) error

// Save implements Saver.
func (f SaverFunc) Save(snapshot model.Snapshot) error {
	return f(snapshot)
}

// Controller debounces change notifications into snapshot saves. It owns a
// single timer handle: every Notify cancels the previous timer and starts a
// new one, so only the last change in a burst leads to a save.
type Controller struct {
	mu sync.Mutex
	// writeMu is held from the cancellation check until the write returns,
	// so Stop waits for an in-flight write. Lock order is writeMu then mu.
	writeMu sync.Mutex

	source    Source
	saver     Saver
	scheduler Scheduler
	delay     time.Duration
	logger    Logger
	onSave    func(error)

	state      State
	timer      Timer
	generation uint64
	dirty      bool
	saves      int
	failures   int
}

// New builds a controller that snapshots from source and writes to saver.
func New(source Source, saver Saver, options ...Option) (*Controller, error) {
	if source == nil {
		return nil, errors.New("autosave: source is required")
	}
	if saver == nil {
		return nil, errors.New("autosave: saver is required")
	}
	c := &Controller{
		source:    source,
		saver:     saver,
		scheduler: realScheduler{},
		delay:     DefaultDelay,
		logger:    noopLogger{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Notify records a field change or list mutation. While a save is running
// the change is remembered and a fresh timer starts once it completes.
func (c *Controller) Notify() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSaving {
		c.dirty = true
		return
	}
	c.state = StatePending
	c.restartTimerLocked()
}

// Flush saves immediately when a save is pending. It reports whether a save
// was attempted.
func (c *Controller) Flush() bool {
	c.mu.Lock()
	if c.state != StatePending {
		c.mu.Unlock()
		return false
	}
	c.cancelTimerLocked()
	c.state = StateSaving
	gen := c.generation
	c.mu.Unlock()

	c.save(gen)
	return true
}

// Stop cancels a pending save without writing anything. A save whose timer
// already fired is dropped unless its write has started, in which case Stop
// returns after that write completes.
func (c *Controller) Stop() {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelTimerLocked()
	c.dirty = false
	if c.state == StatePending {
		c.state = StateIdle
	}
}

// State reports the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Saves reports how many saves succeeded.
func (c *Controller) Saves() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves
}

// Failures reports how many saves failed.
func (c *Controller) Failures() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failures
}

func (c *Controller) restartTimerLocked() {
	c.cancelTimerLocked()
	gen := c.generation
	c.timer = c.scheduler.AfterFunc(c.delay, func() {
		c.fire(gen)
	})
}

// cancelTimerLocked stops the current timer and bumps the generation so a
// callback that already started running becomes a no-op.
func (c *Controller) cancelTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.generation++
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.state != StatePending {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.state = StateSaving
	c.mu.Unlock()

	c.save(gen)
}

// save runs outside mu; the source may take its own locks and the saver may
// call Notify. The write is skipped when Stop ran after the timer fired.
func (c *Controller) save(gen uint64) {
	snapshot := c.source()

	c.writeMu.Lock()
	c.mu.Lock()
	cancelled := gen != c.generation
	c.mu.Unlock()
	var err error
	if !cancelled {
		err = c.saver.Save(snapshot)
	}
	c.writeMu.Unlock()

	c.mu.Lock()
	switch {
	case cancelled:
	case err != nil:
		c.failures++
	default:
		c.saves++
	}
	if c.dirty {
		c.dirty = false
		c.state = StatePending
		c.restartTimerLocked()
	} else {
		c.state = StateIdle
	}
	hook := c.onSave
	c.mu.Unlock()

	if cancelled {
		c.logger.Printf("autosave: save cancelled")
		return
	}

	if err != nil {
		c.logger.Printf("autosave: save failed: %v", err)
	}
	if hook != nil {
		hook(err)
	}
}

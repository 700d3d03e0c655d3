package engine

import (
	"context"
	"sync"
	"time"

	"impactready/internal/model"
)

// DefaultDebounceWindow is the quiet period before a scheduled save fires
const DefaultDebounceWindow = 500 * time.Millisecond

// SaveFunc persists a full answer snapshot for a run
type SaveFunc func(ctx context.Context, runID string, answers map[string]model.AnswerValue) error

// Timer is the subset of *time.Timer the debouncer needs, injectable for tests
type Timer interface {
	Stop() bool
}

// TimerFactory schedules f after d. The default uses time.AfterFunc; tests
// substitute a manual factory so no real timers run.
type TimerFactory func(d time.Duration, f func()) Timer

// Debouncer coalesces rapid answer edits into batched saves. Each run has at
// most one pending timer (cancel-and-replace) and at most one save in flight;
// payloads are last-write-wins, so a save always carries the latest snapshot
// at the time it leaves. Failed saves are reported through the error handler
// and never retried automatically.
type Debouncer struct {
	save     SaveFunc
	window   time.Duration
	newTimer TimerFactory
	onError  func(runID string, err error)

	mu     sync.Mutex
	runs   map[string]*runState
	closed bool
}

type runState struct {
	timer   Timer
	pending map[string]model.AnswerValue
	saving  sync.Mutex // Held for the duration of a save; serializes in-flight sends per run
}

// NewDebouncer creates a debouncer with the default window and real timers
func NewDebouncer(save SaveFunc) *Debouncer {
	return &Debouncer{
		save:   save,
		window: DefaultDebounceWindow,
		newTimer: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		runs: make(map[string]*runState),
	}
}

// SetWindow overrides the debounce window
func (d *Debouncer) SetWindow(w time.Duration) {
	d.window = w
}

// SetTimerFactory overrides timer creation, for tests
func (d *Debouncer) SetTimerFactory(f TimerFactory) {
	d.newTimer = f
}

// SetErrorHandler registers the callback invoked with a SaveFailedError when a
// debounced save fails. Only saves fired by the timer report here; FlushNow
// returns its error directly.
func (d *Debouncer) SetErrorHandler(f func(runID string, err error)) {
	d.onError = f
}

// Schedule resets the run's pending timer and replaces its pending payload with
// the given snapshot. If a save is already in flight the in-flight request is
// untouched; the new payload goes out after it completes.
func (d *Debouncer) Schedule(runID string, answers map[string]model.AnswerValue) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	rs := d.run(runID)
	rs.pending = answers
	if rs.timer != nil {
		rs.timer.Stop()
	}
	rs.timer = d.newTimer(d.window, func() { d.fire(runID) })
}

// FlushNow cancels any pending timer and saves the given snapshot immediately,
// waiting for any in-flight save to finish first. Used before section
// transitions and submit.
func (d *Debouncer) FlushNow(ctx context.Context, runID string, answers map[string]model.AnswerValue) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	rs := d.run(runID)
	if rs.timer != nil {
		rs.timer.Stop()
		rs.timer = nil
	}
	rs.pending = nil
	d.mu.Unlock()

	rs.saving.Lock()
	defer rs.saving.Unlock()
	if err := d.save(ctx, runID, answers); err != nil {
		return &SaveFailedError{RunID: runID, Err: err}
	}
	return nil
}

// Close stops all pending timers so nothing fires after teardown. Schedule and
// FlushNow become no-ops.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	for _, rs := range d.runs {
		if rs.timer != nil {
			rs.timer.Stop()
			rs.timer = nil
		}
		rs.pending = nil
	}
}

// Forget drops all debouncer state for a finished run
func (d *Debouncer) Forget(runID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if rs, ok := d.runs[runID]; ok {
		if rs.timer != nil {
			rs.timer.Stop()
		}
		delete(d.runs, runID)
	}
}

// run returns the state for runID, creating it if needed. Caller holds d.mu.
func (d *Debouncer) run(runID string) *runState {
	rs, ok := d.runs[runID]
	if !ok {
		rs = &runState{}
		d.runs[runID] = rs
	}
	return rs
}

// fire sends the latest pending payload for a run. If an earlier save is still
// in flight it waits its turn; by the time it holds the send slot it re-reads
// the pending payload, so a superseded or flushed payload is simply dropped.
func (d *Debouncer) fire(runID string) {
	d.mu.Lock()
	rs, ok := d.runs[runID]
	d.mu.Unlock()
	if !ok {
		return
	}

	rs.saving.Lock()
	defer rs.saving.Unlock()

	d.mu.Lock()
	payload := rs.pending
	rs.pending = nil
	closed := d.closed
	d.mu.Unlock()
	if payload == nil || closed {
		return
	}

	if err := d.save(context.Background(), runID, payload); err != nil && d.onError != nil {
		d.onError(runID, &SaveFailedError{RunID: runID, Err: err})
	}
}

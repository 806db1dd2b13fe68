package timer

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/store"
	"github.com/hasanulkarim/UltimateProjectPlanner/pkg/metrics"
)

// Notifier receives timer events. Implementations must tolerate failure
// silently: notifications are enrichment, not correctness.
type Notifier interface {
	TimerCompleted(task model.Task)
	SnoozeElapsed(task model.Task)
}

// Runner ties the periodic loops to the timer's state transitions. The tick
// loop exists exactly while the timer is running and the snooze poll exactly
// while a snooze deadline is set; when a condition goes false its loop is
// torn down rather than left spinning.
type Runner struct {
	store    *store.Store
	notifier Notifier
	logger   *zap.Logger
	interval time.Duration

	mu         sync.Mutex
	stopped    bool
	tickStop   chan struct{}
	snoozeStop chan struct{}
}

func NewRunner(st *store.Store, notifier Notifier, logger *zap.Logger) *Runner {
	return &Runner{
		store:    st,
		notifier: notifier,
		logger:   logger,
		interval: time.Second,
	}
}

// Start registers the runner as a store observer and aligns the loops with
// whatever timer state was restored from disk.
func (r *Runner) Start() {
	r.store.OnChange(func(snap store.Snapshot) {
		r.sync(snap.Timer)
	})
	r.sync(r.store.Timer())
}

// Stop tears down any live loop. The runner cannot be restarted.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	if r.tickStop != nil {
		close(r.tickStop)
		r.tickStop = nil
	}
	if r.snoozeStop != nil {
		close(r.snoozeStop)
		r.snoozeStop = nil
	}
}

// sync reconciles loop existence with the timer value. It never blocks on a
// loop exiting: it may be invoked from inside a loop's own iteration via the
// store observer.
func (r *Runner) sync(t model.Timer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}

	running := t.IsRunning && t.TaskID != ""
	if running && r.tickStop == nil {
		r.tickStop = make(chan struct{})
		go r.tickLoop(r.tickStop)
	} else if !running && r.tickStop != nil {
		close(r.tickStop)
		r.tickStop = nil
	}

	snoozed := t.SnoozeUntil != nil
	if snoozed && r.snoozeStop == nil {
		r.snoozeStop = make(chan struct{})
		go r.snoozeLoop(r.snoozeStop)
	} else if !snoozed && r.snoozeStop != nil {
		close(r.snoozeStop)
		r.snoozeStop = nil
	}
}

// tickLoop advances the countdown once per interval using the wall-clock
// delta since the last whole second consumed, so a delayed callback or a
// suspended process catches up instead of under-counting.
func (r *Runner) tickLoop(stop chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			now := time.Now()
			delta := int64(now.Sub(last) / time.Second)
			if delta <= 0 {
				continue
			}
			last = last.Add(time.Duration(delta) * time.Second)

			r.store.Tick(delta)
			r.detectCompletion()
		}
	}
}

// detectCompletion pauses the timer and fires the notifier when the running
// countdown reaches the task target. Pausing makes the detection one-shot:
// the next true result requires an explicit restart.
func (r *Runner) detectCompletion() {
	t := r.store.Timer()
	if t.TaskID == "" {
		return
	}
	task, ok := r.store.TaskByID(t.TaskID)
	if !ok || !TargetReached(t, task) {
		return
	}

	r.store.PauseTimer()
	metrics.TimerCompletionCount.Inc()
	r.logger.Info("Timer target reached",
		zap.String("task_id", task.ID),
		zap.String("title", task.Title),
		zap.Int64("elapsed", t.ElapsedTime),
	)
	if r.notifier != nil {
		r.notifier.TimerCompleted(task)
	}
}

// snoozeLoop polls the snooze deadline once per interval. CheckSnoozeTimer
// returns true exactly once per window; the cleared deadline then tears this
// loop down through the store observer.
func (r *Runner) snoozeLoop(stop chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t := r.store.Timer()
			if t.SnoozeUntil == nil || t.TaskID == "" {
				continue
			}
			if !r.store.CheckSnoozeTimer() {
				continue
			}
			task, ok := r.store.TaskByID(t.TaskID)
			if !ok {
				continue
			}
			r.logger.Info("Snooze window elapsed",
				zap.String("task_id", task.ID),
				zap.String("title", task.Title),
			)
			if r.notifier != nil {
				r.notifier.SnoozeElapsed(task)
			}
		}
	}
}

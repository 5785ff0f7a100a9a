package brep

import "sync"

// Scheduler coalesces expensive preview computations during interactive
// drags. Scheduling a value while one is already pending replaces it —
// never queues a second. If a value arrives while a computation is in
// flight, exactly one more computation runs after the in-flight one
// finishes, with the newest value. There is never more than one
// computation in flight and never more than one pending beyond it.
//
// An in-flight computation always runs to completion; kernel calls are
// not interruptible. Cancel discards only a not-yet-started pending
// value.
type Scheduler[T any] struct {
	compute func(T)
	trigger <-chan struct{}

	mu      sync.Mutex
	pending *T
	closed  bool

	wake chan struct{}
	done chan struct{}
	wg   sync.WaitGroup
}

// SchedulerOption configures a Scheduler during creation.
type SchedulerOption func(*schedulerOptions)

type schedulerOptions struct {
	trigger <-chan struct{}
}

// WithTrigger binds computation starts to an external cadence, typically
// the display refresh: each receive on ch starts at most one pass over
// the pending value. Without a trigger, scheduling a value starts a
// computation as soon as the worker is free.
func WithTrigger(ch <-chan struct{}) SchedulerOption {
	return func(o *schedulerOptions) { o.trigger = ch }
}

// NewScheduler starts a scheduler invoking compute on its own worker
// goroutine. Close must be called to stop the worker.
func NewScheduler[T any](compute func(T), opts ...SchedulerOption) *Scheduler[T] {
	var o schedulerOptions
	for _, opt := range opts {
		opt(&o)
	}
	s := &Scheduler[T]{
		compute: compute,
		trigger: o.trigger,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

// Schedule replaces the pending value with v. Returns ErrSchedulerClosed
// after Close.
func (s *Scheduler[T]) Schedule(v T) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSchedulerClosed
	}
	s.pending = &v
	s.mu.Unlock()

	if s.trigger == nil {
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
	return nil
}

// Cancel discards the pending value, if any. A computation already in
// flight is unaffected and runs to completion.
func (s *Scheduler[T]) Cancel() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

// Close stops the worker and waits for it to exit. A still-pending value
// is computed before the worker stops; an in-flight computation finishes
// normally. Close is idempotent.
func (s *Scheduler[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	close(s.done)
	s.wg.Wait()
}

func (s *Scheduler[T]) run() {
	defer s.wg.Done()

	signal := (<-chan struct{})(s.wake)
	if s.trigger != nil {
		signal = s.trigger
	}
	for {
		select {
		case <-signal:
			s.drain()
		case <-s.done:
			s.drain()
			return
		}
	}
}

// drain computes pending values until none remains. Taking the value
// under the lock and computing outside it lets Schedule replace the next
// value while the current computation runs.
func (s *Scheduler[T]) drain() {
	for {
		s.mu.Lock()
		v := s.pending
		s.pending = nil
		s.mu.Unlock()
		if v == nil {
			return
		}
		s.compute(*v)
	}
}

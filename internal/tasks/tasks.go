// Package tasks implements the generic cooperative task manager (C7):
// handle-based lifecycle, permit-limited concurrency, and waker-driven
// pause/resume/cancel. Grounded on original_source/src/tasks.rs's
// State/Handle/Task/Manager, translating Rust's Future/Waker/
// tokio::Semaphore/JoinSet onto Go's goroutine-per-task model: a task's
// stashed Waker becomes a buffered wake channel its driving goroutine
// blocks on while Paused, and tokio::Semaphore becomes a buffered permit
// channel (no third-party scheduler or semaphore library appears anywhere
// in the retrieval pack, so this channel-based idiom is the one the corpus
// itself demonstrates — see teacher's internal/download/manager.go worker
// channels).
package tasks

import (
	"context"
	"sync"
	"sync/atomic"
)

// State is a task's lifecycle discriminant (spec §4.7).
type State int32

const (
	Pending State = iota
	Running
	Paused
	Cancelled
	Finished
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Cancelled:
		return "Cancelled"
	case Finished:
		return "Finished"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Body is the user-supplied work a task performs. It must observe ctx
// cancellation promptly: Handle.Cancel cancels ctx to unblock any
// in-progress blocking call inside Body. Body implementations that do real,
// resumable work in chunks (an HTTP read loop, an archive entry scan)
// should call WaitIfPaused(ctx) between chunks so a Pause request actually
// halts progress instead of merely being unreported until the next result.
type Body[T any] func(ctx context.Context) (T, error)

type handleCtxKey struct{}

// pausable is the subset of *Handle[T] that WaitIfPaused needs; declared
// without a type parameter so it can be recovered from a context.Context
// regardless of which T the originating Manager was instantiated with.
type pausable interface {
	waitIfPaused(ctx context.Context) error
}

// WaitIfPaused blocks the calling goroutine while the task that produced
// ctx is Paused, returning early if ctx is cancelled. Call it from inside a
// Body at any point where suspending makes sense (between HTTP read
// chunks, between archive entries). It is a no-op if ctx was not derived
// from a Manager.Spawn call (e.g. in a unit test that builds its own ctx).
func WaitIfPaused(ctx context.Context) error {
	h, ok := ctx.Value(handleCtxKey{}).(pausable)
	if !ok {
		return nil
	}
	return h.waitIfPaused(ctx)
}

// Handle is the externally-held reference to a scheduled task (spec §4.7).
type Handle[T any] struct {
	metadata any

	state   atomic.Int32
	mu      sync.Mutex
	result  T
	taskErr error
	hasRes  bool

	wake   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}

	pauseMu  sync.Mutex
	resumeCh chan struct{} // non-nil while Paused; closed to release waiters
}

// Metadata returns the task-identifying data supplied at construction.
func (h *Handle[T]) Metadata() any { return h.metadata }

// State returns a non-blocking snapshot of the task's lifecycle state.
func (h *Handle[T]) State() State { return State(h.state.Load()) }

// Result returns the task's outcome; ok is true only once State is
// Finished or Failed.
func (h *Handle[T]) Result() (value T, err error, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.result, h.taskErr, h.hasRes
}

// Pause requests a transition to Paused; a no-op unless the task is
// currently Running. Body implementations that call WaitIfPaused actually
// block at their next suspension point rather than merely having the
// transition go unreported.
func (h *Handle[T]) Pause() {
	// resumeCh is created before the state flip, not after: a concurrent
	// waitIfPaused call that observes State() == Paused must always find a
	// non-nil resumeCh to wait on, never a stale nil from before this call.
	// An existing open channel is kept, so a repeated Pause never strands a
	// goroutine already waiting on it.
	h.pauseMu.Lock()
	if h.resumeCh == nil {
		h.resumeCh = make(chan struct{})
	}
	h.pauseMu.Unlock()

	if h.state.CompareAndSwap(int32(Running), int32(Paused)) {
		h.signal()
	}
}

// Resume requests a transition out of Paused back to Running; a no-op
// unless the task is currently Paused. Releases any goroutine blocked in
// WaitIfPaused.
func (h *Handle[T]) Resume() {
	if h.state.CompareAndSwap(int32(Paused), int32(Running)) {
		h.releasePause()
		h.signal()
	}
}

// Cancel requests cancellation; a no-op unless the task is currently
// Pending, Running, or Paused. Takes effect cooperatively at the next
// poll/wake, per spec §5's cancellation semantics.
func (h *Handle[T]) Cancel() {
	for _, from := range []State{Pending, Running, Paused} {
		if h.state.CompareAndSwap(int32(from), int32(Cancelled)) {
			h.cancel()
			h.releasePause()
			h.signal()
			return
		}
	}
}

func (h *Handle[T]) releasePause() {
	h.pauseMu.Lock()
	if h.resumeCh != nil {
		close(h.resumeCh)
		h.resumeCh = nil
	}
	h.pauseMu.Unlock()
}

// waitIfPaused blocks the calling goroutine while the task is Paused,
// returning early (with ctx.Err()) if ctx is cancelled first. It is the
// mechanism by which Body implementations actually suspend their work at a
// real suspension point, rather than merely racing ahead while the driving
// goroutine stops reporting progress.
func (h *Handle[T]) waitIfPaused(ctx context.Context) error {
	for h.State() == Paused {
		h.pauseMu.Lock()
		ch := h.resumeCh
		h.pauseMu.Unlock()
		if ch == nil {
			// Resumed or cancelled between the State() check and here.
			break
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return ctx.Err()
}

// Wait blocks until the task reaches a terminal state.
func (h *Handle[T]) Wait() {
	<-h.done
}

func (h *Handle[T]) signal() {
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

// Manager is a generic handle-based scheduler enforcing a global
// concurrency permit (spec §4.7).
type Manager[T any] struct {
	permits chan struct{}

	mu      sync.Mutex
	handles map[*Handle[T]]struct{}
	wg      sync.WaitGroup
}

// NewManager builds a Manager. limit <= 0 means unlimited concurrency.
func NewManager[T any](limit int) *Manager[T] {
	m := &Manager[T]{handles: make(map[*Handle[T]]struct{})}
	if limit > 0 {
		m.permits = make(chan struct{}, limit)
	}
	return m
}

// Spawn constructs a task running body, enrolls it, and starts its driving
// goroutine. The task acquires one permit (if the manager has a limit)
// before body runs, and releases it unconditionally when the task reaches a
// terminal state; a cancelled task releases it without waiting for body to
// return.
func (m *Manager[T]) Spawn(ctx context.Context, metadata any, body Body[T]) *Handle[T] {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle[T]{
		metadata: metadata,
		wake:     make(chan struct{}, 1),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	h.state.Store(int32(Pending))

	m.mu.Lock()
	m.handles[h] = struct{}{}
	m.mu.Unlock()

	m.wg.Add(1)
	go m.drive(ctx, h, body)
	return h
}

// drive implements the polling discipline of spec §4.7, adapted to a
// goroutine that blocks on h.wake instead of returning Poll::Pending:
// Pending flips to Running and starts body; Paused blocks until woken;
// Cancelled/Finished/Failed exit immediately.
func (m *Manager[T]) drive(ctx context.Context, h *Handle[T], body Body[T]) {
	defer func() {
		m.mu.Lock()
		delete(m.handles, h)
		m.mu.Unlock()
		close(h.done)
		m.wg.Done()
	}()

	// Permit acquisition happens before the body runs and before the
	// Pending->Running flip, so a task waiting on a full semaphore still
	// reports State() == Pending (spec §8's concurrency-limit-1 case).
	release, err := m.acquire(ctx)
	if err != nil {
		h.finish(Cancelled, *new(T), nil)
		return
	}
	defer release()

	if !h.state.CompareAndSwap(int32(Pending), int32(Running)) {
		// Cancelled while waiting for a permit.
		h.finish(Cancelled, *new(T), nil)
		return
	}

	resultCh := make(chan struct {
		val T
		err error
	}, 1)
	bodyCtx := context.WithValue(ctx, handleCtxKey{}, h)
	go func() {
		val, err := body(bodyCtx)
		resultCh <- struct {
			val T
			err error
		}{val, err}
	}()

	for {
		switch h.State() {
		case Cancelled:
			h.finish(Cancelled, *new(T), nil)
			return
		case Paused:
			<-h.wake
			continue
		default:
		}

		select {
		case r := <-resultCh:
			if h.State() == Cancelled {
				h.finish(Cancelled, *new(T), nil)
				return
			}
			if r.err != nil {
				h.finish(Failed, *new(T), r.err)
			} else {
				h.finish(Finished, r.val, nil)
			}
			return
		case <-h.wake:
			continue
		}
	}
}

func (h *Handle[T]) finish(s State, val T, err error) {
	h.mu.Lock()
	if s == Finished || s == Failed {
		h.result = val
		h.taskErr = err
		h.hasRes = true
	}
	h.mu.Unlock()
	h.state.Store(int32(s))
}

func (m *Manager[T]) acquire(ctx context.Context) (func(), error) {
	if m.permits == nil {
		return func() {}, nil
	}
	select {
	case m.permits <- struct{}{}:
		return func() { <-m.permits }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// WaitAll blocks until no tasks remain enrolled (spec §4.7).
func (m *Manager[T]) WaitAll() {
	m.wg.Wait()
}

// Handles returns a snapshot of the currently-enrolled handles, for
// introspection (e.g. internal/control's status endpoint).
func (m *Manager[T]) Handles() []*Handle[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Handle[T], 0, len(m.handles))
	for h := range m.handles {
		out = append(out, h)
	}
	return out
}

package jobqueue

import "sync"

// State describes where a Queue is in its lifecycle.
type State int

const (
	StateUninitialized State = iota // zero value, never created with New
	StateOpen                       // accepting pushes
	StateClosing                    // Destroy called, buffered jobs remain
	StateDestroyed                  // closed, drained and released
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Queue is a fixed-capacity FIFO safe for any number of concurrent
// producers and consumers.
//
// All fields are guarded by mu. The three condition variables share mu:
// notEmpty wakes poppers, notFull wakes pushers and drained wakes Destroy.
type Queue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	drained  *sync.Cond

	buf      []T
	capacity int
	head     int // next slot to pop
	tail     int // next slot to fill
	size     int

	closed    bool
	destroyed bool
}

// New creates an empty queue holding at most capacity jobs.
func New[T any](capacity int) (*Queue[T], error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	q := &Queue[T]{
		buf:      make([]T, capacity),
		capacity: capacity,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	q.drained = sync.NewCond(&q.mu)
	return q, nil
}

func (q *Queue[T]) valid() error {
	if q == nil {
		return ErrNilQueue
	}
	if q.capacity == 0 {
		return ErrNotInitialized
	}
	return nil
}

// Push appends job to the tail of the queue, blocking while the queue is full.
// It returns ErrClosed if Destroy has been called, whether before Push started
// or while it was waiting for room.
func (q *Queue[T]) Push(job T) error {
	if err := q.valid(); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	for q.size == q.capacity && !q.closed {
		q.notFull.Wait()
	}
	if q.closed {
		return ErrClosed
	}

	q.buf[q.tail] = job
	q.tail = (q.tail + 1) % q.capacity
	q.size++
	if q.size == 1 {
		q.notEmpty.Broadcast()
	}
	return nil
}

// Pop removes the job at the head of the queue, blocking while the queue is
// empty and open. Once the queue is closed and empty it returns ErrDrained.
// Ownership of the returned job passes to the caller.
func (q *Queue[T]) Pop() (T, error) {
	var zero T
	if err := q.valid(); err != nil {
		return zero, err
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.size == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if q.size == 0 {
		return zero, ErrDrained
	}

	job := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) % q.capacity
	q.size--
	if q.size == q.capacity-1 {
		q.notFull.Broadcast()
	}
	if q.size == 0 {
		q.drained.Broadcast()
	}
	return job, nil
}

// Destroy closes the queue, wakes every blocked Push and Pop, and waits until
// all buffered jobs have been popped before releasing the buffer. Consumers
// must keep calling Pop or Destroy never returns.
//
// Only the first call succeeds; later calls return ErrClosed.
func (q *Queue[T]) Destroy() error {
	if err := q.valid(); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	q.closed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()

	for q.size > 0 {
		q.drained.Wait()
	}

	q.buf = nil
	q.destroyed = true
	return nil
}

// Len returns the number of buffered jobs.
func (q *Queue[T]) Len() int {
	if q.valid() != nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Cap returns the capacity the queue was created with.
func (q *Queue[T]) Cap() int {
	if q == nil {
		return 0
	}
	return q.capacity
}

// Closed reports whether Destroy has been called.
func (q *Queue[T]) Closed() bool {
	if q.valid() != nil {
		return false
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// State returns the current lifecycle state.
func (q *Queue[T]) State() State {
	if q.valid() != nil {
		return StateUninitialized
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	switch {
	case !q.closed:
		return StateOpen
	case q.destroyed:
		return StateDestroyed
	default:
		return StateClosing
	}
}

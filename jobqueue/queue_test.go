package jobqueue

import (
	"errors"
	"sync"
	"testing"
	"time"
)

const (
	settle   = 50 * time.Millisecond
	deadline = 2 * time.Second
)

func mustNew[T any](t *testing.T, capacity int) *Queue[T] {
	t.Helper()
	q, err := New[T](capacity)
	if err != nil {
		t.Fatalf("New(%d) error = %v", capacity, err)
	}
	return q
}

// waitDone fails the test if ch is not closed or sent on within deadline.
func waitDone[T any](t *testing.T, ch <-chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(deadline):
		t.Fatalf("%s did not complete in %v", what, deadline)
	}
	var zero T
	return zero
}

// assertBlocked fails the test if ch delivers within settle.
func assertBlocked[T any](t *testing.T, ch <-chan T, what string) {
	t.Helper()
	select {
	case <-ch:
		t.Fatalf("%s completed, expected it to block", what)
	case <-time.After(settle):
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		wantErr  error
	}{
		{name: "capacity one", capacity: 1},
		{name: "capacity 64", capacity: 64},
		{name: "zero capacity", capacity: 0, wantErr: ErrInvalidCapacity},
		{name: "negative capacity", capacity: -3, wantErr: ErrInvalidCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := New[string](tt.capacity)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New(%d) error = %v, want %v", tt.capacity, err, tt.wantErr)
				}
				if q != nil {
					t.Errorf("New(%d) returned a queue alongside an error", tt.capacity)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%d) unexpected error = %v", tt.capacity, err)
			}
			if q.Cap() != tt.capacity {
				t.Errorf("Cap() = %d, want %d", q.Cap(), tt.capacity)
			}
			if q.Len() != 0 {
				t.Errorf("Len() = %d, want 0", q.Len())
			}
			if q.State() != StateOpen {
				t.Errorf("State() = %v, want %v", q.State(), StateOpen)
			}
		})
	}
}

func TestInvalidHandles(t *testing.T) {
	var nilQueue *Queue[int]
	var zeroQueue Queue[int]

	tests := []struct {
		name    string
		q       *Queue[int]
		wantErr error
	}{
		{name: "nil queue", q: nilQueue, wantErr: ErrNilQueue},
		{name: "zero value queue", q: &zeroQueue, wantErr: ErrNotInitialized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.q.Push(1); !errors.Is(err, tt.wantErr) {
				t.Errorf("Push() error = %v, want %v", err, tt.wantErr)
			}
			if _, err := tt.q.Pop(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Pop() error = %v, want %v", err, tt.wantErr)
			}
			if err := tt.q.Destroy(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Destroy() error = %v, want %v", err, tt.wantErr)
			}
			if tt.q.Len() != 0 || tt.q.Cap() != 0 || tt.q.Closed() {
				t.Errorf("invalid queue reports Len=%d Cap=%d Closed=%v", tt.q.Len(), tt.q.Cap(), tt.q.Closed())
			}
			if tt.q.State() != StateUninitialized {
				t.Errorf("State() = %v, want %v", tt.q.State(), StateUninitialized)
			}
		})
	}
}

func TestFIFO(t *testing.T) {
	q := mustNew[int](t, 4)

	// Several laps around the ring so head and tail wrap.
	next := 0
	for round := 0; round < 5; round++ {
		for i := 0; i < 3; i++ {
			if err := q.Push(round*3 + i); err != nil {
				t.Fatalf("Push() error = %v", err)
			}
		}
		for i := 0; i < 3; i++ {
			got, err := q.Pop()
			if err != nil {
				t.Fatalf("Pop() error = %v", err)
			}
			if got != next {
				t.Errorf("FIFO violation: expected %d, got %d", next, got)
			}
			next++
		}
	}
}

func TestFIFOPerProducer(t *testing.T) {
	const producers = 4
	const perProducer = 500

	type job struct{ producer, seq int }
	q := mustNew[job](t, 8)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				if err := q.Push(job{p, i}); err != nil {
					t.Errorf("Push() error = %v", err)
					return
				}
			}
		}(p)
	}

	lastSeq := make([]int, producers)
	for i := range lastSeq {
		lastSeq[i] = -1
	}
	for n := 0; n < producers*perProducer; n++ {
		j, err := q.Pop()
		if err != nil {
			t.Fatalf("Pop() error = %v", err)
		}
		if j.seq != lastSeq[j.producer]+1 {
			t.Fatalf("producer %d: got seq %d after %d", j.producer, j.seq, lastSeq[j.producer])
		}
		lastSeq[j.producer] = j.seq
	}
	wg.Wait()

	if err := q.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
}

func TestCapacityInvariant(t *testing.T) {
	const capacity = 3
	q := mustNew[int](t, capacity)

	checkSize := func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		if q.size < 0 || q.size > capacity {
			t.Errorf("size = %d, outside [0, %d]", q.size, capacity)
		}
		if q.head < 0 || q.head >= capacity || q.tail < 0 || q.tail >= capacity {
			t.Errorf("head = %d tail = %d, outside [0, %d)", q.head, q.tail, capacity)
		}
	}

	stop := make(chan struct{})
	sampled := make(chan struct{})
	go func() {
		defer close(sampled)
		for {
			select {
			case <-stop:
				return
			default:
				checkSize()
			}
		}
	}()

	var wg sync.WaitGroup
	for p := 0; p < 3; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 300; i++ {
				if err := q.Push(i); err != nil {
					t.Errorf("Push() error = %v", err)
					return
				}
			}
		}()
	}
	for c := 0; c < 2; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 450; i++ {
				if _, err := q.Pop(); err != nil {
					t.Errorf("Pop() error = %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(stop)
	<-sampled
	checkSize()

	if q.Len() != 0 {
		t.Errorf("Len() = %d after balanced push/pop, want 0", q.Len())
	}
}

func TestPushBlocksWhenFull(t *testing.T) {
	q := mustNew[string](t, 2)

	if err := q.Push("A"); err != nil {
		t.Fatalf("Push(A) error = %v", err)
	}
	if err := q.Push("B"); err != nil {
		t.Fatalf("Push(B) error = %v", err)
	}

	pushed := make(chan error, 1)
	go func() {
		pushed <- q.Push("C")
	}()
	assertBlocked(t, pushed, "Push(C) on a full queue")

	got, err := q.Pop()
	if err != nil || got != "A" {
		t.Fatalf("Pop() = %q, %v; want A", got, err)
	}
	if err := waitDone(t, pushed, "Push(C) after Pop"); err != nil {
		t.Fatalf("Push(C) error = %v", err)
	}

	for _, want := range []string{"B", "C"} {
		got, err := q.Pop()
		if err != nil {
			t.Fatalf("Pop() error = %v", err)
		}
		if got != want {
			t.Errorf("Pop() = %q, want %q", got, want)
		}
	}
}

func TestPopBlocksWhenEmpty(t *testing.T) {
	q := mustNew[int](t, 2)

	popped := make(chan int, 1)
	go func() {
		v, err := q.Pop()
		if err != nil {
			t.Errorf("Pop() error = %v", err)
		}
		popped <- v
	}()
	assertBlocked(t, popped, "Pop() on an empty queue")

	if err := q.Push(7); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if got := waitDone(t, popped, "Pop() after Push"); got != 7 {
		t.Errorf("Pop() = %d, want 7", got)
	}
}

func TestNoLostJobs(t *testing.T) {
	const producers = 3
	const perProducer = 400
	const consumers = 5

	q := mustNew[int](t, 16)

	var mu sync.Mutex
	seen := make(map[int]int)

	var consumersWG sync.WaitGroup
	for c := 0; c < consumers; c++ {
		consumersWG.Add(1)
		go func() {
			defer consumersWG.Done()
			for {
				v, err := q.Pop()
				if errors.Is(err, ErrDrained) {
					return
				}
				if err != nil {
					t.Errorf("Pop() error = %v", err)
					return
				}
				mu.Lock()
				seen[v]++
				mu.Unlock()
			}
		}()
	}

	var producersWG sync.WaitGroup
	for p := 0; p < producers; p++ {
		producersWG.Add(1)
		go func(p int) {
			defer producersWG.Done()
			for i := 0; i < perProducer; i++ {
				if err := q.Push(p*perProducer + i); err != nil {
					t.Errorf("Push() error = %v", err)
				}
			}
		}(p)
	}
	producersWG.Wait()

	if err := q.Destroy(); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d after Destroy returned, want 0", q.Len())
	}
	consumersWG.Wait()

	if len(seen) != producers*perProducer {
		t.Errorf("delivered %d distinct jobs, want %d", len(seen), producers*perProducer)
	}
	for v, n := range seen {
		if n != 1 {
			t.Errorf("job %d delivered %d times", v, n)
		}
	}
}

func TestDestroyWaitsForDrain(t *testing.T) {
	const n = 5
	q := mustNew[int](t, n)
	for i := 0; i < n; i++ {
		if err := q.Push(i); err != nil {
			t.Fatalf("Push() error = %v", err)
		}
	}

	destroyed := make(chan error, 1)
	go func() {
		destroyed <- q.Destroy()
	}()
	assertBlocked(t, destroyed, "Destroy() with buffered jobs")
	waitClosed(t, q)

	if q.State() != StateClosing {
		t.Errorf("State() = %v, want %v", q.State(), StateClosing)
	}

	// A second Destroy while the first is draining is rejected at once.
	if err := waitDone(t, asyncErr(q.Destroy), "second Destroy() while draining"); !errors.Is(err, ErrClosed) {
		t.Errorf("second Destroy() error = %v, want %v", err, ErrClosed)
	}

	// Pushes after shutdown has begun fail without blocking.
	rejected := make(chan error, 1)
	go func() {
		rejected <- q.Push(99)
	}()
	if err := waitDone(t, rejected, "Push() on a closed queue"); !errors.Is(err, ErrClosed) {
		t.Errorf("Push() error = %v, want %v", err, ErrClosed)
	}

	for i := 0; i < n-1; i++ {
		got, err := q.Pop()
		if err != nil {
			t.Fatalf("Pop() error = %v", err)
		}
		if got != i {
			t.Errorf("Pop() = %d, want %d", got, i)
		}
	}
	assertBlocked(t, destroyed, "Destroy() with one job left")

	if got, err := q.Pop(); err != nil || got != n-1 {
		t.Fatalf("Pop() = %d, %v; want %d", got, err, n-1)
	}
	if err := waitDone(t, destroyed, "Destroy() after drain"); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if q.State() != StateDestroyed {
		t.Errorf("State() = %v, want %v", q.State(), StateDestroyed)
	}
	if r := waitDone(t, asyncPop(q), "Pop() on a destroyed queue"); !errors.Is(r.err, ErrDrained) {
		t.Errorf("Pop() error = %v, want %v", r.err, ErrDrained)
	}
}

func TestDestroyWakesBlockedPushers(t *testing.T) {
	q := mustNew[string](t, 1)
	if err := q.Push("A"); err != nil {
		t.Fatalf("Push(A) error = %v", err)
	}

	const pushers = 3
	results := make(chan error, pushers)
	for i := 0; i < pushers; i++ {
		go func() {
			results <- q.Push("late")
		}()
	}
	assertBlocked(t, results, "Push() on a full queue")

	destroyed := make(chan error, 1)
	go func() {
		destroyed <- q.Destroy()
	}()

	for i := 0; i < pushers; i++ {
		if err := waitDone(t, results, "blocked Push() after Destroy"); !errors.Is(err, ErrClosed) {
			t.Errorf("blocked Push() error = %v, want %v", err, ErrClosed)
		}
	}
	assertBlocked(t, destroyed, "Destroy() with A still buffered")

	if got, err := q.Pop(); err != nil || got != "A" {
		t.Fatalf("Pop() = %q, %v; want A", got, err)
	}
	if err := waitDone(t, destroyed, "Destroy() after drain"); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
}

func TestTerminationPropagation(t *testing.T) {
	const workers = 6
	q := mustNew[int](t, 4)

	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			_, err := q.Pop()
			results <- err
		}()
	}
	assertBlocked(t, results, "Pop() on an empty queue")

	if err := waitDone(t, asyncErr(q.Destroy), "Destroy() on an empty queue"); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}

	for i := 0; i < workers; i++ {
		if err := waitDone(t, results, "blocked Pop() after Destroy"); !errors.Is(err, ErrDrained) {
			t.Errorf("Pop() error = %v, want %v", err, ErrDrained)
		}
	}

	// Later pops never block either.
	if r := waitDone(t, asyncPop(q), "Pop() on a destroyed queue"); !errors.Is(r.err, ErrDrained) {
		t.Errorf("Pop() error = %v, want %v", r.err, ErrDrained)
	}
}

func TestDestroyEmptyQueue(t *testing.T) {
	q := mustNew[string](t, 4)

	if err := waitDone(t, asyncErr(q.Destroy), "Destroy() on an empty queue"); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if q.buf != nil {
		t.Error("Destroy() did not release the ring buffer")
	}
	if q.State() != StateDestroyed {
		t.Errorf("State() = %v, want %v", q.State(), StateDestroyed)
	}
	if err := q.Push("x"); !errors.Is(err, ErrClosed) {
		t.Errorf("Push() after Destroy error = %v, want %v", err, ErrClosed)
	}
	if err := q.Destroy(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Destroy() error = %v, want %v", err, ErrClosed)
	}
}

func TestPopReleasesReference(t *testing.T) {
	q := mustNew[*int](t, 2)
	v := 1
	if err := q.Push(&v); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if _, err := q.Pop(); err != nil {
		t.Fatalf("Pop() error = %v", err)
	}
	for i, slot := range q.buf {
		if slot != nil {
			t.Errorf("slot %d still references a popped job", i)
		}
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateUninitialized, "uninitialized"},
		{StateOpen, "open"},
		{StateClosing, "closing"},
		{StateDestroyed, "destroyed"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}

// waitClosed polls until a concurrent Destroy has flipped the closed flag.
func waitClosed[T any](t *testing.T, q *Queue[T]) {
	t.Helper()
	end := time.Now().Add(deadline)
	for !q.Closed() {
		if time.Now().After(end) {
			t.Fatalf("queue not closed within %v", deadline)
		}
		time.Sleep(time.Millisecond)
	}
}

func asyncErr(fn func() error) <-chan error {
	ch := make(chan error, 1)
	go func() { ch <- fn() }()
	return ch
}

type popResult[T any] struct {
	v   T
	err error
}

func asyncPop[T any](q *Queue[T]) <-chan popResult[T] {
	ch := make(chan popResult[T], 1)
	go func() {
		v, err := q.Pop()
		ch <- popResult[T]{v, err}
	}()
	return ch
}

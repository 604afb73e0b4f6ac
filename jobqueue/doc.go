// Package jobqueue provides a bounded, blocking FIFO for handing work from
// producers to a pool of consumers.
//
// A Queue has a fixed capacity chosen at construction. Push blocks while the
// queue is full and Pop blocks while it is empty. Both wait on condition
// variables rather than polling.
//
// Shutdown:
//
// Destroy closes the queue and then waits until every job that was already
// buffered has been popped. After Destroy starts:
//   - Push fails with ErrClosed, including pushers that were blocked on a full queue
//   - Pop keeps delivering buffered jobs
//   - Pop returns ErrDrained once the queue is closed and empty
//
// ErrDrained is the normal stop signal for a worker loop:
//
//	for {
//		job, err := q.Pop()
//		if errors.Is(err, jobqueue.ErrDrained) {
//			return
//		}
//		handle(job)
//	}
//
// The queue never inspects or copies job values. Once a job is popped the
// queue holds no reference to it. The package never logs.
package jobqueue

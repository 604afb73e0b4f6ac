package scan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/dendrascience/fscan/jobqueue"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultQueueCapacity is the number of pending paths the queue buffers
// between the walker and the workers.
const DefaultQueueCapacity = 64

// Handler processes one file. It is called from a worker goroutine and may
// run concurrently with other calls.
type Handler func(path string) error

// Options configures a Run.
type Options struct {
	Roots          []string
	Workers        int
	QueueCapacity  int // 0 means DefaultQueueCapacity
	FollowSymlinks bool
	Verbose        bool
	Logger         *log.Logger // nil means log.Default()
}

// Stats summarizes a finished Run.
type Stats struct {
	RunID     string        `json:"run_id"`
	Workers   int           `json:"workers"`
	Files     int64         `json:"files"`     // paths pushed onto the queue
	Processed int64         `json:"processed"` // handler calls that returned nil
	Failed    int64         `json:"failed"`    // handler calls that returned an error
	Dropped   int64         `json:"dropped"`   // paths the closed queue rejected
	Elapsed   time.Duration `json:"elapsed"`
}

// Run walks opts.Roots on the calling goroutine and hands every regular file to
// handle on one of opts.Workers goroutines.
//
// Handler errors are logged and counted; they never stop the run. When the
// walk finishes, or ctx is cancelled, Run destroys the queue. Destroy blocks
// until every queued path has been handed to a worker, so cancellation only
// stops discovering new files. Run returns after all workers have exited.
func Run(ctx context.Context, opts Options, handle Handler) (Stats, error) {
	if opts.Workers < 1 {
		return Stats{}, fmt.Errorf("%w: got %d", ErrInvalidWorkers, opts.Workers)
	}
	if len(opts.Roots) == 0 {
		return Stats{}, ErrNoRoots
	}
	capacity := opts.QueueCapacity
	if capacity == 0 {
		capacity = DefaultQueueCapacity
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	q, err := jobqueue.New[string](capacity)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to create job queue: %w", err)
	}

	start := time.Now()
	stats := Stats{RunID: uuid.NewString(), Workers: opts.Workers}
	var processed, failed atomic.Int64

	if opts.Verbose {
		logger.Printf("run %s: %d workers, queue capacity %d, roots %v", stats.RunID, opts.Workers, capacity, opts.Roots)
	}

	var g errgroup.Group
	for range opts.Workers {
		g.Go(func() error {
			for {
				path, err := q.Pop()
				if errors.Is(err, jobqueue.ErrDrained) {
					return nil
				}
				if err != nil {
					return fmt.Errorf("worker pop: %w", err)
				}
				if err := handle(path); err != nil {
					logger.Printf("failed to process %s: %v", path, err)
					failed.Add(1)
					continue
				}
				processed.Add(1)
			}
		})
	}

	walkErr := Walk(ctx, opts.Roots, opts.FollowSymlinks, logger, func(path string) error {
		if err := q.Push(path); err != nil {
			stats.Dropped++
			return nil
		}
		stats.Files++
		return nil
	})

	if err := q.Destroy(); err != nil {
		walkErr = errors.Join(walkErr, fmt.Errorf("failed to destroy job queue: %w", err))
	}
	if err := g.Wait(); err != nil {
		walkErr = errors.Join(walkErr, err)
	}

	stats.Processed = processed.Load()
	stats.Failed = failed.Load()
	stats.Elapsed = time.Since(start)

	if opts.Verbose {
		logger.Printf("run %s: %d files, %d processed, %d failed, %d dropped in %s",
			stats.RunID, stats.Files, stats.Processed, stats.Failed, stats.Dropped, stats.Elapsed)
	}
	return stats, walkErr
}

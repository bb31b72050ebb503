// Package worker runs transform jobs on a single background goroutine.
//
// A Worker serializes jobs through a FIFO queue, so at most one engine call
// is in flight per Worker. Every submitted job gets its own id and its own
// reply channel; a reply can only ever reach the submitter of that job.
package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/user/pixelworker/pkg/pipeline"
	"github.com/user/pixelworker/pkg/ports"
)

// ErrClosed is returned when submitting to a closed Worker.
var ErrClosed = errors.New("worker: closed")

// DefaultQueueSize is the queue capacity used when Options.QueueSize is 0.
const DefaultQueueSize = 16

// Handler executes one job. *dispatcher.Dispatcher implements it.
type Handler interface {
	Dispatch(ctx context.Context, req pipeline.Request) (pipeline.Result, error)
}

// JobID identifies a submitted job. Ids increase monotonically per Worker,
// starting at 1.
type JobID uint64

// Reply is the single message delivered for a job.
type Reply struct {
	ID      JobID
	Result  pipeline.Result
	Err     error
	Elapsed time.Duration
}

// Job is a handle on a submitted request.
type Job struct {
	ID JobID
	Op pipeline.Op

	ctx   context.Context
	req   pipeline.Request
	reply chan Reply
}

// Wait blocks until the job's reply arrives or ctx is done. When ctx ends
// first the job still runs; its reply is discarded.
func (j *Job) Wait(ctx context.Context) Reply {
	select {
	case r := <-j.reply:
		return r
	case <-ctx.Done():
		return Reply{ID: j.ID, Err: ctx.Err()}
	}
}

// Options configures a Worker.
type Options struct {
	// QueueSize is the number of jobs that may wait behind the running one.
	QueueSize int
}

// Worker owns one goroutine and processes jobs in submission order.
type Worker struct {
	handler Handler
	logger  ports.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan *Job

	nextID    atomic.Uint64
	processed atomic.Uint64

	closeOnce sync.Once
	done      chan struct{}
}

// New starts a Worker. Call Close to stop it.
func New(handler Handler, logger ports.Logger, opts Options) *Worker {
	size := opts.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}

	w := &Worker{
		handler: handler,
		logger:  logger.WithComponent("worker"),
		queue:   make(chan *Job, size),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w
}

// Submit enqueues req and returns its handle. It blocks while the queue is
// full, until ctx is done.
//
// The source pixels are handed over to the job: the caller must not modify
// them until the reply has been received.
func (w *Worker) Submit(ctx context.Context, req pipeline.Request) (*Job, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		return nil, ErrClosed
	}

	job := &Job{
		ID:    JobID(w.nextID.Add(1)),
		Op:    req.Op,
		ctx:   ctx,
		req:   req,
		reply: make(chan Reply, 1),
	}

	select {
	case w.queue <- job:
		w.logger.WithJob(uint64(job.ID)).Debug("Job queued (%s)", job.Op)
		return job, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Do submits req and waits for its reply.
func (w *Worker) Do(ctx context.Context, req pipeline.Request) (pipeline.Result, error) {
	job, err := w.Submit(ctx, req)
	if err != nil {
		return pipeline.Result{}, err
	}
	reply := job.Wait(ctx)
	return reply.Result, reply.Err
}

// Processed returns the number of jobs that have completed.
func (w *Worker) Processed() uint64 {
	return w.processed.Load()
}

// Close stops accepting jobs, lets queued jobs finish and waits for the
// goroutine to exit. It is safe to call more than once.
func (w *Worker) Close() error {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.queue)
		w.mu.Unlock()
	})
	<-w.done
	return nil
}

func (w *Worker) loop() {
	defer close(w.done)

	for job := range w.queue {
		job.reply <- w.run(job)
		w.processed.Add(1)
	}
}

func (w *Worker) run(job *Job) Reply {
	log := w.logger.WithJob(uint64(job.ID))

	if err := job.ctx.Err(); err != nil {
		log.Debug("Job skipped: %s", err)
		return Reply{ID: job.ID, Err: err}
	}

	start := time.Now()
	result, err := w.handler.Dispatch(job.ctx, job.req)
	elapsed := time.Since(start)

	if err != nil {
		log.Debug("Job failed (%s): %s", job.Op, err)
	} else {
		log.Debug("Job completed (%s) in %d ms", job.Op, elapsed.Milliseconds())
	}

	return Reply{ID: job.ID, Result: result, Err: err, Elapsed: elapsed}
}

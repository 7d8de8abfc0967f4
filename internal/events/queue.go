package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	batchSize  = 100
	flushEvery = 250 * time.Millisecond
	publishTO  = 2 * time.Second
)

// Queue buffers events in memory and publishes them in batches from a
// fixed set of workers.
type Queue struct {
	pub    Publisher
	log    *zap.Logger
	onDrop func()

	ch       chan Event
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

type QueueOptions struct {
	Buffer  int
	Workers int
	Logger  *zap.Logger
	// OnDrop is called for every event rejected because the buffer is full.
	OnDrop func()
}

// NewQueue spins up the workers immediately.
func NewQueue(pub Publisher, opts QueueOptions) *Queue {
	if opts.Buffer <= 0 {
		opts.Buffer = 1024
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.OnDrop == nil {
		opts.OnDrop = func() {}
	}
	q := &Queue{
		pub:    pub,
		log:    opts.Logger,
		onDrop: opts.OnDrop,
		ch:     make(chan Event, opts.Buffer),
		done:   make(chan struct{}),
	}
	for i := 0; i < opts.Workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

// Enqueue tries to queue an event without blocking.
// It reports false when the buffer is full or the queue is shut down.
func (q *Queue) Enqueue(ev Event) bool {
	select {
	case <-q.done:
		q.onDrop()
		return false
	default:
	}
	select {
	case q.ch <- ev:
		return true
	default:
		q.onDrop()
		return false
	}
}

// Ping checks the underlying publisher.
func (q *Queue) Ping(ctx context.Context) error {
	return q.pub.Ping(ctx)
}

// Shutdown signals workers to stop, flushes remaining events, and waits
// until they exit or ctx expires.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.stopOnce.Do(func() { close(q.done) })
	finished := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) worker() {
	defer q.wg.Done()
	tk := time.NewTicker(flushEvery)
	defer tk.Stop()

	batch := make([]Event, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), publishTO)
		err := q.pub.Publish(ctx, batch)
		cancel()
		if err != nil {
			q.log.Warn("publish book events", zap.Int("count", len(batch)), zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-q.done:
			// drain then flush
			for {
				select {
				case ev := <-q.ch:
					batch = append(batch, ev)
					if len(batch) >= batchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		case ev := <-q.ch:
			batch = append(batch, ev)
			if len(batch) >= batchSize {
				flush()
			}
		case <-tk.C:
			flush()
		}
	}
}

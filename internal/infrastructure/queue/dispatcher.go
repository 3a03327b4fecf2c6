package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/capsule/retail-inventory/internal/api/metrics"
	"github.com/capsule/retail-inventory/internal/core/domain"
	"github.com/capsule/retail-inventory/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher moves activity writes off the request path. Records are sharded
// by user id so one user's audit trail keeps its order. Record never blocks:
// when a worker's buffer is full the record is dropped and counted.
type Dispatcher struct {
	workers []chan job
	next    ports.ActivityRecorder
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

type job struct {
	ctx context.Context
	rec domain.ActivityRecord
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers feeding
// next. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, next ports.ActivityRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan job, numWorkers),
		next:    next,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan job, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. They run until Stop drains them.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Record implements ports.ActivityRecorder. The request context is detached
// so a finished request does not cancel its own audit write.
func (d *Dispatcher) Record(ctx context.Context, rec domain.ActivityRecord) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.ActivityRecordsTotal.WithLabelValues(string(rec.Type), "dropped").Inc()
		return
	}

	idx := d.shardIndex(rec.UserID)
	select {
	case d.workers[idx] <- job{ctx: context.WithoutCancel(ctx), rec: rec}:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.ActivityRecordsTotal.WithLabelValues(string(rec.Type), "dropped").Inc()
		d.log.Warn().
			Int64("user_id", rec.UserID).
			Str("activity_type", string(rec.Type)).
			Int("worker_id", idx).
			Msg("activity queue full, record dropped")
	}
}

// Stop refuses new records and waits until queued ones are written or ctx
// expires.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(userID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(id int, ch <-chan job) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for j := range ch {
		metrics.ActivityQueueDepth.WithLabelValues(label).Dec()
		d.next.Record(j.ctx, j.rec)
	}
}

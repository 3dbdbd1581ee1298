package worker

import (
	"context"
	"sync"
	"time"

	"github.com/pratik-mahalle/threatwatch/internal/domain/notification"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/metrics"
)

// Dispatcher runs notification jobs on a fixed pool of workers. Jobs run on
// the dispatcher's own context, never the request's, and carry no deadline
// beyond what each transport enforces.
type Dispatcher struct {
	router  notification.Router
	queue   chan notification.Job
	workers int
	logger  *logger.Logger

	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.RWMutex
	started bool
	closed  bool
}

// NewDispatcher creates a dispatcher with a buffered queue
func NewDispatcher(router notification.Router, workers, queueSize int, log *logger.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	base, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		router:  router,
		queue:   make(chan notification.Job, queueSize),
		workers: workers,
		logger:  log,
		base:    base,
		cancel:  cancel,
	}
}

// Start launches the workers
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work(i)
	}

	d.logger.WithFields(map[string]interface{}{
		"workers":    d.workers,
		"queue_size": cap(d.queue),
	}).Info("Notification dispatcher started")
}

// Enqueue never blocks. A full queue or a stopped dispatcher drops the job.
func (d *Dispatcher) Enqueue(job notification.Job) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(job, "dispatcher stopped")
		return false
	}

	select {
	case d.queue <- job:
		metrics.SetNotificationQueueDepth(len(d.queue))
		return true
	default:
		d.drop(job, "queue full")
		return false
	}
}

func (d *Dispatcher) drop(job notification.Job, reason string) {
	metrics.RecordNotificationDropped()
	d.logger.WithFields(map[string]interface{}{
		"alert_id": job.Alert.ID,
		"reason":   reason,
	}).ErrorWithErr(errors.NotificationFailure("dispatch", nil), "Notification job dropped")
}

func (d *Dispatcher) work(id int) {
	defer d.wg.Done()

	for job := range d.queue {
		metrics.SetNotificationQueueDepth(len(d.queue))

		if err := d.router.Route(d.base, job); err != nil {
			d.logger.WithFields(map[string]interface{}{
				"alert_id": job.Alert.ID,
				"worker":   id,
				"latency":  time.Since(job.EnqueuedAt).String(),
			}).ErrorWithErr(err, "Notification delivery failed")
		}
	}
}

// Stop refuses new jobs and waits for queued ones to finish. When ctx
// expires first, in-flight sends are cancelled.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	started := d.started
	d.mu.Unlock()

	if !started {
		d.cancel()
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		d.logger.Info("Notification dispatcher stopped")
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}

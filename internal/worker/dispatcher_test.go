package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/threatwatch/internal/domain/alert"
	"github.com/pratik-mahalle/threatwatch/internal/domain/notification"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/testutil"
)

type recordingRouter struct {
	mu      sync.Mutex
	routed  []int64
	release chan struct{}
	ctxErr  []error
	dated   []bool
	err     error
}

func (r *recordingRouter) Route(ctx context.Context, job notification.Job) error {
	if r.release != nil {
		select {
		case <-r.release:
		case <-ctx.Done():
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routed = append(r.routed, job.Alert.ID)
	r.ctxErr = append(r.ctxErr, ctx.Err())
	_, hasDeadline := ctx.Deadline()
	r.dated = append(r.dated, hasDeadline)
	return r.err
}

func (r *recordingRouter) ids() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.routed...)
}

func job(id int64) notification.Job {
	return notification.Job{Alert: alert.Alert{ID: id}, EnqueuedAt: time.Now()}
}

func TestDispatcher_RoutesEveryJob(t *testing.T) {
	router := &recordingRouter{err: testutil.ErrBoom}
	d := NewDispatcher(router, 3, 16, logger.Nop())
	d.Start()

	for i := int64(1); i <= 10; i++ {
		require.True(t, d.Enqueue(job(i)))
	}

	require.NoError(t, d.Stop(context.Background()))
	assert.ElementsMatch(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, router.ids())
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	router := &recordingRouter{release: make(chan struct{})}
	d := NewDispatcher(router, 1, 1, logger.Nop())

	// Not started: the single slot fills and the next job is dropped.
	assert.True(t, d.Enqueue(job(1)))
	assert.False(t, d.Enqueue(job(2)))

	close(router.release)
	d.Start()
	require.NoError(t, d.Stop(context.Background()))
	assert.Equal(t, []int64{1}, router.ids())
}

func TestDispatcher_EnqueueAfterStop(t *testing.T) {
	d := NewDispatcher(&recordingRouter{}, 1, 4, logger.Nop())
	d.Start()
	require.NoError(t, d.Stop(context.Background()))

	assert.False(t, d.Enqueue(job(1)))
	assert.NoError(t, d.Stop(context.Background()), "second stop is a no-op")
}

func TestDispatcher_RoutesOnOwnContext(t *testing.T) {
	router := &recordingRouter{}
	d := NewDispatcher(router, 1, 4, logger.Nop())

	require.True(t, d.Enqueue(job(7)))
	d.Start()
	require.NoError(t, d.Stop(context.Background()))

	router.mu.Lock()
	defer router.mu.Unlock()
	require.Len(t, router.ctxErr, 1)
	assert.NoError(t, router.ctxErr[0])
	assert.False(t, router.dated[0], "fan-out context should carry no deadline")
}

func TestDispatcher_StopDeadline(t *testing.T) {
	router := &recordingRouter{release: make(chan struct{})}
	d := NewDispatcher(router, 1, 4, logger.Nop())
	d.Start()
	require.True(t, d.Enqueue(job(1)))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := d.Stop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []int64{1}, router.ids(), "in-flight job is cancelled, not lost")
}

package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/task-tracker/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// TaskPurger is the slice of the task store the purge workers need.
type TaskPurger interface {
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}

// DedupChecker abstracts the replay guard (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, userID string) (bool, error)
	Mark(ctx context.Context, userID string) error
}

// purgeEvent is the unit of work: remove every task owned by UserID.
type purgeEvent struct {
	UserID      string
	RequestedAt time.Time
}

// Dispatcher routes purge events to a fixed set of workers using consistent
// hashing on the user id, so repeated deletions of the same account are
// handled in order by a single worker.
type Dispatcher struct {
	workers []chan purgeEvent
	tasks   TaskPurger
	dedup   DedupChecker
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, tasks TaskPurger, dedup DedupChecker, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan purgeEvent, numWorkers),
		tasks:   tasks,
		dedup:   dedup,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan purgeEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// EnqueuePurge schedules removal of a deleted user's tasks. Non-blocking up
// to channelBuffer capacity.
func (d *Dispatcher) EnqueuePurge(userID string) {
	d.workers[d.shardIndex(userID)] <- purgeEvent{UserID: userID, RequestedAt: time.Now().UTC()}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan purgeEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			d.process(ctx, id, event)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, workerID int, event purgeEvent) {
	start := time.Now()

	isDup, err := d.dedup.IsDuplicate(ctx, event.UserID)
	if err != nil {
		metrics.PurgeErrorsTotal.WithLabelValues("dedup_failed").Inc()
		d.log.Warn().Err(err).Str("user_id", event.UserID).Msg("purge dedup check failed, processing anyway")
	} else if isDup {
		metrics.PurgeDedupTotal.WithLabelValues("hit").Inc()
		d.log.Debug().Str("user_id", event.UserID).Msg("duplicate purge skipped")
		return
	} else {
		metrics.PurgeDedupTotal.WithLabelValues("miss").Inc()
	}

	if markErr := d.dedup.Mark(ctx, event.UserID); markErr != nil {
		d.log.Warn().Err(markErr).Str("user_id", event.UserID).Msg("failed to set purge dedup key")
	}

	deleted, err := d.tasks.DeleteByOwner(ctx, event.UserID)
	if err != nil {
		metrics.PurgeErrorsTotal.WithLabelValues("delete_failed").Inc()
		d.log.Error().Err(err).
			Str("user_id", event.UserID).
			Int("worker_id", workerID).
			Msg("task purge failed")
		return
	}

	metrics.PurgesProcessedTotal.Inc()
	metrics.PurgeDuration.Observe(time.Since(start).Seconds())
	d.log.Info().
		Str("user_id", event.UserID).
		Int64("tasks_deleted", deleted).
		Int("worker_id", workerID).
		Msg("task purge completed")
}

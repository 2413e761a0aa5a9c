package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/traveltracker/travel-log-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher persists assistant chat turns asynchronously through a fixed set
// of workers. Turns are sharded by user ID so each user's transcript is
// written in order.
type Dispatcher struct {
	workers []chan ports.ChatTurn
	store   ports.ConversationStore
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ports.ConversationStore, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ChatTurn, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ChatTurn, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record sends a turn to the worker responsible for its user. The call is
// non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Record(turn ports.ChatTurn) {
	d.workers[d.shardIndex(turn.UserID)] <- turn
}

// shardIndex maps a user ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ChatTurn) {
	for {
		select {
		case <-ctx.Done():
			return
		case turn, ok := <-ch:
			if !ok {
				return
			}
			if err := d.store.Append(ctx, turn); err != nil {
				d.log.Error().Err(err).
					Str("user_id", turn.UserID).
					Int("worker_id", id).
					Msg("chat turn persistence failed")
			}
		}
	}
}

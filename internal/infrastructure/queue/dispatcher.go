package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher writes audit entries on a fixed set of workers. Entries are
// sharded by AuditEntry.Key so one entity's history is written in order.
type Dispatcher struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
	onDrop  func()
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// OnDrop registers a callback run whenever an entry is dropped on a full shard.
func (d *Dispatcher) OnDrop(fn func()) { d.onDrop = fn }

// Start launches all worker goroutines. When ctx is cancelled each worker
// writes the entries already queued on its shard and returns.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() { d.wg.Wait() }

// Record hands entry to its shard. It never blocks: when the shard is full the
// entry is dropped and logged.
func (d *Dispatcher) Record(entry domain.AuditEntry) {
	select {
	case d.workers[d.shardIndex(entry.Key())] <- entry:
	default:
		d.log.Warn().Str("entity", entry.Entity).Int64("entity_id", entry.EntityID).Str("action", string(entry.Action)).Msg("audit queue full, entry dropped")
		if d.onDrop != nil {
			d.onDrop()
		}
	}
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain(ctx, id, ch)
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			d.write(ctx, id, entry)
		}
	}
}

// drain writes whatever is still buffered on ch when the worker stops.
func (d *Dispatcher) drain(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	n := 0
	for {
		select {
		case entry, ok := <-ch:
			if !ok {
				return
			}
			d.write(ctx, id, entry)
			n++
		default:
			if n > 0 {
				d.log.Info().Int("worker_id", id).Int("entries", n).Msg("audit queue drained")
			}
			return
		}
	}
}

func (d *Dispatcher) write(ctx context.Context, id int, entry domain.AuditEntry) {
	if err := d.repo.Insert(context.WithoutCancel(ctx), entry); err != nil {
		d.log.Error().Err(err).
			Str("entity", entry.Entity).
			Str("action", string(entry.Action)).
			Int("worker_id", id).
			Msg("audit write failed")
	}
}

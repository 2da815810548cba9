package audit

import (
	"sync"

	"go.uber.org/zap"
)

type Event struct {
	TenantID string
	UserID   *string
	Action   string
	Entity   string
	EntityID *string
	Metadata any
}

// Sink persists audit events.
type Sink interface {
	Log(ev Event) error
}

// Dispatcher writes events asynchronously. Dispatch never blocks: when the
// queue is full the event is dropped.
type Dispatcher struct {
	sink   Sink
	log    *zap.Logger
	queue chan Event
	done  chan struct{}

	// mu guards closed and the close of queue against concurrent sends.
	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	return newDispatcher(sink, log, 100)
}

func newDispatcher(sink Sink, log *zap.Logger, size int) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}

	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.String("tenant_id", ev.TenantID),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}

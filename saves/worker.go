package saves

import (
	"context"

	"github.com/milk9111/candlelit/log"
)

// Request asks the worker to persist an already-assembled snapshot.
type Request struct {
	Snapshot *Snapshot
	Manual   bool
}

// Worker writes snapshots off the tick goroutine. Snapshots are assembled
// on-tick (so they see a consistent world) and only the file IO happens here;
// a full queue drops the request rather than stalling the game.
type Worker struct {
	manager  *Manager
	requests chan Request
	results  chan error
}

// NewWorker creates a worker over the manager with a bounded request queue.
func NewWorker(m *Manager, buffer int) *Worker {
	if buffer <= 0 {
		buffer = 4
	}
	return &Worker{
		manager:  m,
		requests: make(chan Request, buffer),
		results:  make(chan error, buffer),
	}
}

// Submit enqueues a write without blocking. It reports false when the queue
// is full.
func (w *Worker) Submit(req Request) bool {
	if w == nil || req.Snapshot == nil {
		return false
	}
	select {
	case w.requests <- req:
		return true
	default:
		return false
	}
}

// Results returns completion notifications: nil on success, the write error
// otherwise.
func (w *Worker) Results() <-chan error {
	if w == nil {
		return nil
	}
	return w.results
}

// Start processes requests until the context is cancelled. Run it on its own
// goroutine.
func (w *Worker) Start(ctx context.Context) {
	if w == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-w.requests:
			err := w.manager.Write(req.Snapshot)
			if err != nil {
				log.Error("saves: background write failed: %v", err)
			}
			select {
			case w.results <- err:
			default:
				// Nobody draining results; don't block the writer.
			}
		}
	}
}

package system

import (
	"github.com/milk9111/candlelit/ecs"
	"github.com/milk9111/candlelit/ecs/component"
	"github.com/milk9111/candlelit/log"
	"github.com/milk9111/candlelit/saves"
)

// AutoSaveSystem consumes SaveRequest entities and hands the file write to
// the background save worker. The snapshot itself is assembled on-tick so it
// captures a consistent world; only the IO leaves the tick goroutine.
type AutoSaveSystem struct {
	manager *saves.Manager
	worker  *saves.Worker
	source  saves.Source
}

func NewAutoSaveSystem(manager *saves.Manager, worker *saves.Worker, source saves.Source) *AutoSaveSystem {
	return &AutoSaveSystem{
		manager: manager,
		worker:  worker,
		source:  source,
	}
}

func (s *AutoSaveSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.drainResults(w)

	var (
		requested bool
		manual    bool
	)
	ecs.ForEach(w, component.SaveRequestComponent, func(e ecs.Entity, req *component.SaveRequest) {
		requested = true
		manual = manual || req.Manual
		ecs.DestroyEntity(w, e)
	})
	if !requested {
		return
	}

	snap, err := s.manager.Assemble(s.source)
	if err != nil {
		log.Error("autosave: assemble snapshot: %v", err)
		return
	}
	if !s.worker.Submit(saves.Request{Snapshot: snap, Manual: manual}) {
		log.Warn("autosave: save queue full, dropping request")
	}
}

func (s *AutoSaveSystem) drainResults(w *ecs.World) {
	for {
		select {
		case err := <-s.worker.Results():
			if err != nil {
				log.Error("autosave: %v", err)
				continue
			}
			w.Events().Push(ecs.Event{Type: ecs.EventSaveCompleted})
		default:
			return
		}
	}
}

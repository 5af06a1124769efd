package ecs

import (
	"testing"

	"github.com/milk9111/candlelit/ecs/component"
)

type testPos struct {
	X, Y float64
}

type testTag struct{}

var (
	testPosComponent = component.NewComponent[testPos]()
	testTagComponent = component.NewComponent[testTag]()
)

func TestCreateDestroyEntity(t *testing.T) {
	w := NewWorld()

	e := CreateEntity(w)
	if !IsAlive(w, e) {
		t.Fatalf("expected %s to be alive after create", e)
	}

	if !DestroyEntity(w, e) {
		t.Fatalf("expected destroy of %s to succeed", e)
	}
	if IsAlive(w, e) {
		t.Fatalf("expected %s to be dead after destroy", e)
	}
	if DestroyEntity(w, e) {
		t.Fatalf("expected second destroy of %s to be a no-op", e)
	}
}

func TestStaleHandleNeverResolves(t *testing.T) {
	w := NewWorld()

	old := CreateEntity(w)
	if err := Add(w, old, testPosComponent, &testPos{X: 1}); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	// Slot reuse must bump the generation, so the old handle stays dead.
	reused := CreateEntity(w)
	if old == reused {
		t.Fatalf("expected a fresh handle after slot reuse, got %s twice", old)
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle %s resolved as alive", old)
	}
	if _, ok := Get(w, old, testPosComponent); ok {
		t.Fatalf("stale handle %s resolved a component", old)
	}
}

func TestAddGetRemove(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	if err := Add(w, e, testPosComponent, &testPos{X: 3, Y: 4}); err != nil {
		t.Fatal(err)
	}
	got, ok := Get(w, e, testPosComponent)
	if !ok {
		t.Fatal("expected component after add")
	}
	if got.X != 3 || got.Y != 4 {
		t.Fatalf("got %+v, want {3 4}", got)
	}

	// Writes through the pointer are visible on the next get.
	got.X = 7
	again, _ := Get(w, e, testPosComponent)
	if again.X != 7 {
		t.Fatalf("got X=%v, want 7", again.X)
	}

	if !Remove(w, e, testPosComponent) {
		t.Fatal("expected remove to succeed")
	}
	if Has(w, e, testPosComponent) {
		t.Fatal("expected component gone after remove")
	}
	if Remove(w, e, testPosComponent) {
		t.Fatal("expected second remove to be a no-op")
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	DestroyEntity(w, e)

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "dead entity",
			err:  Add(w, e, testPosComponent, &testPos{}),
			want: component.ErrEntityNotAlive,
		},
		{
			name: "nil component",
			err:  Add(w, CreateEntity(w), testPosComponent, nil),
			want: component.ErrNilComponent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err != tt.want {
				t.Fatalf("got %v, want %v", tt.err, tt.want)
			}
		})
	}
}

func TestDestroyRemovesAllComponents(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	_ = Add(w, e, testPosComponent, &testPos{})
	_ = Add(w, e, testTagComponent, &testTag{})

	DestroyEntity(w, e)

	if Count(w, testPosComponent) != 0 || Count(w, testTagComponent) != 0 {
		t.Fatal("expected all component tables empty after destroy")
	}
}

func TestForEachDestroySafe(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 5; i++ {
		e := CreateEntity(w)
		_ = Add(w, e, testPosComponent, &testPos{X: float64(i)})
	}

	visited := 0
	ForEach(w, testPosComponent, func(e Entity, _ *testPos) {
		visited++
		DestroyEntity(w, e)
	})

	if visited != 5 {
		t.Fatalf("visited %d entities, want 5", visited)
	}
	if Count(w, testPosComponent) != 0 {
		t.Fatalf("expected empty table, got %d", Count(w, testPosComponent))
	}
}

func TestForEach2VisitsIntersection(t *testing.T) {
	w := NewWorld()

	both := CreateEntity(w)
	_ = Add(w, both, testPosComponent, &testPos{X: 1})
	_ = Add(w, both, testTagComponent, &testTag{})

	posOnly := CreateEntity(w)
	_ = Add(w, posOnly, testPosComponent, &testPos{X: 2})

	tagOnly := CreateEntity(w)
	_ = Add(w, tagOnly, testTagComponent, &testTag{})

	var got []Entity
	ForEach2(w, testPosComponent, testTagComponent, func(e Entity, _ *testPos, _ *testTag) {
		got = append(got, e)
	})

	if len(got) != 1 || got[0] != both {
		t.Fatalf("got %v, want [%s]", got, both)
	}
}

func TestFirst(t *testing.T) {
	w := NewWorld()

	if _, ok := First(w, testTagComponent); ok {
		t.Fatal("expected no entity in empty world")
	}

	e := CreateEntity(w)
	_ = Add(w, e, testTagComponent, &testTag{})

	got, ok := First(w, testTagComponent)
	if !ok || got != e {
		t.Fatalf("got %s ok=%v, want %s", got, ok, e)
	}
}

func TestEventQueueDrain(t *testing.T) {
	w := NewWorld()
	w.Events().Push(Event{Type: EventRoomChanged})
	w.Events().Push(Event{Type: EventAutoSaveRequested})

	events := w.Events().Drain()
	if len(events) != 2 {
		t.Fatalf("drained %d events, want 2", len(events))
	}
	if events[0].Type != EventRoomChanged || events[1].Type != EventAutoSaveRequested {
		t.Fatalf("wrong event order: %v", events)
	}
	if w.Events().Len() != 0 {
		t.Fatal("expected empty queue after drain")
	}
}

func TestSchedulerFixedOrder(t *testing.T) {
	w := NewWorld()

	var order []string
	s := NewScheduler(
		systemFunc(func(*World) { order = append(order, "a") }),
		systemFunc(func(*World) { order = append(order, "b") }),
	)
	s.Add(systemFunc(func(*World) { order = append(order, "c") }))

	s.Update(w)
	s.Update(w)

	want := []string{"a", "b", "c", "a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("ran %d updates, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got order %v, want %v", order, want)
		}
	}
}

type systemFunc func(*World)

func (f systemFunc) Update(w *World) { f(w) }

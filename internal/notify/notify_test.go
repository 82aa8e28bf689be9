package notify

import (
	"sync"
	"testing"
)

func TestMulti_FansOutInOrder(t *testing.T) {
	var order []string
	first := SinkFunc(func(n Notification) { order = append(order, "first:"+n.Message) })
	second := SinkFunc(func(n Notification) { order = append(order, "second:"+n.Message) })

	sink := Multi(first, nil, second)
	sink.Notify(New(Info, "hello"))

	if len(order) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(order))
	}
	if order[0] != "first:hello" || order[1] != "second:hello" {
		t.Errorf("unexpected delivery order: %v", order)
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				r.Notify(New(Error, "boom"))
			} else {
				r.Notify(New(Success, "ok"))
			}
		}(i)
	}
	wg.Wait()

	if got := len(r.All()); got != 20 {
		t.Errorf("All() returned %d notifications, want 20", got)
	}
	if got := r.Count(Error); got != 10 {
		t.Errorf("Count(Error) = %d, want 10", got)
	}
	if got := r.Count(Warning); got != 0 {
		t.Errorf("Count(Warning) = %d, want 0", got)
	}
}

func TestNew_StampsTime(t *testing.T) {
	n := New(Warning, "careful")
	if n.At.IsZero() {
		t.Error("expected notification timestamp to be set")
	}
	if n.Severity != Warning {
		t.Errorf("Severity = %s, want warning", n.Severity)
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic.
	Discard.Notify(New(Info, "dropped"))
}

package modular

import "testing"

func TestNotifierDeliversToAllSubscribers(t *testing.T) {
	n := NewNotifier()
	got := 0
	n.Subscribe(func() { got++ })
	n.Subscribe(func() { got++ })

	n.notify()
	if got != 2 {
		t.Fatalf("delivered %d, want 2", got)
	}
}

func TestNotifierUnsubscribe(t *testing.T) {
	n := NewNotifier()
	got := 0
	stop := n.Subscribe(func() { got++ })

	n.notify()
	stop()
	n.notify()

	if got != 1 {
		t.Fatalf("delivered %d after unsubscribe, want 1", got)
	}
	if n.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", n.Len())
	}
}

func TestNotifierUnsubscribeIsIdempotent(t *testing.T) {
	n := NewNotifier()
	stop := n.Subscribe(func() {})
	stop()
	stop()
	if n.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", n.Len())
	}
}

func TestNotifierSubscribeDuringNotify(t *testing.T) {
	n := NewNotifier()
	lateCalls := 0
	n.Subscribe(func() {
		n.Subscribe(func() { lateCalls++ })
	})

	n.notify()
	if lateCalls != 0 {
		t.Fatal("subscriber added during notify must not run in the same round")
	}
	n.notify()
	if lateCalls != 1 {
		t.Fatalf("late subscriber ran %d times in second round, want 1", lateCalls)
	}
}

package modular

import "sync"

// Notifier is a per-module change signal. Observers subscribe; the registry
// fires it after the module's container has been reset and rewired
// (fire-on-settle), exactly once per affected module per cascade.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func())}
}

// Subscribe registers fn and returns an unsubscribe function. Unsubscribing
// twice is safe.
func (n *Notifier) Subscribe(fn func()) func() {
	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

// Len returns the number of active subscribers.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

// notify invokes every subscriber synchronously. Callbacks run outside the
// lock so a subscriber may unsubscribe itself.
func (n *Notifier) notify() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Package notifier fans out dataset-refresh pings to SSE listeners. A ping
// carries the affected dataset id; listeners re-fetch whatever they were
// showing for that dataset.
package notifier

import "sync"

// Notifier broadcasts dataset ids to all subscribed listeners.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan string]struct{}
}

// New creates an empty Notifier.
func New() *Notifier {
	return &Notifier{listeners: make(map[chan string]struct{})}
}

// Subscribe returns a channel receiving dataset ids on refresh. Callers must
// Unsubscribe when done to avoid leaking the listener.
func (n *Notifier) Subscribe() chan string {
	ch := make(chan string, 4)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a listener channel.
func (n *Notifier) Unsubscribe(ch chan string) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast sends datasetID to every listener. Non-blocking: a listener
// with a full buffer misses this ping and catches up on the next one.
func (n *Notifier) Broadcast(datasetID string) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- datasetID:
		default:
		}
	}
}

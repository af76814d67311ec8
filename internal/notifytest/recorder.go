// Package notifytest holds sinks for tests of notification producers.
package notifytest

import (
	"sync"

	"sensordemos/notify"
)

// Recorder keeps notifications in memory.
type Recorder struct {
	mu  sync.Mutex
	got []notify.Notification
}

func (r *Recorder) Notify(n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

func (r *Recorder) All() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.got...)
}

// Kind returns the recorded notifications of one kind.
func (r *Recorder) Kind(k notify.Kind) []notify.Notification {
	var out []notify.Notification
	for _, n := range r.All() {
		if n.Kind == k {
			out = append(out, n)
		}
	}
	return out
}

// Package watcher signals when files under a project root change, so an
// active search can be re-run against fresh content.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/rjeczalik/notify"
)

const debounceWindow = 500 * time.Millisecond

// Watcher coalesces bursts of filesystem events into single signals on C.
type Watcher struct {
	C <-chan struct{}

	events chan notify.EventInfo
	once   sync.Once
}

// New starts a recursive watch under root. Events are debounced: a batch of
// rapid changes (editor save, git checkout) produces one signal.
func New(root string) (*Watcher, error) {
	events := make(chan notify.EventInfo, 64)
	if err := notify.Watch(filepath.Join(root, "..."), events, notify.All); err != nil {
		return nil, err
	}

	signals := make(chan struct{}, 1)
	w := &Watcher{C: signals, events: events}
	go w.debounce(signals)
	return w, nil
}

// Close stops the watch and eventually closes C.
func (w *Watcher) Close() {
	w.once.Do(func() {
		notify.Stop(w.events)
		close(w.events)
	})
}

func (w *Watcher) debounce(signals chan<- struct{}) {
	defer close(signals)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case _, ok := <-w.events:
			if !ok {
				return
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				fire = timer.C
			} else {
				if !timer.Stop() {
					<-fire
				}
				timer.Reset(debounceWindow)
			}
		case <-fire:
			timer = nil
			fire = nil
			select {
			case signals <- struct{}{}:
			default:
			}
		}
	}
}

package handler

import (
	"sync"

	"go-minimart/internal/notify"
)

// Alerts buffers low-stock events until the screen that caused them has
// finished printing.
type Alerts struct {
	mu      sync.Mutex
	pending []notify.Event
	cancel  func()
}

// WatchLowStock subscribes to low-stock events on hub. A nil hub yields an
// Alerts that never has anything pending.
func WatchLowStock(hub *notify.Hub) (*Alerts, error) {
	a := &Alerts{}
	if hub == nil {
		return a, nil
	}
	cancel, err := hub.Subscribe(notify.TopicLowStock, a.add)
	if err != nil {
		return nil, err
	}
	a.cancel = cancel
	return a, nil
}

func (a *Alerts) add(ev notify.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = append(a.pending, ev)
}

// Flush prints and clears the pending alerts.
func (a *Alerts) Flush(term *Terminal) {
	if a == nil {
		return
	}
	a.mu.Lock()
	pending := a.pending
	a.pending = nil
	a.mu.Unlock()

	for _, ev := range pending {
		term.Printf("*** LOW STOCK ALERT *** %s\n", ev.Message)
	}
}

func (a *Alerts) Close() {
	if a != nil && a.cancel != nil {
		a.cancel()
	}
}

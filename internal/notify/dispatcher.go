// Package notify is the lab's toast surface: fire-and-forget messages that
// are persisted and pushed to every connected page.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Dispatcher stores toasts and fans them out to live subscribers. Delivery
// is best effort; callers never see an error.
type Dispatcher struct {
	store  *Store
	logger *zap.Logger

	mu     sync.Mutex
	nextID int
	subs   map[int]func(Toast)
}

// NewDispatcher creates a Dispatcher. store may be nil, in which case toasts
// are only pushed to live subscribers.
func NewDispatcher(store *Store, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		store:  store,
		logger: logger,
		subs:   make(map[int]func(Toast)),
	}
}

// Success emits a success toast.
func (d *Dispatcher) Success(ctx context.Context, message string) {
	d.Dispatch(ctx, Toast{Kind: KindSuccess, Message: message})
}

// Warn emits a warning toast.
func (d *Dispatcher) Warn(ctx context.Context, message string) {
	d.Dispatch(ctx, Toast{Kind: KindWarning, Message: message})
}

// Dispatch persists t and sends it to all subscribers.
func (d *Dispatcher) Dispatch(ctx context.Context, t Toast) {
	if d.store != nil {
		stored, err := d.store.Create(ctx, t)
		if err != nil {
			d.logger.Warn("toast not persisted", zap.String("message", t.Message), zap.Error(err))
		}
		t = stored
	}

	d.mu.Lock()
	subs := make([]func(Toast), 0, len(d.subs))
	for _, fn := range d.subs {
		subs = append(subs, fn)
	}
	d.mu.Unlock()

	for _, fn := range subs {
		fn(t)
	}
}

// Subscribe registers fn to receive every toast dispatched from now on.
// The returned function removes the subscription.
func (d *Dispatcher) Subscribe(fn func(Toast)) (unsubscribe func()) {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.subs[id] = fn
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.subs, id)
		d.mu.Unlock()
	}
}

// Subscribers returns the number of live subscribers.
func (d *Dispatcher) Subscribers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}

// Store returns the backing store, which may be nil.
func (d *Dispatcher) Store() *Store { return d.store }

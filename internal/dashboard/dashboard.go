// Package dashboard implements the owner dashboard's order state
// reconciliation core: a single-writer state container fed by two
// asynchronous input channels — incremental push events and paginated pull
// snapshots — that interleave on one reconciliation loop.
package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/kiwari-pos/owner-dashboard/internal/enum"
	"github.com/kiwari-pos/owner-dashboard/internal/socket"
)

// Notification levels, surfaced to the presentation layer as toasts.
const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// Notification is a non-fatal message for the presentation layer. No failure
// in this core is fatal; everything degrades to stale-but-consistent state.
type Notification struct {
	Level   string
	Message string
}

// Notifier receives notifications. It is called from the reconciliation loop
// and must not block.
type Notifier func(Notification)

// Emitter is the push-channel action surface. Satisfied by *socket.Client;
// narrow interface for testability.
type Emitter interface {
	AcceptOrder(orderID string) error
	UpdatePaymentStatus(orderID, paymentStatus string) error
}

// Dashboard owns the per-view state and exposes the action surface used by
// the presentation layer. All mutations are funneled through Run's loop;
// Snapshot is the only concurrent reader.
type Dashboard struct {
	mu    sync.RWMutex
	state *state

	rec    *reconciler
	ing    *ingestor
	loader *loader
	proj   *projector

	emitter Emitter
	notify  Notifier

	cmds chan func()
}

// Option configures a Dashboard.
type Option func(*options)

type options struct {
	pageSize int
	notify   Notifier
}

// WithPageSize sets the pull-query page size. Defaults to 10.
func WithPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// WithNotifier sets the notification sink. Defaults to discarding.
func WithNotifier(fn Notifier) Option {
	return func(o *options) {
		if fn != nil {
			o.notify = fn
		}
	}
}

// New creates a Dashboard. The zero state starts on the live view with every
// view empty; pulled views populate on first activation.
func New(fetcher Fetcher, emitter Emitter, opts ...Option) *Dashboard {
	o := options{
		pageSize: 10,
		notify:   func(Notification) {},
	}
	for _, opt := range opts {
		opt(&o)
	}

	d := &Dashboard{
		state:   newState(),
		emitter: emitter,
		notify:  o.notify,
		cmds:    make(chan func(), 256),
	}
	d.rec = &reconciler{state: d.state}
	d.ing = &ingestor{rec: d.rec}
	d.loader = newLoader(fetcher, o.pageSize, d.state, d.dispatch, o.notify)
	d.proj = &projector{fetcher: fetcher, state: d.state, dispatch: d.dispatch, notify: o.notify}
	return d
}

// Run consumes push events and queued commands until ctx is cancelled. It is
// the only goroutine that mutates state, so no mutation is ever preempted
// mid-flight. Within a view, events and pull responses apply in delivery
// order; stale pull responses are discarded by the loader's sequence check.
func (d *Dashboard) Run(ctx context.Context, events <-chan socket.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				events = nil // channel closed; keep serving commands
				continue
			}
			d.mu.Lock()
			d.ing.handle(d.state.active, ev)
			d.mu.Unlock()

		case cmd := <-d.cmds:
			d.mu.Lock()
			cmd()
			d.mu.Unlock()
		}
	}
}

// dispatch queues a command for the reconciliation loop.
func (d *Dashboard) dispatch(cmd func()) {
	d.cmds <- cmd
}

// Snapshot returns a consistent read-only copy of the dashboard state.
func (d *Dashboard) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state.snapshot()
}

// --- Presentation-layer actions ---

// SetActiveView switches tabs. Switching to a pulled view resets its page to
// 1 and issues a fresh pull; the live queue is push-fed and never pulled.
func (d *Dashboard) SetActiveView(ctx context.Context, view string) {
	switch view {
	case enum.ViewLive, enum.ViewPaid, enum.ViewUnpaid, enum.ViewHistory, enum.ViewBalance:
	default:
		return
	}

	d.dispatch(func() {
		d.state.active = view
		switch view {
		case enum.ViewLive:
			return
		case enum.ViewBalance:
			d.state.balance.page = 1
		default:
			d.state.orders[view].page = 1
		}
		d.loader.loadActive(ctx)
	})
}

// SetPage changes the active view's page and issues a fresh pull. No-op on
// the live view.
func (d *Dashboard) SetPage(ctx context.Context, page int) {
	if page < 1 {
		return
	}
	d.dispatch(func() {
		switch d.state.active {
		case enum.ViewPaid, enum.ViewUnpaid, enum.ViewHistory:
			d.state.orders[d.state.active].page = page
			d.loader.loadActive(ctx)
		case enum.ViewBalance:
			d.state.balance.page = page
			d.loader.loadActive(ctx)
		}
	})
}

// SetSearch changes the balance view's filter text, resets its page to 1 and
// issues a fresh pull. Only meaningful while the balance view is active.
func (d *Dashboard) SetSearch(ctx context.Context, text string) {
	d.dispatch(func() {
		if d.state.active != enum.ViewBalance {
			return
		}
		d.state.balance.search = text
		d.state.balance.page = 1
		d.loader.loadActive(ctx)
	})
}

// Accept accepts a live order: the acceptance is emitted on the push channel
// and the order leaves the live queue immediately.
func (d *Dashboard) Accept(orderID string) {
	d.dispatch(func() {
		if err := d.emitter.AcceptOrder(orderID); err != nil {
			d.notify(Notification{Level: LevelError, Message: fmt.Sprintf("failed to accept order: %v", err)})
			return
		}
		d.state.orders[enum.ViewLive].remove(orderID)
		d.notify(Notification{Level: LevelSuccess, Message: "order accepted"})
	})
}

// Decline removes a live order locally. There is no decline emit; the order
// simply never gets accepted.
func (d *Dashboard) Decline(orderID string) {
	d.dispatch(func() {
		d.state.orders[enum.ViewLive].remove(orderID)
		d.notify(Notification{Level: LevelError, Message: "order declined"})
	})
}

// MarkPaid emits a payment-status change for one order. The local views are
// reconciled by the resulting orderUpdate push echo rather than mutated here.
func (d *Dashboard) MarkPaid(orderID string) {
	d.dispatch(func() {
		if err := d.emitter.UpdatePaymentStatus(orderID, enum.PaymentStatusPaid); err != nil {
			d.notify(Notification{Level: LevelError, Message: fmt.Sprintf("failed to mark order paid: %v", err)})
			return
		}
		d.notify(Notification{Level: LevelSuccess, Message: "payment marked as received"})
	})
}

// MarkBalancePaid settles a customer's outstanding balance; see
// projector.markPaid for the confirmation-then-remove contract.
func (d *Dashboard) MarkBalancePaid(ctx context.Context, userID string) {
	d.dispatch(func() {
		d.proj.markPaid(ctx, userID)
	})
}

// OpenLedger loads a customer's transaction ledger into the ledger detail
// state.
func (d *Dashboard) OpenLedger(ctx context.Context, userID string) {
	d.dispatch(func() {
		d.proj.openLedger(ctx, userID)
	})
}
